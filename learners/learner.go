// Package learners is a collection of base learner implementations to be used
// as ensemble members in the time series forest.
package learners

import (
	"gonum.org/v1/gonum/mat"
)

// Learner is the contract a base learner must satisfy to participate in a
// forest. Implementations are fit once on a feature matrix with one class
// label per row and report a per feature importance score after fitting.
type Learner interface {
	Fit(x mat.Matrix, y []int) error
	Predict(x mat.Matrix) ([]int, error)
	FeatureImportances() []float64
}

// Template produces an independent Learner instance per ensemble member. The
// seed must fully determine the clone's internal randomness so a forest fit
// is reproducible for a fixed master seed.
type Template interface {
	Clone(seed uint64) Learner
}

// Exportable is implemented by learners whose fitted state can be serialized
// into a TreeModel.
type Exportable interface {
	Model() (TreeModel, error)
}
