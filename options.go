package tsforest

import (
	"errors"
	"time"
)

const (
	DefaultMinIntervalLength = 3
	DefaultNumEstimators     = 200
	DefaultParallelization   = 1
)

var (
	ErrNonPositiveEstimators     = errors.New("non-positive number of estimators")
	ErrNonPositiveIntervalLength = errors.New("non-positive minimum interval length")
	ErrNegativeParallelization   = errors.New("negative parallelization")
	ErrNegativeTimeLimit         = errors.New("negative time limit")
	ErrNegativeContractMax       = errors.New("negative contract max estimators")
)

// Options configures a time series forest fit.
type Options struct {
	// MinIntervalLength is the smallest number of timepoints an interval may
	// span. Clamped down to the series length at fit time if it exceeds it.
	MinIntervalLength int `json:"min_interval_length"`

	// NumEstimators is the target ensemble size.
	NumEstimators int `json:"num_estimators"`

	// Parallelization sets how many ensemble member fits may run
	// concurrently. 0 or 1 fits sequentially.
	Parallelization int `json:"parallelization"`

	// Seed fixes the generator driving interval sampling and per member
	// seeds, making fits reproducible. Leave nil for a non-deterministic fit.
	Seed *uint64 `json:"seed,omitempty"`

	// TimeLimit optionally bounds the wall clock time spent dispatching
	// member fits. Members already dispatched when the budget expires run to
	// completion, so the resulting ensemble size is budget-approximate and
	// may be smaller than NumEstimators.
	TimeLimit time.Duration `json:"time_limit"`

	// ContractMaxEstimators optionally caps the ensemble size when fitting
	// under a TimeLimit. 0 means no cap.
	ContractMaxEstimators int `json:"contract_max_estimators"`
}

// NewDefaultOptions returns a set of default time series forest options
func NewDefaultOptions() *Options {
	return &Options{
		MinIntervalLength: DefaultMinIntervalLength,
		NumEstimators:     DefaultNumEstimators,
		Parallelization:   DefaultParallelization,
	}
}

// Validate runs basic validation on forest options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if o.NumEstimators <= 0 {
		return nil, ErrNonPositiveEstimators
	}
	if o.MinIntervalLength <= 0 {
		return nil, ErrNonPositiveIntervalLength
	}
	if o.Parallelization < 0 {
		return nil, ErrNegativeParallelization
	}
	if o.TimeLimit < 0 {
		return nil, ErrNegativeTimeLimit
	}
	if o.ContractMaxEstimators < 0 {
		return nil, ErrNegativeContractMax
	}
	return o, nil
}
