package learners

import (
	"fmt"
	"math/rand/v2"
)

// TreeNodeModel is the serializable form of a single tree node. Left and
// Right index into the flat node slice of the TreeModel and are -1 for
// leaves.
type TreeNodeModel struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Class     int     `json:"class"`
}

// TreeModel is a serializable representation of a fitted decision tree. The
// node at index 0 is the root.
type TreeModel struct {
	Options     *TreeOptions    `json:"options"`
	NumFeatures int             `json:"num_features"`
	Importances []float64       `json:"importances"`
	Nodes       []TreeNodeModel `json:"nodes"`
}

// Model returns the serializable format of the fitted tree composing of the
// tree options, flattened nodes, and per feature importances
func (d *DecisionTree) Model() (TreeModel, error) {
	if d == nil || d.root == nil {
		return TreeModel{}, ErrUntrainedTree
	}

	var nodes []TreeNodeModel
	var flatten func(node *treeNode) int
	flatten = func(node *treeNode) int {
		pos := len(nodes)
		nodes = append(nodes, TreeNodeModel{
			Feature:   node.feature,
			Threshold: node.threshold,
			Left:      -1,
			Right:     -1,
			Leaf:      node.leaf,
			Class:     node.class,
		})
		if !node.leaf {
			left := flatten(node.left)
			right := flatten(node.right)
			nodes[pos].Left = left
			nodes[pos].Right = right
		}
		return pos
	}
	flatten(d.root)

	importances := make([]float64, len(d.importances))
	copy(importances, d.importances)

	optCopy := *d.opt
	m := TreeModel{
		Options:     &optCopy,
		NumFeatures: d.numFeatures,
		Importances: importances,
		Nodes:       nodes,
	}
	return m, nil
}

// NewTreeFromModel creates a decision tree from a pre-existing model. The
// tree can be used for inference immediately and does not need to be trained
// again.
func NewTreeFromModel(model TreeModel) (*DecisionTree, error) {
	if len(model.Nodes) == 0 {
		return nil, ErrNoModelNodes
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, err
	}

	rebuilt := make([]*treeNode, len(model.Nodes))
	for i, nm := range model.Nodes {
		rebuilt[i] = &treeNode{
			feature:   nm.Feature,
			threshold: nm.Threshold,
			leaf:      nm.Leaf,
			class:     nm.Class,
		}
	}
	for i, nm := range model.Nodes {
		if nm.Leaf {
			continue
		}
		if nm.Left < 0 || nm.Left >= len(rebuilt) || nm.Right < 0 || nm.Right >= len(rebuilt) {
			return nil, fmt.Errorf("node %d, %w", i, ErrBadModelNodeRef)
		}
		rebuilt[i].left = rebuilt[nm.Left]
		rebuilt[i].right = rebuilt[nm.Right]
	}

	importances := make([]float64, len(model.Importances))
	copy(importances, model.Importances)

	d := &DecisionTree{
		opt:         opt,
		rng:         rand.New(rand.NewPCG(0, 0)),
		root:        rebuilt[0],
		numFeatures: model.NumFeatures,
		importances: importances,
	}
	return d, nil
}
