package learners

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
)

const (
	DefaultMinSamplesSplit = 2

	// splitTolerance is the minimum impurity decrease for a split to be
	// preferred over the current best, keeping tie resolution dependent only
	// on the seeded feature order.
	splitTolerance = 1e-12
)

// TreeOptions represents input options to fit a DecisionTree
type TreeOptions struct {
	// MaxDepth bounds how deep the tree may grow. 0 means unbounded.
	MaxDepth int `json:"max_depth"`

	// MinSamplesSplit is the smallest node size that may still be split.
	MinSamplesSplit int `json:"min_samples_split"`
}

// NewDefaultTreeOptions returns a default set of decision tree options
func NewDefaultTreeOptions() *TreeOptions {
	return &TreeOptions{
		MaxDepth:        0,
		MinSamplesSplit: DefaultMinSamplesSplit,
	}
}

// Validate runs basic validation on tree options
func (o *TreeOptions) Validate() (*TreeOptions, error) {
	if o == nil {
		o = NewDefaultTreeOptions()
	}
	if o.MaxDepth < 0 {
		return nil, ErrNegativeDepth
	}
	if o.MinSamplesSplit < 0 {
		return nil, ErrMinSamplesSplit
	}
	if o.MinSamplesSplit < DefaultMinSamplesSplit {
		o.MinSamplesSplit = DefaultMinSamplesSplit
	}
	return o, nil
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	class     int
}

// DecisionTree is a CART classifier splitting on gini impurity. The seed only
// shuffles the order features are evaluated in, which decides ties between
// equally good splits, so a fixed seed makes the fit fully deterministic.
type DecisionTree struct {
	opt *TreeOptions
	rng *rand.Rand

	root        *treeNode
	numFeatures int
	importances []float64
}

// NewDecisionTree initializes a decision tree ready for fitting with its own
// seeded random generator.
func NewDecisionTree(opt *TreeOptions, seed uint64) (*DecisionTree, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &DecisionTree{
		opt: opt,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}, nil
}

// TreeTemplate clones seeded decision trees sharing a single option set,
// satisfying the forest's Template contract.
type TreeTemplate struct {
	Opt *TreeOptions
}

func (t TreeTemplate) Clone(seed uint64) Learner {
	var opt *TreeOptions
	if t.Opt != nil {
		optCopy := *t.Opt
		opt = &optCopy
	}
	return &DecisionTree{
		opt: opt,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Fit builds the tree from the training matrix with one class label per row
func (d *DecisionTree) Fit(x mat.Matrix, y []int) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	opt, err := d.opt.Validate()
	if err != nil {
		return err
	}
	d.opt = opt
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(0, 0))
	}

	m, n := x.Dims()
	if m == 0 {
		return ErrNoTrainingMatrix
	}
	if len(y) != m {
		return fmt.Errorf("training data has %d rows and target has %d labels, %w", m, len(y), ErrTargetLenMismatch)
	}

	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = mat.Row(nil, i, x)
	}

	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}

	d.numFeatures = n
	d.importances = make([]float64, n)
	d.root = d.build(rows, y, idx, 0, m)

	var total float64
	for _, imp := range d.importances {
		total += imp
	}
	if total > 0 {
		for i := range d.importances {
			d.importances[i] /= total
		}
	}
	return nil
}

func (d *DecisionTree) build(rows [][]float64, y []int, idx []int, depth, total int) *treeNode {
	counts := classCounts(y, idx)
	parentImpurity := gini(counts, len(idx))

	if parentImpurity == 0 ||
		len(idx) < d.opt.MinSamplesSplit ||
		(d.opt.MaxDepth > 0 && depth >= d.opt.MaxDepth) {
		return &treeNode{leaf: true, class: majorityClass(counts)}
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := parentImpurity

	for _, feature := range d.rng.Perm(len(rows[0])) {
		threshold, impurity, ok := bestSplit(rows, y, idx, feature, counts)
		if !ok {
			continue
		}
		if impurity < bestImpurity-splitTolerance {
			bestFeature = feature
			bestThreshold = threshold
			bestImpurity = impurity
		}
	}

	if bestFeature == -1 {
		return &treeNode{leaf: true, class: majorityClass(counts)}
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if rows[i][bestFeature] <= bestThreshold {
			left = append(left, i)
			continue
		}
		right = append(right, i)
	}

	// mean impurity decrease weighted by the fraction of samples reaching
	// this node
	d.importances[bestFeature] += float64(len(idx)) / float64(total) * (parentImpurity - bestImpurity)

	node := &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
	}
	node.left = d.build(rows, y, left, depth+1, total)
	node.right = d.build(rows, y, right, depth+1, total)
	return node
}

// bestSplit sweeps the sorted feature values accumulating class counts to
// find the threshold minimizing the weighted gini impurity of the two
// children. ok is false when all values are identical.
func bestSplit(rows [][]float64, y []int, idx []int, feature int, parentCounts map[int]int) (float64, float64, bool) {
	order := make([]int, len(idx))
	copy(order, idx)
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case rows[a][feature] < rows[b][feature]:
			return -1
		case rows[a][feature] > rows[b][feature]:
			return 1
		}
		return 0
	})

	leftCounts := make(map[int]int, len(parentCounts))
	rightCounts := make(map[int]int, len(parentCounts))
	for class, cnt := range parentCounts {
		rightCounts[class] = cnt
	}

	n := len(order)
	bestImpurity := 0.0
	bestThreshold := 0.0
	found := false

	for i := 0; i < n-1; i++ {
		class := y[order[i]]
		leftCounts[class]++
		rightCounts[class]--

		curr := rows[order[i]][feature]
		next := rows[order[i+1]][feature]
		if curr == next {
			continue
		}

		nLeft := i + 1
		nRight := n - nLeft
		impurity := (float64(nLeft)*gini(leftCounts, nLeft) +
			float64(nRight)*gini(rightCounts, nRight)) / float64(n)
		if !found || impurity < bestImpurity {
			bestImpurity = impurity
			bestThreshold = curr + (next-curr)/2.0
			found = true
		}
	}
	return bestThreshold, bestImpurity, found
}

func classCounts(y []int, idx []int) map[int]int {
	counts := make(map[int]int)
	for _, i := range idx {
		counts[y[i]]++
	}
	return counts
}

func gini(counts map[int]int, n int) float64 {
	if n == 0 {
		return 0.0
	}
	impurity := 1.0
	for _, cnt := range counts {
		p := float64(cnt) / float64(n)
		impurity -= p * p
	}
	return impurity
}

// majorityClass returns the most frequent class breaking ties towards the
// lowest class to keep predictions deterministic.
func majorityClass(counts map[int]int) int {
	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	slices.Sort(classes)

	best := classes[0]
	bestCnt := counts[best]
	for _, class := range classes[1:] {
		if counts[class] > bestCnt {
			best = class
			bestCnt = counts[class]
		}
	}
	return best
}

// Predict walks each row of the design matrix down the tree returning one
// class label per row
func (d *DecisionTree) Predict(x mat.Matrix) ([]int, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if d.root == nil {
		return nil, ErrUntrainedTree
	}

	m, n := x.Dims()
	if n != d.numFeatures {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, d.numFeatures, ErrFeatureLenMismatch)
	}

	predictions := make([]int, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		node := d.root
		for !node.leaf {
			if row[node.feature] <= node.threshold {
				node = node.left
				continue
			}
			node = node.right
		}
		predictions[i] = node.class
	}
	return predictions, nil
}

// FeatureImportances returns the normalized impurity decrease per feature
// column in training column order. Sums to 1 for any tree with at least one
// split.
func (d *DecisionTree) FeatureImportances() []float64 {
	if d == nil || d.importances == nil {
		return nil
	}
	importances := make([]float64, len(d.importances))
	copy(importances, d.importances)
	return importances
}
