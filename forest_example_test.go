package tsforest

import (
	"fmt"
	"math/rand/v2"

	"github.com/aouyang1/go-tsforest/learners"
	"github.com/aouyang1/go-tsforest/paneldata"
)

func Example() {
	rng := rand.New(rand.NewPCG(11, 11))
	x, y := paneldata.GenerateTwoClassPanel(rng, 20, 64)

	seed := uint64(42)
	opt := NewDefaultOptions()
	opt.NumEstimators = 10
	opt.Seed = &seed

	f, err := New(learners.TreeTemplate{}, opt)
	if err != nil {
		panic(err)
	}
	if err := f.Fit(x, y); err != nil {
		panic(err)
	}

	fmt.Println("classes:", f.Classes())
	fmt.Println("members:", len(f.Estimators()))
	fmt.Println("intervals per member:", f.NumIntervals())
	// Output:
	// classes: [0 1]
	// members: 10
	// intervals per member: 8
}
