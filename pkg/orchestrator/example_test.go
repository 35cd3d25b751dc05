package orchestrator_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/tiler/pkg/display"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/template"
)

func ExampleOrchestrator_sideBySide() {
	// Two 2x2 checkerboards, the second to the right of the first.
	a, _ := template.NewAlternatingSquare(2)
	b, _ := template.NewAlternatingSquare(2)

	o := orchestrator.New()
	ia, _ := o.AddTemplate(a, []int{1, 2})
	ib, _ := o.AddTemplate(b, []int{3, 4})
	_ = o.AddRelation(ib, geom.RightOf, ia)

	// Position 0 is unreferenced, so five plaquettes are expected and the
	// identity default leaves no cell empty.
	fmt.Println("Plaquettes:", o.ExpectedPlaquettes())
	_ = display.ASCII(os.Stdout, o)
	// Output:
	// Plaquettes: 5
	//   1  2  3  4
	//   2  1  4  3
}

func ExampleOrchestrator_ScaleTo() {
	a, _ := template.NewAlternatingSquare(2)
	b, _ := template.NewAlternatingRectangle(2, 1, true, false)

	o := orchestrator.New()
	ia, _ := o.AddTemplate(a, []int{0, 1})
	ib, _ := o.AddTemplate(b, []int{2, 3})
	_ = o.AddRelation(ib, geom.BelowOf, ia)

	for _, k := range []int{1, 2, 3} {
		if _, err := o.ScaleTo(k); err != nil {
			fmt.Println(err)
			return
		}
		s, _ := o.Shape()
		fmt.Printf("k=%d: %dx%d\n", k, s.X, s.Y)
	}
	// Output:
	// k=1: 2x3
	// k=2: 4x5
	// k=3: 6x7
}
