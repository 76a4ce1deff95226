package equations_test

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zephyrtronium/equations"
)

func ExampleNew() {
	reg := equations.NewRegistry()
	area, err := equations.New("PI*r^2", equations.Named("area"), equations.In(reg))
	if err != nil {
		panic(err)
	}
	fmt.Println(area.Text())
	fmt.Println(area.Vars())
	// Output:
	// PI * r ^ 2
	// [r]
}

func ExampleEquation_Evaluate() {
	reg := equations.NewRegistry()
	if _, err := equations.New("2x", equations.Named("A"), equations.In(reg)); err != nil {
		panic(err)
	}
	e, err := equations.New("(A + 1) * 2", equations.In(reg))
	if err != nil {
		panic(err)
	}
	for _, x := range []float64{1, 2, 3} {
		r, err := e.Evaluate(map[string]float64{"x": x})
		if err != nil {
			panic(err)
		}
		fmt.Println(r)
	}
	// Output:
	// 6
	// 10
	// 14
}

func ExampleEquation_Parts() {
	e, err := equations.New("sqrt(x ^ 2 + (y + 1) ^ 2)", equations.In(nil))
	if err != nil {
		panic(err)
	}
	for i, p := range e.Parts() {
		fmt.Printf("$%d = %s\n", i, p)
	}
	// Output:
	// $0 = y + 1
	// $1 = x ^ 2 + $0 ^ 2
	// $2 = sqrt$1
}

func ExampleNameError() {
	_, err := equations.EvalString("sqr(16)", nil)
	var ne *equations.NameError
	if errors.As(err, &ne) {
		fmt.Println(ne.Name, slices.Contains(ne.Suggestions, "sqrt"))
	}
	// Output:
	// sqr true
}
