package equations_test

import (
	"testing"

	"github.com/zephyrtronium/equations"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("2x+-sin(x)")
	f.Add("(1 + 2))")
	f.Add("a_-b")
	f.Add("$0 + sin$3")
	f.Fuzz(func(t *testing.T, s string) {
		equations.EvalString(s, map[string]float64{"x": 0})
	})
}
