package equations

import (
	"math"
	"sort"
)

// Func is a function from reals to reals that an equation can call.
type Func func(x float64) float64

// globalfuncs are the functions an equation can call, as in "sin(x)".
var globalfuncs = map[string]Func{
	"exp":   math.Exp,
	"expm1": math.Expm1,
	"log":   math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"ln":    math.Log,

	"sin":   math.Sin,
	"sinh":  math.Sinh,
	"asin":  math.Asin,
	"asinh": math.Asinh,
	"cos":   math.Cos,
	"cosh":  math.Cosh,
	"acos":  math.Acos,
	"acosh": math.Acosh,
	"tan":   math.Tan,
	"tanh":  math.Tanh,
	"atan":  math.Atan,
	"atanh": math.Atanh,
	// atan2 needs a second argument that a call can't give it.
	"atan2": func(float64) float64 { return math.NaN() },

	"trunc": math.Trunc,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": roundHalfUp,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"abs":   math.Abs,
	"sign":  sign,
}

// constants are the names with fixed values. They take precedence over
// variables with the same names.
var constants = map[string]float64{
	"PI":      math.Pi,
	"E":       math.E,
	"LN10":    math.Ln10,
	"LN2":     math.Ln2,
	"LOG10E":  math.Log10E,
	"LOG2E":   math.Log2E,
	"SQRT1_2": math.Sqrt2 / 2,
	"SQRT12":  math.Sqrt2,
}

// roundHalfUp rounds to the nearest integer, with halves going toward
// positive infinity, so -2.5 rounds to -2.
func roundHalfUp(x float64) float64 {
	r := math.Round(x)
	if r-x == -0.5 {
		r++
	}
	return r
}

// sign is -1 for negative x, 1 for positive x, and x itself otherwise.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// Funcs returns the sorted names of the functions equations can call.
func Funcs() []string {
	return sortedKeys(globalfuncs)
}

// Constants returns the sorted names of the constants equations can use.
func Constants() []string {
	return sortedKeys(constants)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
