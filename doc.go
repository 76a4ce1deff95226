// Package equations implements a floating-point calculator for named,
// composable equations.
//
// The syntax is meant to look like math you'd type into a search bar. "2x" is
// 2 * x, "2 ^ 3 ^ 2" is (2^3)^2, and "8 : 3" is the cube root of 8. Functions
// take one bracketed argument, as in "sin(PI / 2)". Spaces are ignored.
//
// An Equation is normalized and broken into bracket-free parts once, when it
// is created, and can then be evaluated for many sets of variables. Giving an
// equation a name registers it so that other equations can use that name as
// an operand: after New("2 * x", Named("A")), the equation "A + 1" evaluates
// to 7 when x is 3.
package equations
