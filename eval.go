package equations

import (
	"math"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Evaluate computes the value of the equation with the given variables. A nil
// map is the same as an empty one. Names in the equation are resolved in this
// order: numbers, constants, vars, references to the equation's own parts,
// equations in the registry, and function calls. Registered equations are
// evaluated with the same vars.
func (e *Equation) Evaluate(vars map[string]float64) (float64, error) {
	return e.eval(vars, nil)
}

// eval evaluates e as a dependency of the equations in chain.
func (e *Equation) eval(vars map[string]float64, chain []*Equation) (float64, error) {
	e.mu.RLock()
	parts, reg := e.parts, e.reg
	e.mu.RUnlock()
	if len(parts) == 0 {
		return 0, &EmptyExpressionError{Col: 1}
	}
	ev := evaluation{
		vars:  vars,
		refs:  make([]float64, 0, len(parts)),
		reg:   reg,
		chain: append(chain[:len(chain):len(chain)], e),
	}
	for i := range parts {
		v, err := ev.part(&parts[i])
		if err != nil {
			return 0, err
		}
		ev.refs = append(ev.refs, v)
	}
	return ev.refs[len(ev.refs)-1], nil
}

// EvalString is a shortcut to parse and evaluate an equation without
// registering it.
func EvalString(text string, vars map[string]float64) (float64, error) {
	e, err := New(text)
	if err != nil {
		return 0, err
	}
	return e.Evaluate(vars)
}

// evaluation is the state of one call to Evaluate.
type evaluation struct {
	vars map[string]float64
	// refs are the values of the parts evaluated so far.
	refs []float64
	reg  *Registry
	// chain is the equations being evaluated, outermost first, ending with
	// the one this evaluation belongs to.
	chain []*Equation
}

// item is an operand or operator in a part being reduced.
type item struct {
	// op is the operator, or 0 for an operand.
	op  byte
	val float64
	pos int
}

// tiers are the operators in order of precedence. Each tier is reduced from
// left to right before the next begins.
var tiers = [...]string{"^:", "*/%", "+-"}

// part computes the value of one part. Every operand is resolved first, then
// the operators are folded tier by tier.
func (ev *evaluation) part(p *part) (float64, error) {
	items := make([]item, 0, len(p.toks))
	for _, tok := range p.toks {
		switch tok.kind {
		case tokenOp:
			items = append(items, item{op: tok.text[0], pos: tok.pos})
		case tokenNum:
			items = append(items, item{val: tok.num, pos: tok.pos})
		case tokenIdent:
			v, err := ev.resolve(tok.text)
			if err != nil {
				return 0, err
			}
			items = append(items, item{val: v, pos: tok.pos})
		default:
			panic("equations: unknown token: " + tok.String())
		}
	}
	items = foldSigns(items)

	for t, ops := range tiers {
		for {
			i := indexOp(items, ops)
			if i < 0 {
				break
			}
			if t == len(tiers)-1 && i == 0 {
				// Leading sign: -x is -1 * x.
				if len(items) < 2 || items[1].op != 0 {
					return 0, &SyntaxError{Part: p.text, Col: items[0].pos}
				}
				l := 1.0
				if items[0].op == '-' {
					l = -1
				}
				items[1].val = l * items[1].val
				items = items[1:]
				continue
			}
			if i == 0 || i+1 >= len(items) || items[i-1].op != 0 || items[i+1].op != 0 {
				return 0, &SyntaxError{Part: p.text, Col: items[i].pos}
			}
			v, err := basicMath(items[i], items[i-1].val, items[i+1].val)
			if err != nil {
				return 0, err
			}
			items[i-1].val = v
			items = append(items[:i], items[i+2:]...)
		}
	}

	if len(items) != 1 || items[0].op != 0 {
		col := 1
		if len(items) > 1 {
			col = items[1].pos
		}
		return 0, &SyntaxError{Part: p.text, Col: col}
	}
	return items[0].val, nil
}

// foldSigns applies each + or - that directly follows another operator to the
// operand after it, so that 2 * - 3 is 2 * (-3).
func foldSigns(items []item) []item {
	out := items[:0]
	for i := 0; i < len(items); i++ {
		it := items[i]
		if (it.op == '+' || it.op == '-') && len(out) > 0 && out[len(out)-1].op != 0 &&
			i+1 < len(items) && items[i+1].op == 0 {
			v := items[i+1].val
			if it.op == '-' {
				v = -v
			}
			out = append(out, item{val: v, pos: it.pos})
			i++
			continue
		}
		out = append(out, it)
	}
	return out
}

// indexOp finds the left-most operator in ops.
func indexOp(items []item, ops string) int {
	for i, it := range items {
		if it.op != 0 && strings.IndexByte(ops, it.op) >= 0 {
			return i
		}
	}
	return -1
}

// basicMath applies one binary operator.
func basicMath(op item, l, r float64) (float64, error) {
	switch op.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, &DivisionByZeroError{Op: "/", X: l}
		}
		return l / r, nil
	case '%':
		if r == 0 {
			return 0, &DivisionByZeroError{Op: "%", X: l}
		}
		return math.Mod(l, r), nil
	case '^':
		return math.Pow(l, r), nil
	case ':':
		// The zeroth root is 1 by convention.
		if r == 0 {
			return 1, nil
		}
		return math.Pow(l, 1/r), nil
	default:
		return 0, &OperatorError{Col: op.pos, Operator: string(op.op)}
	}
}

// resolve finds the value of a name.
func (ev *evaluation) resolve(name string) (float64, error) {
	if v, ok := parseNum(name); ok {
		return v, nil
	}
	if v, ok := constants[name]; ok {
		return v, nil
	}
	if v, ok := ev.vars[name]; ok {
		return v, nil
	}
	if i, ok := refIndex(name); ok && i < len(ev.refs) {
		return ev.refs[i], nil
	}
	if e := ev.reg.Get(name); e != nil {
		return ev.nested(name, e)
	}
	fname, arg, ok := strings.Cut(name, string(RefPrefix))
	if ok {
		if fn := globalfuncs[fname]; fn != nil {
			x, err := ev.resolve(string(RefPrefix) + arg)
			if err != nil {
				return 0, err
			}
			return fn(x), nil
		}
		if fname != "" {
			name = fname
		}
	}
	return 0, &NameError{Name: name, Suggestions: ev.suggest(name)}
}

// nested evaluates a registered equation used by this one.
func (ev *evaluation) nested(name string, e *Equation) (float64, error) {
	for i, c := range ev.chain {
		if c == e {
			names := make([]string, 0, len(ev.chain)-i+1)
			for _, c := range ev.chain[i:] {
				names = append(names, c.label())
			}
			return 0, &CycleError{Chain: append(names, name)}
		}
	}
	return e.eval(ev.vars, ev.chain)
}

// label is the name of e, or its text in brackets if it has none.
func (e *Equation) label() string {
	if e.name != "" {
		return e.name
	}
	return "(" + e.Text() + ")"
}

// maxSuggestions is the most names a NameError suggests.
const maxSuggestions = 3

// suggest finds names that could have been meant instead of name.
func (ev *evaluation) suggest(name string) []string {
	cands := make([]string, 0, len(constants)+len(globalfuncs)+len(ev.vars))
	cands = append(cands, Constants()...)
	cands = append(cands, Funcs()...)
	cands = append(cands, sortedKeys(ev.vars)...)
	cands = append(cands, ev.reg.Names()...)
	var r []string
	for _, m := range fuzzy.Find(name, cands) {
		r = append(r, m.Str)
		if len(r) == maxSuggestions {
			break
		}
	}
	return r
}

// NameError is an error from a lookup for a name that is not a number,
// constant, variable, reference, registered equation, or function.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Suggestions are similar names that would have resolved, best first.
	Suggestions []string
}

func (err *NameError) Error() string {
	r := "undefined name: " + strconv.Quote(err.Name)
	if len(err.Suggestions) > 0 {
		r += " (did you mean " + strings.Join(err.Suggestions, ", ") + "?)"
	}
	return r
}

// DivisionByZeroError is an error from dividing by or taking the remainder
// modulo exactly zero.
type DivisionByZeroError struct {
	// Op is the operator, "/" or "%".
	Op string
	// X is the dividend.
	X float64
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.X, 'g', -1, 64) + " " + err.Op + " 0"
}

// OperatorError is an error indicating an operator that the evaluator does not
// know how to apply.
type OperatorError struct {
	// Col is the position of the operator within its part.
	Col int
	// Operator is the operator that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

// CycleError is an error from registered equations that use each other, so
// that evaluating one would never finish.
type CycleError struct {
	// Chain is the names of the equations in the cycle, starting and ending
	// with the same one.
	Chain []string
}

func (err *CycleError) Error() string {
	return "cyclic reference: " + strings.Join(err.Chain, " -> ")
}
