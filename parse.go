package equations

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Equation is a parsed equation that can be evaluated for any number of
// variable mappings. It is safe to evaluate an equation concurrently, including
// while another goroutine calls SetText.
type Equation struct {
	mu sync.RWMutex
	// raw is the text as given.
	raw string
	// text is the canonical text.
	text string
	// parts are the bracket-free subexpressions, in evaluation order. The
	// slice is replaced, never modified, so evaluation can hold on to it
	// without the lock.
	parts []part

	name string
	reg  *Registry
}

// part is one bracket-free subexpression. References in it only name parts
// before it.
type part struct {
	text string
	toks []lexToken
}

// New parses an equation. The given options are applied in order. If the
// options name the equation, it is registered once it has parsed
// successfully.
func New(text string, opts ...ParseOption) (*Equation, error) {
	p := parsectx{reg: Default}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	canon, parts, err := compile(text)
	if err != nil {
		return nil, err
	}
	e := &Equation{
		raw:   text,
		text:  canon,
		parts: parts,
		name:  p.name,
		reg:   p.reg,
	}
	if e.name != "" && e.reg != nil {
		e.reg.Set(e.name, e)
	}
	return e, nil
}

// Get returns the equation registered under name in the Default registry, or
// nil if there is none.
func Get(name string) *Equation {
	return Default.Get(name)
}

// compile normalizes and decomposes an equation's text.
func compile(text string) (string, []part, error) {
	canon, err := Normalize(text)
	if err != nil {
		return "", nil, err
	}
	strs, err := Decompose(canon)
	if err != nil {
		return "", nil, err
	}
	parts := make([]part, len(strs))
	for i, s := range strs {
		parts[i] = part{text: s, toks: lexPart(s)}
	}
	return canon, parts, nil
}

// Decompose breaks canonical equation text into bracket-free parts. Each time
// through, the left-most innermost bracketed group becomes the next part and
// is replaced in the text by a reference to it, "$0" for the first part and so
// on. The whole text is treated as one more group, so the last part always
// stands for the entire equation.
func Decompose(canonical string) ([]string, error) {
	s := "(" + canonical + ")"
	var parts []string
	for {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			break
		}
		start := strings.LastIndexByte(s[:end], '(')
		if start < 0 {
			return nil, &BracketError{Col: utf8.RuneCountInString(s[:end]), Right: ")"}
		}
		inner := strings.TrimSpace(s[start+1 : end])
		if inner == "" {
			return nil, &EmptyExpressionError{Col: utf8.RuneCountInString(s[:end]), End: ")"}
		}
		parts = append(parts, inner)
		s = s[:start] + refName(len(parts)-1) + s[end+1:]
	}
	if k := strings.IndexByte(s, '('); k >= 0 {
		return nil, &BracketError{Col: utf8.RuneCountInString(s[:k]) + 1, Left: "("}
	}
	return parts, nil
}

// Text returns the canonical text of the equation.
func (e *Equation) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// SetText parses new text for the equation, replacing all of its parts. If the
// text does not parse, the equation is left unchanged. The equation keeps its
// name and registry.
func (e *Equation) SetText(text string) error {
	canon, parts, err := compile(text)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.raw, e.text, e.parts = text, canon, parts
	e.mu.Unlock()
	return nil
}

// Raw returns the text the equation was last parsed from.
func (e *Equation) Raw() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.raw
}

// Name returns the name the equation is registered under, or the empty string
// if it is unnamed.
func (e *Equation) Name() string {
	return e.name
}

// Parts returns the bracket-free parts of the equation in evaluation order.
func (e *Equation) Parts() []string {
	e.mu.RLock()
	parts := e.parts
	e.mu.RUnlock()
	r := make([]string, len(parts))
	for i, p := range parts {
		r[i] = p.text
	}
	return r
}

// Vars returns the sorted names used by the equation which are not numbers,
// constants, references to its own parts, or function calls. These must be
// supplied as variables or resolve to registered equations when evaluating.
func (e *Equation) Vars() []string {
	e.mu.RLock()
	parts := e.parts
	e.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, p := range parts {
		for _, tok := range p.toks {
			if tok.kind != tokenIdent {
				continue
			}
			name := tok.text
			if _, ok := constants[name]; ok {
				continue
			}
			if _, ok := refIndex(name); ok {
				continue
			}
			if fname, _, ok := strings.Cut(name, string(RefPrefix)); ok {
				if _, ok := globalfuncs[fname]; ok {
					continue
				}
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// String returns the canonical text of the equation.
func (e *Equation) String() string {
	return e.Text()
}
