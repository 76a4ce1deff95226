package equations

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validate checks the bracketing of an equation's text. A close bracket with
// no open bracket before it, an open bracket that is never closed, and a
// bracket pair with nothing inside are all errors, reported at the column of
// the offending bracket. Text with nothing but whitespace is also an error.
func Validate(raw string) error {
	type open struct {
		col  int
		full bool
	}
	var stack []open
	col := 0
	content := false
	for _, r := range raw {
		col++
		switch {
		case r == '(':
			stack = append(stack, open{col: col})
		case r == ')':
			if len(stack) == 0 {
				return &BracketError{Col: col, Right: ")"}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.full {
				return &EmptyExpressionError{Col: col, End: ")"}
			}
			if len(stack) > 0 {
				stack[len(stack)-1].full = true
			}
		case unicode.IsSpace(r):
			// do nothing
		default:
			content = true
			if len(stack) > 0 {
				stack[len(stack)-1].full = true
			}
		}
	}
	if len(stack) > 0 {
		return &BracketError{Col: stack[0].col, Left: "("}
	}
	if !content {
		return &EmptyExpressionError{Col: col + 1}
	}
	return nil
}

// Normalize validates raw and rewrites it into canonical form: whitespace
// removed, runs of signs combined, every operator surrounded by single spaces
// unless escaped, and implicit multiplications written out, so that
// "2x+-y" becomes "2 * x - y".
func Normalize(raw string) (string, error) {
	if err := Validate(raw); err != nil {
		return "", err
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	s = collapseSigns(s)
	s = spaceOperators(s)
	s = strings.Join(strings.Fields(s), " ")
	return implicitMul(s), nil
}

// collapseSigns replaces each run of + and - with the single sign it amounts
// to: + if the run has an even number of minuses, - otherwise.
func collapseSigns(s string) string {
	if !strings.Contains(s, "+-") && !strings.Contains(s, "-+") &&
		!strings.Contains(s, "++") && !strings.Contains(s, "--") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '+' && s[i] != '-' {
			b.WriteByte(s[i])
			i++
			continue
		}
		neg := false
		for ; i < len(s) && (s[i] == '+' || s[i] == '-'); i++ {
			neg = neg != (s[i] == '-')
		}
		if neg {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
	}
	return b.String()
}

// spaceOperators puts a space on each side of every operator that does not
// directly follow Escape.
func spaceOperators(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	prev := rune(0)
	for _, r := range s {
		if isOperator(r) && prev != Escape {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// implicitMul inserts " * " after a number that is directly followed, or
// followed after one space, by a reference, an open bracket, or a letter.
// Digits inside names, as in log10 or x2, are not numbers.
func implicitMul(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inName := false
	for i := 0; i < len(s); {
		c := s[i]
		if inName || !(isDigit(c) || c == '.') {
			inName = isNameByte(c)
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
			j++
		}
		b.WriteString(s[i:j])
		i = j
		k := j
		if k < len(s) && s[k] == ' ' {
			k++
		}
		if k < len(s) && (s[k] == RefPrefix || s[k] == '(' || isLetter(s[k])) {
			b.WriteString(" * ")
			i = k
		}
	}
	return b.String()
}

// isNameByte reports whether c continues a name, so that a digit after it is
// part of the name rather than the start of a number. Bytes of multi-byte
// runes count as letters.
func isNameByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == Escape || c == RefPrefix || c >= utf8.RuneSelf
}
