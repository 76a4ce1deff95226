package equations

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// num is the value of a tokenNum.
	num float64
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is anything else that stands for a value: a variable, a
	// constant, a reference to an earlier part, a registered equation, or a
	// function applied to a reference.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the characters which are considered to be operators.
// "^" is exponentiation and ":" is the root, so that "8 : 3" is 2.
const Operators = "+-*/^%:"

// Escape placed directly before an operator character makes that character
// part of the surrounding name instead, so "a_-b" is one variable.
const Escape = '_'

// RefPrefix begins the name of a reference to an earlier part of an equation.
const RefPrefix = '$'

// lexPart splits one bracket-free part into tokens. Parts are produced by
// Normalize and Decompose, so every operator is already surrounded by spaces.
func lexPart(part string) []lexToken {
	var toks []lexToken
	col := 1
	for len(part) > 0 {
		if part[0] == ' ' {
			part = part[1:]
			col++
			continue
		}
		n := strings.IndexByte(part, ' ')
		if n < 0 {
			n = len(part)
		}
		text := part[:n]
		tok := lexToken{text: text, kind: tokenIdent, pos: col}
		switch {
		case len(text) == 1 && strings.IndexByte(Operators, text[0]) >= 0:
			tok.kind = tokenOp
		default:
			if v, ok := parseNum(text); ok {
				tok.kind = tokenNum
				tok.num = v
			}
		}
		toks = append(toks, tok)
		part = part[n:]
		col += utf8.RuneCountInString(text)
	}
	return toks
}

// parseNum parses a numeric literal. Only decimal forms starting with a digit
// or a point are literals, so names like inf and NaN remain names.
func parseNum(s string) (float64, bool) {
	if s == "" || !(isDigit(s[0]) || s[0] == '.') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range literals are still numbers; ParseFloat gives ±Inf.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// refName formats the reference token for part i.
func refName(i int) string {
	return string(RefPrefix) + strconv.Itoa(i)
}

// refIndex parses a reference token. The index must be written exactly as
// refName would write it.
func refIndex(s string) (int, bool) {
	if len(s) < 2 || s[0] != RefPrefix {
		return 0, false
	}
	i, err := strconv.Atoi(s[1:])
	if err != nil || i < 0 || refName(i) != s {
		return 0, false
	}
	return i, true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isOperator(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(Operators, byte(r)) >= 0
}
