package equations_test

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/zephyrtronium/equations"
)

func TestDecompose(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		parts []string
	}{
		{"flat", "1 + 2", []string{"1 + 2"}},
		{"paren", "(1 + 2) * 4", []string{"1 + 2", "$0 * 4"}},
		{"nested", "((x))", []string{"x", "$0", "$1"}},
		{"siblings", "(a) + (b)", []string{"a", "b", "$0 + $1"}},
		{"order", "(a + (b)) * (c)", []string{"b", "a + $0", "c", "$1 * $2"}},
		{"call", "sin(x) + 1", []string{"x", "sin$0 + 1"}},
		{"callcall", "sin(cos(x))", []string{"x", "cos$0", "sin$1"}},
		{"trim", "( - x)", []string{"- x", "$0"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parts, err := equations.Decompose(c.src)
			if err != nil {
				t.Fatalf("%q failed to decompose: %v", c.src, err)
			}
			if !reflect.DeepEqual(parts, c.parts) {
				t.Errorf("%q decomposed wrong:\n\twant %q\n\tgot  %q", c.src, c.parts, parts)
			}
		})
	}
}

func TestDecomposeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"extra-close", "1)"},
		{"unclosed", "(1"},
		{"empty", "1 * ()"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parts, err := equations.Decompose(c.src)
			if err == nil {
				t.Fatalf("%q decomposed to %q", c.src, parts)
			}
			if _, ok := err.(equations.InputError); !ok {
				t.Errorf("%#v is not an InputError", err)
			}
		})
	}
}

// TestDecomposeReconstructs checks that substituting each part back into the
// parts that reference it gives back the canonical text.
func TestDecomposeReconstructs(t *testing.T) {
	cases := []string{
		"1 + 2",
		"(1 + 2) * 3",
		"2 * (x - (y + 1)) / (z)",
		"sin(cos(x) + (2 ^ (y)))",
		"((((a))))",
		"(a) * (b) * (c) * ((d) + (e))",
	}
	for _, src := range cases {
		parts, err := equations.Decompose(src)
		if err != nil {
			t.Errorf("%q failed to decompose: %v", src, err)
			continue
		}
		built := make([]string, len(parts))
		for i, p := range parts {
			// Replace higher references first so $1 doesn't clobber $10.
			for j := i - 1; j >= 0; j-- {
				p = strings.ReplaceAll(p, "$"+strconv.Itoa(j), "("+built[j]+")")
			}
			built[i] = p
		}
		if got := built[len(built)-1]; got != src {
			t.Errorf("%q reconstructed as %q from %q", src, got, parts)
		}
	}
}

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		text  string
		parts []string
		vars  []string
	}{
		{"implicit", "2x", "2 * x", []string{"2 * x"}, []string{"x"}},
		{"mixed", "2x + sin($0) / y", "2 * x + sin($0) / y", []string{"$0", "2 * x + sin$0 / y"}, []string{"x", "y"}},
		{"consts", "PI * r ^ 2", "PI * r ^ 2", []string{"PI * r ^ 2"}, []string{"r"}},
		{"funcs", "sqrt(a) + abs(-b)", "sqrt(a) + abs( - b)", []string{"a", "- b", "sqrt$0 + abs$1"}, []string{"a", "b"}},
		{"reuse", "a + b + a", "a + b + a", []string{"a + b + a"}, []string{"a", "b"}},
		{"unknown-func", "foo(x)", "foo(x)", []string{"x", "foo$0"}, []string{"foo$0", "x"}},
	}
	reg := equations.NewRegistry()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := equations.New(c.src, equations.In(reg))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := e.Text(); got != c.text {
				t.Errorf("%q has wrong text: want %q, got %q", c.src, c.text, got)
			}
			if got := e.String(); got != c.text {
				t.Errorf("%q has wrong String: want %q, got %q", c.src, c.text, got)
			}
			if got := e.Raw(); got != c.src {
				t.Errorf("%q has wrong raw text %q", c.src, got)
			}
			if got := e.Parts(); !reflect.DeepEqual(got, c.parts) {
				t.Errorf("%q has wrong parts:\n\twant %q\n\tgot  %q", c.src, c.parts, got)
			}
			if got := e.Vars(); !reflect.DeepEqual(got, c.vars) {
				t.Errorf("%q has wrong vars:\n\twant %q\n\tgot  %q", c.src, c.vars, got)
			}
		})
	}
	if names := reg.Names(); len(names) != 0 {
		t.Errorf("unnamed equations registered as %q", names)
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
	}{
		{"extra-close", "(1 + 2))", 8},
		{"unclosed", "sin(x", 4},
		{"empty", "", 1},
		{"empty-call", "sin()", 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg := equations.NewRegistry()
			e, err := equations.New(c.src, equations.Named("bad"), equations.In(reg))
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, e)
			}
			if e != nil {
				t.Errorf("%q gave non-nil equation with error", c.src)
			}
			ie, ok := err.(equations.InputError)
			if !ok {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: wrong column: want %d, got %d", c.src, c.col, ie.Pos())
			}
			if reg.Get("bad") != nil {
				t.Errorf("%q registered despite error", c.src)
			}
		})
	}
}

func TestSetText(t *testing.T) {
	reg := equations.NewRegistry()
	e, err := equations.New("(x + 1) * 2", equations.Named("f"), equations.In(reg))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetText("x - 1"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if got, want := e.Parts(), []string{"x - 1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("parts not replaced: want %q, got %q", want, got)
	}
	if got := e.Text(); got != "x - 1" {
		t.Errorf("wrong text after SetText: %q", got)
	}
	if reg.Get("f") != e {
		t.Errorf("equation lost its registration")
	}
	if err := e.SetText("x)"); err == nil {
		t.Errorf("SetText accepted bad text")
	}
	if got := e.Text(); got != "x - 1" {
		t.Errorf("failed SetText changed text to %q", got)
	}
	r, err := e.Evaluate(map[string]float64{"x": 5})
	if err != nil {
		t.Fatal(err)
	}
	if r != 4 {
		t.Errorf("wrong result after SetText: want 4, got %g", r)
	}
}
