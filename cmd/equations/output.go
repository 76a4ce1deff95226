package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/equations"
)

// printer writes results, errors, and echoed equations.
type printer struct {
	w    io.Writer
	verb string

	color  bool
	ok     lipgloss.Style
	bad    lipgloss.Style
	detail lipgloss.Style
}

func newPrinter(w io.Writer, verb string, color bool) *printer {
	return &printer{
		w:      w,
		verb:   verb,
		color:  color,
		ok:     lipgloss.NewStyle().Bold(true),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		detail: lipgloss.NewStyle().Faint(true),
	}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) result(r float64) {
	fmt.Fprintln(p.w, p.style(p.ok, fmt.Sprintf(p.verb, r)))
}

func (p *printer) err(err error) {
	fmt.Fprintln(p.w, p.style(p.bad, err.Error()))
}

// echo prints the canonical text of e and its parts.
func (p *printer) echo(e *equations.Equation) {
	parts := e.Parts()
	for i, s := range parts {
		parts[i] = fmt.Sprintf("$%d = %s", i, s)
	}
	fmt.Fprintln(p.w, p.style(p.detail, e.Text()+" : "+strings.Join(parts, "; ")))
}
