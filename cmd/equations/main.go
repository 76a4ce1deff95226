package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/equations"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// CLI is the command line of the equations calculator.
type CLI struct {
	Log     logConfig     `embed:"" group:"log"     prefix:"log-"`
	Profile profileConfig `embed:"" group:"profile" prefix:"profile-"`

	In    string   `help:"Input file, '-' for stdin (default stdin if no expressions are given)." placeholder:"FILE" short:"i"`
	Defs  []string `help:"YAML or TOML file of named equations and variables." placeholder:"FILE" short:"d"`
	Given []string `help:"NAME=VALUE variable definition (any number of times). VALUE may be an expression." placeholder:"NAME=VALUE" short:"g"`
	Lines bool     `help:"Parse separate input lines as separate expressions." short:"n"`
	Fmt   string   `default:"%g" help:"Result formatting verb."`
	Echo  bool     `help:"Print canonical text and parts before each result."`
	Color bool     `help:"Colorize output."`

	Exprs []string `arg:"" help:"Expressions to evaluate. Put -- before expressions that start with a minus." optional:""`
}

// errFailed is returned when any expression failed to evaluate.
var errFailed = errors.New("some expressions failed")

// run parses args and evaluates every expression they name.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("equations"),
		kong.Description("Evaluate arithmetic equations with variables and named cross-references."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Profile.group()}),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	log := cli.Log.logger(stderr)
	slog.SetDefault(log)
	defer cli.Profile.start(ctx, log)()
	return cli.eval(ctx, log, stdin, stdout)
}

func (c *CLI) eval(ctx context.Context, log *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	reg := equations.NewRegistry()
	vars := make(map[string]float64)
	for _, file := range c.Defs {
		d, err := loadDefs(file)
		if err != nil {
			return err
		}
		if err := d.register(reg, vars); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		log.DebugContext(ctx, "loaded definitions",
			slog.String("file", file),
			slog.Int("equations", len(d.Equations)),
			slog.Int("vars", len(d.Vars)),
		)
	}
	for _, g := range c.Given {
		name, val, err := splitGiven(g)
		if err != nil {
			return err
		}
		e, err := equations.New(val, equations.In(reg))
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		r, err := e.Evaluate(vars)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		vars[name] = r
	}

	srcs, err := c.sources(stdin)
	if err != nil {
		return err
	}
	out := newPrinter(stdout, c.Fmt, c.Color)
	failed := false
	for _, src := range srcs {
		log.DebugContext(ctx, "evaluating", slog.String("expr", src))
		e, err := equations.New(src, equations.In(reg))
		if err != nil {
			out.err(err)
			failed = true
			continue
		}
		if c.Echo {
			out.echo(e)
		}
		r, err := e.Evaluate(vars)
		if err != nil {
			out.err(err)
			failed = true
			continue
		}
		out.result(r)
	}
	if failed {
		return errFailed
	}
	return nil
}

// sources collects the expression texts to evaluate, from the input file
// first and then from arguments.
func (c *CLI) sources(stdin io.Reader) ([]string, error) {
	var srcs []string
	var in io.Reader
	switch {
	case c.In != "" && c.In != "-":
		f, err := os.Open(c.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	case c.In == "-", len(c.Exprs) == 0:
		in = stdin
	}
	if in != nil {
		if c.Lines {
			sc := bufio.NewScanner(in)
			for sc.Scan() {
				if line := strings.TrimSpace(sc.Text()); line != "" {
					srcs = append(srcs, line)
				}
			}
			if err := sc.Err(); err != nil {
				return nil, err
			}
		} else {
			b, err := io.ReadAll(in)
			if err != nil {
				return nil, err
			}
			if s := strings.TrimSpace(string(b)); s != "" {
				srcs = append(srcs, s)
			}
		}
	}
	return append(srcs, c.Exprs...), nil
}

// splitGiven splits a NAME=VALUE definition.
func splitGiven(s string) (name, val string, err error) {
	name, val, ok := strings.Cut(s, "=")
	name, val = strings.TrimSpace(name), strings.TrimSpace(val)
	if !ok || name == "" {
		return "", "", fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	return name, val, nil
}
