package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

func main() {
	log.SetFlags(0)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	var (
		inname string
		with   [][2]string
		echo   bool
		prec   uint
		exact  bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.Func("given", "name=value definition (any number of times)", addwith)
	flag.UintVar(&prec, "p", cfg.Precision, "significant digits to display")
	flag.BoolVar(&exact, "exact", cfg.Exact, "display recognized fractions and multiples of pi exactly")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()
	if prec == 0 {
		log.Fatal("precision must be positive")
	}

	lg, err := logging.New(logging.Config{
		Level:       cfg.Level,
		Development: cfg.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer lg.Sync()

	opts := []calc.Option{calc.Precision(prec), calc.Exact(exact), calc.Logger(lg)}
	for _, d := range with {
		v, err := calc.EvalString(d[1], calc.Precision(prec), calc.Exact(exact))
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		opts = append(opts, calc.SetVar(d[0], v))
	}
	c := calc.New(opts...)

	r := repl{c: c, out: os.Stdout, echo: echo}
	for _, arg := range flag.Args() {
		if r.run(arg) {
			return
		}
	}
	f, interactive, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f == nil {
		return
	}
	defer f.Close()
	r.prompt = interactive
	if err := r.loop(f); err != nil {
		log.Fatal(err)
	}
}

// repl evaluates commands one line at a time.
type repl struct {
	c      *calc.Calculator
	out    io.Writer
	echo   bool
	prompt bool
}

// loop runs each line of in until the input ends or a command quits.
func (r *repl) loop(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		if r.prompt {
			fmt.Fprint(r.out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if r.run(line) {
			return nil
		}
	}
}

// run evaluates one command and reports whether it asked to quit.
func (r *repl) run(src string) bool {
	cmd, err := calc.ParseString(src)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return false
	}
	if r.echo {
		fmt.Fprintf(r.out, "%v : ", cmd)
	}
	v, err := r.c.Run(cmd)
	switch {
	case errors.Is(err, calc.ErrQuit):
		fmt.Fprintln(r.out, "Bye!")
		return true
	case err != nil:
		fmt.Fprintln(r.out, err)
		return false
	}
	fmt.Fprintln(r.out, "= "+r.c.Format(v))
	return false
}

// infile opens the input. The result is interactive when it is a terminal.
func infile(inname string, std bool) (io.ReadCloser, bool, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		return f, false, err
	case inname == "-", std:
		return io.NopCloser(os.Stdin), isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()), nil
	}
	return nil, false, nil
}
