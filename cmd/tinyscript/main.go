/*
Command tinyscript is an example CLI host built entirely as an external
collaborator of the interpreter package: it wires the host-side
inchar/outchar functions, a dsqr test function and an @ test operator
(mirroring original_source/main.c's funcdefs table), an arena-size
flag, a Stop()-via-timeout flag, trace logging, and a REPL fallback
when no script file is given.

None of this is part of the tested interpreter core; it is ambient
scaffolding around it, the same relationship gothird's own main.go has
to its vm package.
*/
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jcorbin/tinyscript"
	"github.com/jcorbin/tinyscript/internal/fileinput"
	"github.com/jcorbin/tinyscript/internal/flushio"
	"github.com/jcorbin/tinyscript/internal/logio"
	"github.com/jcorbin/tinyscript/internal/runeio"
	"github.com/jcorbin/tinyscript/mathlib"
)

func main() {
	var (
		arenaSize uint
		timeout   time.Duration
		trace     bool
	)
	flag.UintVar(&arenaSize, "arena-size", uint(tinyscript.DefaultArenaSize), "interpreter arena size in cells")
	flag.DurationVar(&timeout, "timeout", 0, "stop a running script after this long")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout != 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	opts := []tinyscript.InterpOption{
		tinyscript.WithArenaSize(int(arenaSize)),
		tinyscript.WithStop(func() bool { return ctx.Err() != nil }),
	}
	if trace {
		opts = append(opts, tinyscript.WithLogf(log.Leveledf("TRACE")))
	}
	it := tinyscript.New(opts...)

	if err := mathlib.Register(it); err != tinyscript.OK {
		log.Errorf("math library registration failed: %v", err)
		return
	}
	if err := registerHostFuncs(it, os.Stdin, os.Stdout); err != tinyscript.OK {
		log.Errorf("host function registration failed: %v", err)
		return
	}

	args := flag.Args()
	switch len(args) {
	case 0:
		repl(it, &log)
	case 1:
		runFile(it, &log, args[0])
	default:
		log.Errorf("usage: tinyscript [file]")
	}
}

// runFile loads an entire script file and runs it as a top-level
// program via RunMain, matching original_source/main.c's runscript:
// the whole file is read up front since the lexer scans a complete
// in-memory buffer, never an incremental stream.
func runFile(it *tinyscript.Interp, log *logio.Logger, name string) {
	src, err := os.ReadFile(name)
	if err != nil {
		log.Errorf("%v: %v", name, err)
		return
	}
	if err := it.RunMain(string(src)); err != nil {
		log.Errorf("script error: %v", err)
	}
}

// repl is the fgets-based fallback original_source/main.c's REPL
// drops to without linenoise: one line at a time, each evaluated as
// its own top-level script via Eval. Lines are read through
// internal/fileinput.Input rather than a bare bufio.Scanner so that a
// parse error can report the originating line location, the same
// tracking gothird's own main kernel input relies on.
func repl(it *tinyscript.Interp, log *logio.Logger) {
	in := &fileinput.Input{Queue: []io.Reader{os.Stdin}}
	for {
		os.Stderr.WriteString("ts> ")
		line, loc, ok := readLine(in)
		if !ok {
			return
		}
		if err := it.Eval(line); err != nil {
			log.Printf("ERROR", "%v: %v", loc, err)
			continue
		}
		log.Printf("", "=> %v", it.ReturnValue())
	}
}

// readLine accumulates runes from in up to (and consuming) the next
// newline, returning ok=false only once in is fully exhausted with
// nothing left to return.
func readLine(in *fileinput.Input) (line string, loc fileinput.Location, ok bool) {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return sb.String(), in.Scan.Location, sb.Len() > 0
		}
		if r == '\n' {
			return sb.String(), in.Last.Location, true
		}
		sb.WriteRune(r)
	}
}

// registerHostFuncs installs inchar/outchar, plus dsqr and @ exactly as
// original_source/main.c's funcdefs table does, exercising
// DefineCFunction/DefineOperator from a real host.
func registerHostFuncs(it *tinyscript.Interp, in *os.File, out *os.File) tinyscript.Err {
	rr := runeio.NewReader(in)
	wf := flushio.NewWriteFlusher(out)

	inchar := func(_, _, _, _ tinyscript.Value) tinyscript.Value {
		r, _, err := rr.ReadRune()
		if err != nil {
			return -1
		}
		return tinyscript.Value(r)
	}
	outchar := func(c, _, _, _ tinyscript.Value) tinyscript.Value {
		runeio.WriteANSIRune(wf, rune(c.AsInt()))
		wf.Flush()
		return 0
	}
	dsqr := func(x, y, _, _ tinyscript.Value) tinyscript.Value {
		return x*x + y*y
	}
	absAdd := func(l, r tinyscript.Value) tinyscript.Value {
		return absValue(l) + absValue(r)
	}

	if err := it.DefineCFunction("inchar", 0, inchar); err != tinyscript.OK {
		return err
	}
	if err := it.DefineCFunction("outchar", 1, outchar); err != tinyscript.OK {
		return err
	}
	if err := it.DefineCFunction("dsqr", 2, dsqr); err != tinyscript.OK {
		return err
	}
	return it.DefineOperator("@", 3, absAdd)
}

func absValue(v tinyscript.Value) tinyscript.Value {
	if v < 0 {
		return -v
	}
	return v
}
