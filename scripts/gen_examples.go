// Command gen_examples regenerates tinyscript/scenarios_golden_test.go by
// running every testdata/*.ts example through a fresh interpreter and
// recording its completion code and top-level return value. A bounded,
// context-cancellable errgroup.Group fans out one goroutine per input
// file.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/tinyscript"
	"github.com/jcorbin/tinyscript/mathlib"
)

func main() {
	outPath := flag.String("out", "scenarios_golden_test.go", "output file")
	testdataDir := flag.String("testdata", "testdata", "directory of *.ts example scripts")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, *testdataDir, *outPath); err != nil {
		log.Fatalln(err)
	}
}

type result struct {
	name  string
	err   tinyscript.Err
	value tinyscript.Value
}

func run(ctx context.Context, testdataDir, outPath string) error {
	names, err := filepath.Glob(filepath.Join(testdataDir, "*.ts"))
	if err != nil {
		return err
	}
	sort.Strings(names)

	eg, ctx := errgroup.WithContext(ctx)
	results := make([]result, len(names))
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := ioutil.ReadFile(name)
			if err != nil {
				return err
			}
			res, err := runExample(filepath.Base(name), string(src))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("package tinyscript_test\n\n")
	buf.WriteString("// Code generated by scripts/gen_examples.go; DO NOT EDIT.\n\n")
	buf.WriteString("import \"github.com/jcorbin/tinyscript\"\n\n")
	buf.WriteString("var goldenScenarios = map[string]struct {\n")
	buf.WriteString("\twantErr   tinyscript.Err\n")
	buf.WriteString("\twantValue tinyscript.Value\n")
	buf.WriteString("}{\n")
	for _, r := range results {
		fmt.Fprintf(&buf, "\t%q: {wantErr: %d, wantValue: %d},\n", r.name, r.err, r.value)
	}
	buf.WriteString("}\n")

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	gofmt := exec.CommandContext(ctx, "gofmt")
	gofmt.Stdin = &buf
	gofmt.Stdout = out
	gofmt.Stderr = os.Stderr
	return gofmt.Run()
}

// runExample executes one testdata script the same way cmd/tinyscript's
// registerHostFuncs does, so golden values reflect the full host
// surface (math library, dsqr, @) that testdata/08 and 09 exercise.
func runExample(name, src string) (result, error) {
	it := tinyscript.New()
	if err := mathlib.Register(it); err != tinyscript.OK {
		return result{}, fmt.Errorf("%v: math library registration failed: %v", name, err)
	}
	dsqr := func(x, y, _, _ tinyscript.Value) tinyscript.Value { return x*x + y*y }
	absAdd := func(l, r tinyscript.Value) tinyscript.Value {
		if l < 0 {
			l = -l
		}
		if r < 0 {
			r = -r
		}
		return l + r
	}
	if err := it.DefineCFunction("dsqr", 2, dsqr); err != tinyscript.OK {
		return result{}, fmt.Errorf("%v: dsqr registration failed: %v", name, err)
	}
	if err := it.DefineOperator("@", 3, absAdd); err != tinyscript.OK {
		return result{}, fmt.Errorf("%v: @ registration failed: %v", name, err)
	}

	var code tinyscript.Err
	if err := it.RunMain(src); err != nil {
		if e, ok := err.(tinyscript.Err); ok {
			code = e
		} else {
			return result{}, fmt.Errorf("%v: %w", name, err)
		}
	}
	return result{name: name, err: code, value: it.ReturnValue()}, nil
}
