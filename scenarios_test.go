package tinyscript_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tinyscript"
	"github.com/jcorbin/tinyscript/mathlib"
)

// TestScenarios runs every testdata/*.ts example through a fresh
// interpreter -- wired with the same math library, dsqr, and @
// extensions cmd/tinyscript registers -- and checks its completion
// code and ReturnValue against goldenScenarios, generated by scripts/gen_examples.go.
func TestScenarios(t *testing.T) {
	names, err := filepath.Glob("testdata/*.ts")
	require.NoError(t, err)
	require.NotEmpty(t, names, "expected at least one testdata/*.ts example")

	for _, name := range names {
		name := name
		base := filepath.Base(name)
		t.Run(base, func(t *testing.T) {
			want, ok := goldenScenarios[base]
			require.True(t, ok, "no golden entry for %v -- run scripts/gen_examples.go", base)

			src, err := os.ReadFile(name)
			require.NoError(t, err)

			it := newScenarioInterp(t)
			runErr := it.RunMain(string(src))

			var gotErr tinyscript.Err
			if runErr != nil {
				gotErr, ok = runErr.(tinyscript.Err)
				require.True(t, ok, "unexpected non-Err failure: %v", runErr)
			}
			assert.Equal(t, want.wantErr, gotErr)
			assert.Equal(t, want.wantValue, it.ReturnValue())
		})
	}
}

func newScenarioInterp(t *testing.T) *tinyscript.Interp {
	t.Helper()
	it := tinyscript.New()
	require.Equal(t, tinyscript.OK, mathlib.Register(it))
	require.Equal(t, tinyscript.OK, it.DefineCFunction("dsqr", 2,
		func(x, y, _, _ tinyscript.Value) tinyscript.Value { return x*x + y*y }))
	require.Equal(t, tinyscript.OK, it.DefineOperator("@", 3,
		func(l, r tinyscript.Value) tinyscript.Value {
			if l < 0 {
				l = -l
			}
			if r < 0 {
				r = -r
			}
			return l + r
		}))
	return it
}
