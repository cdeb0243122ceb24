/*
Package mathlib is a pure client of tinyscript's host-bridge API: it
registers a fixed table of float32 constants and one-/two-argument
wrappers around Go's math package, as an optional floating-point math
library built entirely as an external collaborator rather than part of
the interpreter's core.

Every value crosses the bridge through tinyscript.Value's float32
bit-punning accessors -- mathlib never sees an interpreter Value as
anything but a float32 in, a float32 out.
*/
package mathlib

import (
	"math"

	"github.com/jcorbin/tinyscript"
)

// constants reproduces tinyscript_math.c's magic-number table: every
// entry is defined as a plain INT symbol carrying a float32 bit
// pattern, the same way the C original folds a FloatVal union into a
// Val before calling TinyScript_Define.
var constants = []struct {
	name  string
	value float32
}{
	{"M_E", math.E},
	{"M_LOG2E", math.Log2E},
	{"M_LOG10E", math.Log10E},
	{"M_LN2", math.Ln2},
	{"M_LN10", math.Ln10},
	{"M_PI", math.Pi},
	{"M_PI_2", math.Pi / 2},
	{"M_PI_4", math.Pi / 4},
	{"M_1_PI", 1 / math.Pi},
	{"M_2_PI", 2 / math.Pi},
	{"M_2_SQRTPI", 2 / math.SqrtPi},
	{"M_SQRT2", math.Sqrt2},
	{"M_SQRT1_2", math.Sqrt2 / 2},
}

// funcF1 wraps a one-argument float32 function as a CFunc, the Go
// analogue of tinyscript_math.c's FUNC_F_F macro.
func funcF1(f func(float32) float32) tinyscript.CFunc {
	return func(a, _, _, _ tinyscript.Value) tinyscript.Value {
		return tinyscript.ValueFromFloat32(f(a.AsFloat32()))
	}
}

// funcF2 wraps a two-argument float32 function as a CFunc, the Go
// analogue of tinyscript_math.c's FUNC_FF_F macro.
func funcF2(f func(float32, float32) float32) tinyscript.CFunc {
	return func(a, b, _, _ tinyscript.Value) tinyscript.Value {
		return tinyscript.ValueFromFloat32(f(a.AsFloat32(), b.AsFloat32()))
	}
}

// funcs is the one-/two-argument wrapper table, reproducing
// tinyscript_math.c's classification/rounding/remainder/delta/assorted
// groups in the same order. signbit is the one FUNC_F entry (float in,
// plain 0/1 Val out rather than another float) and is registered
// separately below.
var funcs = []struct {
	name  string
	arity int
	fn    tinyscript.CFunc
}{
	{"ceil", 1, funcF1(func(x float32) float32 { return float32(math.Ceil(float64(x))) })},
	{"floor", 1, funcF1(func(x float32) float32 { return float32(math.Floor(float64(x))) })},
	{"round", 1, funcF1(func(x float32) float32 { return float32(math.Round(float64(x))) })},
	{"trunc", 1, funcF1(func(x float32) float32 { return float32(math.Trunc(float64(x))) })},

	{"fmod", 2, funcF2(func(x, y float32) float32 { return float32(math.Mod(float64(x), float64(y))) })},
	{"remainder", 2, funcF2(func(x, y float32) float32 { return float32(math.Remainder(float64(x), float64(y))) })},

	{"fdim", 2, funcF2(func(x, y float32) float32 { return float32(math.Dim(float64(x), float64(y))) })},
	{"fmin", 2, funcF2(func(x, y float32) float32 { return float32(math.Min(float64(x), float64(y))) })},
	{"fmax", 2, funcF2(func(x, y float32) float32 { return float32(math.Max(float64(x), float64(y))) })},

	{"fabs", 1, funcF1(func(x float32) float32 { return float32(math.Abs(float64(x))) })},
	{"sqrt", 1, funcF1(func(x float32) float32 { return float32(math.Sqrt(float64(x))) })},
	{"pow", 2, funcF2(func(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) })},
}

// signbit is tinyscript_math.c's ts_signbit: a FUNC_F entry, meaning
// its result is the plain 0/1 int TinyScript_SignBit returns rather
// than another bit-punned float.
func signbit(a, _, _, _ tinyscript.Value) tinyscript.Value {
	if math.Signbit(float64(a.AsFloat32())) {
		return 1
	}
	return 0
}

// Register installs the full math library -- every constant and every
// wrapper function in mathlib.go's tables -- into it, returning the
// first error encountered (if any), matching ts_define_math_funcs's
// "err |= ..." accumulation but failing fast since tinyscript.Err
// values are not meaningfully OR-able.
func Register(it *tinyscript.Interp) tinyscript.Err {
	if err := it.DefineCFunction("signbit", 1, signbit); err != tinyscript.OK {
		return err
	}
	for _, fn := range funcs {
		if err := it.DefineCFunction(fn.name, fn.arity, fn.fn); err != tinyscript.OK {
			return err
		}
	}
	for _, c := range constants {
		if err := it.Define(c.name, tinyscript.ValueFromFloat32(c.value)); err != tinyscript.OK {
			return err
		}
	}
	return tinyscript.OK
}
