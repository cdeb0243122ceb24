package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunTopLevelRestoresArenaTop(t *testing.T) {
	it := New(WithArenaSize(256))
	before := it.arena.mark()

	err := it.Run("var x = 1\nvar y = 2\nreturn x+y", false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(3), it.ReturnValue())
	require.Equal(t, before, it.arena.mark(), "a top-level Run must leave the arena exactly as it found it")
}

func TestBlockScopingHidesInnerVar(t *testing.T) {
	it := New()
	err := it.Run(`
var x = 1
if (1) {
	var x = 2
}
return x
`, false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(1), it.ReturnValue(), "the inner var must not leak out of its block")
}

func TestWhileLoopReparsesConditionEachIteration(t *testing.T) {
	it := New()
	err := it.Run(`
var s = 0
var i = 0
while (i < 5) {
	s = s + i
	i = i + 1
}
return s
`, false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(10), it.ReturnValue())
}

func TestLeftAssociativity(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.Run("return 10 - 3 - 2", false, true))
	require.Equal(t, Value(5), it.ReturnValue())
}

func TestUnaryMinusAndNot(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.Run("var x = 5\nreturn -x", false, true))
	require.Equal(t, Value(-5), it.ReturnValue())

	it2 := New()
	require.Equal(t, OK, it2.Run("return !0", false, true))
	require.Equal(t, Value(1), it2.ReturnValue())
}

func TestTooManyArgs(t *testing.T) {
	it := New()
	err := it.Run(`
func f(a) { return a }
return f(1, 2)
`, false, true)
	require.Equal(t, TOOMANYARGS, err)
}

func TestDivisionByZeroIsBadArgs(t *testing.T) {
	it := New()
	err := it.Run("return 1/0", false, true)
	require.Equal(t, BADARGS, err)
}

func TestUnknownSymbol(t *testing.T) {
	it := New()
	err := it.Run("return nope", false, true)
	require.Equal(t, UNKNOWN_SYM, err)
}

func TestArrayOutOfBounds(t *testing.T) {
	it := New()
	err := it.Run("array a(2) = {1,2}\nreturn a(2)", false, true)
	require.Equal(t, OUTOFBOUNDS, err)
}

func TestArrayAssignment(t *testing.T) {
	it := New()
	err := it.Run(`
array a(3)
a(0) = 10
a(1) = a(0) + 1
return a(0) + a(1)
`, false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(21), it.ReturnValue())
}

func TestArraySupportCanBeDisabled(t *testing.T) {
	it := New(WithArraySupport(false))
	err := it.Run("array a(3)\nreturn 0", false, true)
	require.Equal(t, SYNTAX, err)
}

func TestStopHookAborts(t *testing.T) {
	stopped := false
	it := New(WithStop(func() bool { return stopped }))
	stopped = true
	err := it.Run("var x = 1\nreturn x", false, true)
	require.Equal(t, STOPPED, err)
}

func TestDefineSetGetRoundTrip(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.SetInt("counter", 41))
	v, err := it.GetInt("counter")
	require.Equal(t, OK, err)
	require.Equal(t, 41, v)

	require.Equal(t, OK, it.SetInt("counter", 42))
	v, err = it.GetInt("counter")
	require.Equal(t, OK, err)
	require.Equal(t, 42, v)
}

func TestFloatRoundTrip(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.SetFloat("pi", 3.5))
	f, err := it.GetFloat("pi")
	require.Equal(t, OK, err)
	require.Equal(t, float32(3.5), f)
}

func TestSetArrayAndGetArrayRoundTrip(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.SetArray("xs", []Value{1, 2, 3}))
	vs, err := it.GetArray("xs")
	require.Equal(t, OK, err)
	require.Equal(t, []Value{1, 2, 3}, vs)
}

func TestCheckArray(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.SetArray("xs", []Value{1, 2, 3}))
	v, err := it.Get("xs")
	require.Equal(t, OK, err)
	require.True(t, it.CheckArray(v))
	require.False(t, it.CheckArray(Value(-1)))
}

func TestGetUnknownSymbol(t *testing.T) {
	it := New()
	_, err := it.Get("nope")
	require.Equal(t, UNKNOWN_SYM, err)
}

func TestSetUnknownFallsBackToDefine(t *testing.T) {
	it := New()
	require.Equal(t, UNKNOWN_SYM, it.Set("fresh", 7))
	require.Equal(t, OK, it.SetInt("fresh", 7))
	v, err := it.GetInt("fresh")
	require.Equal(t, OK, err)
	require.Equal(t, 7, v)
}

func TestDefineCFunctionBadArity(t *testing.T) {
	it := New()
	err := it.DefineCFunction("f", 5, func(a, b, c, d Value) Value { return 0 })
	require.Equal(t, BADARGS, err)
}

func TestDefineOperatorBadPrecedence(t *testing.T) {
	it := New()
	err := it.DefineOperator("##", MaxExprLevel, func(l, r Value) Value { return l })
	require.Equal(t, BADARGS, err)
}

func TestEvalCopiesTransientBuffer(t *testing.T) {
	it := New()
	buf := []byte("return 99")
	require.NoError(t, it.Eval(string(buf)))
	require.Equal(t, Value(99), it.ReturnValue())

	for i := range buf {
		buf[i] = 'X'
	}
	// the interpreter must not have retained a view into the caller's
	// now-overwritten buffer; ReturnValue still reflects the original run.
	require.Equal(t, Value(99), it.ReturnValue())
}

func TestFuncBodyIsReparsedEachCall(t *testing.T) {
	it := New()
	err := it.Run(`
var n = 0
func bump() {
	n = n + 1
	return n
}
var a = bump()
var b = bump()
var c = bump()
return a*100 + b*10 + c
`, false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(123), it.ReturnValue())
}

func TestRunCallbackDoesNotResetScope(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.Define("x", 1))
	require.NoError(t, it.RunCallback("x = x + 1"))
	v, err := it.GetInt("x")
	require.Equal(t, OK, err)
	require.Equal(t, 2, v, "a callback-style Run must see and mutate the live scope")
}

func TestAssignToUndeclaredNameDefinesIt(t *testing.T) {
	it := New()
	err := it.Run("counter = 1\ncounter = counter + 1\nreturn counter", false, true)
	require.Equal(t, OK, err, "assigning to a bare undeclared name must define it, not fail with UNKNOWN_SYM")
	require.Equal(t, Value(2), it.ReturnValue())
}

func TestUnaryMinusDoesNotAbsorbFollowingOperator(t *testing.T) {
	it := New()
	err := it.Run("return -2 + 3", false, true)
	require.Equal(t, OK, err)
	require.Equal(t, Value(1), it.ReturnValue(), "unary - must bind only to its operand, not (2 + 3)")
}

func TestHostDefinedOperatorOutsideBuiltinCharsetTokenizes(t *testing.T) {
	it := New()
	require.Equal(t, OK, it.DefineOperator("@", 3, func(l, r Value) Value {
		if l < 0 {
			l = -l
		}
		if r < 0 {
			r = -r
		}
		return l + r
	}))
	err := it.Run("return 2 @ 3", false, true)
	require.Equal(t, OK, err, "a host operator spelled outside the built-in punctuation set must still tokenize")
	require.Equal(t, Value(5), it.ReturnValue())
}
