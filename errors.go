package tinyscript

import "fmt"

// Err is a numeric interpreter error code. Zero means success; every
// other code is a failure.
//
// Errors are monotonic: once a statement fails with a non-zero Err, every
// enclosing statement and expression frame unwinds without running
// further code, and that single code is what the outermost Run/Eval call
// returns. There is no richer diagnostic text produced by the core --
// Error() always renders a short, fixed code name.
type Err int

// Error codes, matching the host bridge's contract.
const (
	OK          Err = 0
	NOMEM       Err = -1
	SYNTAX      Err = -2
	UNKNOWN_SYM Err = -3
	BADARGS     Err = -4
	TOOMANYARGS Err = -5
	OUTOFBOUNDS Err = -6
	STOPPED     Err = -7
)

var errNames = map[Err]string{
	OK:          "ok",
	NOMEM:       "out of memory",
	SYNTAX:      "syntax error",
	UNKNOWN_SYM: "unknown symbol",
	BADARGS:     "bad arguments",
	TOOMANYARGS: "too many arguments",
	OUTOFBOUNDS: "index out of bounds",
	STOPPED:     "stopped",
}

func (e Err) Error() string {
	if name, ok := errNames[e]; ok {
		return name
	}
	return fmt.Sprintf("error %d", int(e))
}

// Ok reports whether e is the success code.
func (e Err) Ok() bool { return e == OK }

// abortSignal is panicked by fail and checked to unwind every enclosing
// statement and expression frame back to the nearest Run/Eval boundary.
// It is never a value a caller outside this package sees; recoverErr
// converts it back into an Err.
type abortSignal struct{ err Err }

// fail aborts the current Run/Eval call with err. Called throughout the
// lexer, evaluator, and statement interpreter instead of threading an
// error return through every recursive call.
func fail(err Err) {
	panic(abortSignal{err})
}

// check calls fail(err) unless err is OK, and is the usual way a
// (value, Err)-returning helper gets promoted into the panic/recover
// control flow.
func check(err Err) {
	if err != OK {
		fail(err)
	}
}

// recoverErr is deferred at every Run/Eval entry point. It turns a
// fail()-initiated panic into *out, leaves *out alone on a clean return,
// and re-panics anything it doesn't recognize (a real programming bug,
// not a scripted failure).
func recoverErr(out *Err) {
	r := recover()
	if r == nil {
		return
	}
	a, ok := r.(abortSignal)
	if !ok {
		panic(r)
	}
	*out = a.err
}
