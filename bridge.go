package tinyscript

import (
	"github.com/jcorbin/tinyscript/internal/panicerr"
)

// Interp is the host bridge: an arena-backed symbol
// table, a lexer, and the evaluator/interpreter pair that walk a
// script's source text directly, with no retained AST or bytecode. A
// host embeds one per independent script environment and drives it
// entirely through this type's exported methods.
type Interp struct {
	arena *arena
	st    symtab
	lex   *Lexer
	ec    evalCtx
	log   logging

	stop         func() bool
	arraySupport bool

	callDepth   int
	returning   bool
	returnValue Value
}

// New constructs an Interp and initializes it, applying opts over the
// defaults (an 8192-cell arena, array support enabled, no stop hook).
func New(opts ...InterpOption) *Interp {
	it := &Interp{arraySupport: true}
	defaultOptions.apply(it)
	InterpOptions(opts...).apply(it)
	it.Init()
	return it
}

// Init (re)initializes the interpreter: it resets the arena, reseeds the
// reserved-word vocabulary and default operator table, and is safe to
// call again on an Interp built with WithArena to start over without
// reallocating.
func (it *Interp) Init() {
	if it.arena == nil {
		it.arena = newArena(DefaultArenaSize)
	} else {
		it.arena.truncate(arenaMark{symCount: 0, arrTop: it.arena.capacity})
	}
	it.st = symtab{a: it.arena}
	it.lex = newLexer(it.st)
	it.ec = evalCtx{it: it}
	it.callDepth = 0
	it.returning = false
	it.returnValue = 0

	if err := it.st.seedReservedWords(); err != OK {
		panic(err) // arena too small even for the keyword vocabulary
	}
	if err := installDefaultOperators(it.st); err != OK {
		panic(err)
	}
}

func (it *Interp) evalCtx() *evalCtx { return &it.ec }

// Run parses and executes src as a sequence of statements. If copy is true, src is copied into host-owned storage
// first, so that any StringView taken from it (a function body, a
// variable name) stays valid after Run returns -- required whenever src
// is caller-owned transient memory, such as a single REPL line or a
// callback fragment. If topLevel is true, Run captures its own arena
// mark and unconditionally truncates back to it before returning, so
// every symbol the script itself declares -- its own top-level vars and
// funcs -- is gone once Run returns, leaving only whatever the host had
// defined beforehand (invariant: the arena's top is unchanged across a
// topLevel Run). If topLevel is false, Run takes no mark of its own: it
// continues in the caller's live scope, and whatever it defines is
// cleaned up by whichever enclosing frame truncates next -- this is
// what lets a callback-style entry point see (and add to) a script's
// in-flight function/block scope without resetting it.
//
// Either way, Run always repositions the lexer at src and restores the
// caller's lexer cursor before returning, since re-entrant callers
// always resume parsing wherever they left off.
func (it *Interp) Run(src string, copy, topLevel bool) (errOut Err) {
	if copy {
		src = string([]byte(src))
	}

	savedCursor := it.lex.saveCursor()
	defer it.lex.restoreCursor(savedCursor)

	if topLevel {
		m := it.arena.mark()
		defer it.arena.truncate(m)
	}

	wasReturning, wasReturnValue := it.returning, it.returnValue
	defer func() {
		it.returning = wasReturning
		if !topLevel {
			it.returnValue = wasReturnValue
		}
	}()

	defer recoverErr(&errOut)

	it.lex.reset(src)
	it.returning, it.returnValue = false, 0
	it.execBlockBody()
	return OK
}

// runGuarded wraps a Run in panicerr.Recover: a bug in this package's
// own control flow -- not a scripted failure, which always comes back
// as a well-formed Err -- surfaces as a plain Go error instead of
// taking the host process down.
func (it *Interp) runGuarded(src string, copy, topLevel bool) error {
	var result Err
	err := panicerr.Recover("tinyscript", func() error {
		result = it.Run(src, copy, topLevel)
		return nil
	})
	if err != nil {
		return err
	}
	if result == OK {
		return nil
	}
	it.log.logf("#", "halt error: %v", result)
	return result
}

// RunMain runs src as a top-level program: src is assumed to be
// host-owned and long-lived, so it is referenced, not copied (spec
// section 6, "RunMain").
func (it *Interp) RunMain(src string) error { return it.runGuarded(src, false, true) }

// RunCallback runs src in the interpreter's current scope, for a host
// calling back into the interpreter from within a CFunc while an outer
// Run is in flight. src is copied, since a callback
// fragment is typically built from transient host state.
func (it *Interp) RunCallback(src string) error { return it.runGuarded(src, true, false) }

// Eval is Run over a transient, caller-owned buffer at the top level:
// src is copied into host-owned storage before interpretation, so it may
// be overwritten once Eval returns.
func (it *Interp) Eval(src string) error { return it.runGuarded(src, true, true) }

// EvalCallback is Eval for a host calling back into the interpreter from
// within a CFunc: like RunCallback, it runs in the current scope rather
// than resetting it.
func (it *Interp) EvalCallback(src string) error { return it.runGuarded(src, true, false) }

// ReturnValue reports the value of the most recently executed top-level
// `return` statement -- how a host observes the result of a script run
// via RunMain/Eval, since those report only a completion error per spec
// section 6 ("Functions return 0 on success"). It is meaningless (and
// conventionally zero) if the script never reached a return.
func (it *Interp) ReturnValue() Value { return it.returnValue }

// Define installs an INT-kind variable symbol in the current scope, the
// general-purpose way a host seeds a constant or initial variable value
// before running a script.
func (it *Interp) Define(name string, value Value) Err {
	return it.st.define(Symbol{Name: viewOf(name), Kind: KindINT, Value: value})
}

// DefineCFunction registers a native host function under name, callable
// from script as name(a, b, ...) with up to arity arguments (spec
// section 6, "DefineCFunction"). arity must not exceed MaxBuiltinParams.
func (it *Interp) DefineCFunction(name string, arity int, fn CFunc) Err {
	if arity < 0 || arity > MaxBuiltinParams {
		return BADARGS
	}
	return it.st.define(Symbol{
		Name:  viewOf(name),
		Kind:  KindBUILTIN,
		Arity: arity,
		CFn:   fn,
	})
}

// DefineOperator registers (or overrides) a binary operator's
// precedence and implementation -- the host-extensibility hook built on
// the observation that the lexer's own idea of what an operator looks
// like is entirely data-driven by the symbol table.
func (it *Interp) DefineOperator(spelling string, prec int, fn OpFunc) Err {
	if prec < 0 || prec >= MaxExprLevel {
		return BADARGS
	}
	return it.st.define(Symbol{
		Name: viewOf(spelling),
		Kind: KindOPERATOR,
		Prec: prec,
		OpFn: fn,
	})
}

// Set updates an existing INT or ARG symbol's value. It fails with
// UNKNOWN_SYM if name is not currently in scope, and with BADARGS if it
// resolves to a kind Set cannot assign (an array, function, or
// operator) -- mirroring TinyScript_Set's try-update semantics (spec
// section 6, "Set/Get").
func (it *Interp) Set(name string, value Value) Err {
	sym, ok := it.st.lookup(name)
	if !ok {
		return UNKNOWN_SYM
	}
	switch sym.Kind {
	case KindINT, KindARG:
		return it.st.set(name, sym.Kind, value)
	default:
		return BADARGS
	}
}

// SetInt defines-or-updates name as an INT symbol: if name is already in
// scope as an INT or ARG, its value is overwritten in place; otherwise a
// fresh INT symbol is defined, matching TinyScript_SetInt's
// try-update-then-define fallback.
func (it *Interp) SetInt(name string, value int) Err {
	if err := it.Set(name, Value(value)); err != UNKNOWN_SYM {
		return err
	}
	return it.Define(name, Value(value))
}

// SetFloat is SetInt for a float32 value, bit-punned into a Value the
// same way every numeric Value is.
func (it *Interp) SetFloat(name string, value float32) Err {
	v := ValueFromFloat32(value)
	if err := it.Set(name, v); err != UNKNOWN_SYM {
		return err
	}
	return it.Define(name, v)
}

// SetArray reserves a fresh array of len(values) cells, copies values
// into it, and defines-or-updates name to refer to it.
func (it *Interp) SetArray(name string, values []Value) Err {
	ptr, err := it.arena.reserveArray(len(values))
	if err != OK {
		return err
	}
	for i, v := range values {
		it.arena.cells[ptr+1+i] = v
	}
	if sym, ok := it.st.lookup(name); ok && sym.Kind == KindARRAY {
		sym.Value = Value(ptr)
		return OK
	}
	return it.st.define(Symbol{Name: viewOf(name), Kind: KindARRAY, Value: Value(ptr)})
}

// Get reads a symbol's current value, the counterpart of Set. It
// succeeds for any kind that carries a plain Value (INT, ARG, ARRAY's
// pointer); it fails with BADARGS for a function or operator symbol,
// which have no single scalar value.
func (it *Interp) Get(name string) (Value, Err) {
	sym, ok := it.st.lookup(name)
	if !ok {
		return 0, UNKNOWN_SYM
	}
	switch sym.Kind {
	case KindINT, KindARG, KindARRAY:
		return sym.Value, OK
	default:
		return 0, BADARGS
	}
}

// GetInt is Get truncated to a plain int.
func (it *Interp) GetInt(name string) (int, Err) {
	v, err := it.Get(name)
	return int(v), err
}

// GetFloat is Get reinterpreted as a float32.
func (it *Interp) GetFloat(name string) (float32, Err) {
	v, err := it.Get(name)
	return v.AsFloat32(), err
}

// GetArray copies an array symbol's current contents out into a fresh
// slice. It fails with BADARGS if name is not an ARRAY symbol, and with
// OUTOFBOUNDS if its pointer no longer checks out (CheckArray would
// reject it). CheckArray rejects a zero length, so a live zero-length
// array also fails with OUTOFBOUNDS; otherwise this should not happen to
// a live symbol, but an arena shared across multiple hosts via WithArena
// could in principle be corrupted out from under this Interp.
func (it *Interp) GetArray(name string) ([]Value, Err) {
	sym, ok := it.st.lookup(name)
	if !ok {
		return nil, UNKNOWN_SYM
	}
	if sym.Kind != KindARRAY {
		return nil, BADARGS
	}
	ptr := int(sym.Value)
	if !it.arena.checkArray(ptr) {
		return nil, OUTOFBOUNDS
	}
	length := int(it.arena.cells[ptr])
	out := make([]Value, length)
	copy(out, it.arena.cells[ptr+1:ptr+1+length])
	return out, OK
}

// CheckArray reports whether ptr is a currently plausible array pointer:
// in bounds, with a length cell such that the whole array still fits
// inside the arena. A host should call
// this before trusting an array pointer value it received back from a
// CFunc argument.
func (it *Interp) CheckArray(ptr Value) bool {
	return it.arena.checkArray(int(ptr))
}
