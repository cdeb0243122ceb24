package tinyscript

// MaxExprLevel bounds operator precedence: any OPERATOR symbol with
// Prec < MaxExprLevel may additionally be applied as a unary prefix
// where a primary is expected. It mirrors
// the original's MAX_EXPR_LEVEL.
const MaxExprLevel = 7

// evalCtx is the expression evaluator's handle on the interpreter it
// belongs to, through which it reaches the lexer, the symbol table, and
// (for calls) the statement interpreter that runs a user function body.
type evalCtx struct {
	it *Interp
}

// expect fails with SYNTAX unless the current token has kind k, then
// advances past it.
func (ec *evalCtx) expect(k TokKind) {
	if ec.it.lex.Peek() != k {
		fail(SYNTAX)
	}
	ec.it.lex.Advance()
}

// evalExpr parses and evaluates one expression at the lexer's current
// position, using precedence climbing. minPrec is the
// lowest-precedence operator this call is willing to consume; recursive
// calls pass prec+1 so that same-precedence operators associate left.
func (ec *evalCtx) evalExpr(minPrec int) Value {
	left := ec.evalPrimary()
	for {
		if ec.it.lex.Peek() != TokOperator {
			return left
		}
		name := ec.it.lex.TokenString().String()
		sym, ok := ec.it.st.lookup(name)
		if !ok || sym.Kind != KindOPERATOR || sym.Prec < minPrec {
			return left
		}
		opFn := sym.OpFn
		ec.it.lex.Advance()
		right := ec.evalExpr(sym.Prec + 1)
		left = opFn(left, right)
	}
}

// evalPrimary parses a primary expression: a parenthesized expression, a
// number literal, a unary operator application, or an identifier
// reference -- variable, argument, array index, builtin call, or user
// function call. A string literal in primary position is a SYNTAX error.
func (ec *evalCtx) evalPrimary() Value {
	lex := ec.it.lex
	switch lex.Peek() {
	case TokLParen:
		lex.Advance()
		v := ec.evalExpr(0)
		ec.expect(TokRParen)
		return v

	case TokNumber:
		v := lex.TokenValue()
		lex.Advance()
		return v

	case TokOperator:
		name := lex.TokenString().String()
		sym, ok := ec.it.st.lookup(name)
		if !ok || sym.Kind != KindOPERATOR || sym.Prec >= MaxExprLevel {
			fail(SYNTAX)
		}
		opFn := sym.OpFn
		lex.Advance()
		operand := ec.evalExpr(MaxExprLevel)
		return opFn(0, operand)

	case TokSymbol:
		return ec.evalSymbolRef()

	default:
		fail(SYNTAX)
		return 0
	}
}

// evalSymbolRef resolves an identifier reference: a bare name looks up a
// variable, argument, or array pointer; name(args) is either an array
// index (for KindARRAY) or a call (for KindBUILTIN/KindUSRFUNC).
func (ec *evalCtx) evalSymbolRef() Value {
	lex := ec.it.lex
	name := lex.TokenString().String()
	sym, ok := ec.it.st.lookup(name)
	if !ok {
		fail(UNKNOWN_SYM)
	}
	lex.Advance()

	if lex.Peek() != TokLParen {
		switch sym.Kind {
		case KindINT, KindARG, KindARRAY:
			return sym.Value
		default:
			fail(BADARGS)
		}
	}

	lex.Advance() // consume '('

	switch sym.Kind {
	case KindARRAY:
		idx := ec.evalExpr(0)
		ec.expect(TokRParen)
		return ec.indexArray(sym.Value, idx)

	case KindBUILTIN:
		args := ec.evalArgs(sym.Arity)
		ec.expect(TokRParen)
		return sym.CFn(args[0], args[1], args[2], args[3])

	case KindUSRFUNC:
		args := ec.evalArgs(sym.UFn.NArgs)
		ec.expect(TokRParen)
		return ec.callUser(sym, args)

	default:
		fail(BADARGS)
		return 0
	}
}

// evalArgs parses a comma-separated, parenthesized argument list that
// has already had its opening '(' consumed. Arguments past arity are a
// TOOMANYARGS error; arguments the caller omitted are zero.
func (ec *evalCtx) evalArgs(arity int) [MaxBuiltinParams]Value {
	var args [MaxBuiltinParams]Value
	if ec.it.lex.Peek() == TokRParen {
		return args
	}
	n := 0
	for {
		v := ec.evalExpr(0)
		if n < MaxBuiltinParams {
			args[n] = v
		}
		n++
		if n > arity {
			fail(TOOMANYARGS)
		}
		if ec.it.lex.Peek() != TokComma {
			break
		}
		ec.it.lex.Advance()
	}
	return args
}

// indexArray reads arr[idx], bounds-checked against the length cell
// stored at ptr.
func (ec *evalCtx) indexArray(ptr Value, idx Value) Value {
	a := ec.it.arena
	p := int(ptr)
	i := int(idx)
	if !a.inBounds(p) {
		fail(OUTOFBOUNDS)
	}
	length := int(a.cells[p])
	if i < 0 || i >= length {
		fail(OUTOFBOUNDS)
	}
	return a.cells[p+1+i]
}

// callUser performs a user function call: binds ARG symbols for each
// parameter in a fresh scope, points the lexer at the function's body
// view, runs the statement interpreter until the body ends or a return
// statement fires, then unwinds the scope and restores the caller's
// lexer position.
func (ec *evalCtx) callUser(sym *Symbol, args [MaxBuiltinParams]Value) Value {
	uf := sym.UFn
	it := ec.it

	it.callDepth++
	if it.callDepth > maxCallDepth {
		it.callDepth--
		fail(NOMEM)
	}
	defer func() { it.callDepth-- }()

	it.log.logf("call", "%v(%v) depth=%v", sym.Name, args[:uf.NArgs], it.callDepth)
	defer it.log.withLogPrefix("  ")()

	m := it.arena.mark()
	for i := 0; i < uf.NArgs; i++ {
		check(it.st.define(Symbol{
			Name:  uf.ArgNames[i],
			Kind:  KindARG,
			Value: args[i],
		}))
	}

	saved := it.lex.enterBody(uf.Body)

	it.returning = false
	it.returnValue = 0
	it.execBlockBody()

	result := it.returnValue
	it.returning = false
	it.returnValue = 0

	it.lex.restoreCursor(saved)
	it.arena.truncate(m)
	it.log.logf("ret", "%v -> %v", sym.Name, result)
	return result
}

// maxCallDepth bounds user function call recursion. The original has no
// explicit recursion guard beyond the arena itself running out of room;
// this repo additionally caps the Go call stack depth used to mirror
// that recursion, so a runaway script fails with NOMEM instead of
// crashing the host process.
const maxCallDepth = 512
