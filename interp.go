package tinyscript

// This file is the recursive-descent statement interpreter. Like the expression evaluator in eval.go, it never builds a tree:
// every statement form re-parses and re-executes its own syntax each time
// control reaches it, including re-scanning a while loop's condition on
// every iteration and a user function's body on every call.
//
// Block skipping (an untaken if-branch, a false while condition) and
// block capture (a function body view) both work by counting nested
// TokLBrace/TokRBrace at the token level rather than scanning raw
// characters, so a brace inside a string literal or a comment can never
// be mistaken for a structural one -- the lexer already resolved that
// when it produced the token stream.

// expectKind fails with SYNTAX unless the current token has kind k, then
// advances past it.
func (it *Interp) expectKind(k TokKind) {
	if it.lex.Peek() != k {
		fail(SYNTAX)
	}
	it.lex.Advance()
}

func (it *Interp) checkStop() bool {
	return it.stop != nil && it.stop()
}

// execBlockBody runs statements until the lexer reaches end of its active
// source buffer or a return statement fires. It is used both for the
// top level of a Run call and for a user function body view, neither of
// which is wrapped in its own { }.
func (it *Interp) execBlockBody() {
	for {
		for it.lex.Peek() == TokTerm {
			it.lex.Advance()
		}
		if it.lex.Peek() == TokEOF {
			return
		}
		it.execStmt()
		if it.returning {
			return
		}
	}
}

// execBlock runs a braced statement block: the current token must be
// TokLBrace. It consumes statements until the matching TokRBrace, which
// it also consumes. The block is its own scope: every symbol and array
// declared inside it is dropped when it exits.
func (it *Interp) execBlock() {
	if it.lex.Peek() != TokLBrace {
		fail(SYNTAX)
	}
	it.lex.Advance() // consume '{'
	m := it.arena.mark()
	defer it.arena.truncate(m)
	for {
		for it.lex.Peek() == TokTerm {
			it.lex.Advance()
		}
		if it.lex.Peek() == TokRBrace {
			it.lex.Advance()
			return
		}
		if it.lex.Peek() == TokEOF {
			fail(SYNTAX)
		}
		it.execStmt()
		if it.returning {
			return
		}
	}
}

// skipBalanced discards a braced block without executing it. The current
// token must be TokLBrace; it consumes through the matching TokRBrace.
func (it *Interp) skipBalanced() {
	if it.lex.Peek() != TokLBrace {
		fail(SYNTAX)
	}
	it.lex.Advance()
	depth := 1
	for depth > 0 {
		switch it.lex.Peek() {
		case TokLBrace:
			depth++
		case TokRBrace:
			depth--
		case TokEOF:
			fail(SYNTAX)
		}
		it.lex.Advance()
	}
}

// skipParenExpr discards a parenthesized expression's tokens without
// evaluating them, used when skipping an "else if" condition that will
// never run. The current token must be TokLParen; it consumes through
// the matching TokRParen.
func (it *Interp) skipParenExpr() {
	if it.lex.Peek() != TokLParen {
		fail(SYNTAX)
	}
	it.lex.Advance()
	depth := 1
	for depth > 0 {
		switch it.lex.Peek() {
		case TokLParen:
			depth++
		case TokRParen:
			depth--
		case TokEOF:
			fail(SYNTAX)
		}
		it.lex.Advance()
	}
}

// captureBraceBody records a function body's source span as a view into
// the active buffer. Unlike skipBalanced, its contract is that the
// opening '{' has *already* been consumed by the caller -- the view must
// start at the body's first token, not at the brace itself.
func (it *Interp) captureBraceBody() string {
	lex := it.lex
	start := lex.GetPosition()
	depth := 1
	for {
		switch lex.Peek() {
		case TokLBrace:
			depth++
		case TokRBrace:
			depth--
			if depth == 0 {
				end := lex.GetPosition()
				lex.Advance() // consume the matching '}'
				return lex.src[start:end]
			}
		case TokEOF:
			fail(SYNTAX)
		}
		lex.Advance()
	}
}

// execStmt parses and runs exactly one statement at the lexer's current
// position.
func (it *Interp) execStmt() {
	if it.checkStop() {
		fail(STOPPED)
	}
	switch it.lex.Peek() {
	case TokVar:
		it.execVar()
	case TokArray:
		it.execArrayDecl()
	case TokIf:
		it.execIf()
	case TokWhile:
		it.execWhile()
	case TokFunc:
		it.execFuncDef()
	case TokReturn:
		it.execReturn()
	case TokLBrace:
		it.execBlock()
	default:
		it.execExprOrAssign()
	}
}

// execVar parses `var name [= expr] [, name [= expr]]*`, defining each
// name as an INT symbol in the current scope.
func (it *Interp) execVar() {
	lex := it.lex
	lex.Advance() // 'var'
	for {
		if lex.Peek() != TokSymbol {
			fail(SYNTAX)
		}
		name := lex.TokenString()
		lex.Advance()

		var val Value
		if lex.Peek() == TokAssign {
			lex.Advance()
			val = it.evalCtx().evalExpr(0)
		}
		check(it.st.define(Symbol{Name: name, Kind: KindINT, Value: val}))

		if lex.Peek() != TokComma {
			return
		}
		lex.Advance()
	}
}

// execArrayDecl parses `array name(size) [= { v0, v1, ... }]`: it reserves
// size+1 cells from the arena's array region, optionally fills them from
// an initializer list, and defines name as an ARRAY symbol holding the
// array's base pointer.
func (it *Interp) execArrayDecl() {
	if !it.arraySupport {
		fail(SYNTAX)
	}
	lex := it.lex
	lex.Advance() // 'array'
	if lex.Peek() != TokSymbol {
		fail(SYNTAX)
	}
	name := lex.TokenString()
	lex.Advance()

	it.expectKind(TokLParen)
	size := int(it.evalCtx().evalExpr(0))
	it.expectKind(TokRParen)

	ptr, err := it.arena.reserveArray(size)
	check(err)

	if lex.Peek() == TokAssign {
		lex.Advance()
		if lex.Peek() != TokLBrace {
			fail(SYNTAX)
		}
	}
	if lex.Peek() == TokLBrace {
		lex.Advance()
		if lex.Peek() != TokRBrace {
			i := 0
			for {
				v := it.evalCtx().evalExpr(0)
				if i >= size {
					fail(OUTOFBOUNDS)
				}
				it.arena.cells[ptr+1+i] = v
				i++
				if lex.Peek() != TokComma {
					break
				}
				lex.Advance()
			}
		}
		it.expectKind(TokRBrace)
	}

	check(it.st.define(Symbol{Name: name, Kind: KindARRAY, Value: Value(ptr)}))
}

// storeArray writes arr[idx] = val, bounds-checked against the length
// cell stored at ptr.
func (it *Interp) storeArray(ptr, idx, val Value) {
	a := it.arena
	p, i := int(ptr), int(idx)
	if !a.inBounds(p) {
		fail(OUTOFBOUNDS)
	}
	length := int(a.cells[p])
	if i < 0 || i >= length {
		fail(OUTOFBOUNDS)
	}
	a.cells[p+1+i] = val
}

// execIf parses and runs `if (cond) { ... } [else if (...) {...}]* [else {...}]`
//. At most one branch ever executes; every
// other branch is skipped at the token level, never evaluated.
func (it *Interp) execIf() {
	lex := it.lex
	lex.Advance() // 'if'
	it.expectKind(TokLParen)
	cond := it.evalCtx().evalExpr(0)
	it.expectKind(TokRParen)
	if lex.Peek() != TokLBrace {
		fail(SYNTAX)
	}

	if truthy(cond) {
		it.execBlock()
		if !it.returning {
			it.skipElseChain()
		}
		return
	}
	it.skipBalanced()
	it.execElseChain()
}

// skipElseChain is reached after the taken if-branch ran; it discards
// any trailing else/else-if chain without evaluating it.
func (it *Interp) skipElseChain() {
	if it.lex.Peek() != TokElse {
		return
	}
	it.lex.Advance()
	if it.lex.Peek() == TokIf {
		it.lex.Advance()
		it.skipParenExpr()
		it.skipBalanced()
		it.skipElseChain()
		return
	}
	it.skipBalanced()
}

// execElseChain is reached after the if-branch was skipped (condition
// false); it decides whether to run an else-if (recursing into execIf)
// or a final else block.
func (it *Interp) execElseChain() {
	if it.lex.Peek() != TokElse {
		return
	}
	it.lex.Advance()
	if it.lex.Peek() == TokIf {
		it.execIf()
		return
	}
	it.execBlock()
}

// execWhile parses and runs `while (cond) { ... }`. The condition's source position is remembered and the
// condition is fully re-parsed from scratch on every iteration -- there
// is no cached condition expression, consistent with the rest of the
// interpreter never retaining parsed structure across a re-entry.
func (it *Interp) execWhile() {
	lex := it.lex
	lex.Advance() // 'while'
	if lex.Peek() != TokLParen {
		fail(SYNTAX)
	}
	condPos := lex.GetPosition()

	for {
		if it.checkStop() {
			fail(STOPPED)
		}
		lex.SetPosition(condPos)
		it.expectKind(TokLParen)
		cond := it.evalCtx().evalExpr(0)
		it.expectKind(TokRParen)
		if lex.Peek() != TokLBrace {
			fail(SYNTAX)
		}

		if !truthy(cond) {
			it.skipBalanced()
			return
		}
		it.execBlock()
		if it.returning {
			return
		}
	}
}

// execFuncDef parses `func name(arg, ...) { ... }`, capturing the body
// as a view into the active source buffer and defining name as a
// USRFUNC symbol. The body is never parsed
// here -- only its span is recorded -- it is re-parsed fresh on every
// call.
func (it *Interp) execFuncDef() {
	lex := it.lex
	lex.Advance() // 'func'
	if lex.Peek() != TokSymbol {
		fail(SYNTAX)
	}
	name := lex.TokenString()
	lex.Advance()

	it.expectKind(TokLParen)
	var argNames [MaxBuiltinParams]StringView
	nargs := 0
	if lex.Peek() != TokRParen {
		for {
			if lex.Peek() != TokSymbol {
				fail(SYNTAX)
			}
			if nargs >= MaxBuiltinParams {
				fail(TOOMANYARGS)
			}
			argNames[nargs] = lex.TokenString()
			nargs++
			lex.Advance()
			if lex.Peek() != TokComma {
				break
			}
			lex.Advance()
		}
	}
	it.expectKind(TokRParen)

	if lex.Peek() != TokLBrace {
		fail(SYNTAX)
	}
	lex.Advance() // consume '{'
	body := it.captureBraceBody()

	check(it.st.define(Symbol{
		Name: name,
		Kind: KindUSRFUNC,
		UFn:  &UserFunc{Body: viewOf(body), NArgs: nargs, ArgNames: argNames},
	}))
}

// execReturn parses `return [expr]`, setting the pending return value
// that unwinds the innermost callUser. A
// return with no expression yields 0, matching a call that falls off
// the end of its body.
func (it *Interp) execReturn() {
	lex := it.lex
	lex.Advance() // 'return'
	var val Value
	switch lex.Peek() {
	case TokTerm, TokRBrace, TokEOF:
		val = 0
	default:
		val = it.evalCtx().evalExpr(0)
	}
	it.returning = true
	it.returnValue = val
}

// execExprOrAssign handles every statement that isn't one of the
// reserved-word forms above: a plain expression evaluated for effect, a
// variable or argument assignment `name = expr`, an array-element
// assignment `name(idx) = expr`, or a builtin/user function call made
// for its side effects with its result discarded. Assigning to a name
// that isn't yet in scope defines it as a fresh INT in the current
// scope rather than failing -- every other use of an unresolved name is
// still UNKNOWN_SYM.
func (it *Interp) execExprOrAssign() {
	lex := it.lex
	if lex.Peek() != TokSymbol {
		it.evalCtx().evalExpr(0)
		return
	}

	name := lex.TokenString().String()
	sym, ok := it.st.lookup(name)
	lex.Advance()

	switch lex.Peek() {
	case TokLParen:
		if !ok {
			fail(UNKNOWN_SYM)
		}
		lex.Advance()
		ec := it.evalCtx()
		switch sym.Kind {
		case KindARRAY:
			idx := ec.evalExpr(0)
			it.expectKind(TokRParen)
			if lex.Peek() == TokAssign {
				lex.Advance()
				val := ec.evalExpr(0)
				it.storeArray(sym.Value, idx, val)
			}
		case KindBUILTIN:
			args := ec.evalArgs(sym.Arity)
			it.expectKind(TokRParen)
			sym.CFn(args[0], args[1], args[2], args[3])
		case KindUSRFUNC:
			args := ec.evalArgs(sym.UFn.NArgs)
			it.expectKind(TokRParen)
			ec.callUser(sym, args)
		default:
			fail(BADARGS)
		}

	case TokAssign:
		lex.Advance()
		val := it.evalCtx().evalExpr(0)
		if !ok {
			check(it.st.define(Symbol{Name: viewOf(name), Kind: KindINT, Value: val}))
			return
		}
		switch sym.Kind {
		case KindINT, KindARG:
			check(it.st.set(name, sym.Kind, val))
		default:
			fail(BADARGS)
		}

	default:
		if !ok {
			fail(UNKNOWN_SYM)
		}
		// a bare name used as a statement; value discarded.
	}
}
