package tinyscript

// defaultOperators is the built-in operator table installed by Init,
// before any host DefineOperator calls. Logical-or binds loosest, then
// logical-and, then a tier shared by comparisons and the bitwise
// operators, then addition, then multiplication. Every entry's
// precedence is below MaxExprLevel, so every built-in operator is also
// usable as a unary prefix -- in practice only "-" and "!" are ever
// written that way.
var defaultOperators = []struct {
	name string
	prec int
	fn   OpFunc
}{
	{"||", 0, opOr},
	{"&&", 1, opAnd},

	{"==", 2, opEq},
	{"!=", 2, opNe},
	{"<", 2, opLt},
	{"<=", 2, opLe},
	{">", 2, opGt},
	{">=", 2, opGe},
	{"&", 2, opBitAnd},
	{"|", 2, opBitOr},
	{"^", 2, opBitXor},
	{"!", 2, opNot},

	{"+", 3, opAdd},
	{"-", 3, opSub},

	{"*", 4, opMul},
	{"/", 4, opDiv},
	{"%", 4, opMod},
}

func opOr(l, r Value) Value  { return boolValue(truthy(l) || truthy(r)) }
func opAnd(l, r Value) Value { return boolValue(truthy(l) && truthy(r)) }

func opEq(l, r Value) Value { return boolValue(l == r) }
func opNe(l, r Value) Value { return boolValue(l != r) }
func opLt(l, r Value) Value { return boolValue(l < r) }
func opLe(l, r Value) Value { return boolValue(l <= r) }
func opGt(l, r Value) Value { return boolValue(l > r) }
func opGe(l, r Value) Value { return boolValue(l >= r) }

func opBitAnd(l, r Value) Value { return l & r }
func opBitOr(l, r Value) Value  { return l | r }
func opBitXor(l, r Value) Value { return l ^ r }

// opNot implements both unary "!x" (applied with l == 0 by evalPrimary's
// unary rule) and, degenerately, a binary use: either way the result is
// whether the right operand is zero.
func opNot(l, r Value) Value { return boolValue(r == 0) }

func opAdd(l, r Value) Value { return l + r }

// opSub implements both binary subtraction and, via the unary-operator
// rule in evalPrimary, unary negation (l == 0 there).
func opSub(l, r Value) Value { return l - r }

func opMul(l, r Value) Value { return l * r }

func opDiv(l, r Value) Value {
	if r == 0 {
		fail(BADARGS)
	}
	return l / r
}

func opMod(l, r Value) Value {
	if r == 0 {
		fail(BADARGS)
	}
	return l % r
}

// installDefaultOperators seeds the symbol table with defaultOperators.
func installDefaultOperators(st symtab) Err {
	for _, op := range defaultOperators {
		if err := st.define(Symbol{
			Name: viewOf(op.name),
			Kind: KindOPERATOR,
			Prec: op.prec,
			OpFn: op.fn,
		}); err != OK {
			return err
		}
	}
	return OK
}
