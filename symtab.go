package tinyscript

// SymKind tags what kind of thing a Symbol is.
// Where the C original packs precedence or arity into the high bits of a
// single tagged int, this port keeps them as plain Go fields on Symbol --
// Prec for OPERATOR, Arity for BUILTIN -- since Go has no need to economize
// struct fields the way the original economized tag bits.
type SymKind int

const (
	KindINT SymKind = iota
	KindSTRING
	KindOPERATOR
	KindARG
	KindARRAY
	KindBUILTIN
	KindUSRFUNC
	KindBINOP
)

func (k SymKind) String() string {
	switch k {
	case KindINT:
		return "int"
	case KindSTRING:
		return "string"
	case KindOPERATOR:
		return "operator"
	case KindARG:
		return "arg"
	case KindARRAY:
		return "array"
	case KindBUILTIN:
		return "builtin"
	case KindUSRFUNC:
		return "usrfunc"
	case KindBINOP:
		return "binop"
	default:
		return "?"
	}
}

// MaxBuiltinParams is the fixed arity ceiling for both BUILTIN and
// USRFUNC symbols.
const MaxBuiltinParams = 4

// CFunc is a native host function of up to MaxBuiltinParams arguments.
// Arguments past the registered arity are not passed; arguments the
// caller omitted are passed as zero.
type CFunc func(a, b, c, d Value) Value

// OpFunc is a binary operator implementation: left and right operand in,
// result out. When an OPERATOR is applied as a unary prefix, left is 0.
type OpFunc func(left, right Value) Value

// UserFunc describes a user-defined procedure: a view into its body
// source (re-parsed on every call, never cached as a tree) and the
// names of up to MaxBuiltinParams parameters.
type UserFunc struct {
	Body     StringView
	NArgs    int
	ArgNames [MaxBuiltinParams]StringView
}

// Symbol is one symbol table entry: {name, kind, value}, plus the
// kind-specific extras (precedence, arity, native function, user
// function descriptor) that Go represents as real fields rather than
// punning them through Value.
type Symbol struct {
	Name  StringView
	Kind  SymKind
	Value Value // INT value; ARG bound argument value itself (not a stack offset); ARRAY pointer; STRING reserved-word TokKind

	Prec  int  // OPERATOR precedence, 0..MaxExprLevel-1
	Arity int  // BUILTIN arity, 0..MaxBuiltinParams
	CFn   CFunc
	OpFn  OpFunc
	UFn   *UserFunc
}

// symtab is the arena-backed symbol table: a linear scan from the most
// recently added entry, which implements lexical shadowing for free.
type symtab struct {
	a *arena
}

// lookup finds the most-recently-added symbol named name, or reports
// false if there is none in scope.
func (st symtab) lookup(name string) (*Symbol, bool) {
	syms := st.a.syms
	for i := len(syms) - 1; i >= 0; i-- {
		if syms[i].Name.text == name {
			return &syms[i], true
		}
	}
	return nil, false
}

// define appends a new symbol at the current scope, shadowing any
// existing symbol of the same name. Fails with NOMEM if the arena has no
// room.
func (st symtab) define(sym Symbol) Err {
	_, err := st.a.addSymbol(sym)
	return err
}

// set updates the value of an existing symbol, scanning in the same
// newest-to-oldest order as lookup. Fails with UNKNOWN_SYM if name is not
// currently in scope.
func (st symtab) set(name string, kind SymKind, value Value) Err {
	sym, ok := st.lookup(name)
	if !ok {
		return UNKNOWN_SYM
	}
	sym.Kind = kind
	sym.Value = value
	return OK
}

// seedReservedWords installs the keyword vocabulary (if/else/while/func/
// var/return/array) as STRING-kind symbols, so the lexer discovers them
// as ordinary identifier lookups.
func (st symtab) seedReservedWords() Err {
	for _, rw := range reservedWords {
		if err := st.define(Symbol{
			Name:  viewOf(rw.name),
			Kind:  KindSTRING,
			Value: Value(rw.tok),
		}); err != OK {
			return err
		}
	}
	return OK
}
