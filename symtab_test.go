package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymtabShadowing(t *testing.T) {
	a := newArena(256)
	st := symtab{a: a}

	require.Equal(t, OK, st.define(Symbol{Name: viewOf("x"), Kind: KindINT, Value: 1}))
	sym, ok := st.lookup("x")
	require.True(t, ok)
	require.Equal(t, Value(1), sym.Value)

	m := a.mark()
	require.Equal(t, OK, st.define(Symbol{Name: viewOf("x"), Kind: KindINT, Value: 2}))
	sym, ok = st.lookup("x")
	require.True(t, ok, "newest-to-oldest lookup must find the shadowing entry")
	require.Equal(t, Value(2), sym.Value)

	a.truncate(m)
	sym, ok = st.lookup("x")
	require.True(t, ok, "the outer binding must be visible again after the shadow truncates")
	require.Equal(t, Value(1), sym.Value)
}

func TestSymtabSetUnknown(t *testing.T) {
	st := symtab{a: newArena(64)}
	require.Equal(t, UNKNOWN_SYM, st.set("nope", KindINT, 0))
}

func TestSymtabSetRoundTrip(t *testing.T) {
	st := symtab{a: newArena(64)}
	require.Equal(t, OK, st.define(Symbol{Name: viewOf("v"), Kind: KindINT, Value: 5}))
	require.Equal(t, OK, st.set("v", KindINT, 9))
	sym, ok := st.lookup("v")
	require.True(t, ok)
	require.Equal(t, Value(9), sym.Value)
}

func TestSymtabSeedReservedWords(t *testing.T) {
	st := symtab{a: newArena(256)}
	require.Equal(t, OK, st.seedReservedWords())
	for _, rw := range reservedWords {
		sym, ok := st.lookup(rw.name)
		require.True(t, ok, "reserved word %q must be seeded", rw.name)
		require.Equal(t, KindSTRING, sym.Kind)
		require.Equal(t, Value(rw.tok), sym.Value)
	}
}
