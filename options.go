package tinyscript

// InterpOption configures an Interp in New, before Init runs, in a collapsing
// functional-options style: a slice of options flattens to its
// elements, and nil/zero-value options apply as no-ops.
type InterpOption interface{ apply(it *Interp) }

var defaultOptions = InterpOptions(
	WithArenaSize(DefaultArenaSize),
)

// DefaultArenaSize is used when no WithArena/WithArenaSize option is
// given, matching the original's ARENA_SIZE in its reference host.
const DefaultArenaSize = 8192

// InterpOptions flattens a list of options into one, the way the
// teacher's VMOptions does: nested options-slices splice in place, and
// an empty result collapses to a harmless no-op rather than an empty
// slice.
func InterpOptions(opts ...InterpOption) InterpOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(it *Interp) {}

type options []InterpOption

func (opts options) apply(it *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

type arenaOption struct{ a *arena }

// WithArena supplies a host-owned arena rather than letting Init
// allocate one, letting a host reuse a single fixed-size buffer across
// independent interpreter instances, or inspect its contents directly.
// The arena's capacity is len(cells).
func WithArena(cells []Value) InterpOption {
	return arenaOption{&arena{cells: cells, capacity: len(cells), arrTop: len(cells)}}
}

func (o arenaOption) apply(it *Interp) { it.arena = o.a }

type arenaSizeOption int

// WithArenaSize is the common case of WithArena: allocate a fresh arena
// of the given cell capacity, separately for every Interp it is applied to.
func WithArenaSize(capacity int) InterpOption { return arenaSizeOption(capacity) }

func (o arenaSizeOption) apply(it *Interp) { it.arena = newArena(int(o)) }

type stopOption struct{ stop func() bool }

// WithStop installs a cooperative-cancellation hook, consulted before
// every statement and on every while-loop iteration. A nil hook (the default) means a script can never be
// stopped early.
func WithStop(stop func() bool) InterpOption { return stopOption{stop} }

func (o stopOption) apply(it *Interp) { it.stop = o.stop }

type logfOption func(mess string, args ...interface{})

// WithLogf installs a trace sink: every trace point (a user function
// call and its return, and a halt error from RunMain/RunCallback/Eval/
// EvalCallback) calls it once per line, printf-style, with a format
// string and arguments that render one mark-prefixed line. The lexer has
// no trace points.
func WithLogf(logfn func(mess string, args ...interface{})) InterpOption {
	return logfOption(logfn)
}

func (o logfOption) apply(it *Interp) { it.log.logfn = o }

type arraySupportOption bool

// WithArraySupport toggles whether `array` declarations and indexing
// are permitted at all. Spec section 7 lists fixed-size arrays as
// optional host-level functionality a memory-constrained build may
// compile out; disabling it here makes any `array` statement fail with
// SYNTAX instead of reserving arena space. It does not affect ARRAY
// symbols a host installs via SetArray: scripts can still read and index
// those.
func WithArraySupport(enabled bool) InterpOption { return arraySupportOption(enabled) }

func (o arraySupportOption) apply(it *Interp) { it.arraySupport = bool(o) }
