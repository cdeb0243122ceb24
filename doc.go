/*
Package tinyscript implements a small embeddable interpreter for hosts with
only tens of kilobytes of RAM and no heap to spare.

There is no bytecode and no retained AST: source text is the only
representation of a script, including user function bodies, which are kept
as a (length, pointer) view into the original source and re-parsed on every
call. The symbol table (including bound function arguments) and any arrays
a script allocates draw from a single fixed-size arena, either allocated
by New or supplied by the host via WithArena; the arena is never grown or
reallocated. There is no separate evaluation stack in the arena:
intermediate expression values live on the Go call stack.

A host embeds tinyscript by constructing an Interp, registering native
functions and operators via DefineCFunction/DefineOperator, and driving
scripts in through Run or Eval. See cmd/tinyscript for a complete host and
mathlib for an example client library built purely on the host-bridge API.
*/
package tinyscript
