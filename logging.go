package tinyscript

import "fmt"

// logging is a leveled, mark-prefixed trace facility: each call site
// picks a short "mark" describing what kind of event it is (user
// function call, its return, halt), and marks are padded to a common
// width so traces line up in a column.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

// withLogPrefix temporarily prefixes every subsequent log line with
// prefix, returning a function that restores the previous behavior. Used
// to indent traces for a nested user function call.
func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := len(mark) - log.markWidth; n > 0 {
		log.markWidth = len(mark)
	}
	for len(mark) < log.markWidth {
		mark += " "
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
