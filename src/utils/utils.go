package utils

import (
	"fmt"
	"unicode/utf8"

	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

// Returns the provided value, or a default value if the input was zero.
func OrDefault[T comparable](v T, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp keeps t within [min, max]. When max < min, min wins.
func IntClamp(min, t, max int) int {
	return IntMax(min, IntMin(t, max))
}

// NumPages is the page count for numThings at thingsPerPage, never less than 1.
func NumPages(numThings, thingsPerPage int) int {
	if thingsPerPage <= 0 {
		return 1
	}
	return IntMax((numThings+thingsPerPage-1)/thingsPerPage, 1)
}

// Ellipsize cuts s to at most n runes, marking the cut with "…".
func Ellipsize(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

/*
Recover a panic and convert it to a returned error. Call it like so:

	func MyFunc() (err error) {
		defer utils.RecoverPanicAsError(&err)
	}

If an error was already present, the panicked error takes precedence.
*/
func RecoverPanicAsError(err *error) {
	if r := recover(); r != nil {
		var recoveredErr error
		if rerr, ok := r.(error); ok {
			recoveredErr = rerr
		} else {
			recoveredErr = fmt.Errorf("panic with value: %v", r)
		}
		*err = oops.New(recoveredErr, "panic recovered as error")
	}
}
