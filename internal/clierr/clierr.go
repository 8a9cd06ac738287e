// Package clierr classifies the errors package unification, typeeqs,
// scope and parser can return into the exit-code taxonomy of §7, so the
// CLI (package main, cmd/miniml) can report a stable code per failure
// kind instead of a flat "exit 1".
package clierr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of §7's error categories.
type Kind int

const (
	// KindNone is not a real error kind; it is ExitCode's result for nil.
	KindNone Kind = iota
	KindParse
	KindScope
	KindClash
	KindOccurs
	KindCycle
	KindStuck
	KindOther
)

// exitCodes maps each Kind to the process exit code §7 assigns it.
var exitCodes = map[Kind]int{
	KindNone:   0,
	KindParse:  2,
	KindScope:  3,
	KindClash:  4,
	KindOccurs: 5,
	KindCycle:  6,
	KindStuck:  7,
	KindOther:  1,
}

// Error wraps an underlying error with its classified Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap classifies err by matching the message text its source package
// uses (package unification and package scope do not export sentinel
// error types, so this is the simplest faithful way to recover the
// taxonomy without changing their public API).
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var clierr *Error
	if errors.As(err, &clierr) {
		return err
	}

	msg := err.Error()
	kind := KindOther
	switch {
	case strings.Contains(msg, "parser:") || strings.Contains(msg, "termparser:"):
		kind = KindParse
	case strings.Contains(msg, "scope:"):
		kind = KindScope
	case strings.Contains(msg, "occurs check failed"):
		kind = KindOccurs
	case strings.Contains(msg, "clash between"):
		kind = KindClash
	case strings.Contains(msg, "cycle detected") || strings.Contains(msg, "cycle:"):
		kind = KindCycle
	case strings.Contains(msg, "stuck on equation"):
		kind = KindStuck
	}
	return &Error{Kind: kind, Err: err}
}

// ExitCode returns the process exit code for err, 0 for nil. err need
// not already be wrapped with Wrap; ExitCode classifies it itself.
func ExitCode(err error) int {
	if err == nil {
		return exitCodes[KindNone]
	}
	wrapped := Wrap(err)
	var clierr *Error
	if errors.As(wrapped, &clierr) {
		return exitCodes[clierr.Kind]
	}
	return exitCodes[KindOther]
}

// Describe returns a one-line, kind-prefixed description suitable for
// printing to stderr.
func Describe(err error) string {
	wrapped := Wrap(err)
	var clierr *Error
	if errors.As(wrapped, &clierr) {
		return fmt.Sprintf("%s: %s", kindLabel(clierr.Kind), clierr.Err.Error())
	}
	return err.Error()
}

func kindLabel(k Kind) string {
	switch k {
	case KindParse:
		return "parse error"
	case KindScope:
		return "scope error"
	case KindClash:
		return "type clash"
	case KindOccurs:
		return "occurs check failure"
	case KindCycle:
		return "cyclic dependency"
	case KindStuck:
		return "stuck unification"
	default:
		return "error"
	}
}
