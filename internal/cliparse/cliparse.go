// SPDX-License-Identifier: MPL-2.0

// Package cliparse converts the raw command-line token list into an ordered
// action sequence.
//
// The grammar is evaluated token by token, left to right:
//
//	-v              → ShowVersion
//	-h              → ShowHelp
//	-b              → CreateShortcut
//	-o name=value   → SetOption (consumes the following token)
//	name[(a,b,...)] → RunTask
//
// Anything else is a parse error naming the offending token.
package cliparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pie-cli/internal/action"
)

// ErrParse is the sentinel error wrapped by ParseError.
var ErrParse = errors.New("parse error")

// taskPattern matches a task invocation token: a name (any run of
// characters excluding parentheses) optionally followed by a parenthesized
// comma-separated argument list. The whole token must match.
var taskPattern = regexp.MustCompile(`^(?P<name>[^()]+)(?:\((?P<args>.*)\))?$`)

// ParseError reports a malformed command-line token.
type ParseError struct {
	// Token is the offending token.
	Token string
	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown argument format %q: %s", e.Token, e.Reason)
}

// Unwrap returns ErrParse so callers can use errors.Is for programmatic
// detection.
func (e *ParseError) Unwrap() error { return ErrParse }

// Parse converts argv into the ordered action sequence. argv[0] is the
// program name and is skipped. An argv with no tokens after the program
// name yields an empty sequence; the caller decides what an empty
// sequence means.
func Parse(argv []string) ([]action.Action, error) {
	var parsed []action.Action

	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		switch tok {
		case "-v":
			parsed = append(parsed, action.ShowVersion{})
		case "-h":
			parsed = append(parsed, action.ShowHelp{})
		case "-b":
			parsed = append(parsed, action.CreateShortcut{})
		case "-o":
			if i+1 >= len(argv) {
				return nil, &ParseError{Token: tok, Reason: "-o requires a following name=value token"}
			}
			i++
			opt, err := parseOption(argv[i])
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, opt)
		default:
			t, err := parseTask(tok)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, t)
		}
	}
	return parsed, nil
}

// parseOption splits a name=value token on the first '='.
func parseOption(tok string) (action.SetOption, error) {
	name, value, ok := strings.Cut(tok, "=")
	if !ok {
		return action.SetOption{}, &ParseError{Token: tok, Reason: "expected name=value"}
	}
	return action.SetOption{Name: name, Value: value}, nil
}

// parseTask matches a task invocation token. Arguments are split on commas
// with no quoting or nesting, and whitespace is not trimmed; `task()`
// yields zero arguments, not one empty string.
func parseTask(tok string) (action.RunTask, error) {
	m := taskPattern.FindStringSubmatch(tok)
	if m == nil {
		return action.RunTask{}, &ParseError{Token: tok, Reason: "expected task or task(arg,...)"}
	}

	name := m[taskPattern.SubexpIndex("name")]
	argList := m[taskPattern.SubexpIndex("args")]

	args := []string{}
	if argList != "" {
		args = strings.Split(argList, ",")
	}
	return action.RunTask{Name: name, Args: args, Kwargs: map[string]string{}}, nil
}
