// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch routes tokenized queries through an ordered
// pattern-action table and returns the matched handler's answers.
package dispatch

import (
	"context"

	"github.com/pdiddy/wikifacts/internal/pattern"
)

// Sentinel answer lines. Dispatch never fails for ordinary "no match"
// or "no answer" cases; it reports them as these values.
const (
	NoAnswers      = "No answers"
	DontUnderstand = "I don't understand"
)

// Result is the outcome of one dispatched query. Terminate is set when
// a handler asks the caller's loop to stop (e.g. the "bye" pattern);
// Answers carries the lines to print otherwise.
type Result struct {
	Answers   []string
	Terminate bool
}

// Handler consumes the wildcard capture of a matched pattern and
// produces answers. Handlers may perform external I/O; a returned
// error is reported to the user for that query only and never stops
// the calling loop. Handlers must not retain or mutate the capture.
type Handler func(ctx context.Context, capture []string) (Result, error)

// Entry binds one pattern to its handler.
type Entry struct {
	Pattern pattern.Pattern
	Handler Handler
}

// Table is the ordered pattern-action list. It is built once at
// startup and read-only thereafter; when several patterns match the
// same input, the earliest entry wins.
type Table struct {
	entries []Entry
}

// NewTable builds a table from entries, preserving their order.
func NewTable(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Dispatch finds the first entry whose pattern matches tokens and
// invokes its handler with the captured tokens. A handler error
// becomes the single answer line for this query. When no pattern
// matches, the DontUnderstand sentinel is returned, followed by a
// "did you mean" line if some table pattern is close to the input.
func (t *Table) Dispatch(ctx context.Context, tokens []string) Result {
	for _, e := range t.entries {
		capture, ok := pattern.Match(e.Pattern, tokens)
		if !ok {
			continue
		}

		res, err := e.Handler(ctx, capture)
		if err != nil {
			return Result{Answers: []string{err.Error()}}
		}
		if res.Terminate {
			return res
		}
		if len(res.Answers) == 0 {
			return Result{Answers: []string{NoAnswers}}
		}
		return res
	}

	answers := []string{DontUnderstand}
	if hint := t.suggest(tokens); hint != "" {
		answers = append(answers, "Did you mean: "+hint+"?")
	}
	return Result{Answers: answers}
}
