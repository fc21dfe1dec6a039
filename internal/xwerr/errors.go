// Package xwerr defines the error kinds surfaced by the crossword filler.
//
// Callers should test the kind of a returned error with errors.Is against one
// of the sentinels below rather than inspecting error strings.
package xwerr

import "errors"

var (
	// ErrInvalidLayout covers malformed layout CSVs: non-rectangular rows,
	// cells that are neither empty, "_", nor a single letter.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidWordList covers word-list ingestion failures: a CSV missing
	// the "answer" column, an I/O failure, or an empty effective catalogue.
	ErrInvalidWordList = errors.New("invalid word list")

	// ErrInconsistentFixedLetters covers two fixed letters that disagree at
	// a shared cell between a horizontal and a vertical entry.
	ErrInconsistentFixedLetters = errors.New("inconsistent fixed letters")

	// ErrExhausted is not a failure: it marks a search that finished its
	// iteration budget without reaching a reward of 1. Callers should still
	// use the returned (partial) result.
	ErrExhausted = errors.New("search exhausted without a complete fill")

	// ErrInternal marks an invariant violation that should never happen if
	// the core is implemented correctly.
	ErrInternal = errors.New("internal invariant violation")
)
