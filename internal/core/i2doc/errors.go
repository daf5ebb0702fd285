package i2doc

import "errors"

var (
	// ErrParse is returned when the input is not well-formed JSON.
	ErrParse = errors.New("malformed json")
	// ErrSchema is returned when no terms array is found at a known location.
	ErrSchema = errors.New("invalid I2 Languages structure: could not find the mTerms array")
	// ErrIO wraps filesystem failures while reading or writing a document.
	ErrIO = errors.New("file i/o")
	// ErrTermNotFound is returned by key-based accessors for an unknown key.
	ErrTermNotFound = errors.New("term not found")
	// ErrUnknownLanguage is returned when a language selector matches nothing.
	ErrUnknownLanguage = errors.New("unknown language")
)
