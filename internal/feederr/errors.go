// Package feederr defines the error kinds a feed load can fail with.
package feederr

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport covers network failures and non-success HTTP statuses
	KindTransport
	// KindShape is a JSON document without an articles array
	KindShape
	// KindParse is a payload that cannot be decoded in the expected format
	KindParse
	// KindEmptyFeed is a feed that yielded no valid entries
	KindEmptyFeed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindShape:
		return "shape"
	case KindParse:
		return "parse"
	case KindEmptyFeed:
		return "empty_feed"
	default:
		return "unknown"
	}
}

// Error is a classified load failure
type Error struct {
	Kind       Kind
	Source     string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a classified error wrapping err
func New(kind Kind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
