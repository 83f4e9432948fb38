package services

import (
	"errors"
	"fmt"
)

// ErrDateNotFound is returned by MenuStore.Load for a date never acquired.
var ErrDateNotFound = errors.New("date not found in menu store")

// FetchError reports a page that could not be retrieved.
type FetchError struct {
	Hall       string
	Date       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s menu for %s: status %d", e.Hall, e.Date, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s menu for %s: %v", e.Hall, e.Date, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a page missing an element the parser depends on.
type ParseError struct {
	Element string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse menu page: %s: %s", e.Element, e.Reason)
}

func missingElement(element string) *ParseError {
	return &ParseError{Element: element, Reason: "not found"}
}

// StoreError reports an unreadable or invalid menu store document.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("menu store %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
