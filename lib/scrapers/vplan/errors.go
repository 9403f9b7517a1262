package vplan

import (
	"errors"
	"fmt"
)

// TransportError is returned when a page could not be retrieved, either
// because the request failed or because the site answered with a non-2xx status.
type TransportError struct {
	Page   int
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch page %d: %s", e.Page, e.Err.Error())
	}
	return fmt.Sprintf("fetch page %d: unexpected status %d", e.Page, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StructuralExtractionError is returned when an element required to read a
// page is missing from its markup.
type StructuralExtractionError struct {
	Element string
}

func (e *StructuralExtractionError) Error() string {
	return fmt.Sprintf("%s not found", e.Element)
}

// RowShapeError is returned when a table row has fewer cells than there are
// columns, Column names the first missing one.
type RowShapeError struct {
	Row    int
	Column string
	Have   int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d: %s element not found (row has %d cells)", e.Row, e.Column, e.Have)
}

// ErrPageLimit is returned when the page sequence did not repeat a
// navigation token within the maximum number of pages.
var ErrPageLimit = errors.New("page limit reached before pagination terminated")
