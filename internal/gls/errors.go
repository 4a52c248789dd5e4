//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for a corpus that cannot be displayed; test with errors.Is()
var (
	ErrSchemaMismatch    = errors.New("schema mismatch")
	ErrDanglingReference = errors.New("dangling reference")
	ErrNestedFootnote    = errors.New("nested footnote")
)

// BuildError - where a structural error sits in the corpus; Line, Word and Tier are -1 when they do not apply
type BuildError struct {
	Err      error
	Lang     string
	Line     int
	Word     int
	Tier     int
	Footnote string
	Ref      string
	Detail   string
}

func (e *BuildError) Error() string {
	var loc []string
	if e.Lang != "" {
		loc = append(loc, fmt.Sprintf("language %q", e.Lang))
	}
	if e.Line >= 0 {
		loc = append(loc, fmt.Sprintf("line %d", e.Line))
	}
	if e.Footnote != "" {
		loc = append(loc, fmt.Sprintf("footnote %q", e.Footnote))
	}
	if e.Word >= 0 {
		loc = append(loc, fmt.Sprintf("word %d", e.Word))
	}
	if e.Tier >= 0 {
		loc = append(loc, fmt.Sprintf("tier %d", e.Tier))
	}
	if e.Ref != "" {
		loc = append(loc, fmt.Sprintf("id %q", e.Ref))
	}

	s := e.Err.Error()
	if len(loc) > 0 {
		s += " at " + strings.Join(loc, ", ")
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *BuildError) Unwrap() error { return e.Err }

// at - a copy of the locating fields with a new error attached
func (e BuildError) at(err error, detail string) *BuildError {
	e.Err = err
	e.Detail = detail
	return &e
}
