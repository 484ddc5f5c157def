package models

import "fmt"

// SchemaError reports a required column missing from a feed table. It is
// fatal for the whole snapshot build; no column is ever synthesized.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: required column %q missing", e.Table, e.Column)
}

// DataFormatError reports a malformed date or numeric value in a feed row.
// Rows are never silently dropped; the error aborts the whole build.
type DataFormatError struct {
	Table string
	Field string
	Line  int
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("table %s line %d: bad %s value: %v", e.Table, e.Line, e.Field, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }
