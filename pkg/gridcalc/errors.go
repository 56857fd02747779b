package gridcalc

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidDocument indicates a persisted document could not be decoded
// into a sheet state.
var ErrInvalidDocument = errors.New("invalid document")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrRangeTooLarge indicates a formatting range covers more than
// MaxFormatCells addresses.
var ErrRangeTooLarge = errors.New("range too large")

// OperationError represents a failed session operation on one address.
type OperationError struct {
	Op      string // "set", "style", "select", "resize", ...
	Address string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Address, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, addr string, err error) *OperationError {
	return &OperationError{
		Op:      op,
		Address: addr,
		Err:     err,
	}
}

// SheetError represents an error while reading or writing one worksheet.
type SheetError struct {
	SheetName string
	Component string // "cells", "styles", "dimensions"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
