package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrPathNotFound ErrorType = iota
	ErrMalformedContainer
	ErrReport
	ErrSigning
	ErrFileOp
	ErrInvalidConfig
	ErrCommand
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrPathNotFound:
		return "PathNotFound"
	case ErrMalformedContainer:
		return "MalformedContainer"
	case ErrReport:
		return "Report"
	case ErrSigning:
		return "Signing"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrCommand:
		return "Command"
	default:
		return "Unknown"
	}
}

// PhotoMetaError represents an error while extracting or reporting metadata
type PhotoMetaError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *PhotoMetaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *PhotoMetaError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is a PhotoMetaError of type t
func IsType(err error, t ErrorType) bool {
	var pe *PhotoMetaError
	if errors.As(err, &pe) {
		return pe.Type == t
	}
	return false
}
