package epub

import (
	"errors"
	"fmt"
)

// FailureKind separates archive-level I/O failures from failures parsing the
// package structure.
type FailureKind int

const (
	FailureIO FailureKind = iota
	FailureParse
)

func (k FailureKind) String() string {
	switch k {
	case FailureIO:
		return "io"
	case FailureParse:
		return "parse"
	}
	return "unknown"
}

// OpenError is the failure opening an archive: which phase failed, the
// archive path, and the underlying cause.
type OpenError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %s error: %v", e.Path, e.Kind, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

func ioError(path string, err error) error {
	return &OpenError{Kind: FailureIO, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &OpenError{Kind: FailureParse, Path: path, Err: err}
}

var (
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
	ErrMimetypeCompressed = errors.New("mimetype file must be stored without compression")
	ErrInvalidMimetype    = errors.New("mimetype is not application/epub+zip")
	ErrContainerNotFound  = errors.New("META-INF/container.xml not found")
	ErrOPFPathNotFound    = errors.New("container.xml declares no OPF package path")
)
