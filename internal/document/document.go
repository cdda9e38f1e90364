// Package document loads Markdown documents as UTF-8 text.
package document

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"
)

// Document is the full, unmodified content of one Markdown file.
type Document struct {
	Name   string
	Source []byte
}

var (
	// ErrNotFound is reported when a document does not exist or cannot be read.
	ErrNotFound = errors.New("file not found or unreadable")
	// ErrDecode is reported when a document is not valid UTF-8 text.
	ErrDecode = errors.New("content is not valid UTF-8 text")
)

// InputError describes a document that could not be loaded. Kind is
// [ErrNotFound] or [ErrDecode]; Err is the underlying cause, if any.
type InputError struct {
	Path string
	Kind error
	Err  error
}

func (e *InputError) Error() string {
	msg := e.Path + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Read loads the document at path from the OS filesystem.
func Read(path string) (*Document, error) {
	src, err := os.ReadFile(path)

	return decode(path, src, err)
}

// Load loads the document name from fsys.
func Load(fsys fs.FS, name string) (*Document, error) {
	src, err := fs.ReadFile(fsys, name)

	return decode(name, src, err)
}

func decode(path string, src []byte, err error) (*Document, error) {
	if err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			err = perr.Err
		}

		return nil, &InputError{Path: path, Kind: ErrNotFound, Err: err}
	}

	if !utf8.Valid(src) {
		return nil, &InputError{Path: path, Kind: ErrDecode}
	}

	return &Document{Name: path, Source: src}, nil
}
