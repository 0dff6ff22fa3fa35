package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/destoken/internal/errors"
	"github.com/mcncl/destoken/internal/models"
)

// StdinPath is the file argument that makes ParseFile read standard input.
const StdinPath = "-"

type options struct {
	legacyTrailing bool
}

// Option configures the decoder.
type Option func(*options)

// WithLegacyTrailing reproduces the original tool's handling of a literal that
// is not followed by a comma or newline: it is never flushed when its
// container closes or the input ends, so `{"destination": "X"}` loses "X".
// By default such literals are bound before the container closes.
func WithLegacyTrailing() Option {
	return func(o *options) {
		o.legacyTrailing = true
	}
}

// Decode converts JSON-like text into an ordered object tree in a single forward
// pass. The decoder is lenient: it does not process escape sequences, does not
// match bracket types and drops values that have no key inside an object.
func Decode(text string, opts ...Option) (*models.Object, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	sc := newScanner(text)
	b := newBuilder(o)
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		if err := b.apply(tok); err != nil {
			return nil, err
		}
	}

	if sc.inString {
		return nil, parseError(errors.ErrUnterminatedString, sc.stringStart, "string literal never closed")
	}
	return b.finish(len(text))
}

// Parse reads all of reader and decodes it
func Parse(reader io.Reader, opts ...Option) (*models.Object, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return Decode(string(data), opts...)
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (*models.Object, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Decode(jsonString, opts...)
}

// ParseFile parses JSON from a file path, or from stdin when the path is "-".
// The file is read completely and closed before decoding starts.
func ParseFile(filePath string, opts ...Option) (*models.Object, error) {
	if filePath == StdinPath {
		return Parse(os.Stdin, opts...)
	}
	data, err := readFile(filePath)
	if err != nil {
		return nil, err
	}
	return Decode(string(data), opts...)
}

func readFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return nil, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	return data, nil
}
