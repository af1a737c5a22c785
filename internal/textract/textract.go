// Package textract turns uploaded documents into plain text for the parser.
package textract

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MaxBytes is the largest document accepted for decoding.
const MaxBytes = 10 << 20

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrDecode      = errors.New("could not decode document")
	ErrTooLarge    = errors.New("document is too large")
	ErrEmpty       = errors.New("no text could be extracted from the document")
)

type decoder func(data []byte) (string, error)

var decoders = map[string]decoder{
	".pdf":  decodePDF,
	".docx": decodeDocx,
	".doc":  decodeDocx,
	".txt":  decodeText,
	".text": decodeText,
	".md":   decodeText,
	".html": decodeHTML,
	".htm":  decodeHTML,
}

// Supported lists the accepted file extensions.
func Supported() []string {
	out := make([]string, 0, len(decoders))
	for ext := range decoders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Ext returns the lower-cased extension of a file name.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
}

// Decode extracts plain text from data according to the extension of name.
func Decode(name string, data []byte) (string, error) {
	ext := Ext(name)
	decode, ok := decoders[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q, supported types: %s", ErrUnsupported, ext, strings.Join(Supported(), ", "))
	}
	if len(data) > MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, len(data), MaxBytes)
	}

	text, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrDecode, name, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}
