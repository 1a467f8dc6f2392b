package core

import (
	"errors"

	"sqe/internal/core/domain"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextDecoder turns file content into UTF-8 text. UTF-8 and UTF-16 byte order marks
// are honoured; content without a BOM must be valid UTF-8.
type TextDecoder struct{}

func ProvideTextDecoder() TextDecoder {
	return TextDecoder{}
}

func (d TextDecoder) Decode(path string, content []byte) (string, error) {
	decoder := unicode.BOMOverride(encoding.UTF8Validator)
	text, n, err := transform.Bytes(decoder, content)
	if err != nil {
		cause := err
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			cause = encoding.ErrInvalidUTF8
		}
		return "", &domain.EncodingError{Path: path, Offset: int64(n), Cause: cause}
	}
	return string(text), nil
}

// Validate checks that content decodes without touching it.
func (d TextDecoder) Validate(path string, content []byte) error {
	_, err := d.Decode(path, content)
	return err
}
