// Package base64 handles data URLs of the form data:<mime>;base64,<payload>.
package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	prefix = "data:"
	marker = ";base64,"
)

var ErrInvalidDataURL = errors.New("invalid data url")

func GetContentType(file string) string {
	if !strings.HasPrefix(file, prefix) {
		return ""
	}

	end := strings.Index(file, marker)
	if end <= len(prefix) {
		return ""
	}

	return file[len(prefix):end]
}

// Decode returns the payload bytes and content type of a data URL.
func Decode(file string) ([]byte, string, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return nil, "", ErrInvalidDataURL
	}

	payload := file[strings.Index(file, marker)+len(marker):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return data, contentType, nil
}
