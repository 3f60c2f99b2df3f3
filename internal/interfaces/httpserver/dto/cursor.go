package dto

import (
	"encoding/base64"
	"fmt"
)

// The pagination cursor is the storage driver's page state. It crosses the
// API boundary base64-framed but otherwise untouched; it is never parsed or
// reconstructed from a page number.

// EncodeCursor frames a page state for the HTTP response. An empty state
// encodes to "" meaning no further pages.
func EncodeCursor(pageState []byte) string {
	if len(pageState) == 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(pageState)
}

// DecodeCursor unframes a caller-supplied cursor. An empty cursor yields a
// nil state, selecting the first page.
func DecodeCursor(cursor string) ([]byte, error) {
	if cursor == "" {
		return nil, nil
	}
	state, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	return state, nil
}
