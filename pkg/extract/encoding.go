// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnreadableEncoding is returned when no candidate encoding can decode the input.
var ErrUnreadableEncoding = errors.New("unable to decode text with any supported encoding")

var errInvalidUTF8 = errors.New("invalid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoder is a single decode attempt.
type decoder struct {
	name   string
	decode func([]byte) (string, error)
}

// candidateEncodings is tried in order. UTF-8 must stay first: it is the only
// candidate that reliably rejects malformed input, the single-byte fallbacks
// accept almost anything.
var candidateEncodings = []decoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "windows-1252", decode: decodeCharmap(charmap.Windows1252)},
	{name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1)},
}

// DecodeText converts raw bytes claimed to be plain text into a UTF-8 string
// using the first candidate encoding that succeeds.
func DecodeText(content []byte) (string, error) {
	text, _, err := decodeWith(candidateEncodings, content)
	return text, err
}

// decodeWith returns the decoded text and the name of the encoding used.
func decodeWith(candidates []decoder, content []byte) (string, string, error) {
	for _, c := range candidates {
		text, err := c.decode(content)
		if err != nil {
			continue
		}
		return text, c.name, nil
	}
	return "", "", ErrUnreadableEncoding
}

func decodeUTF8(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", errInvalidUTF8
	}
	return string(content), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(content []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(content)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
