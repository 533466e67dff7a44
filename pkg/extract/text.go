// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import "strings"

// extractText decodes a plain text upload.
func extractText(content []byte) (string, error) {
	text, err := DecodeText(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
