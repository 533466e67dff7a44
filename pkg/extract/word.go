// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	wordNamespace         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	markupCompatNamespace = "http://schemas.openxmlformats.org/markup-compatibility/2006"

	documentPart = "word/document.xml"

	// maxDocumentXMLSize bounds the decompressed main document part.
	maxDocumentXMLSize = 8 * MaxFileSize
)

// oleSignature starts every Compound File Binary document (legacy .doc).
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var errLegacyWord = errors.New("legacy binary Word documents are not supported, save the file as .docx")

// extractWord extracts paragraph text from a Word document. Modern packages
// (.docx) are read from word/document.xml. A .doc that is really an HTML
// export is read as HTML.
func extractWord(content []byte) (string, error) {
	if bytes.HasPrefix(content, oleSignature) {
		return "", errLegacyWord
	}
	if strings.HasPrefix(http.DetectContentType(content), "text/html") {
		return extractWordHTML(content)
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("open document: %s not found", documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	text, err := paragraphText(io.LimitReader(rc, maxDocumentXMLSize))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// paragraphText walks WordprocessingML and writes each paragraph followed by
// a newline. Only run content counts; mc:Fallback duplicates mc:Choice and is
// skipped.
func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	runDepth, fallbackDepth := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isFallback(t.Name) {
				fallbackDepth++
				continue
			}
			if fallbackDepth > 0 || t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				runDepth++
			case "t":
				if runDepth == 0 {
					continue
				}
				var s string
				if err := dec.DecodeElement(&s, &t); err != nil {
					return "", fmt.Errorf("parse %s: %w", documentPart, err)
				}
				sb.WriteString(s)
			case "tab":
				if runDepth > 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if isFallback(t.Name) {
				fallbackDepth--
				continue
			}
			if fallbackDepth > 0 || t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				runDepth--
			case "p":
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String(), nil
}

func isFallback(name xml.Name) bool {
	return name.Space == markupCompatNamespace && name.Local == "Fallback"
}

// blockElements end a line of text in HTML exports.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "blockquote": true, "pre": true,
}

// extractWordHTML extracts paragraph text from a Word HTML export, honouring
// the charset the document declares.
func extractWordHTML(content []byte) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(content), "text/html")
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var sb, line strings.Builder
	flush := func() {
		if s := strings.Join(strings.Fields(line.String()), " "); s != "" {
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
		line.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			line.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}
	walk(doc)
	flush()

	return strings.TrimSpace(sb.String()), nil
}
