// Package attach loads files the user attaches as reference material for a
// prompt.
package attach

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupported is returned for binary files that are not PDFs.
var ErrUnsupported = errors.New("unsupported attachment type")

// maxTextBytes caps plain-text attachments; larger files are truncated.
const maxTextBytes = 2 << 20

var extraneousWhitespace = regexp.MustCompile(`[ \t\r\f\v]+`)

// File is an attachment with its extracted text.
type File struct {
	Path    string
	Name    string
	Content string
	Lines   int
}

// Load reads path and extracts its text. PDFs go through the PDF text layer;
// everything else must be valid UTF-8 text.
func Load(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	var content string
	if isPDF(abs) {
		content, err = pdfText(abs)
	} else {
		content, err = plainText(abs)
	}
	if err != nil {
		return File{}, err
	}
	return File{
		Path:    abs,
		Name:    filepath.Base(abs),
		Content: content,
		Lines:   strings.Count(content, "\n") + 1,
	}, nil
}

func isPDF(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 5)
	n, _ := io.ReadFull(f, head)
	return bytes.Equal(head[:n], []byte("%PDF-"))
}

func pdfText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return dropPageFurniture(normalize(builder.String())), nil
}

func plainText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxTextBytes))
	if err != nil {
		return "", err
	}
	if len(data) == maxTextBytes {
		data = dropPartialRune(data)
	}
	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	kind := http.DetectContentType(sniff)
	if !strings.HasPrefix(kind, "text/") || bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", fmt.Errorf("%s (%s): %w", filepath.Base(path), kind, ErrUnsupported)
	}
	return normalize(string(data)), nil
}

// dropPartialRune cuts a multi-byte rune split by truncation.
func dropPartialRune(data []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(data); i++ {
		start := len(data) - i
		if !utf8.RuneStart(data[start]) {
			continue
		}
		if !utf8.FullRune(data[start:]) {
			return data[:start]
		}
		break
	}
	return data
}

func normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
