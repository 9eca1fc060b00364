package ingestion

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
)

// PageText is the text of one page, numbered from 1.
type PageText struct {
	Number int
	Text   string
}

// PageExtractor decodes a document into per-page text.
// An error means the document as a whole could not be read.
type PageExtractor interface {
	ExtractPages(data []byte) ([]PageText, error)
}

// PDFExtractor reads PDFs with github.com/ledongthuc/pdf.
type PDFExtractor struct {
	// Logf receives per-page failures. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// ExtractPages returns the text of every readable page. Pages that fail are
// logged and skipped.
func (e *PDFExtractor) ExtractPages(data []byte) (pages []PageText, err error) {
	logf := e.Logf
	if logf == nil {
		logf = log.Printf
	}

	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	total := reader.NumPage()
	pages = make([]PageText, 0, total)
	for i := 1; i <= total; i++ {
		text, pageErr := readPage(reader, i)
		if pageErr != nil {
			logf("Error extracting text from page %d: %v", i, pageErr)
			continue
		}
		pages = append(pages, PageText{Number: i, Text: text})
	}
	return pages, nil
}

func readPage(reader *pdf.Reader, number int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("panic: %v", r)
		}
	}()

	page := reader.Page(number)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// StubExtractor returns fixed pages, or Err when set.
type StubExtractor struct {
	Pages []PageText
	Err   error
}

// ExtractPages implements PageExtractor.
func (s *StubExtractor) ExtractPages(data []byte) ([]PageText, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Pages, nil
}

// StubPages builds numbered pages from plain strings.
func StubPages(texts ...string) []PageText {
	pages := make([]PageText, len(texts))
	for i, text := range texts {
		pages[i] = PageText{Number: i + 1, Text: text}
	}
	return pages
}
