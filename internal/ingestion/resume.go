// Package ingestion turns an uploaded résumé PDF into a stored ResumeProfile.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/apply-assistant/internal/llm"
	"github.com/jonathan/apply-assistant/internal/types"
)

const pdfMediaType = "application/pdf"

// ResumeFile is an uploaded file. DeclaredType is the media type reported by
// the uploader; when empty or generic it is sniffed from Data.
type ResumeFile struct {
	Name         string
	Data         []byte
	DeclaredType string
}

// Structurer turns raw résumé text into a profile.
type Structurer interface {
	StructureResume(ctx context.Context, text string) (*types.ResumeProfile, error)
}

// ResumeStore persists the structured résumé and its file name.
type ResumeStore interface {
	SaveResume(ctx context.Context, profile *types.ResumeProfile, fileName string) error
}

// Result describes a successful upload.
type Result struct {
	FileName string
	Profile  *types.ResumeProfile
	Pages    int
	Chars    int
	Message  string
}

// Ingestor runs the upload pipeline: type check, page extraction, AI structuring, store.
type Ingestor struct {
	extractor  PageExtractor
	structurer Structurer
	store      ResumeStore
	Verbose    bool
}

// NewIngestor wires an Ingestor.
func NewIngestor(extractor PageExtractor, structurer Structurer, store ResumeStore) *Ingestor {
	if extractor == nil {
		extractor = &PDFExtractor{}
	}
	return &Ingestor{extractor: extractor, structurer: structurer, store: store}
}

// Ingest processes one file. Storage is written only when every step succeeds.
func (i *Ingestor) Ingest(ctx context.Context, file ResumeFile) (*Result, error) {
	mediaType := ResolveMediaType(file)
	if i.Verbose {
		log.Printf("[VERBOSE] Resume %s: declared=%q resolved=%q (%d bytes)", file.Name, file.DeclaredType, mediaType, len(file.Data))
	}
	if mediaType != pdfMediaType {
		return nil, &Error{Kind: ErrUnsupportedFileType, File: file.Name}
	}

	pages, err := i.extractor.ExtractPages(file.Data)
	if err != nil {
		return nil, &Error{Kind: ErrExtraction, File: file.Name, Cause: err}
	}

	text := JoinPages(pages)
	if text == "" {
		return nil, &Error{Kind: ErrNoText, File: file.Name}
	}
	if i.Verbose {
		log.Printf("[VERBOSE] Extracted %d chars from %d pages", len(text), len(pages))
	}

	profile, err := i.structurer.StructureResume(ctx, text)
	if err != nil {
		return nil, &Error{Kind: classifyStructureError(err), File: file.Name, Cause: err}
	}

	if err := profile.Validate(); err != nil {
		log.Printf("Resume %s: extracted profile has suspicious fields: %v", file.Name, err)
	}

	if err := i.store.SaveResume(ctx, profile, file.Name); err != nil {
		return nil, &Error{Kind: ErrProcessing, File: file.Name, Cause: err}
	}

	return &Result{
		FileName: file.Name,
		Profile:  profile,
		Pages:    len(pages),
		Chars:    len(text),
		Message:  SuccessMessage,
	}, nil
}

// classifyStructureError separates "the model answered with something unusable"
// from "the model could not be reached".
func classifyStructureError(err error) error {
	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		return ErrInvalidFormat
	}
	return ErrAIUnavailable
}

// ResolveMediaType returns the file's base media type, sniffing content when
// the declared type is missing or generic.
func ResolveMediaType(file ResumeFile) string {
	declared := strings.TrimSpace(file.DeclaredType)
	if declared != "" {
		if base, _, err := mime.ParseMediaType(declared); err == nil {
			declared = base
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared)
	}
	if len(file.Data) == 0 {
		return ""
	}
	detected := mimetype.Detect(file.Data)
	base, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String()
	}
	return base
}

// ReadResumeFile loads a file from disk. The declared type comes from the
// extension, the way a browser reports it.
func ReadResumeFile(path string) (ResumeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResumeFile{}, &Error{Kind: ErrFileRead, File: filepath.Base(path), Cause: fmt.Errorf("read %s: %w", path, err)}
	}
	return ResumeFile{
		Name:         filepath.Base(path),
		Data:         data,
		DeclaredType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
	}, nil
}
