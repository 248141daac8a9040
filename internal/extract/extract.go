package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-quality/internal/shared/apperr"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText  = "text/plain"
	mimeMD    = "text/markdown"
	mimeZip   = "application/zip"
	mimeOctet = "application/octet-stream"
)

var (
	// ErrUnsupportedType is returned for payloads that are not PDF, DOCX or plain text.
	ErrUnsupportedType = fmt.Errorf("%w: unsupported document type", apperr.ErrValidation)
	// ErrEmptyDocument is returned when nothing readable was extracted.
	ErrEmptyDocument = fmt.Errorf("%w: document contains no text", apperr.ErrValidation)
)

// Text extracts plain text from an uploaded document.
// The declared mime type is trusted unless it is generic, in which case the file
// extension and payload are sniffed.
func Text(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	normalized := DetectType(mimeType, fileName, data)

	var (
		text string
		err  error
	)
	switch normalized {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeText, mimeMD:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedType)
		}
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", normalized, err)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// DetectType resolves the effective mime type of an upload.
func DetectType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF, MimeDOCX, MimeText, mimeMD:
		return clean
	case "", mimeZip, mimeOctet:
	default:
		return clean
	}

	if clean == mimeZip || bytes.HasPrefix(data, []byte("PK")) {
		if isDOCX(data) {
			return MimeDOCX
		}
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	case ".md":
		return mimeMD
	}

	sniffed := strings.Split(http.DetectContentType(data), ";")[0]
	if sniffed == MimeText || sniffed == MimePDF {
		return sniffed
	}
	if clean == "" {
		return sniffed
	}
	return clean
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

const docxBodyPath = "word/document.xml"

var errNoDocxBody = errors.New("docx archive has no " + docxBodyPath)

// docxBody locates the main document part of a DOCX archive.
func docxBody(data []byte) (*zip.File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == docxBodyPath {
			return f, nil
		}
	}
	return nil, errNoDocxBody
}

func isDOCX(data []byte) bool {
	_, err := docxBody(data)
	return err == nil
}

// extractDOCX streams the text runs of the document part. Paragraph and break
// ends become newlines and tab elements become tabs.
func extractDOCX(data []byte) (string, error) {
	body, err := docxBody(data)
	if err != nil {
		return "", err
	}
	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var (
		out    strings.Builder
		inText bool
	)
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", docxBodyPath, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				if out.Len() > 0 {
					out.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}
