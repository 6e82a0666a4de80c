package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/clients/gcp"
	"github.com/edtrack/calendar-backend/internal/logger"
)

// Extractor recovers text and structured rows from uploaded files. True type
// is sniffed from magic bytes; the claimed extension and mime type are only
// used to produce better error messages. Scanned PDFs and images go through
// the OCR clients when those are configured.
type Extractor struct {
	log    *logger.Logger
	doc    gcp.Document
	vision gcp.Vision
	cfg    *ScrapeConfig
}

func NewExtractor(log *logger.Logger, doc gcp.Document, vision gcp.Vision, cfg *ScrapeConfig) *Extractor {
	if cfg == nil {
		cfg = DefaultScrapeConfig()
	}
	return &Extractor{
		log:    log.With("service", "Extractor"),
		doc:    doc,
		vision: vision,
		cfg:    cfg,
	}
}

// ExtractText returns the file's text and the detected file type
// (pdf, docx, csv, html, text, image).
func (e *Extractor) ExtractText(ctx context.Context, originalName, mimeType string, data []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	if len(data) == 0 {
		return "", "", fmt.Errorf("empty file: name=%s mime=%s", originalName, mimeType)
	}

	switch {
	case isPDF(data):
		text, err := e.extractPDF(ctx, data)
		return text, "pdf", err
	case isZip(data):
		text, err := extractDOCX(data)
		return text, "docx", err
	case isPNG(data), isJPEG(data):
		text, err := e.ocrImage(ctx, data, mt)
		return text, "image", err
	case mt == "text/csv" || ext == ".csv":
		return string(data), "csv", nil
	case looksLikeHTML(data) || mt == "text/html" || ext == ".html" || ext == ".htm":
		return extractHTML(string(data)), "html", nil
	case isProbablyText(data):
		return string(data), "text", nil
	}

	if mt == "application/pdf" || ext == ".pdf" {
		return "", "", fmt.Errorf("file claims pdf but missing %%PDF header: name=%s mime=%s", originalName, mimeType)
	}
	if ext == ".docx" || mt == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		return "", "", fmt.Errorf("file claims docx but is not a valid zip container: name=%s mime=%s", originalName, mimeType)
	}
	return "", "", fmt.Errorf("unsupported file type: name=%s ext=%s mime=%s", originalName, ext, mimeType)
}

// CalendarRows recovers calendar rows from extracted text: every line with a
// recognizable date becomes one raw row, classified by the keyword tables.
func (e *Extractor) CalendarRows(text string) []calendar.RawRow {
	var rows []calendar.RawRow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		dateStr := ExtractDateString(line)
		if dateStr == "" {
			continue
		}
		rows = append(rows, calendar.RawRow{
			"date":          dateStr,
			"title":         line,
			"is_school_day": e.cfg.IsSchoolDay("", line),
			"day_type":      e.cfg.DayType("", line),
			"notes":         line,
		})
	}
	return rows
}

var lessonHeading = regexp.MustCompile(`(?i)^(lesson|unit|module|chapter|activity|assignment)\b`)

// Lessons recovers a lesson list from extracted text. Lines that open with a
// lesson-like heading start a new lesson; everything until the next heading
// is that lesson's content.
func (e *Extractor) Lessons(text string, classID int, source string) []calendar.Lesson {
	var lessons []calendar.Lesson
	var current *calendar.Lesson
	var content strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		body := strings.TrimSpace(content.String())
		dur := ParseDuration(body)
		current.DurationHours = dur.Hours
		current.DurationType = dur.Type
		current.SequenceNumber = dur.SequenceNumber
		current.TotalSequence = dur.TotalSequence
		current.Notes = body
		current.Content = body
		lessons = append(lessons, *current)
		current = nil
		content.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if lessonHeading.MatchString(trimmed) {
			flush()
			current = &calendar.Lesson{
				ClassID:      classID,
				LessonNumber: len(lessons) + 1,
				Title:        trimmed,
				Status:       "planned",
				SourceFile:   source,
				FileType:     "file",
			}
			content.WriteString(trimmed)
			content.WriteString("\n")
			continue
		}
		if current != nil && trimmed != "" {
			content.WriteString(trimmed)
			content.WriteString("\n")
		}
	}
	flush()
	return lessons
}

// ParseCSVRows reads a header-first CSV into raw rows keyed by column name.
func ParseCSVRows(data []byte) ([]calendar.RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []calendar.RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
		row := calendar.RawRow{}
		for i, v := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(v)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ---------- sniff helpers ----------

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isPNG(b []byte) bool {
	return len(b) >= 8 && bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
}

func isJPEG(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF
}

func looksLikeHTML(b []byte) bool {
	s := strings.ToLower(string(b[:minInt(len(b), 2048)]))
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return true
	}
	return strings.Contains(s, "<html") && strings.Contains(s, "</html>")
}

func isProbablyText(b []byte) bool {
	sample := b[:minInt(len(b), 4096)]
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ---------- extractors ----------

// extractPDF reads the text layer first; scanned PDFs with no text layer
// fall through to Document AI when it is configured.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, err := pdfTextLayer(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if e.doc == nil {
		if err != nil {
			return "", fmt.Errorf("pdf text layer: %w (OCR not configured)", err)
		}
		return "", fmt.Errorf("pdf has no text layer and OCR is not configured")
	}
	res, ocrErr := e.doc.ProcessBytes(ctx, data, "application/pdf")
	if ocrErr != nil {
		return "", fmt.Errorf("pdf ocr: %w", ocrErr)
	}
	return strings.Join(res.PageTexts, "\n"), nil
}

func pdfTextLayer(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

func (e *Extractor) ocrImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if e.vision == nil {
		return "", fmt.Errorf("image upload but vision OCR is not configured")
	}
	res, err := e.vision.OCRImageBytes(ctx, data, mimeType)
	if err != nil {
		return "", err
	}
	return res.PrimaryText, nil
}

// extractDOCX gathers <w:t> runs from word/document.xml.
func extractDOCX(zipBytes []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return "", fmt.Errorf("docx zip: %w", err)
	}
	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("zip does not look like docx (no word/document.xml)")
	}
	rc, err := docXML.Open()
	if err != nil {
		return "", err
	}
	raw, _ := io.ReadAll(rc)
	_ = rc.Close()

	dec := xml.NewDecoder(bytes.NewReader(raw))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "t":
			var v string
			_ = dec.DecodeElement(&v, &se)
			out.WriteString(v)
		case "p":
			out.WriteString("\n")
		}
	}
	s := strings.TrimSpace(out.String())
	if s == "" {
		return "", fmt.Errorf("no text extracted from docx")
	}
	return s, nil
}

var htmlTag = regexp.MustCompile(`(?s)<[^>]*>`)

func extractHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.Join(strings.Fields(line), " "); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
