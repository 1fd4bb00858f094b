package adapter

import (
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
	"graderecorder.dev/pkg/graderecorder/pkg"
)

// ResultSink persists computed GPAs.
type ResultSink interface {
	// Supports reports whether results can be written with extension ext.
	Supports(ext string) bool
	// Write replaces outputFile with one row per result. On failure no
	// output file is left behind.
	Write(ctx context.Context, results []m.GpaResult, outputFile m.Path) error
}

type resultEncoder func(w io.Writer, results []m.GpaResult) error

// LocalResultSink writes result files through an FSAdapter.
type LocalResultSink struct {
	fsAdapter FSAdapter
	encoders  map[string]resultEncoder
}

// NewLocalResultSink constructs a ResultSink backed by fsAdapter.
func NewLocalResultSink(fsAdapter FSAdapter) *LocalResultSink {
	return &LocalResultSink{
		fsAdapter: fsAdapter,
		encoders: map[string]resultEncoder{
			".csv":  encodeDelimited(','),
			".txt":  encodeDelimited('\t'),
			".xml":  encodeXML,
			".xlsx": encodeXLSX,
		},
	}
}

// Supports implements ResultSink.
func (s *LocalResultSink) Supports(ext string) bool {
	_, ok := s.encoders[strings.ToLower(ext)]
	return ok
}

// Write implements ResultSink.
func (s *LocalResultSink) Write(ctx context.Context, results []m.GpaResult, outputFile m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(string(outputFile)))

	encode, ok := s.encoders[ext]
	if !ok {
		return fmt.Errorf("%w: output extension %q", m.ErrUnsupportedFormat, ext)
	}

	file, err := pkg.NewAtomicFile(s.fsAdapter.Fs(), string(outputFile))
	if err != nil {
		return classifyFSError(outputFile, err)
	}

	defer func() { _ = file.Close() }()

	if err := encode(file, results); err != nil {
		slog.Error("failed to encode results", "path", outputFile, "error", err)
		return fmt.Errorf("encode results to %s: %w", outputFile, err)
	}

	if err := file.Commit(); err != nil {
		return classifyFSError(outputFile, err)
	}

	slog.Info("wrote results", "path", outputFile, "rows", len(results))

	return nil
}

func encodeDelimited(delimiter rune) resultEncoder {
	return func(w io.Writer, results []m.GpaResult) error {
		writer := csv.NewWriter(w)
		writer.Comma = delimiter

		for _, result := range results {
			if err := writer.Write([]string{result.StudentID, result.FormattedGPA()}); err != nil {
				return err
			}
		}

		writer.Flush()

		return writer.Error()
	}
}

type xmlResults struct {
	XMLName xml.Name    `xml:"Results"`
	Results []xmlResult `xml:"Result"`
}

type xmlResult struct {
	StudentID string `xml:"StudentId"`
	GPA       string `xml:"Gpa"`
}

func encodeXML(w io.Writer, results []m.GpaResult) error {
	doc := xmlResults{Results: make([]xmlResult, 0, len(results))}
	for _, result := range results {
		doc.Results = append(doc.Results, xmlResult{StudentID: result.StudentID, GPA: result.FormattedGPA()})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

const resultSheet = "Sheet1"

func encodeXLSX(w io.Writer, results []m.GpaResult) error {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	for i, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		gpa, _ := result.GPA.Round(2).Float64()
		if err := book.SetSheetRow(resultSheet, cell, &[]interface{}{result.StudentID, gpa}); err != nil {
			return err
		}
	}

	return book.Write(w)
}
