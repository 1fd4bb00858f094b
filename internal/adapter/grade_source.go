package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// GradeFileExtensions lists the grade file formats GradeSource can read.
var GradeFileExtensions = []string{".csv", ".txt", ".xlsx"}

// GradeSource opens tabular grade files.
type GradeSource interface {
	// Open opens the grades file at path. The returned stream must be closed.
	Open(ctx context.Context, path m.Path) (RowStream, error)
}

// RowStream is an open grades file.
type RowStream interface {
	// Rows yields the data rows of the file. The sequence is lazy and can be
	// consumed only once; later calls yield nothing. A detected header row is
	// never yielded. Iteration stops after the first non-nil error.
	Rows(ctx context.Context) iter.Seq2[m.GradeRow, error]
	// Header returns the detected header row, if any, once Rows has started.
	Header() []string
	// Skipped returns how many rows were dropped for a field count mismatch.
	Skipped() int
	// Close releases the underlying file.
	Close() error
}

// rowReader produces raw records from a specific file format.
type rowReader interface {
	// Read returns the next non-empty record and its 1-based line number.
	// It returns io.EOF once the input is exhausted.
	Read() (line int, fields []string, err error)
	Close() error
}

// LocalGradeSource reads grade files through an FSAdapter.
type LocalGradeSource struct {
	fsAdapter FSAdapter
}

// NewLocalGradeSource constructs a GradeSource backed by fsAdapter.
func NewLocalGradeSource(fsAdapter FSAdapter) *LocalGradeSource {
	return &LocalGradeSource{fsAdapter: fsAdapter}
}

// Open implements GradeSource.
func (s *LocalGradeSource) Open(ctx context.Context, path m.Path) (RowStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(string(path)))
	if !containsExt(GradeFileExtensions, ext) {
		return nil, fmt.Errorf("%w: grades file %s", m.ErrUnsupportedFormat, path)
	}

	info, err := s.fsAdapter.FileInfo(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", m.ErrFileNotFound, path)
	}

	file, err := s.fsAdapter.Fs().Open(string(path))
	if err != nil {
		return nil, classifyFSError(path, err)
	}

	var reader rowReader

	switch ext {
	case ".csv":
		reader = newCSVRowReader(file)
	case ".txt":
		reader = newWhitespaceRowReader(file)
	case ".xlsx":
		reader, err = newXLSXRowReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("open spreadsheet %s: %w", path, err)
		}
	}

	slog.Debug("opened grades file", "path", path, "format", ext)

	return &rowStream{path: path, reader: reader}, nil
}

type rowStream struct {
	path     m.Path
	reader   rowReader
	header   []string
	skipped  int
	consumed bool
	closed   bool
}

func (s *rowStream) Header() []string {
	return s.header
}

func (s *rowStream) Skipped() int {
	return s.skipped
}

func (s *rowStream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.reader.Close(); err != nil {
		slog.Error("failed to close grades file", "path", s.path, "error", err)
		return err
	}

	return nil
}

func (s *rowStream) Rows(ctx context.Context) iter.Seq2[m.GradeRow, error] {
	return func(yield func(m.GradeRow, error) bool) {
		if s.consumed || s.closed {
			return
		}

		s.consumed = true

		first, ok, err := s.next(ctx)
		if err != nil {
			yield(m.GradeRow{}, err)
			return
		}

		if !ok {
			return
		}

		second, hasSecond, err := s.next(ctx)
		if err != nil {
			yield(m.GradeRow{}, err)
			return
		}

		width := len(first.Fields)

		if hasSecond && isHeaderRow(first.Fields, second.Fields) {
			s.header = first.Fields
			slog.Debug("detected header row", "path", s.path, "header", first.Fields)
		} else if !yield(first, nil) {
			return
		}

		pending, hasPending := second, hasSecond
		for hasPending {
			if len(pending.Fields) != width {
				s.skipped++
				slog.Warn("skipping malformed row", "path", s.path, "line", pending.Line,
					"fields", len(pending.Fields), "expected", width)
			} else if !yield(pending, nil) {
				return
			}

			pending, hasPending, err = s.next(ctx)
			if err != nil {
				yield(m.GradeRow{}, err)
				return
			}
		}
	}
}

func (s *rowStream) next(ctx context.Context) (m.GradeRow, bool, error) {
	if err := ctx.Err(); err != nil {
		return m.GradeRow{}, false, err
	}

	line, fields, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return m.GradeRow{}, false, nil
	}

	if err != nil {
		return m.GradeRow{}, false, fmt.Errorf("read %s: %w", s.path, err)
	}

	return m.GradeRow{Line: line, Fields: fields}, true, nil
}

// isHeaderRow reports whether first is a header: some field of first is not
// numeric while the corresponding field of the following row is.
func isHeaderRow(first, second []string) bool {
	for i := 0; i < len(first) && i < len(second); i++ {
		if !isNumeric(first[i]) && isNumeric(second[i]) {
			return true
		}
	}

	return false
}

func isNumeric(field string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	return err == nil
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}

	return false
}

func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}

	return out
}

func isBlankRecord(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
