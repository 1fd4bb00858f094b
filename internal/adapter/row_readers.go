package adapter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type csvRowReader struct {
	closer io.Closer
	reader *csv.Reader
}

func newCSVRowReader(rc io.ReadCloser) *csvRowReader {
	reader := csv.NewReader(rc)
	// Field count mismatches are handled by the stream so they can be counted.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	return &csvRowReader{closer: rc, reader: reader}
}

func (r *csvRowReader) Read() (int, []string, error) {
	for {
		record, err := r.reader.Read()
		if err != nil {
			return 0, nil, err
		}

		if isBlankRecord(record) {
			continue
		}

		line, _ := r.reader.FieldPos(0)

		return line, trimFields(record), nil
	}
}

func (r *csvRowReader) Close() error {
	return r.closer.Close()
}

// whitespaceRowReader splits each line on runs of spaces and tabs.
type whitespaceRowReader struct {
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

func newWhitespaceRowReader(rc io.ReadCloser) *whitespaceRowReader {
	return &whitespaceRowReader{closer: rc, scanner: bufio.NewScanner(rc)}
}

func (r *whitespaceRowReader) Read() (int, []string, error) {
	for r.scanner.Scan() {
		r.line++

		fields := strings.Fields(r.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		return r.line, fields, nil
	}

	if err := r.scanner.Err(); err != nil {
		return 0, nil, err
	}

	return 0, nil, io.EOF
}

func (r *whitespaceRowReader) Close() error {
	return r.closer.Close()
}

// xlsxRowReader reads the first worksheet of a workbook.
type xlsxRowReader struct {
	closer io.Closer
	book   *excelize.File
	rows   *excelize.Rows
	line   int
}

func newXLSXRowReader(rc io.ReadCloser) (*xlsxRowReader, error) {
	book, err := excelize.OpenReader(rc)
	if err != nil {
		return nil, err
	}

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		_ = book.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := book.Rows(sheets[0])
	if err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return &xlsxRowReader{closer: rc, book: book, rows: rows}, nil
}

func (r *xlsxRowReader) Read() (int, []string, error) {
	for r.rows.Next() {
		r.line++

		columns, err := r.rows.Columns()
		if err != nil {
			return 0, nil, err
		}

		if isBlankRecord(columns) {
			continue
		}

		return r.line, trimTrailingBlank(trimFields(columns)), nil
	}

	if err := r.rows.Error(); err != nil {
		return 0, nil, err
	}

	return 0, nil, io.EOF
}

func (r *xlsxRowReader) Close() error {
	rowsErr := r.rows.Close()
	bookErr := r.book.Close()
	fileErr := r.closer.Close()

	for _, err := range []error{rowsErr, bookErr, fileErr} {
		if err != nil {
			return err
		}
	}

	return nil
}

// trimTrailingBlank drops empty trailing cells left by formatted columns.
func trimTrailingBlank(fields []string) []string {
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}

	return fields[:end]
}
