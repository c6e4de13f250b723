// Package dataset loads labeled phrase tables from CSV/TSV files.
//
// Loading is all-or-nothing: a missing column, a row with the wrong number
// of fields, a quoting error or an empty cell fails the whole file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"moodchat/internal/models"
)

// Default column names.
const (
	DefaultInputColumn        = "input"
	DefaultChatLabelColumn    = "chatbot"
	DefaultEmotionLabelColumn = "emotion"
)

var (
	ErrEmptyDataset   = errors.New("dataset has no rows")
	ErrColumnNotFound = errors.New("column not found")
	ErrMalformedRow   = errors.New("malformed row")
)

// Options selects the input and label columns by header name.
type Options struct {
	InputColumn string
	LabelColumn string
}

func (o Options) withDefaults() Options {
	if o.InputColumn == "" {
		o.InputColumn = DefaultInputColumn
	}
	return o
}

// LoadFile reads a dataset from path. Files ending in .tsv are tab separated,
// everything else is read as CSV.
func LoadFile(path, name string, opts Options) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s dataset: %w", name, err)
	}
	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}

	ds, err := parse(f, comma, name, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// Parse reads a CSV dataset from r.
func Parse(r io.Reader, name string, opts Options) (*models.Dataset, error) {
	return parse(r, ',', name, opts)
}

func parse(r io.Reader, comma rune, name string, opts Options) (*models.Dataset, error) {
	opts = opts.withDefaults()
	if opts.LabelColumn == "" {
		return nil, fmt.Errorf("%w: no label column configured for %s", ErrColumnNotFound, name)
	}

	reader := csv.NewReader(r)
	reader.Comma = comma

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}
	for i, cell := range header {
		header[i] = cleanCell(cell)
	}

	inputCol, err := findColumn(header, opts.InputColumn)
	if err != nil {
		return nil, err
	}
	labelCol, err := findColumn(header, opts.LabelColumn)
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{Name: name, LabelColumn: opts.LabelColumn}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}

		input := strings.TrimSpace(record[inputCol])
		if input == "" {
			line, _ := reader.FieldPos(inputCol)
			return nil, fmt.Errorf("%w: line %d: empty %q", ErrMalformedRow, line, opts.InputColumn)
		}
		label := strings.TrimSpace(record[labelCol])
		if label == "" {
			line, _ := reader.FieldPos(labelCol)
			return nil, fmt.Errorf("%w: line %d: empty %q", ErrMalformedRow, line, opts.LabelColumn)
		}
		ds.Rows = append(ds.Rows, models.LabeledPhrase{Input: input, Label: label})
	}

	if len(ds.Rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

func findColumn(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(col, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %s)", ErrColumnNotFound, name, strings.Join(header, ", "))
}
