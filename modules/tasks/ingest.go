package tasks

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed contact row from an uploaded delimited file.
type Row struct {
	FirstName string
	Phone     string
	Notes     string
}

// ParseRows stream-parses a delimited file whose first row is a header.
// Header names are matched case-insensitively, covering the FirstName /
// firstName, Phone / phone and Notes / notes variants the import format
// allows. Blank lines are skipped, as are rows whose every field is empty.
// A column absent from the header yields an empty value for every row.
func ParseRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", len(rows)+2, err)
		}
		if emptyRecord(record) {
			continue
		}
		rows = append(rows, Row{
			FirstName: field(record, cols, "firstname"),
			Phone:     field(record, cols, "phone"),
			Notes:     field(record, cols, "notes"),
		})
	}
	return rows, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func emptyRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
