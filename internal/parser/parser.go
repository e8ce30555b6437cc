// Package parser converts raw uploaded content into a uniform ImportBatch.
// The declared media type decides the decoder; entity type and language are
// supplied by the caller, never inferred from content (except as an opt-in
// convenience for JSON).
package parser

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx/v2"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// Supported media types.
const (
	MediaTypeCSV  = "text/csv"
	MediaTypeJSON = "application/json"
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeXLS  = "application/vnd.ms-excel"
)

// Options carries the caller-selected batch identity and parse behavior.
type Options struct {
	EntityType domain.EntityType
	Language   domain.LanguageCode
	// InferEntityType enables best-effort entity-type inference from JSON
	// key shape when the caller did not choose one. An explicit EntityType
	// always wins.
	InferEntityType bool
}

// Parse decodes raw content into an ImportBatch according to the declared
// media type. Returns domain.ErrUnsupportedFormat for unknown media types
// and domain.ErrMalformedInput for undecodable content.
func Parse(data []byte, mediaType string, opts Options) (domain.ImportBatch, error) {
	var (
		records []domain.RawRecord
		err     error
	)

	switch normalizeMediaType(mediaType) {
	case MediaTypeCSV:
		records, err = parseCSV(data)
	case MediaTypeJSON:
		records, err = parseJSON(data)
	case MediaTypeXLSX, MediaTypeXLS:
		records, err = parseExcel(data)
	default:
		return domain.ImportBatch{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mediaType)
	}
	if err != nil {
		return domain.ImportBatch{}, err
	}

	batch := domain.ImportBatch{
		EntityType: opts.EntityType,
		Language:   opts.Language,
		Records:    records,
	}

	if batch.EntityType == "" && opts.InferEntityType {
		batch.EntityType = inferEntityType(records)
	}

	return batch, nil
}

// normalizeMediaType strips parameters like "; charset=utf-8".
func normalizeMediaType(mediaType string) string {
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mediaType))
}

// parseJSON requires the top-level value to be an array of objects. A
// single object is wrapped in a one-element batch.
func parseJSON(data []byte) ([]domain.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var records []domain.RawRecord
	if err := dec.Decode(&records); err == nil {
		return records, nil
	}

	dec = json.NewDecoder(bytes.NewReader(data))
	var single domain.RawRecord
	if err := dec.Decode(&single); err != nil {
		return nil, fmt.Errorf("%w: decode JSON: %v", domain.ErrMalformedInput, err)
	}
	return []domain.RawRecord{single}, nil
}

// parseCSV treats the first row as a header naming the fields of all
// subsequent rows. All values come out as strings.
func parseCSV(data []byte) ([]domain.RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows handled below

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []domain.RawRecord{}, nil
		}
		return nil, fmt.Errorf("%w: read CSV header: %v", domain.ErrMalformedInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read CSV row: %v", domain.ErrMalformedInput, err)
		}
		records = append(records, rowToRecord(header, row))
	}
	return records, nil
}

// parseExcel reads the first sheet of an XLSX workbook, first row as
// header. Legacy .xls content fails as malformed input.
func parseExcel(data []byte) ([]domain.RawRecord, error) {
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %v", domain.ErrMalformedInput, err)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no sheets", domain.ErrMalformedInput)
	}

	sheet := wb.Sheets[0]
	var header []string
	var records []domain.RawRecord
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		if i == 0 {
			header = cells
			continue
		}
		records = append(records, rowToRecord(header, cells))
	}
	return records, nil
}

func rowToRecord(header, row []string) domain.RawRecord {
	record := make(domain.RawRecord, len(header))
	for i, field := range header {
		if field == "" {
			continue
		}
		if i < len(row) {
			record[field] = row[i]
		}
	}
	return record
}

// inferEntityType guesses the entity type from the key shape of the first
// record. Convenience only; an explicit caller choice always overrides.
func inferEntityType(records []domain.RawRecord) domain.EntityType {
	if len(records) == 0 {
		return ""
	}
	first := records[0]
	if _, ok := first["model_name_en"]; ok {
		return domain.EntityProduct
	}
	if _, ok := first["name_en"]; ok {
		return domain.EntityCategory
	}
	return ""
}
