// Package catalog loads the fair-price business CSV into an ordered,
// normalized in-memory catalog and filters it.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"
)

var (
	ErrCatalogNotFound = fmt.Errorf("catalog file not found: %w", fs.ErrNotExist)
	ErrUndecodable     = errors.New("catalog file is neither cp949 nor utf-8")
	ErrMissingColumn   = errors.New("catalog file is missing a required column")
)

var requiredColumns = []string{config.ColumnName, config.ColumnCategory, config.ColumnAddress}

// Load reads, decodes, normalizes and orders the catalog at path.
// A nil district func means DistrictByList.
func Load(path string, district DistrictFunc) ([]models.Business, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw, district)
}

// Parse is Load without the file access.
func Parse(raw []byte, district DistrictFunc) ([]models.Business, error) {
	if district == nil {
		district = DistrictByList
	}

	text, _, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("parse catalog header: %w", err)
	}
	index := indexHeader(header)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	list := make([]models.Business, 0)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse catalog row: %w", err)
		}
		list = append(list, buildBusiness(header, index, rec, district))
	}
	return order(list), nil
}

// indexHeader trims every column name and maps it to its position.
// The header slice is trimmed in place.
func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}

var knownColumns = map[string]bool{
	config.ColumnName:         true,
	config.ColumnCategoryCode: true,
	config.ColumnCategory:     true,
	config.ColumnAddress:      true,
	config.ColumnPhone:        true,
	config.ColumnPride:        true,
}

func buildBusiness(header []string, index map[string]int, rec []string, district DistrictFunc) models.Business {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	b := models.Business{
		Name:         field(config.ColumnName),
		CategoryCode: strings.TrimSpace(field(config.ColumnCategoryCode)),
		Category:     field(config.ColumnCategory),
		Address:      field(config.ColumnAddress),
		Phone:        normalizePhone(field(config.ColumnPhone)),
		Pride:        field(config.ColumnPride),
	}
	b.District = district(b.Address)

	for i, h := range header {
		if knownColumns[h] || h == "" || i >= len(rec) {
			continue
		}
		if b.Extra == nil {
			b.Extra = make(map[string]string)
		}
		b.Extra[h] = rec[i]
	}
	return b
}
