// Package storage persists citizen reports in an append-only CSV log and
// relays new reports over Redis when a client is configured.
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Storage interface {
	LoadReports(ctx context.Context) (ReportTable, error)
	AppendReport(ctx context.Context, r models.Report) error
}

// ReportTable is the report log as read from disk. Columns always carries
// the five log columns, even when there are no reports.
type ReportTable struct {
	Columns []string        `json:"columns"`
	Reports []models.Report `json:"reports"`
}

func emptyTable() ReportTable {
	return ReportTable{
		Columns: append([]string(nil), config.ReportColumns...),
		Reports: []models.Report{},
	}
}

type Service struct {
	Path     string
	Redis    *redis.Client
	Location *time.Location

	// mu serializes appends from this process only. Other processes writing
	// the same file are not coordinated.
	mu sync.Mutex
}

// NewStorageService Constructor
func NewStorageService(path string, rdb *redis.Client, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		Path:     path,
		Redis:    rdb,
		Location: loc,
	}
}

// LoadReports reads the whole log from disk. It is never cached so a report
// is visible to the next read right after AppendReport returns.
func (s *Service) LoadReports(ctx context.Context) (ReportTable, error) {
	if err := ctx.Err(); err != nil {
		return ReportTable{}, err
	}

	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyTable(), nil
	}
	if err != nil {
		return ReportTable{}, fmt.Errorf("read report log %s: %w", s.Path, err)
	}
	return parseReports(bytes.TrimPrefix(raw, utf8BOM), s.Location)
}

func parseReports(raw []byte, loc *time.Location) (ReportTable, error) {
	table := emptyTable()

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table, nil
	}
	if err != nil {
		return ReportTable{}, fmt.Errorf("parse report log header: %w", err)
	}

	// Map by name so a reordered header still reads; unknown headers fall
	// back to positional order.
	pos := make([]int, len(config.ReportColumns))
	for i, col := range config.ReportColumns {
		pos[i] = i
		for j, h := range header {
			if h == col {
				pos[i] = j
				break
			}
		}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ReportTable{}, fmt.Errorf("parse report log row: %w", err)
		}
		field := func(i int) string {
			if pos[i] < len(rec) {
				return rec[pos[i]]
			}
			return ""
		}
		rep := models.Report{
			BusinessName: field(0),
			Nickname:     field(1),
			Kind:         field(2),
			Body:         field(3),
			Timestamp:    field(4),
		}
		if t, err := time.ParseInLocation(config.TimestampLayout, rep.Timestamp, loc); err == nil {
			rep.CreatedAt = t
		}
		table.Reports = append(table.Reports, rep)
	}
	return table, nil
}

// AppendReport writes one row at the end of the log. A new or empty file
// first gets a BOM and the header line. The row is written with a single
// write call on an O_APPEND handle.
func (s *Service) AppendReport(ctx context.Context, rep models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report log %s: %w", s.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat report log %s: %w", s.Path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		buf.Write(utf8BOM)
		if err := w.Write(config.ReportColumns); err != nil {
			return err
		}
	}
	if err := w.Write(rep.Record()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append report log %s: %w", s.Path, err)
	}
	return nil
}
