package tallysync

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SourceRow is one loosely-typed record from the staging schema. Numeric and
// boolean fields may arrive as strings or 1/0 integers; the accessors below
// normalize them the same way regardless of the driver's choice of Go type.
type SourceRow map[string]any

func (r SourceRow) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// StrPtr returns nil for absent or empty text so optional columns stay NULL
// instead of being written as "".
func (r SourceRow) StrPtr(key string) *string {
	s := r.Str(key)
	if s == "" {
		return nil
	}
	return &s
}

// Decimal parses a numeric field, tolerating string representations.
// Absent or unparseable values become zero, never the literal string.
func (r SourceRow) Decimal(key string) decimal.Decimal {
	s := r.Str(key)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return decimal.Zero
}

// Bool normalizes 1/0 integer flags and true/false strings. Absent values
// stay nil rather than defaulting to false.
func (r SourceRow) Bool(key string) *bool {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return &t
	}
	switch strings.ToLower(r.Str(key)) {
	case "1", "true", "yes", "y":
		b := true
		return &b
	case "0", "false", "no", "n", "":
		b := false
		return &b
	}
	b := false
	return &b
}

func (r SourceRow) Int(key string) int {
	s := r.Str(key)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

// Time parses date fields arriving as time.Time, RFC3339 or yyyy-mm-dd.
func (r SourceRow) Time(key string) *time.Time {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		return &t
	}
	s := r.Str(key)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// SourceQuery selects one staging table's rows, optionally narrowed to one
// tenant and capped to a bounded slice for high-volume tables.
type SourceQuery struct {
	Table      string
	CompanyId  string
	DivisionId string
	Limit      int
}

// SourceReader is the read-only contract against the staging schema. The sync
// never mutates the source.
type SourceReader interface {
	Rows(ctx context.Context, q SourceQuery) ([]SourceRow, error)
}

type gormSource struct {
	getDB  func() *gorm.DB
	schema string
}

// NewGormSource reads staging rows from the schema named by SOURCE_SCHEMA
// (default "tally"). The connection is resolved per call because the service
// starts serving before the database comes up.
func NewGormSource(getDB func() *gorm.DB) SourceReader {
	schema := strings.TrimSpace(os.Getenv("SOURCE_SCHEMA"))
	if schema == "" {
		schema = "tally"
	}
	return &gormSource{getDB: getDB, schema: schema}
}

func (s *gormSource) Rows(ctx context.Context, q SourceQuery) ([]SourceRow, error) {
	var raw []map[string]any
	tx := s.getDB().WithContext(ctx).Table(s.schema + "." + q.Table)
	if q.CompanyId != "" {
		tx = tx.Where("company_id = ?", q.CompanyId)
	}
	if q.DivisionId != "" {
		tx = tx.Where("division_id = ?", q.DivisionId)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]SourceRow, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, SourceRow(m))
	}
	return rows, nil
}
