package purchases

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/rkaran/silverdash/internal/model"
)

// ErrNoRows is returned when a source holds no usable rows.
var ErrNoRows = errors.New("no state rows")

// Source loads a state purchase table.
type Source interface {
	// Load returns the current rows. Errors are reported to the user and
	// replaced by the sample table.
	Load(ctx context.Context) (model.Dataset, error)
}

// SourceFunc is a function adapter for Source.
type SourceFunc func(ctx context.Context) (model.Dataset, error)

func (f SourceFunc) Load(ctx context.Context) (model.Dataset, error) {
	return f(ctx)
}

// CSVSource reads a State,Silver_Purchased_kg file.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads and validates the file.
func (s *CSVSource) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("read states csv: %w", err)
	}

	rows, err := ParseCSV(data)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	return model.Dataset{
		Rows:     rows,
		Source:   model.SourceCSV,
		Origin:   s.Path,
		LoadedAt: time.Now(),
	}, nil
}

var rowValidator = validator.New()

// ParseCSV decodes a State,Silver_Purchased_kg table and validates every row.
// State names are trimmed; blank lines are skipped.
func ParseCSV(data []byte) ([]model.StatePurchase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoRows
	}

	if err := checkHeader(data); err != nil {
		return nil, err
	}

	var rows []model.StatePurchase
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	out := rows[:0]
	for i, r := range rows {
		r.State = strings.TrimSpace(r.State)
		if err := rowValidator.Struct(r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

// Column names of the purchase CSV.
const (
	ColumnState    = "State"
	ColumnQuantity = "Silver_Purchased_kg"
)

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = true
	}
	for _, want := range []string{ColumnState, ColumnQuantity} {
		if !have[want] {
			return fmt.Errorf("missing column %q", want)
		}
	}
	return nil
}

// sampleRows is shown when no source can be read.
var sampleRows = []model.StatePurchase{
	{State: "Rajasthan", QuantityKg: 2500},
	{State: "Gujarat", QuantityKg: 2200},
	{State: "Karnataka", QuantityKg: 1800},
	{State: "Telangana", QuantityKg: 1600},
	{State: "Maharashtra", QuantityKg: 1400},
	{State: "Uttar Pradesh", QuantityKg: 1200},
	{State: "Delhi", QuantityKg: 1100},
	{State: "Tamil Nadu", QuantityKg: 950},
	{State: "Punjab", QuantityKg: 850},
	{State: "Bihar", QuantityKg: 700},
}

// Sample returns a copy of the built-in sample table.
func Sample() model.Dataset {
	rows := make([]model.StatePurchase, len(sampleRows))
	copy(rows, sampleRows)
	return model.Dataset{
		Rows:     rows,
		Source:   model.SourceSample,
		LoadedAt: time.Now(),
	}
}

// LoadOrSample loads from src and falls back to the sample on any error.
// The returned warnings explain the fallback.
func LoadOrSample(ctx context.Context, src Source) (model.Dataset, error) {
	ds, err := src.Load(ctx)
	if err == nil {
		return ds, nil
	}

	fallback := Sample()
	fallback.Warnings = fallbackWarnings(src, err)
	return fallback, err
}

func fallbackWarnings(src Source, err error) []string {
	if cs, ok := src.(*CSVSource); ok {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{
				"File not found: " + cs.Path,
				"Please ensure the CSV file is in the same directory as the dashboard.",
				"Showing sample data.",
			}
		}
		return []string{
			fmt.Sprintf("Could not read %s: %v", cs.Path, err),
			"Showing sample data.",
		}
	}
	return []string{
		fmt.Sprintf("Could not load state purchases: %v", err),
		"Showing sample data.",
	}
}
