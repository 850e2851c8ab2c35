package purchases

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rkaran/silverdash/internal/model"
)

func TestParseCSV(t *testing.T) {
	data := "State,Silver_Purchased_kg\n Rajasthan ,2500\nGujarat,2200.5\n"

	rows, err := ParseCSV([]byte(data))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	want := []model.StatePurchase{
		{State: "Rajasthan", QuantityKg: 2500},
		{State: "Gujarat", QuantityKg: 2200.5},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("ParseCSV mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty", "", "no state rows"},
		{"header only", "State,Silver_Purchased_kg\n", "no state rows"},
		{"missing column", "State,Kg\nBihar,10\n", `missing column "Silver_Purchased_kg"`},
		{"negative quantity", "State,Silver_Purchased_kg\nBihar,-5\n", "row 2"},
		{"blank state", "State,Silver_Purchased_kg\n,5\n", "row 2"},
		{"not a number", "State,Silver_Purchased_kg\nBihar,lots\n", "decode csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(tt.data))
			if err == nil {
				t.Fatalf("ParseCSV(%q) expected error", tt.data)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseCSV error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCSVSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.csv")
	if err := os.WriteFile(path, []byte("State,Silver_Purchased_kg\nKerala,640\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := NewCSVSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Source != model.SourceCSV {
		t.Errorf("Source = %q, want %q", ds.Source, model.SourceCSV)
	}
	if ds.Origin != path {
		t.Errorf("Origin = %q, want %q", ds.Origin, path)
	}
	if len(ds.Rows) != 1 || ds.Rows[0].State != "Kerala" {
		t.Errorf("Rows = %v", ds.Rows)
	}
}

func TestLoadOrSample_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	ds, err := LoadOrSample(context.Background(), NewCSVSource(path))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
	if ds.Source != model.SourceSample {
		t.Errorf("Source = %q, want %q", ds.Source, model.SourceSample)
	}
	if len(ds.Rows) != 10 {
		t.Errorf("len(Rows) = %d, want 10", len(ds.Rows))
	}
	if len(ds.Warnings) == 0 || ds.Warnings[0] != "File not found: "+path {
		t.Errorf("Warnings = %v", ds.Warnings)
	}
}

func TestLoadOrSample_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.csv")
	if err := os.WriteFile(path, []byte("State,Silver_Purchased_kg\nGoa,-1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadOrSample(context.Background(), NewCSVSource(path))
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if ds.Source != model.SourceSample {
		t.Errorf("Source = %q, want %q", ds.Source, model.SourceSample)
	}
	if got := ds.Warnings[len(ds.Warnings)-1]; got != "Showing sample data." {
		t.Errorf("last warning = %q", got)
	}
}

func TestSample_IsCopy(t *testing.T) {
	a := Sample()
	a.Rows[0].QuantityKg = 0
	if Sample().Rows[0].QuantityKg != 2500 {
		t.Error("Sample must return a fresh slice")
	}
}
