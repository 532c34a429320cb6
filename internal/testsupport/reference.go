package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// ReferenceFileName mirrors the default reference table file name.
const ReferenceFileName = "liste_sequence_eurad.csv"

// ReferenceHeader is the header row of a reference CSV, with an extra
// free-text column the loader must ignore.
var ReferenceHeader = []string{
	"Sequence", "Ponderation", "Plane", "3D", "Observation",
	"Injection", "Saturation", "b (DWI)", "Commentaire",
}

// ReferenceRow is one reference CSV row. Empty fields are written as empty cells.
type ReferenceRow struct {
	Sequence    string
	Weighting   string
	Plane       string
	ThreeD      string
	Observation string
	Injection   string
	Saturation  string
	DiffusionB  string
}

func (r ReferenceRow) cells() []string {
	return []string{
		r.Sequence, r.Weighting, r.Plane, r.ThreeD, r.Observation,
		r.Injection, r.Saturation, r.DiffusionB, "",
	}
}

// SampleRows returns a small reference table covering each classification path.
func SampleRows() []ReferenceRow {
	return []ReferenceRow{
		{Sequence: "AX T1 SE", Weighting: "T1", Plane: "AX"},
		{Sequence: "WATER 3D T1 GADO", Weighting: "T1", ThreeD: "3D", Injection: "1", Saturation: "1"},
		{Sequence: "AX T2 FLAIR", Weighting: "T2", Plane: "AX"},
		{Sequence: "SAG T2 FSE", Weighting: "T2", Plane: "SAG"},
		{Sequence: "WATER SAT", Weighting: "T1", Plane: "AX", Observation: "water sat"},
		{Sequence: "3 PLANE LOC", Weighting: "T1", Plane: "AX", Observation: "Localizer view"},
		{Sequence: "AX T1 GADO", Weighting: "T1", Plane: "AX", Injection: "1"},
		{Sequence: "DIFFUSION", Weighting: "DWI", Plane: "AX"},
		{Sequence: "ADC MAP", Weighting: "DWI", Plane: "AX", DiffusionB: "ADC"},
		{Sequence: "'1/2/3-4/5/6'", Weighting: "T2", Plane: "SAG"},
		{Sequence: "AX T1 SE", Weighting: "T2", Plane: "AX"},
	}
}

// WriteReference writes rows as a comma-separated reference table inside dir
// and returns the file path.
func WriteReference(t testing.TB, dir string, rows ...ReferenceRow) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, ReferenceFileName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ReferenceHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row.cells()); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
	return path
}
