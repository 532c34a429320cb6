package sequence

import (
	"strconv"
	"strings"
)

// Column names expected in the reference source header.
const (
	ColumnSequence    = "Sequence"
	ColumnWeighting   = "Ponderation"
	ColumnPlane       = "Plane"
	ColumnThreeD      = "3D"
	ColumnObservation = "Observation"
	ColumnInjection   = "Injection"
	ColumnSaturation  = "Saturation"
	ColumnDiffusionB  = "b (DWI)"
)

// RequiredColumns lists the header columns a reference source must carry, in
// canonical order.
var RequiredColumns = []string{
	ColumnSequence,
	ColumnWeighting,
	ColumnPlane,
	ColumnThreeD,
	ColumnObservation,
	ColumnInjection,
	ColumnSaturation,
	ColumnDiffusionB,
}

// Record is one row of the reference table. Absent cells hold the empty string.
type Record struct {
	Name        string `json:"name"`
	Weighting   string `json:"weighting"`
	Plane       string `json:"plane"`
	ThreeD      string `json:"three_d"`
	Observation string `json:"observation"`
	Injection   string `json:"injection"`
	Saturation  string `json:"saturation"`
	DiffusionB  string `json:"diffusion_b"`
}

// Is3D reports whether the record describes a 3D acquisition.
func (r Record) Is3D() bool { return Truthy(r.ThreeD) }

// Injected reports whether a contrast agent was used.
func (r Record) Injected() bool { return Truthy(r.Injection) }

// Saturated reports whether fat saturation was applied.
func (r Record) Saturated() bool { return Truthy(r.Saturation) }

// missingMarkers are the cell values spreadsheet and pandas exports use for
// an absent value ("NaN", "NA", "null", ...).
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// IsMissing reports whether a cell holds a missing-value marker.
func IsMissing(value string) bool {
	_, ok := missingMarkers[value]
	return ok
}

// Truthy reports whether a reference cell counts as set. Empty cells,
// missing-value markers and numeric zeroes ("0", "0.0") are the falsy
// sentinel.
func Truthy(value string) bool {
	if value == "" || IsMissing(value) {
		return false
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return f != 0
	}
	return true
}
