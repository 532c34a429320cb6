package sequence

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"mriseq/internal/logging"
)

// perfusionPattern recognizes timing-series codes such as "1/2/3-4/5/6". It is
// anchored at the start only; trailing text is allowed.
var perfusionPattern = regexp.MustCompile(`^.([0-9]*/?){3}.-.([0-9]*/?){3}.`)

// Classifier answers classification queries against a loaded reference table.
type Classifier struct {
	table   *Table
	perfExp *regexp.Regexp
	logger  *slog.Logger
}

// Classification bundles every query result for one label.
type Classification struct {
	Label        string `json:"label"`
	Key          string `json:"key"`
	Found        bool   `json:"found"`
	Valid        bool   `json:"valid"`
	Diffusion    bool   `json:"diffusion"`
	Perfusion    bool   `json:"perfusion"`
	StandardName string `json:"standard_name,omitempty"`
}

// New wraps a table in a Classifier. A nil table behaves as an empty one.
func New(table *Table, logger *slog.Logger) *Classifier {
	if table == nil {
		table = NewTable(nil)
	}
	return &Classifier{
		table:   table,
		perfExp: perfusionPattern,
		logger:  logging.NewComponentLogger(logger, "sequence"),
	}
}

// Table exposes the underlying reference table.
func (c *Classifier) Table() *Table { return c.table }

// Len returns the number of reference rows.
func (c *Classifier) Len() int { return c.table.Len() }

// Resolve finds the reference record for a raw label.
func (c *Classifier) Resolve(label string) (Record, bool) {
	return c.table.Lookup(NormalizeKey(label))
}

// IsValidSequence reports whether a label names an axial or 3D T1/T2
// acquisition usable downstream. Water saturation, localizers, screenshots and
// injected sequences without fat saturation are rejected. Unknown labels are
// invalid.
func (c *Classifier) IsValidSequence(label string) bool {
	rec, ok := c.Resolve(label)
	if !ok {
		return false
	}
	return c.validRecord(rec)
}

func (c *Classifier) validRecord(rec Record) bool {
	if reason := rejectReason(rec); reason != "" {
		attrs := append(logging.DecisionAttrs("sequence_validity", "rejected", reason), logging.String("key", rec.Name))
		c.logger.Debug("sequence rejected", logging.Args(attrs...)...)
		return false
	}

	weighting := strings.ToLower(rec.Weighting)
	t1OrT2 := weighting == "t1" || weighting == "t2"
	axialOr3D := strings.ToLower(rec.Plane) == "ax" || rec.Is3D()
	return t1OrT2 && axialOr3D
}

func rejectReason(rec Record) string {
	observation := strings.ToLower(rec.Observation)
	switch {
	case rec.Observation == "water sat":
		return "water saturation"
	case strings.Contains(observation, "loc"):
		return "localizer"
	case strings.Contains(observation, "screenshot"):
		return "screenshot"
	case rec.Injected() && !rec.Saturated():
		return "injection without fat saturation"
	}
	return ""
}

// StandardName builds the display name of a label, e.g. "T1 Inj Sat". ADC
// maps derived from diffusion sequences are named "ADC". Unlike the boolean
// queries, an unknown label is an error: callers are expected to have checked
// IsValidSequence first.
func (c *Classifier) StandardName(label string) (string, error) {
	rec, ok := c.Resolve(label)
	if !ok {
		return "", fmt.Errorf("standard name for %q: %w", label, ErrNotFound)
	}
	return standardName(rec), nil
}

func standardName(rec Record) string {
	name := rec.Weighting
	if rec.Injected() {
		name += " Inj"
	}
	if rec.Saturated() {
		name += " Sat"
	}
	if name == "DWI" && rec.DiffusionB == "ADC" {
		return "ADC"
	}
	return name
}

// IsDiff reports whether a label is a diffusion-weighted acquisition.
func (c *Classifier) IsDiff(label string) bool {
	rec, ok := c.Resolve(label)
	if !ok {
		return false
	}
	return isDiffRecord(rec)
}

func isDiffRecord(rec Record) bool {
	return rec.Weighting == "DWI"
}

// IsPerf reports whether a label is a perfusion (dynamic) acquisition. Labels
// mentioning "perf" or "dyn" match without a table lookup.
func (c *Classifier) IsPerf(label string) bool {
	if hasPerfusionMarker(label) {
		return true
	}
	rec, ok := c.Resolve(label)
	if !ok {
		return false
	}
	return c.perfRecord(rec)
}

func (c *Classifier) perfRecord(rec Record) bool {
	return c.perfExp.MatchString(strings.Trim(rec.Name, "'")) ||
		hasPerfusionMarker(rec.Name) ||
		strings.Contains(strings.ToLower(rec.Observation), "perf")
}

func hasPerfusionMarker(value string) bool {
	lower := strings.ToLower(value)
	return strings.Contains(lower, "perf") || strings.Contains(lower, "dyn")
}

// Classify runs every query for a label against a single lookup.
// StandardName is only filled for labels present in the table.
func (c *Classifier) Classify(label string) Classification {
	key := NormalizeKey(label)
	result := Classification{
		Label:     label,
		Key:       key,
		Perfusion: hasPerfusionMarker(label),
	}
	rec, ok := c.table.Lookup(key)
	if !ok {
		return result
	}
	result.Found = true
	result.Valid = c.validRecord(rec)
	result.Diffusion = isDiffRecord(rec)
	result.Perfusion = result.Perfusion || c.perfRecord(rec)
	result.StandardName = standardName(rec)
	return result
}
