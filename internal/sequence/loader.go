package sequence

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mriseq/internal/logging"
	"mriseq/internal/textutil"
)

// DefaultFileName is the reference table file looked up inside the reference directory.
const DefaultFileName = "liste_sequence_eurad.csv"

// LoadOptions controls how a reference source is read. The zero value reads a
// comma-delimited UTF-8 file named DefaultFileName.
type LoadOptions struct {
	FileName  string
	Delimiter rune
	Charset   string
	Logger    *slog.Logger
}

func (o LoadOptions) fileName() string {
	if name := strings.TrimSpace(o.FileName); name != "" {
		return name
	}
	return DefaultFileName
}

func (o LoadOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Load reads the reference table from dir and returns a ready Classifier.
// Any problem with the source is fatal and reported as ErrSource.
func Load(dir string, opts LoadOptions) (*Classifier, error) {
	return LoadFile(filepath.Join(dir, opts.fileName()), opts)
}

// LoadFile reads the reference table from an explicit path.
func LoadFile(path string, opts LoadOptions) (*Classifier, error) {
	logger := logging.NewComponentLogger(opts.Logger, "sequence")

	file, err := os.Open(path)
	if err != nil {
		return nil, sourceError(path, "open", err)
	}
	defer file.Close()

	records, err := ReadRecords(file, opts)
	if err != nil {
		return nil, sourceError(path, "read", err)
	}

	table := NewTable(records)
	logger.Info("reference table loaded",
		logging.String(logging.FieldEventType, "reference_loaded"),
		logging.String("path", path),
		logging.Int("rows", table.Len()),
		logging.Int("keys", table.KeyCount()),
		logging.Int("duplicates", table.Duplicates()))
	if skipped := len(records) - table.Len(); skipped > 0 {
		logging.WarnWithContext(logger, "reference rows without a key were skipped", "reference_rows_skipped",
			logging.Int("skipped", skipped),
			logging.String(logging.FieldErrorHint, "fill the Sequence column for every row"),
			logging.String(logging.FieldImpact, "labels matching those rows resolve as not found"))
	}
	return New(table, opts.Logger), nil
}

// ReadRecords parses delimited reference rows. The header must contain every
// RequiredColumns entry; other columns are ignored. Short rows leave the
// trailing cells empty, rows longer than the header are malformed.
// Missing-value markers ("NaN", "NA", ...) outside the Sequence column are read
// as empty cells.
func ReadRecords(r io.Reader, opts LoadOptions) ([]Record, error) {
	decoded, err := textutil.NewDecodingReader(r, opts.Charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty reference source: header row missing")
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(header))
		}
		cell := func(column string) string {
			i := index[column]
			if i >= len(row) {
				return ""
			}
			if column != ColumnSequence && IsMissing(row[i]) {
				return ""
			}
			return row[i]
		}
		records = append(records, Record{
			Name:        cell(ColumnSequence),
			Weighting:   cell(ColumnWeighting),
			Plane:       cell(ColumnPlane),
			ThreeD:      cell(ColumnThreeD),
			Observation: cell(ColumnObservation),
			Injection:   cell(ColumnInjection),
			Saturation:  cell(ColumnSaturation),
			DiffusionB:  cell(ColumnDiffusionB),
		})
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	var missing []string
	for _, column := range RequiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}
	return index, nil
}
