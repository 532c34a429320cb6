package config

import "mriseq/internal/textutil"

const (
	defaultReferenceDir      = "~/.config/mriseq"
	defaultReferenceFileName = "liste_sequence_eurad.csv"
	defaultDelimiter         = ","
	defaultCharset           = textutil.DefaultCharset
	defaultSource            = SourceCSV
	defaultSnapshotPath      = "~/.local/share/mriseq/reference.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Reference: Reference{
			Dir:       defaultReferenceDir,
			FileName:  defaultReferenceFileName,
			Delimiter: defaultDelimiter,
			Charset:   defaultCharset,
			Source:    defaultSource,
		},
		Snapshot: Snapshot{
			Path: defaultSnapshotPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
