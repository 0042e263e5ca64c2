package config

const (
	defaultWorkspace        = "~/WordAssociation"
	defaultHistogramLength  = 10
	defaultSimilarLimit     = 5
	defaultSummaryWindow    = 6
	defaultDelimiter        = ";"
	defaultDecimalSeparator = ","
	defaultSortKey          = "alpha"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Workspace: defaultWorkspace,
		},
		Analysis: Analysis{
			HistogramLength: defaultHistogramLength,
			SimilarLimit:    defaultSimilarLimit,
			SummaryWindow:   defaultSummaryWindow,
			FoldCase:        true,
		},
		Export: Export{
			Delimiter:        defaultDelimiter,
			DecimalSeparator: defaultDecimalSeparator,
			SortKey:          defaultSortKey,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
