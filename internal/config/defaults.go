package config

const (
	defaultConfigPath          = "~/.config/altotriage/config.toml"
	defaultStateDir            = "~/.local/share/altotriage"
	defaultLogDir              = "~/.local/share/altotriage/logs"
	defaultAnnotationExtension = ".xml"
	defaultImageExtension      = ".jpg"
	defaultNamespace           = "http://www.loc.gov/standards/alto/ns-v4#"
	defaultValidSuffix         = "_valid"
	defaultNoPolygonSuffix     = "_valid_no_poly"
	defaultPolygonTokens       = 8
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	// ParseErrorSkip records a parse failure for the file and continues.
	ParseErrorSkip = "skip"
	// ParseErrorAbort stops the run at the first parse failure.
	ParseErrorAbort = "abort"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Triage: Triage{
			AnnotationExtension: defaultAnnotationExtension,
			ImageExtension:      defaultImageExtension,
			Namespace:           defaultNamespace,
			ValidSuffix:         defaultValidSuffix,
			NoPolygonSuffix:     defaultNoPolygonSuffix,
			PolygonTokens:       defaultPolygonTokens,
			OnParseError:        ParseErrorSkip,
		},
		Ledger: Ledger{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
