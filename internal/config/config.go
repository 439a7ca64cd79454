package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. KOBO_NOTES_CHARSET=us-ascii
const EnvPrefix = "KOBO_NOTES"

// ErrMissingStorePath is returned when no KoboReader.sqlite path was given
var ErrMissingStorePath = errors.New("you must specify the path to your KoboReader.sqlite file")

// ErrConflictingFormats is returned when more than one output format is requested
var ErrConflictingFormats = errors.New("you cannot specify both --csv and --kindle")

type (
	Config struct {
		Store
		Output
		Filters
		Global
	}

	Store struct {
		Path string // KoboReader.sqlite
	}
	Output struct {
		Path    string // empty means standard output
		CSV     bool
		Kindle  bool
		List    bool // list books instead of notes
		Info    bool // append counts after the main output
		Charset string
	}
	Filters struct {
		Book            string
		BookGiven       bool // --book was passed, possibly with an empty title
		BookID          string
		BookIDGiven     bool
		AnnotationsOnly bool
		HighlightsOnly  bool
	}
	Global struct {
		Verbose bool
	}
)

// NewConfig resolves configuration from command line flags, positional arguments and
// KOBO_NOTES_* environment variables. Flags given explicitly win over the environment.
func NewConfig(flags *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("store", "")
	v.SetDefault("output", "")
	v.SetDefault("csv", false)
	v.SetDefault("kindle", false)
	v.SetDefault("list", false)
	v.SetDefault("info", false)
	v.SetDefault("charset", DefaultCharset)
	v.SetDefault("book", "")
	v.SetDefault("bookid", "")
	v.SetDefault("annotations-only", false)
	v.SetDefault("highlights-only", false)
	v.SetDefault("verbose", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	storePath := v.GetString("store")
	if len(args) > 0 {
		storePath = args[0]
	}

	cfg := &Config{
		Store: Store{
			Path: storePath,
		},
		Output: Output{
			Path:    v.GetString("output"),
			CSV:     v.GetBool("csv"),
			Kindle:  v.GetBool("kindle"),
			List:    v.GetBool("list"),
			Info:    v.GetBool("info"),
			Charset: v.GetString("charset"),
		},
		Filters: Filters{
			Book:            v.GetString("book"),
			BookGiven:       given(flags, v, "book"),
			BookID:          v.GetString("bookid"),
			BookIDGiven:     given(flags, v, "bookid"),
			AnnotationsOnly: v.GetBool("annotations-only"),
			HighlightsOnly:  v.GetBool("highlights-only"),
		},
		Global: Global{
			Verbose: v.GetBool("verbose"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// given reports whether a string option was set on the command line, even to "",
// or holds a non-empty value from the environment.
func given(flags *pflag.FlagSet, v *viper.Viper, key string) bool {
	if flags != nil && flags.Changed(key) {
		return true
	}
	return v.GetString(key) != ""
}

// Validate checks the settings that do not depend on the store contents.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return ErrMissingStorePath
	}
	if c.Output.CSV && c.Output.Kindle {
		return ErrConflictingFormats
	}
	return nil
}
