package config

const (
	// DefaultCharset is used for placeholder substitution unless overridden
	DefaultCharset = "utf-8"
)
