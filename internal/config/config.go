package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats understood by internal/report
var validFormats = []string{"text", "json", "yaml", "markdown", "html"}

// Config represents deadfiles configuration
type Config struct {
	// Root is the directory to inspect. Empty means infer it from the used files.
	Root string `yaml:"root"`

	// UsedFiles is the path of the used-files list ("-" for stdin)
	UsedFiles string `yaml:"used_files"`

	// UsedFilesFormat forces the list format (text, json, yaml, markdown).
	// Empty means detect it from the file extension.
	UsedFilesFormat string `yaml:"used_files_format"`

	// CanonicalizeUsed resolves symlinks in used-file entries before comparing
	CanonicalizeUsed bool `yaml:"canonicalize_used"`

	// Extensions designates source files
	Extensions []string `yaml:"extensions"`

	// CaseInsensitiveExt matches extensions regardless of case
	CaseInsensitiveExt bool `yaml:"case_insensitive_ext"`

	// Exclude lists exclusion regexps, bare or PCRE delimited
	Exclude []string `yaml:"exclude"`

	// ExcludeGlobs lists doublestar globs relative to the root
	ExcludeGlobs []string `yaml:"exclude_globs"`

	// IncludeDotFiles scans dot files and dot directories
	IncludeDotFiles bool `yaml:"include_dot_files"`

	// IncludeVCS scans version control directories
	IncludeVCS bool `yaml:"include_vcs"`

	// Format is the report format: text, json, yaml, markdown or html
	Format string `yaml:"format"`

	// Output is the report file. Empty means stdout.
	Output string `yaml:"output"`

	// FailOnFound exits non-zero when unused files are reported
	FailOnFound bool `yaml:"fail_on_found"`

	// LogLevel: trace, debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".php"},
		Format:     "text",
		LogLevel:   "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or has unknown keys, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys present in the file override the defaults, absent keys keep them.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .deadfiles/config.yaml in the specified directory.
// If the directory or file doesn't exist, returns default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".deadfiles", "config.yaml"))
}

// Overrides carries command line values. Nil fields were not set on the
// command line and leave the configuration untouched.
type Overrides struct {
	Root               *string
	UsedFiles          *string
	UsedFilesFormat    *string
	CanonicalizeUsed   *bool
	Extensions         *[]string
	CaseInsensitiveExt *bool
	Exclude            *[]string
	ExcludeGlobs       *[]string
	IncludeDotFiles    *bool
	IncludeVCS         *bool
	Format             *string
	Output             *string
	FailOnFound        *bool
	LogLevel           *string
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Root != nil {
		c.Root = *o.Root
	}
	if o.UsedFiles != nil {
		c.UsedFiles = *o.UsedFiles
	}
	if o.UsedFilesFormat != nil {
		c.UsedFilesFormat = *o.UsedFilesFormat
	}
	if o.CanonicalizeUsed != nil {
		c.CanonicalizeUsed = *o.CanonicalizeUsed
	}
	if o.Extensions != nil {
		c.Extensions = *o.Extensions
	}
	if o.CaseInsensitiveExt != nil {
		c.CaseInsensitiveExt = *o.CaseInsensitiveExt
	}
	if o.Exclude != nil {
		c.Exclude = *o.Exclude
	}
	if o.ExcludeGlobs != nil {
		c.ExcludeGlobs = *o.ExcludeGlobs
	}
	if o.IncludeDotFiles != nil {
		c.IncludeDotFiles = *o.IncludeDotFiles
	}
	if o.IncludeVCS != nil {
		c.IncludeVCS = *o.IncludeVCS
	}
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.Output != nil {
		c.Output = *o.Output
	}
	if o.FailOnFound != nil {
		c.FailOnFound = *o.FailOnFound
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
}

// Normalize lowercases enumerated values and gives every extension a
// leading dot, so "php" and ".php" are equivalent.
func (c *Config) Normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.UsedFilesFormat = strings.ToLower(strings.TrimSpace(c.UsedFilesFormat))

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Extensions = exts
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.UsedFiles == "" {
		return fmt.Errorf("used_files is required")
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("invalid extension %q, must look like \".php\"", ext)
		}
	}

	if !contains(validFormats, c.Format) {
		return fmt.Errorf("invalid format %q, must be one of: %s", c.Format, strings.Join(validFormats, ", "))
	}

	switch c.UsedFilesFormat {
	case "", "text", "json", "yaml", "markdown":
	default:
		return fmt.Errorf("invalid used_files_format %q, must be one of: text, json, yaml, markdown", c.UsedFilesFormat)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
