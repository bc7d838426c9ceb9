package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/deadfiles/internal/config"
	"github.com/harrison/deadfiles/internal/display"
	"github.com/harrison/deadfiles/internal/finder"
	"github.com/harrison/deadfiles/internal/logger"
	"github.com/harrison/deadfiles/internal/report"
	"github.com/harrison/deadfiles/internal/usedfiles"
	"github.com/spf13/cobra"
)

// NewFindCommand creates and returns the find subcommand
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List source files missing from a used-files list",
		Long: `Scan a directory for source files and print those that are not in the
used-files list, sorted.

The used-files list is plain text (one path per line), JSON, YAML or
Markdown, chosen by file extension or --used-files-format. Use "-" to read
it from standard input. Relative entries are resolved against the working
directory.

Without --root the directory to scan is the deepest directory shared by all
used files. Dot files and version control directories are skipped unless
--include-dot-files or --include-vcs is given.

Exclusion patterns are regular expressions matched anywhere in the absolute
path. PHP style delimited patterns such as '#/vendor/#' or '/Test\.php$/i'
are accepted. --exclude-glob takes globs relative to the root.

Configuration is loaded from .deadfiles/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  deadfiles find --used-files coverage.txt --root src
  deadfiles find -u used.json -e '#/vendor/#' -e 'Test\.php$'
  deadfiles find -u used.md --exclude-glob 'tests/**' --format markdown -o unused.md
  collect-used | deadfiles find -u - --fail-on-found

Exit code: 0 on success, 1 on error or when --fail-on-found finds files`,
		Args: cobra.NoArgs,
		RunE: runFind,
	}

	cmd.Flags().StringP("used-files", "u", "", `Used-files list ("-" for stdin)`)
	cmd.Flags().String("used-files-format", "", "Used-files list format: text, json, yaml, markdown (default: by extension)")
	cmd.Flags().Bool("canonicalize-used", false, "Resolve symlinks in used-file entries before comparing")
	cmd.Flags().StringP("root", "r", "", "Directory to inspect (default: common directory of the used files)")
	cmd.Flags().StringArrayP("exclude", "e", nil, "Exclusion regexp, repeatable")
	cmd.Flags().StringArray("exclude-glob", nil, "Exclusion glob relative to the root, repeatable")
	cmd.Flags().StringSlice("ext", nil, "Source file extensions (default .php)")
	cmd.Flags().Bool("case-insensitive-ext", false, "Match extensions regardless of case")
	cmd.Flags().Bool("include-dot-files", false, "Scan dot files and dot directories")
	cmd.Flags().Bool("include-vcs", false, "Scan version control directories (.git, .svn, ...)")
	cmd.Flags().StringP("format", "f", "", "Report format: text, json, yaml, markdown, html (default text)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("fail-on-found", false, "Exit with status 1 when unused files are found")
	cmd.Flags().String("config", "", "Path to config file (default: .deadfiles/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default info)")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadFindConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	used, err := loadUsedFiles(cmd.InOrStdin(), cfg.UsedFiles, cfg.UsedFilesFormat, cfg.CanonicalizeUsed)
	if err != nil {
		return err
	}
	log.LogDebug(fmt.Sprintf("loaded %d used files from %s", len(used), cfg.UsedFiles))

	f := finder.New(finder.Options{
		Extensions:         cfg.Extensions,
		CaseInsensitiveExt: cfg.CaseInsensitiveExt,
		ExcludeGlobs:       cfg.ExcludeGlobs,
		IncludeDotFiles:    cfg.IncludeDotFiles,
		IncludeVCS:         cfg.IncludeVCS,
		Logger:             log,
	})

	result, err := f.Find(finder.Request{
		UsedFiles:                used,
		PathToInspect:            cfg.Root,
		BlacklistedPathTemplates: cfg.Exclude,
	})
	if err != nil {
		return err
	}

	exclusions := append(append([]string{}, cfg.Exclude...), cfg.ExcludeGlobs...)
	rep := report.New(result, report.Meta{
		UsedFiles:  len(used),
		Extensions: cfg.Extensions,
		Exclusions: exclusions,
	})

	data, err := report.Bytes(rep, report.Format(cfg.Format))
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := report.WriteFile(cfg.Output, data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.LogInfo(fmt.Sprintf("wrote %s report to %s", cfg.Format, cfg.Output))
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if log.Level() != "error" {
		if rep.Scanned == 0 {
			display.WarnEmptyResult(rep.Root, rep.Extensions).Display(stderr)
		}
		if len(rep.UsedNotFound) > 0 {
			display.WarnUsedNotFound(rep.Root, rep.UsedNotFound).Display(stderr)
		}
	}
	log.LogSummary(rep)

	if cfg.FailOnFound && rep.HasUnused() {
		return fmt.Errorf("found %d unused files", len(rep.Unused))
	}
	return nil
}

// loadFindConfig loads the config file and applies the flags that were set.
func loadFindConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	var o config.Overrides

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	arrayFlag := func(name string) *[]string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetStringArray(name)
		return &v
	}

	o.UsedFiles = stringFlag("used-files")
	o.UsedFilesFormat = stringFlag("used-files-format")
	o.CanonicalizeUsed = boolFlag("canonicalize-used")
	o.Root = stringFlag("root")
	o.Exclude = arrayFlag("exclude")
	o.ExcludeGlobs = arrayFlag("exclude-glob")
	if flags.Changed("ext") {
		exts, _ := flags.GetStringSlice("ext")
		o.Extensions = &exts
	}
	o.CaseInsensitiveExt = boolFlag("case-insensitive-ext")
	o.IncludeDotFiles = boolFlag("include-dot-files")
	o.IncludeVCS = boolFlag("include-vcs")
	o.Format = stringFlag("format")
	o.Output = stringFlag("output")
	o.FailOnFound = boolFlag("fail-on-found")
	o.LogLevel = stringFlag("log-level")

	cfg.MergeWithFlags(o)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadUsedFiles reads the used-files list, taking "-" from stdin.
func loadUsedFiles(stdin io.Reader, path, formatName string, canonicalize bool) ([]string, error) {
	format, err := usedfiles.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	opts := usedfiles.LoadOptions{Format: format, Canonicalize: canonicalize}

	if path == usedfiles.Stdin {
		used, err := usedfiles.Parse(stdin, format, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse used files from stdin: %w", err)
		}
		return used, nil
	}
	return usedfiles.Load(path, opts)
}
