package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spectramap/cubegraph/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags collects the root command's flag values before validation.
type flags struct {
	graphPath  string
	typesPath  string
	configFile string
	logFormat  string
	logLevel   string
}

// NewRootCommand builds the cubegraph root command. The returned command
// writes all output to outW, so tests can capture it.
func NewRootCommand(outW io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "cubegraph [GRAPH_PATH]",
		Short: "Evaluate a node graph over multispectral image data",
		Long: `cubegraph evaluates an HCL graph document: nodes carrying images,
scalars and regions of interest, connected into an acyclic graph and
run to completion with provenance and uncertainty tracked throughout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(&f, args, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			a, err := app.NewApp(outW, cfg)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(outW)

	cmd.Flags().StringVarP(&f.graphPath, "graph", "g", "", "Path to the .hcl graph document.")
	cmd.Flags().StringVar(&f.typesPath, "types", "", "Path to the node type manifest directory.")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to a YAML config file.")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	return cmd
}

// buildConfig merges positional argument, flags and the optional config
// file into a validated app.Config. Explicitly set flags win over the
// file; the file wins over flag defaults.
func buildConfig(f *flags, args []string, changed func(string) bool) (*app.Config, error) {
	cfg := app.Config{
		GraphPath: f.graphPath,
		TypesPath: f.typesPath,
	}
	if changed("log-format") {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if changed("log-level") {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if cfg.GraphPath == "" && len(args) > 0 {
		cfg.GraphPath = args[0]
	}

	if f.configFile != "" {
		if err := app.MergeFile(&cfg, f.configFile); err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return validated, nil
}

// Execute runs the root command against the given arguments.
func Execute(outW io.Writer, args []string) error {
	cmd := NewRootCommand(outW)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return fmt.Errorf("cubegraph: %w", err)
	}
	return nil
}
