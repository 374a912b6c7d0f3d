package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	zwavegen "github.com/goliatone/go-zwavegen"
	"github.com/goliatone/go-zwavegen/pkg/config"
	"github.com/goliatone/go-zwavegen/pkg/driver"
	"github.com/goliatone/go-zwavegen/pkg/manifest"
	"github.com/goliatone/go-zwavegen/pkg/orchestrator"
	"github.com/goliatone/go-zwavegen/pkg/prompt"
	"github.com/goliatone/go-zwavegen/pkg/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(nil).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// cli carries state shared between the root command and its subcommands.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger

	// prompts overrides the survey driver; tests inject a stub.
	prompts prompt.Driver
}

func newRootCmd(prompts prompt.Driver) *cobra.Command {
	c := &cli{prompts: prompts}

	root := &cobra.Command{
		Use:   "zwavegen",
		Short: "Fill Homey driver manifests from the Z-Wave Alliance registry",
		Long: `zwavegen looks up a product in the Z-Wave Alliance registry and writes the
Z-Wave section, configuration settings, and product image into a driver.

Configuration is read from --config (YAML) and ZWAVEGEN_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			c.logger, err = buildLogger(cfg.Logging, c.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a zwavegen.yaml file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.autocompleteCmd(), c.inspectCmd())
	return root
}

func (c *cli) autocompleteCmd() *cobra.Command {
	var registryID string

	cmd := &cobra.Command{
		Use:   "autocomplete [driver-dir]",
		Short: "Prompt for a registry ID and update the driver manifest",
		Long: `Asks for a Z-Wave Alliance product ID, then updates driver.compose.json in
driver-dir (default ".") with the zwave section and settings, and saves the
product image under assets/images. Pass --id to skip the prompts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runAutocomplete(cmd, dir, registryID)
		},
	}
	cmd.Flags().StringVar(&registryID, "id", "", "Z-Wave Alliance product ID (skips prompts)")
	return cmd
}

func (c *cli) runAutocomplete(cmd *cobra.Command, dir, registryID string) error {
	path := filepath.Join(dir, driver.FileName)
	cfg, err := driver.Load(path)
	if err != nil {
		return err
	}

	orch, err := c.orchestrator()
	if err != nil {
		return err
	}
	result, err := orch.Autocomplete(cmd.Context(), orchestrator.Request{
		DriverDir:  dir,
		Driver:     cfg,
		RegistryID: registryID,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Skipped {
		fmt.Fprintln(out, "No Z-Wave Alliance ID given, driver left unchanged.")
		return nil
	}
	if err := driver.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated %s from Z-Wave Alliance product %s (%d settings)\n", path, result.RegistryID, len(result.Fragment.Settings))
	if len(result.Report.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d configuration parameter(s); see the log for details\n", len(result.Report.Skipped))
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "Check %s: %s\n", issue.Field, issue.Message)
	}
	switch {
	case result.ImagePath != "":
		fmt.Fprintf(out, "Saved product image to %s\n", result.ImagePath)
	case result.ImageErr != nil:
		fmt.Fprintf(out, "Product image not saved: %v\n", result.ImageErr)
	}
	return nil
}

func (c *cli) inspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <id>",
		Short: "Print the manifest fragment for a registry ID without writing files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := c.orchestrator()
			if err != nil {
				return err
			}
			result, err := orch.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeInspection(cmd.OutOrStdout(), result, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func (c *cli) orchestrator() (*orchestrator.Orchestrator, error) {
	options, err := zwavegen.OptionsFromConfig(c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	if c.prompts != nil {
		options = append(options, orchestrator.WithPromptDriver(c.prompts))
	}
	return zwavegen.NewOrchestrator(options...), nil
}

type inspection struct {
	ZWave    manifest.Fragment  `json:"zwave"`
	Settings []manifest.Setting `json:"settings"`
	Image    string             `json:"image,omitempty"`
	Issues   []validation.Issue `json:"issues,omitempty"`
}

func writeInspection(w io.Writer, result orchestrator.Result, format string) error {
	settings := result.Fragment.Settings
	if settings == nil {
		settings = []manifest.Setting{}
	}
	payload, err := json.MarshalIndent(inspection{
		ZWave:    result.Fragment,
		Settings: settings,
		Image:    result.ImageURL,
		Issues:   result.Issues,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fragment: %w", err)
	}

	switch strings.ToLower(format) {
	case "", "json":
		_, err = w.Write(append(payload, '\n'))
		return err
	case "yaml", "yml":
		out, err := jsonToYAML(payload)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode fragment: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

func buildLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
