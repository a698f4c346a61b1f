package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	corecfg "github.com/still-asking/sapn-generator/internal/core/config"
)

// cli holds the persistent flags and the configuration they resolve to.
type cli struct {
	configPath string
	envFile    string
	format     string

	cfg *corecfg.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "sapngen",
		Short: "SAPN part number generator",
		Long: "sapngen assigns unique SAPN-{CCC}-{SS}-{NNNNN} part numbers, " +
			"partitioned by category and subcategory, to stored parts.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "path to YAML configuration file")
	flags.StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before reading SAPN_ variables")
	flags.StringVarP(&c.format, "format", "o", formatText, "output format: text, json or yaml")

	root.AddCommand(
		newServeCmd(c),
		newMigrateCmd(c),
		newBackfillCmd(c),
		newNextCmd(c),
		newParseCmd(c),
	)
	return root
}

func (c *cli) load() error {
	if err := checkFormat(c.format); err != nil {
		return err
	}
	if err := corecfg.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := corecfg.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	setupLogger(cfg.Log)
	return nil
}

// setupLogger installs the default slog logger. Logs go to stderr so that
// command output on stdout stays machine readable.
func setupLogger(cfg corecfg.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
