// Package main provides the CLI entry point for gridcalc.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"go.alis.build/alog"
)

var (
	configPath string
	logLevel   string
	pretty     bool

	cfg = gridcalc.DefaultConfig()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridcalc",
		Short: "Evaluate and edit spreadsheet documents",
		Long: `gridcalc edits JSON spreadsheet documents from the command line.

Cells hold literal text or formulas such as =SUM(A1:A3)*2 or =IF(B1>0,"up","down").
Documents can be imported from and exported to xlsx workbooks.

Examples:
  gridcalc set sheet.json A1 42
  gridcalc set sheet.json A2 "=A1/4"
  gridcalc show sheet.json A1:B5
  gridcalc stats sheet.json A1:A10`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, notice, warning, error")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newEvalCmd(),
		newShowCmd(),
		newSetCmd(),
		newStyleCmd(),
		newClearCmd(),
		newStatsCmd(),
		newRefsCmd(),
		newImportCmd(),
		newExportCmd(),
	)
	return rootCmd
}

// setup loads the configuration and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	c, err := gridcalc.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	if cmd.Flags().Changed("pretty") {
		c.Pretty = pretty
	}
	level, err := gridcalc.ParseLogLevel(c.LogLevel)
	if err != nil {
		return err
	}
	alog.SetLevel(level)
	cfg = c
	return nil
}

// openSession loads the document at path. With create set, a missing
// document opens as an empty sheet.
func openSession(ctx context.Context, path string, create bool) (*gridcalc.Session, error) {
	load := gridcalc.Load
	if create {
		load = gridcalc.LoadOrNew
	}
	state, err := load(ctx, path)
	if err != nil {
		return nil, err
	}
	return gridcalc.NewSession(state, cfg.Options())
}

func saveSession(ctx context.Context, path string, session *gridcalc.Session) error {
	if err := gridcalc.Save(ctx, path, session.State(), cfg.Pretty); err != nil {
		return err
	}
	alog.Infof(ctx, "saved %s", path)
	return nil
}

func writeJSON(w io.Writer, data []byte) error {
	_, err := fmt.Fprintln(w, string(data))
	return err
}
