package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/logincmd/internal/app"
	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print profiles and global commands from the configured store",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format: yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := cliLogger(cfg)

	core, err := app.OpenCore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	return writeExport(out, core.Catalog.Export(), exportFormat)
}

func writeExport(w io.Writer, exp domain.Export, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
