package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/logincmd/internal/app"
	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace profiles and global commands from a YAML or JSON export",
	Long: `Replace profiles and global commands in the configured store. The audit
log is kept. JSON files are accepted since JSON is valid YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	exp, err := decodeExport(data)
	if err != nil {
		return err
	}

	cfg := config.Load()
	log := cliLogger(cfg)

	core, err := app.OpenCore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	if err := core.Persister.Import(cmd.Context(), exp); err != nil {
		return err
	}

	profiles, globals := core.Catalog.Counts()
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d profile(s) and %d global command(s)\n", profiles, globals)
	return nil
}

func decodeExport(data []byte) (domain.Export, error) {
	var exp domain.Export
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return exp, fmt.Errorf("failed to parse export: %w", err)
	}
	return exp, nil
}
