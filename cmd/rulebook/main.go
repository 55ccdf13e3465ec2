// Package main provides the rulebook command line interface and the
// localhost server the UI talks to.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimhsiao/rulebook/internal/config"
	"github.com/kimhsiao/rulebook/internal/kv"
	"github.com/kimhsiao/rulebook/internal/logging"
	"github.com/kimhsiao/rulebook/internal/models"
	"github.com/kimhsiao/rulebook/internal/snapshot"
	"github.com/kimhsiao/rulebook/internal/store"
)

var (
	configFile string
	dataDir    string
	debugMode  bool
)

func main() {
	rootCommand := cobra.Command{
		Use:           "rulebook",
		Short:         "Personal rules and mental models notebook",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogger(cfg)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newServeCommand(),
		newListCommand(),
		newExportCommand(),
		newImportCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to execute a command: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// setupLogger configures the global logger. Logs go to stderr so the
// list/export output on stdout stays machine-readable.
func setupLogger(cfg config.Config) {
	level := logging.ParseLevel(cfg.Log.Level)
	if debugMode {
		level = logging.LevelDebug
	}
	logging.Init(os.Stderr, level)
}

// openStore opens the key-value backend and seeds the entry store.
func openStore(cfg config.Config) (*store.Store, *kv.Store, error) {
	kvStore, err := kv.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return store.New(store.NewAdapter(kvStore)), kvStore, nil
}

func newListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, kvStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer kvStore.Close()

			st.SetQuery(query)
			view := st.View()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UPDATED\tTITLE\tONE-LINER\tTAGS")
			for _, entry := range view.Entries {
				title := entry.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					entry.UpdatedAtTime().Format(time.DateTime),
					title,
					entry.OneLiner,
					models.JoinTags(entry.Tags),
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter entries by substring")

	return cmd
}

func newExportCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of all entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, kvStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer kvStore.Close()

			entries := st.Entries()
			data, err := snapshot.Export(entries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(entries), outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", snapshot.SuggestedFilename, "output file path")

	return cmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON snapshot into the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, kvStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer kvStore.Close()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			result, err := snapshot.Import(raw, st.Entries())
			if err != nil {
				return err
			}
			st.Replace(result.Merged, result.SelectID)

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries (%d skipped), collection now holds %d\n",
				result.Imported, result.Skipped, len(result.Merged))
			return nil
		},
	}
}
