// Command spectra reads instrument spectral files and reports on them.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-spectra/internal/logging"
	"github.com/robert-malhotra/go-spectra/spectra"
)

var (
	configPath string
	entryID    string
	exhaustive bool
	verbose    bool
	envFile    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spectra",
		Short: "Read spectral files from ASCII and synchrotron HDF5 sources",
		Long: `spectra reads XAS column files and HERMES/ROCK HDF5 maps from SOLEIL,
lists their sheets, and exports them to spreadsheets and plots.

HDF5 field mappings come from --config, then $SPECTRA_H5_CONFIG, then the
built-in catalog. A .env file in the working directory is loaded first.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML field mapping file")
	pf.StringVar(&entryID, "entry", "", "field mapping entry for the configured HERMES reader")
	pf.BoolVar(&exhaustive, "exhaustive", false, "let the auto HDF5 reader try every mapping entry")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log reader selection")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file to load")

	rootCmd.AddCommand(
		newFormatsCmd(),
		newSheetsCmd(),
		newReadCmd(),
		newInspectCmd(),
		newExportCmd(),
		newPlotCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if verbose {
		spectra.SetLogLevel(int(logging.LevelInfo))
	}
	return nil
}

// readerOptions turns the persistent flags into reader options.
func readerOptions() []spectra.ReaderOption {
	opts := []spectra.ReaderOption{spectra.WithEntry(entryID)}
	if configPath != "" {
		opts = append(opts, spectra.WithConfigFile(configPath))
	}
	if exhaustive {
		opts = append(opts, spectra.WithExhaustiveScan())
	}
	return opts
}
