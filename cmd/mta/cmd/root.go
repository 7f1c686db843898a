package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/pkg/core/config"
	"github.com/msto63/mTA/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mta",
	Short: "meinTRANSKRIPTARCHIV - Lokales Transkriptionsarchiv",
	Long: `meinTRANSKRIPTARCHIV transkribiert Audio- und Videodateien lokal
und legt die Transkripte durchsuchbar in einem Archiv ab.

Befehle:
  transcribe - Dateien/Ordner transkribieren und archivieren
  temporary  - Einzeldatei in den Cache transkribieren (ohne Archiv)
  dry-run    - Zeigt Dauer und Preset je Datei, ohne zu transkribieren
  find       - Volltextsuche über alle Transkripte
  openat     - Mediendatei an einem Zeitpunkt öffnen
  export     - JSON-Transkripte als Textdatei exportieren`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// loadConfig resolves the effective configuration and applies the
// global flags to the log setup
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.General.LogLevel = "debug"
	}
	logging.SetDefaults(logging.Config{
		Level:  logging.ParseLevel(cfg.General.LogLevel),
		Format: logging.ParseFormat(cfg.General.LogFormat),
	})

	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
