package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/internal/media"
)

var openatCmd = &cobra.Command{
	Use:   "openat <datei> <sekunden>",
	Short: "Mediendatei an einem Zeitpunkt öffnen",
	Long: `Öffnet eine Mediendatei an der angegebenen Stelle (in Sekunden).
Verwendet VLC oder mpv, mit ffplay als Fallback.

Beispiele:
  mta openat interview.mp3 92.5
  mta openat vortrag.mp4 1830`,
	Args: cobra.ExactArgs(2),
	RunE: runOpenat,
}

func init() {
	rootCmd.AddCommand(openatCmd)
}

func runOpenat(cmd *cobra.Command, args []string) error {
	file := args[0]
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("Datei nicht gefunden: %s", file)
	}

	startSec, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("ungültiger Zeitpunkt %q: %w", args[1], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := media.OpenAt(cfg.Player.Command, file, startSec); err != nil {
		return fmt.Errorf("Wiedergabe fehlgeschlagen: %w", err)
	}
	return nil
}
