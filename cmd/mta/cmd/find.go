package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/internal/archive"
)

var findCmd = &cobra.Command{
	Use:   "find <suchbegriff>",
	Short: "Volltextsuche über alle Transkripte",
	Long: `Durchsucht alle archivierten Transkripte per Volltextsuche.
Phrasen in Anführungszeichen setzen.

Beispiele:
  mta find Quartalszahlen
  mta find '"nächste Woche"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := archive.Open(cfg.General.DBPath)
	if err != nil {
		return fmt.Errorf("Archiv nicht verfügbar: %w", err)
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("Suche fehlgeschlagen: %w", err)
	}
	if len(hits) == 0 {
		fmt.Println("Keine Treffer.")
		return nil
	}

	for _, h := range hits {
		text := h.Text
		if len(text) > 120 {
			text = text[:120] + "..."
		}
		fmt.Printf("%s  [%.2fs]  %s\n", h.File, h.Start, text)
	}
	return nil
}
