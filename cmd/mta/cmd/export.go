package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/internal/export"
	"github.com/msto63/mTA/internal/transcript"
)

var (
	exportOut    string
	exportMerged bool
	exportNoTS   bool
	exportNoTone bool
)

var exportCmd = &cobra.Command{
	Use:   "export <transkript.json> [...]",
	Short: "JSON-Transkripte als Textdatei exportieren",
	Long: `Exportiert JSON-Transkripte als Textdateien, zusammengeführt oder
einzeln. Zeitstempel und Stimmungs-Annotationen lassen sich abschalten.

Beispiele:
  mta export transcripts/talk.json --out talk.txt
  mta export a.json b.json --out alle.txt --merged
  mta export talk.json --out schlicht.txt --no-ts --no-tone`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Zieldatei (Pflicht)")
	exportCmd.Flags().BoolVar(&exportMerged, "merged", false, "Alle Transkripte in eine Datei zusammenführen")
	exportCmd.Flags().BoolVar(&exportNoTS, "no-ts", false, "Zeitstempel weglassen")
	exportCmd.Flags().BoolVar(&exportNoTone, "no-tone", false, "Stimmung/Töne weglassen")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts := export.TextOptions{
		Timestamps:  !exportNoTS,
		Annotations: !exportNoTone,
	}

	var seglists [][]transcript.Segment
	for _, p := range args {
		if strings.ToLower(filepath.Ext(p)) != ".json" {
			fmt.Printf("Überspringe Nicht-JSON: %s\n", p)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("Transkript nicht lesbar: %w", err)
		}
		segments, err := export.ParseJSON(data)
		if err != nil {
			return fmt.Errorf("Transkript %s ungültig: %w", p, err)
		}
		seglists = append(seglists, segments)
	}
	if len(seglists) == 0 {
		return fmt.Errorf("keine gültigen JSON-Transkripte angegeben")
	}

	if err := os.MkdirAll(filepath.Dir(exportOut), 0755); err != nil {
		return fmt.Errorf("Zielordner nicht anlegbar: %w", err)
	}

	if exportMerged {
		var merged []transcript.Segment
		for _, segs := range seglists {
			merged = append(merged, segs...)
		}
		if err := writeText(merged, exportOut, opts); err != nil {
			return err
		}
		fmt.Printf("Exportiert (zusammengeführt): %s\n", exportOut)
		return nil
	}

	ext := filepath.Ext(exportOut)
	stem := strings.TrimSuffix(exportOut, ext)
	for i, segs := range seglists {
		out := exportOut
		if len(seglists) > 1 {
			out = fmt.Sprintf("%s_%d%s", stem, i+1, ext)
		}
		if err := writeText(segs, out, opts); err != nil {
			return err
		}
		fmt.Printf("Exportiert: %s\n", out)
	}
	return nil
}

func writeText(segments []transcript.Segment, path string, opts export.TextOptions) error {
	content := export.ToText(segments, opts)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("Export fehlgeschlagen: %w", err)
	}
	return nil
}
