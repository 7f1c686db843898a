package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/enrich"
	"github.com/msto63/mTA/internal/media"
	"github.com/msto63/mTA/internal/transcriber"
)

var (
	temporaryMode       string
	temporaryLanguage   string
	temporaryLongBeam   int
	temporaryLongBestOf int
)

var temporaryCmd = &cobra.Command{
	Use:   "temporary <datei>",
	Short: "Einzeldatei in den Cache transkribieren (ohne Archiv)",
	Long: `Transkribiert eine einzelne Datei in den temporären Cache. Die
Quelldatei bleibt unberührt, nichts wird archiviert, und der Cache
wird beim nächsten Lauf überschrieben.

Beispiele:
  mta temporary memo.wav
  mta temporary vortrag.mp4 --mode long --language de`,
	Args: cobra.ExactArgs(1),
	RunE: runTemporary,
}

func init() {
	rootCmd.AddCommand(temporaryCmd)

	temporaryCmd.Flags().StringVar(&temporaryMode, "mode", "auto", "Decoding-Preset: auto|short|standard|long")
	temporaryCmd.Flags().StringVar(&temporaryLanguage, "language", "", "Sprach-Hinweis (z. B. de, en); überspringt die Erkennung")
	temporaryCmd.Flags().IntVar(&temporaryLongBeam, "long-beam", 3, "Beam-Größe für lange Dateien (1-8)")
	temporaryCmd.Flags().IntVar(&temporaryLongBestOf, "long-best-of", 3, "Best-of für lange Dateien (1-8)")
}

func runTemporary(cmd *cobra.Command, args []string) error {
	file := args[0]
	if !media.IsMedia(file) {
		return fmt.Errorf("keine Audio-/Videodatei: %s", file)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	preset, err := asr.ParsePreset(temporaryMode)
	if err != nil {
		return err
	}

	language := temporaryLanguage
	if language == "" {
		language = cfg.ASR.Language
	}

	engine, err := asr.NewWhisperCLI(asr.WhisperConfig{
		Binary:     cfg.ASR.Binary,
		ModelPath:  cfg.ASR.ModelPath,
		NumThreads: cfg.ASR.NumThreads,
	})
	if err != nil {
		return fmt.Errorf("ASR-Engine nicht verfügbar: %w", err)
	}
	defer engine.Close()

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	pool := enrich.NewPool(analyzer, cfg.Enrichment.MaxWorkers)
	pipeline := transcriber.New(engine, pool, nil)

	result, cache, err := pipeline.ProcessTemporary(cmd.Context(), file, transcriber.Options{
		Preset:     preset,
		Language:   language,
		DisableVAD: cfg.ASR.DisableVAD,
		Long: asr.LongOptions{
			BeamSize: temporaryLongBeam,
			BestOf:   temporaryLongBestOf,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Temporäres Transkript bereit: %s  (%d Segmente, wird beim nächsten Lauf gelöscht)\n",
		cache, len(result.Segments))
	return nil
}
