package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/mTA/internal/archive"
	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/enrich"
	"github.com/msto63/mTA/internal/media"
	"github.com/msto63/mTA/internal/sentiment"
	"github.com/msto63/mTA/internal/transcriber"
	"github.com/msto63/mTA/pkg/core/config"
)

var (
	transcribeParent     string
	transcribeCopy       bool
	transcribeMode       string
	transcribeLanguage   string
	transcribeLongBeam   int
	transcribeLongBestOf int
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <datei|ordner> [...]",
	Short: "Dateien/Ordner transkribieren und archivieren",
	Long: `Transkribiert Audio- und Videodateien und legt sie zusammen mit
ihren Transkripten in einem Sitzungsordner ab. Quelldateien werden
standardmäßig verschoben; --copy kopiert stattdessen.

Beispiele:
  mta transcribe interview.mp3
  mta transcribe ./aufnahmen/ --parent projekt-x
  mta transcribe vortrag.mp4 --mode long --long-beam 5
  mta transcribe memo.wav --language de --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

var dryRunCmd = &cobra.Command{
	Use:   "dry-run <datei|ordner> [...]",
	Short: "Zeigt Dauer und Preset je Datei, ohne zu transkribieren",
	Long: `Listet jede Mediendatei mit ihrer Dauer und dem Preset auf, das
die Transkription verwenden würde. Es wird nichts transkribiert,
verschoben oder archiviert.

Beispiele:
  mta dry-run ./aufnahmen/
  mta dry-run vortrag.mp4 --mode long`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDryRun,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(dryRunCmd)

	transcribeCmd.Flags().StringVar(&transcribeParent, "parent", "", "Name des Sitzungsordners (default: Zeitstempel)")
	transcribeCmd.Flags().BoolVar(&transcribeCopy, "copy", false, "Quelldateien kopieren statt verschieben")
	transcribeCmd.Flags().StringVar(&transcribeMode, "mode", "auto", "Decoding-Preset: auto|short|standard|long")
	transcribeCmd.Flags().StringVar(&transcribeLanguage, "language", "", "Sprach-Hinweis (z. B. de, en); überspringt die Erkennung")
	transcribeCmd.Flags().IntVar(&transcribeLongBeam, "long-beam", 3, "Beam-Größe für lange Dateien (1-8)")
	transcribeCmd.Flags().IntVar(&transcribeLongBestOf, "long-best-of", 3, "Best-of für lange Dateien (1-8)")

	dryRunCmd.Flags().StringVar(&transcribeMode, "mode", "auto", "Decoding-Preset: auto|short|standard|long")
}

// buildPipeline assembles the engine, the enrichment pool and the
// archive from the effective configuration
func buildPipeline(cfg *config.Config) (*transcriber.Transcriber, func(), error) {
	engine, err := asr.NewWhisperCLI(asr.WhisperConfig{
		Binary:     cfg.ASR.Binary,
		ModelPath:  cfg.ASR.ModelPath,
		NumThreads: cfg.ASR.NumThreads,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ASR-Engine nicht verfügbar: %w", err)
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		engine.Close()
		return nil, nil, err
	}

	store, err := archive.Open(cfg.General.DBPath)
	if err != nil {
		engine.Close()
		return nil, nil, fmt.Errorf("Archiv nicht verfügbar: %w", err)
	}

	pool := enrich.NewPool(analyzer, cfg.Enrichment.MaxWorkers)
	cleanup := func() {
		store.Close()
		engine.Close()
	}
	return transcriber.New(engine, pool, store), cleanup, nil
}

func buildAnalyzer(cfg *config.Config) (*sentiment.Analyzer, error) {
	if cfg.Enrichment.TonesPath == "" {
		return sentiment.NewAnalyzer(), nil
	}
	rules, err := sentiment.LoadToneRules(cfg.Enrichment.TonesPath)
	if err != nil {
		return nil, fmt.Errorf("Ton-Lexikon ungültig: %w", err)
	}
	return sentiment.NewAnalyzerWithTones(rules)
}

func transcribeOptions(cfg *config.Config) (transcriber.Options, error) {
	preset, err := asr.ParsePreset(transcribeMode)
	if err != nil {
		return transcriber.Options{}, err
	}

	language := transcribeLanguage
	if language == "" {
		language = cfg.ASR.Language
	}

	return transcriber.Options{
		Preset:     preset,
		Language:   language,
		DisableVAD: cfg.ASR.DisableVAD,
		Long: asr.LongOptions{
			BeamSize: transcribeLongBeam,
			BestOf:   transcribeLongBestOf,
		},
		Move: !transcribeCopy,
	}, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := transcribeOptions(cfg)
	if err != nil {
		return err
	}

	files, err := media.Gather(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("keine Mediendateien gefunden")
	}

	parent, err := media.MakeParent(cfg.General.DataDir, transcribeParent)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := pipeline.ProcessAll(cmd.Context(),
		files,
		filepath.Join(parent, "material"),
		filepath.Join(parent, "transcripts"),
		opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("Fertig: %s  (Preset: %s, %d Segmente)\n",
			filepath.Base(r.Placed), r.Preset, len(r.Segments))
	}
	if len(results) < len(files) {
		fmt.Printf("%d von %d Dateien fehlgeschlagen.\n", len(files)-len(results), len(files))
	}
	fmt.Printf("Sitzungsordner: %s\n", parent)

	return nil
}

func runDryRun(cmd *cobra.Command, args []string) error {
	preset, err := asr.ParsePreset(transcribeMode)
	if err != nil {
		return err
	}

	files, err := media.Gather(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("keine Mediendateien gefunden")
	}

	fmt.Println("Dry-Run (keine Transkription):")
	for _, plan := range transcriber.PlanFiles(cmd.Context(), files, preset) {
		fmt.Printf("  %s  |  Dauer=%s  |  Preset=%s\n",
			plan.File, formatDuration(plan.Duration), plan.Preset)
	}
	return nil
}

func formatDuration(d *float64) string {
	if d == nil {
		return "unbekannt"
	}
	total := int(*d)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
