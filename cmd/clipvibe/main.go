package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kikiluvv/clipvibe/internal/analysis"
	"github.com/kikiluvv/clipvibe/internal/clips"
	"github.com/kikiluvv/clipvibe/internal/config"
	"github.com/kikiluvv/clipvibe/internal/ffmpeg"
	"github.com/kikiluvv/clipvibe/internal/logging"
	"github.com/kikiluvv/clipvibe/internal/pipeline"
	"github.com/kikiluvv/clipvibe/internal/video"
	"github.com/kikiluvv/clipvibe/pkg/util"
)

var (
	cfgFile     string
	verbose     bool
	clipID      string
	gradePreset string
	gradeChain  string
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipvibe",
	Short: "clipVibe - video visual metrics toolkit",
	Long:  "A Go-powered toolkit that samples video frames and reports brightness, contrast, dominant colors, and color temperature.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(gradeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [video]...",
	Short: "Compute visual metrics for one or more videos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		if len(args) == 1 {
			return analyzeSingle(cmd.Context(), cfg, args[0])
		}
		if clipID != "" {
			return fmt.Errorf("--id applies to a single file, got %d", len(args))
		}
		return analyzeBatch(cmd.Context(), cfg, args)
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [video]",
	Short: "Print video metadata as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		ex, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		info, err := ex.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printJSON(info)
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade [input] [output]",
	Short: "Apply a color grade and re-encode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (gradePreset == "") == (gradeChain == "") {
			return fmt.Errorf("exactly one of --preset or --vf is required")
		}

		chain := gradeChain
		if gradePreset != "" {
			var err error
			chain, err = video.PresetChain(gradePreset)
			if err != nil {
				return err
			}
		}

		cfg := config.FromContext(cmd.Context())
		ex, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		input, output := args[0], args[1]
		if err := util.EnsureDir(filepath.Dir(output)); err != nil {
			return err
		}

		info, err := ex.Probe(cmd.Context(), input)
		if err != nil {
			return err
		}

		total := int64(info.FrameCount)
		if total <= 0 {
			total = -1 // spinner when the frame count is unknown
		}
		bar := progressbar.Default(total, "grading")

		err = ex.ApplyFilters(cmd.Context(), input, output, chain, func(p *ffmpeg.Progress) {
			_ = bar.Set(p.Frame)
		})
		_ = bar.Finish()
		if err != nil {
			return err
		}

		log.Info().Str("output", output).Str("filters", chain).Msg("grade complete")
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&clipID, "id", "", "clip ID for the analysis record (single file only)")
	gradeCmd.Flags().StringVar(&gradePreset, "preset", "", "named grade preset (warm, cool, vivid, mono, vintage)")
	gradeCmd.Flags().StringVar(&gradeChain, "vf", "", "raw ffmpeg filter chain")
}

func analyzeSingle(ctx context.Context, cfg *config.Config, path string) error {
	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, path, clipID)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func analyzeBatch(ctx context.Context, cfg *config.Config, paths []string) error {
	runner, err := pipeline.NewFromConfig(log.Logger, cfg)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(paths)), "analyzing")
	results := runner.Run(ctx, paths, func(done, total int) {
		_ = bar.Set(done)
	})
	_ = bar.Finish()

	type batchEntry struct {
		Path     string          `json:"path"`
		Analysis *clips.Analysis `json:"analysis,omitempty"`
		Error    string          `json:"error,omitempty"`
	}

	entries := make([]batchEntry, 0, len(results))
	failed := 0
	for _, res := range results {
		entry := batchEntry{Path: res.Path, Analysis: res.Analysis}
		if res.Err != nil {
			entry.Error = res.Err.Error()
			failed++
		}
		entries = append(entries, entry)
	}

	if err := printJSON(entries); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func newExecutor(cfg *config.Config) (*ffmpeg.Executor, error) {
	return ffmpeg.New(log.Logger, ffmpeg.Config{
		Threads:      cfg.FFmpeg.Threads,
		ProbeTimeout: cfg.FFmpeg.ProbeBudget(),
		ExecTimeout:  cfg.FFmpeg.ExecBudget(),
	})
}

func newAnalyzer(cfg *config.Config) (*analysis.Analyzer, error) {
	ex, err := newExecutor(cfg)
	if err != nil {
		return nil, err
	}

	decoder := video.NewDecoder(log.Logger, ex)
	return analysis.New(log.Logger, decoder, analysis.Options{
		SampleCap:    cfg.Analysis.SampleCap,
		ClusterCount: cfg.Analysis.ClusterCount,
		SampleDim:    cfg.Analysis.SampleDim,
		Epsilon:      cfg.Analysis.Epsilon,
		Attempts:     cfg.Analysis.Attempts,
	}), nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
