package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"github.com/yourusername/yt-grab-go/pkg/logger"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:     "yt-grab [url]",
		Short:   "yt-grab - Download YouTube videos with clipping and sidecar notes",
		Long:    `Downloads a YouTube video (or a clip of it), muxes the streams with ffmpeg, and drops a markdown note next to the output.`,
		Version: "1.0.0",
		Args:    cobra.MaximumNArgs(1),
		Run:     runGrab,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/yt-grab/config.yaml)")

	rootCmd.Flags().StringP("url", "u", "", "Video URL (alternative to the positional argument)")
	rootCmd.Flags().StringP("resolution", "r", "", "Preferred resolution, e.g. 1080p (default: best available)")
	rootCmd.Flags().StringP("clip", "c", "", `Clip range as "MM:SS,MM:SS"`)
	rootCmd.Flags().BoolP("audio", "a", false, "Audio only: save an mp3 instead of video")
	rootCmd.Flags().StringP("note", "n", "", "Comment text appended to the sidecar note")
	rootCmd.Flags().StringP("tags", "t", "", "Comma-separated tags for the sidecar note")
	rootCmd.Flags().StringP("output", "o", "", "Output directory override")
	rootCmd.Flags().BoolP("debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

func runGrab(cmd *cobra.Command, args []string) {
	url, _ := cmd.Flags().GetString("url")
	if len(args) > 0 {
		if url != "" {
			fmt.Fprintln(os.Stderr, "Error: pass the URL either as an argument or with --url, not both")
			os.Exit(1)
		}
		url = args[0]
	}
	if url == "" {
		cmd.Help()
		os.Exit(1)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if outputDir, _ := cmd.Flags().GetString("output"); outputDir != "" {
		// Temp files follow the output unless placed elsewhere explicitly
		if config.Output.TempDir == config.Output.Dir {
			config.Output.TempDir = outputDir
		}
		config.Output.Dir = outputDir
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		config.Logging.Level = "debug"
	}

	// Clip parse errors reject the run before anything is fetched
	clipSpec, _ := cmd.Flags().GetString("clip")
	var clip *domain.ClipRange
	if clipSpec != "" {
		parsed, err := domain.ParseClipRange(clipSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		clip = &parsed
	}

	log, err := logger.New(logger.Config{
		Level:    config.Logging.Level,
		Format:   config.Logging.Format,
		FilePath: config.Logging.FilePath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := createDirectories(config); err != nil {
		log.Fatal("Failed to create directories", zap.Error(err))
	}

	var repo domain.GrabRepository
	if config.History.Enabled {
		store, err := infrastructure.NewSQLiteGrabRepository(config.History.DatabasePath)
		if err != nil {
			log.Fatal("Failed to open history database", zap.Error(err))
		}
		defer store.Close()
		repo = store
	}

	ytClient := infrastructure.NewYouTubeClient(config.Fetch.Timeout, log)
	transcoder := infrastructure.NewFFmpegTranscoder(&config.Transcode, log)
	notes := infrastructure.NewMarkdownNoteWriter(log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	pipeline := app.NewPipeline(ytClient, ytClient, transcoder, notes, repo, notifier, config, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Warn("Interrupt received, cancelling run")
		cancel()
	}()

	resolution, _ := cmd.Flags().GetString("resolution")
	audioOnly, _ := cmd.Flags().GetBool("audio")
	comment, _ := cmd.Flags().GetString("note")
	tagSpec, _ := cmd.Flags().GetString("tags")

	result, err := pipeline.Run(ctx, app.Request{
		URL:        url,
		Resolution: resolution,
		Clip:       clip,
		ClipSpec:   clipSpec,
		AudioOnly:  audioOnly,
		Comment:    comment,
		Tags:       parseTags(tagSpec),
	})
	if err != nil {
		log.Error("Grab failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Grab failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Downloaded: %s\n", result.Video.Title)
	fmt.Printf("Saved:      %s\n", result.OutputPath)
	fmt.Printf("Note:       %s\n", result.NotePath)
}

var clipCmd = &cobra.Command{
	Use:   "clip [file]",
	Short: "Trim a clip out of a local media file",
	Long:  `Re-encodes a section of an already downloaded file into a new mp4 next to the source. No network involved.`,
	Args:  cobra.ExactArgs(1),
	Run:   runClip,
}

func runClip(cmd *cobra.Command, args []string) {
	input := args[0]
	info, err := os.Stat(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", input)
		os.Exit(1)
	}

	clipSpec, _ := cmd.Flags().GetString("clip")
	if clipSpec == "" {
		cmd.Help()
		os.Exit(1)
	}
	rng, err := domain.ParseClipRange(clipSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		config.Logging.Level = "debug"
	}

	// The source's duration is not known here, so only the lower bound applies
	if err := rng.Validate(config.Transcode.MinClipDuration, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:    config.Logging.Level,
		Format:   config.Logging.Format,
		FilePath: config.Logging.FilePath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// The transcode log files default to the output directory
	if err := createDirectories(config); err != nil {
		log.Fatal("Failed to create directories", zap.Error(err))
	}

	transcoder := infrastructure.NewFFmpegTranscoder(&config.Transcode, log)
	output := clipOutputPath(input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Warn("Interrupt received, cancelling clip")
		cancel()
	}()

	if err := transcoder.Clip(ctx, domain.ClipJob{
		VideoPath:  input,
		Range:      rng,
		OutputPath: output,
	}); err != nil {
		log.Error("Clip failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Clip failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clipped: %s\n", rng.String())
	fmt.Printf("Saved:   %s\n", output)
}

// clipOutputPath derives the output for a local clip: the source path with an
// mp4 extension, or a " - clip" suffix when that would overwrite the source.
func clipOutputPath(input string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	out := stem + ".mp4"
	if out == input {
		out = stem + " - clip.mp4"
	}
	return out
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent grabs",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openHistory()
		defer repo.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")

		var (
			records []*domain.GrabRecord
			err     error
		)
		if status != "" {
			if !domain.ValidateStatus(domain.GrabStatus(status)) {
				fmt.Fprintf(os.Stderr, "Error: unknown status %q (want running, completed or failed)\n", status)
				os.Exit(1)
			}
			records, err = repo.FindByStatus(domain.GrabStatus(status))
		} else {
			records, err = repo.FindRecent(limit)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tTITLE\tOUTPUT")
		for _, r := range records {
			title := r.Title
			if title == "" {
				title = r.URL
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(r.ID, 8),
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Status,
				truncate(title, 40),
				r.OutputPath)
		}
		w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show grab statistics",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openHistory()
		defer repo.Close()

		stats, err := repo.GetStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Grab Statistics:")
		fmt.Printf("  Total:     %d\n", stats.Total)
		fmt.Printf("  Running:   %d\n", stats.Running)
		fmt.Printf("  Completed: %d\n", stats.Completed)
		fmt.Printf("  Failed:    %d\n", stats.Failed)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if path == "" {
			path = filepath.Join(home, ".config", "yt-grab", "config.yaml")
		}

		if _, err := os.Stat(path); err == nil && !force {
			fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
			os.Exit(1)
		}

		if err := app.SaveConfig(domain.DefaultConfig(), path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
	},
}

func init() {
	clipCmd.Flags().StringP("clip", "c", "", `Clip range as "MM:SS,MM:SS"`)
	clipCmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of entries to show (0 shows all)")
	historyCmd.Flags().StringP("status", "s", "", "Filter by status (running, completed, failed)")
	configInitCmd.Flags().String("path", "", "Target path (default: ~/.config/yt-grab/config.yaml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// openHistory loads config and opens the history database, exiting on failure
func openHistory() *infrastructure.SQLiteGrabRepository {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !config.History.Enabled {
		fmt.Fprintln(os.Stderr, "Error: grab history is disabled in the configuration")
		os.Exit(1)
	}

	repo, err := infrastructure.NewSQLiteGrabRepository(config.History.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history database: %v\n", err)
		os.Exit(1)
	}
	return repo
}

func createDirectories(config *domain.Config) error {
	dirs := []string{
		config.Output.Dir,
		config.Output.TempDir,
	}
	if config.History.Enabled {
		dirs = append(dirs, filepath.Dir(config.History.DatabasePath))
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func parseTags(spec string) []string {
	if spec == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(spec, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
