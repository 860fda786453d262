package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	pkgcache "github.com/hputnam/oddsboard/internal/pkg/cache"
	pkgconfig "github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/logging"
	"github.com/hputnam/oddsboard/internal/pkg/storage"
	"github.com/hputnam/oddsboard/internal/scraper/pipeline"
	"github.com/hputnam/oddsboard/internal/scraper/sources"

	// Register all supported sources via init().
	_ "github.com/hputnam/oddsboard/internal/scraper/sources/all"
)

const defaultConfigPath = "configs/oddsboard.yaml"

type flags struct {
	configPath string
	season     string
	weeks      string
	sources    string
	out        string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Scraper failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	f := parseFlags()

	cfg, err := pkgconfig.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.out != "" {
		cfg.DataDir = f.out
	}
	logging.Setup(cfg.Logging.Level, "scraper")

	weeks, err := parseWeeks(f.weeks)
	if err != nil {
		return err
	}

	sourceNames := cfg.Scraper.EnabledSources
	if f.sources != "" {
		sourceNames = splitList(f.sources)
	}
	srcs, err := sources.Select(cfg, sourceNames)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	store := storage.New(cfg.DataDir)
	resultCache := pkgcache.New(cfg.Cache.Size, cfg.Cache.TTL)
	p := pipeline.New(srcs, store, resultCache)

	slog.Info("Starting scrape",
		"season", f.season, "weeks", weeks, "sources", strings.Join(sourceNames, ","))

	anyData := false
	for _, week := range weeks {
		result, err := p.Run(ctx, f.season, week)
		if err != nil {
			if errors.Is(err, pipeline.ErrAllSourcesFailed) {
				slog.Error("All sources failed", "season", f.season, "week", week,
					"errors", result.Summary.SourceErrors)
				continue
			}
			return err
		}
		if result.TotalGames > 0 {
			anyData = true
		}
		slog.Info("Week scraped", "season", f.season, "week", week,
			"games", result.TotalGames, "sources_with_data", result.Summary.SourcesWithData)
	}

	if !anyData {
		return fmt.Errorf("no source yielded data for season %s weeks %v", f.season, weeks)
	}
	return nil
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", defaultConfigPath, "path to YAML config")
	flag.StringVar(&f.season, "season", "2025", "season to scrape")
	flag.StringVar(&f.weeks, "weeks", "", "comma-separated week numbers (required)")
	flag.StringVar(&f.sources, "sources", "", "comma-separated source names (default: config enabled_sources)")
	flag.StringVar(&f.out, "out", "", "output directory (default: config data_dir)")
	flag.Parse()
	return f
}

func parseWeeks(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("-weeks is required (e.g. -weeks 3 or -weeks 1,2,3)")
	}
	var weeks []int
	for _, part := range splitList(s) {
		w, err := strconv.Atoi(part)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid week number %q", part)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setupSignalHandler(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-ch
		slog.Info("Received signal, abandoning in-flight fetches", "signal", sig)
		cancel()
	}()
}
