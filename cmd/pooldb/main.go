package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bietkhonhungvandi212/pool-db/internal/logging"
	"github.com/bietkhonhungvandi212/pool-db/internal/metrics"
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/pagefile"
)

type config struct {
	PageFile     string         `yaml:"page_file"`
	InitialPages int            `yaml:"initial_pages"`
	FrameCount   int            `yaml:"frame_count"`
	Strategy     string         `yaml:"strategy"`
	Log          logging.Config `yaml:"log"`
}

func defaultConfig() config {
	return config{
		PageFile:     "pooldb.dat",
		InitialPages: 16,
		FrameCount:   4,
		Strategy:     "LRU",
		Log:          logging.Config{Level: "debug", Format: "console", OutputFile: "stderr"},
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func run(cfg config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	strategy, err := buffer.ParseStrategy(cfg.Strategy)
	if err != nil {
		return fmt.Errorf("strategy %q: %w", cfg.Strategy, err)
	}

	if !pagefile.Exists(cfg.PageFile) {
		if err := pagefile.Create(cfg.PageFile, cfg.InitialPages); err != nil {
			return err
		}
		logger.Info("created page file",
			zap.String("path", cfg.PageFile), zap.Int("pages", cfg.InitialPages))
	}

	registry := prometheus.NewRegistry()
	pool, err := buffer.NewBufferPool(cfg.PageFile, buffer.Config{
		FrameCount: cfg.FrameCount,
		Strategy:   strategy,
		Logger:     logger,
		Metrics:    metrics.NewPoolMetrics(registry),
	})
	if err != nil {
		return err
	}

	// Touch a few more pages than the pool has frames so the demo shows
	// eviction traffic under the configured strategy.
	for n := page.Number(0); int(n) < cfg.FrameCount+2 && int64(n) < int64(cfg.InitialPages); n++ {
		handle, err := pool.Pin(n)
		if err != nil {
			return err
		}
		copy(handle.Data, fmt.Sprintf("page %d written by pooldb", n))
		if err := pool.MarkDirty(n); err != nil {
			return err
		}
		if err := pool.Unpin(n); err != nil {
			return err
		}
	}

	contents, err := pool.FrameContents()
	if err != nil {
		return err
	}
	logger.Info("pool statistics",
		zap.Int64s("frames", pageNumbers(contents)),
		zap.Int("readIO", pool.NumReadIO()),
		zap.Int("writeIO", pool.NumWriteIO()))

	return pool.Shutdown()
}

func pageNumbers(contents []page.Number) []int64 {
	out := make([]int64, len(contents))
	for i, n := range contents {
		out[i] = int64(n)
	}
	return out
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
