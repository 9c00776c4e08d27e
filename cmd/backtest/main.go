package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"stoikov-maker-go/config"
	"stoikov-maker-go/infrastructure/logger"
	"stoikov-maker-go/market"
	"stoikov-maker-go/marketdata"
	"stoikov-maker-go/metrics"
	"stoikov-maker-go/report"
	"stoikov-maker-go/sim"
	"stoikov-maker-go/store"
	"stoikov-maker-go/strategy/stoikov"
)

// Replays a recorded feed: calibrates the transition model on the leading
// window, runs the quoting loop over the whole feed, persists the run, and
// prints a summary.
//
//	go run ./cmd/backtest -config configs/config.yaml
func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	watch := flag.Bool("watch", false, "re-run whenever the config file changes")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Metrics.Addr != "" {
		metrics.StartMetricsServer(cfg.Metrics.Addr)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("run failed", zap.Error(err))
	}

	if *watch {
		log.Info("watching config for changes", zap.String("path", *cfgPath))
		w := config.Watcher{Path: *cfgPath}
		_ = w.Start(context.Background(), func(next config.AppConfig) {
			log.Info("config changed, re-running")
			if err := run(next, log); err != nil {
				log.Error("run failed", zap.Error(err))
			}
		})
	}
}

func run(cfg config.AppConfig, log *zap.Logger) error {
	feed, err := loadFeed(cfg.Data)
	if err != nil {
		return fmt.Errorf("load feed: %w", err)
	}
	log.Info("feed loaded", zap.Int("updates", len(feed)))

	calWindow := cfg.Data.CalibrationWindow()
	var calibration []market.MdUpdate
	if len(feed) > 0 {
		cutoff := feed[0].ReceiveTs + calWindow.Nanoseconds()
		for _, u := range feed {
			if u.ReceiveTs > cutoff {
				break
			}
			calibration = append(calibration, u)
		}
	}

	disc := stoikov.NewDiscretizer(cfg.Strategy.Buckets)
	cal := stoikov.NewCalibrator(disc, cfg.Strategy.LookaheadNs)
	cal.Replay(sim.NewReplay(calibration))
	model, err := cal.Model()
	if err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	log.Info("transition model calibrated", zap.Int("states", disc.States()))

	strat, err := stoikov.New(cfg.Strategy, model, log)
	if err != nil {
		return err
	}
	res, err := strat.Run(sim.NewReplay(feed))
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	runID := "unsaved"
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err = st.SaveRun(context.Background(), cfg.Strategy, res)
		if err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		log.Info("run persisted", zap.String("runId", runID), zap.String("path", cfg.Store.Path))
	}

	report.Render(os.Stdout, runID, report.Summarize(res))
	return nil
}

func loadFeed(d config.DataConfig) ([]market.MdUpdate, error) {
	if strings.HasPrefix(d.Source, "ws://") || strings.HasPrefix(d.Source, "wss://") {
		return marketdata.Stream(context.Background(), d.Source)
	}
	// window <= 0 loads the whole file; calibration slices the prefix
	return marketdata.LoadCSV(d.Source, 0)
}
