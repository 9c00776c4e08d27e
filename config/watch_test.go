package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, validYAML)
	updated := make(chan AppConfig, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx, func(cfg AppConfig) {
			select {
			case updated <- cfg:
			default:
			}
		})
	}()

	// give the watcher a moment to register before rewriting
	time.Sleep(100 * time.Millisecond)
	body := validYAML + "\n# touched\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updated:
		if cfg.Env != "backtest" {
			t.Errorf("reloaded env = %q, want backtest", cfg.Env)
		}
	case <-ctx.Done():
		t.Fatal("watcher never delivered the reloaded config")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Start returned %v, want context error", err)
	}
}

func TestWatcherSkipsBrokenConfig(t *testing.T) {
	path := writeConfig(t, validYAML)
	updated := make(chan AppConfig, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	go func() { _ = w.Start(ctx, func(cfg AppConfig) { updated <- cfg }) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("env: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updated:
		t.Fatalf("broken config delivered: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherMissingPath(t *testing.T) {
	w := Watcher{Path: "/nonexistent/config.yaml"}
	if err := w.Start(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing watch path")
	}
}
