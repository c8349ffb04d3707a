package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/glasshost/glasshost/internal/config"
	"github.com/glasshost/glasshost/internal/logging"
	"github.com/glasshost/glasshost/internal/shell"
	"github.com/glasshost/glasshost/internal/surface"
	"github.com/glasshost/glasshost/internal/webview"
)

// Host harness: discovers plugins, arms one surface, and drives the frame
// loop from a ticker. A real embedding replaces the ticker with the UI
// toolkit's frame callback on the GUI thread.
func main() {
	// Parse flags
	pluginsDir := flag.String("plugins", "", "Plugin discovery directory (default $HOME/.glasshost/plugins)")
	pluginID := flag.String("open", "", "Plugin id to open on the main surface")
	headless := flag.Bool("headless", false, "Use the in-process script engine instead of a native webview")
	devtools := flag.Bool("devtools", false, "Enable webview developer tools")
	fps := flag.Int("fps", 60, "Frame rate of the harness loop")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *pluginsDir != "" {
		cfg.Plugins.Dir = *pluginsDir
	}
	if *devtools {
		cfg.WebView.DevTools = true
	}

	logger := logging.Must(logging.Options{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer func() { _ = logger.Sync() }()

	opts := []shell.Option{shell.WithLogger(logger)}
	if *headless {
		opts = append(opts, shell.WithViewOptions(
			webview.WithEngineFactory(webview.HeadlessFactory())))
	}

	host := shell.New(cfg, opts...)
	defer func() {
		if err := host.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("glasshost starting",
		zap.String("plugins_dir", cfg.PluginsDir()),
		zap.Int("plugins", host.Supervisor().Count()))
	for _, p := range host.Supervisor().Sidebar() {
		logger.Info("sidebar plugin",
			zap.String("id", p.Manifest.ID),
			zap.String("name", p.Manifest.Name),
			zap.String("version", p.Manifest.Version))
	}

	primary := host.AddSurface("main")
	primary.SetBounds(webview.Bounds{Width: 1280, Height: 800})
	primary.SetActive(true)

	if *pluginID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Plugins.ReadyTimeout)
		if err := host.OpenPlugin(ctx, "main", *pluginID); err != nil {
			logger.Error("open plugin", zap.String("id", *pluginID), zap.Error(err))
		}
		cancel()
	}

	if *fps <= 0 {
		log.Fatalf("invalid fps %d", *fps)
	}
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			host.Tick()
			for _, note := range primary.Poll() {
				switch note.Kind {
				case surface.NoteInitialized:
					logger.Info("surface initialized")
				case surface.NoteInitFailed:
					logger.Error("surface failed to initialize", zap.String("reason", note.Reason))
				case surface.NoteURLChanged:
					logger.Info("surface navigated", zap.String("url", note.URL))
				case surface.NoteIPCMessage:
					logger.Info("message from content",
						zap.String("channel", note.Message.Channel),
						zap.String("payload", note.Message.Payload))
				}
			}
		case <-sigChan:
			logger.Info("shutting down")
			return
		}
	}
}
