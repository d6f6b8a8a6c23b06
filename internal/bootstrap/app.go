package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/analysis"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/media"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/meetings"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/pipeline"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/render"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/config"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/server"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/speech"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/staging"
	"github.com/KSKrishna1410/MDOC-meeting-summary/pkg/executor"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Sessions        *sessions.MemoryStore
	Stager          *staging.Stager
	Sweeper         *staging.Sweeper
	MeetingsService *meetings.Service
	MeetingsHandler *meetings.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	exec := executor.New()
	probe := media.NewProber(exec, cfg.FFprobeBin)
	transcriber := speech.NewWhisperTranscriber(exec, cfg.FFmpegBin, cfg.WhisperBin, cfg.WhisperModel, cfg.WorkDir)

	presets, err := pipeline.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("load detection presets: %w", err)
	}

	var ai analysis.Analyzer
	if cfg.GeminiAPIKey != "" {
		ai = analysis.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	fallback := analysis.NewKeywordScanner(nil)

	runner := pipeline.NewRunner(exec, probe, transcriber, ai, fallback, cfg.FFmpegBin, cfg.WorkDir, presets)

	store := sessions.NewMemoryStore(cfg.SessionTTL)
	stager := staging.New(cfg.TempDir)
	engine := render.NewEngine(cfg.WorkDir)

	svc := &meetings.Service{
		Sessions: store,
		Stager:   stager,
		Pipeline: runner,
		Probe:    probe,
		Renderer: engine,
	}
	handler := meetings.NewHandler(svc, cfg.MaxUploadBytes)

	app := &App{
		Config:          cfg,
		Sessions:        store,
		Stager:          stager,
		MeetingsService: svc,
		MeetingsHandler: handler,
	}

	if cfg.CleanupWindow > 0 {
		app.Sweeper = staging.NewSweeper(cfg.TempDir, cfg.CleanupWindow, cfg.CleanupWindow/2)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		MeetingsHandler: handler,
	})

	return app, nil
}

// StartBackground launches the optional janitor and sweeper loops.
func (a *App) StartBackground(ctx context.Context) {
	if a.Config.SessionTTL > 0 {
		go a.Sessions.StartJanitor(ctx, time.Minute)
	}
	if a.Sweeper != nil {
		go a.Sweeper.Start(ctx)
	}
}
