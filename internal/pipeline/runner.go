package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/analysis"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/media"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/speech"
	"github.com/KSKrishna1410/MDOC-meeting-summary/pkg/executor"
)

const (
	reasonInterval    = "interval"
	reasonSceneChange = "scene_change"
)

// Runner is the shipped Processor: ffmpeg frame capture, whisper speech
// transcription, and keyword/AI analysis.
type Runner struct {
	Exec        executor.Executor
	Probe       media.Prober
	Transcriber speech.Transcriber
	AIAnalyzer  analysis.Analyzer
	Fallback    analysis.Analyzer
	FFmpegBin   string
	WorkDir     string
	Presets     Presets
}

// NewRunner wires a Runner with defaults filled in.
func NewRunner(exec executor.Executor, probe media.Prober, transcriber speech.Transcriber, ai, fallback analysis.Analyzer, ffmpegBin, workDir string, presets Presets) *Runner {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if presets == nil {
		presets = DefaultPresets()
	}
	if fallback == nil {
		fallback = analysis.NewKeywordScanner(nil)
	}
	return &Runner{
		Exec:        exec,
		Probe:       probe,
		Transcriber: transcriber,
		AIAnalyzer:  ai,
		Fallback:    fallback,
		FFmpegBin:   ffmpegBin,
		WorkDir:     workDir,
		Presets:     presets,
	}
}

// Process runs capture, transcription and analysis for one video.
func (r *Runner) Process(ctx context.Context, videoPath, clientName string, opts Options, sessionGUID string) (Result, error) {
	start := time.Now()
	preset := r.Presets.For(opts.DetectionMode)

	info, err := r.Probe.Probe(ctx, videoPath)
	if err != nil {
		return Result{}, err
	}

	screenshots, err := r.captureScreenshots(ctx, videoPath, info.Duration, preset, opts)
	if err != nil {
		return Result{}, err
	}

	var segments []sessions.SpeechSegment
	if opts.UseSpeech {
		segments, err = r.Transcriber.Transcribe(ctx, videoPath)
		if err != nil {
			return Result{}, err
		}
	}

	keywords, err := r.analyze(ctx, segments, clientName, opts)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Screenshots:    screenshots,
		SpeechSegments: segments,
		KeywordResults: keywords,
		SessionGUID:    sessionGUID,
		ProcessingTime: time.Since(start).Seconds(),
	}

	telemetry.Info("pipeline.complete", map[string]any{
		"session_guid":    sessionGUID,
		"screenshots":     len(screenshots),
		"speech_segments": len(segments),
		"keywords":        len(keywords),
		"duration_s":      result.ProcessingTime,
	})
	return result, nil
}

func (r *Runner) captureScreenshots(ctx context.Context, videoPath string, duration float64, preset Preset, opts Options) ([]sessions.Screenshot, error) {
	frameDir, err := os.MkdirTemp(r.WorkDir, "frames-")
	if err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	defer os.RemoveAll(frameDir)

	pattern := filepath.Join(frameDir, "frame_%05d.jpg")

	var timestamps []float64
	reason := reasonInterval

	if opts.UseSceneDetection {
		reason = reasonSceneChange
		metaPath := filepath.Join(frameDir, "scenes.txt")
		filter := fmt.Sprintf("select='gt(scene,%g)',metadata=print:file=%s", preset.SceneThreshold, metaPath)
		if _, err := r.Exec.Execute(ctx, r.FFmpegBin,
			"-y",
			"-i", videoPath,
			"-vf", filter,
			"-vsync", "vfr",
			"-q:v", "2",
			pattern,
		); err != nil {
			return nil, fmt.Errorf("extract scene frames: %w", err)
		}
		meta, err := os.ReadFile(metaPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read scene metadata: %w", err)
		}
		timestamps = parseSceneTimes(string(meta))
	} else {
		interval := preset.FrameIntervalSeconds
		if interval <= 0 {
			interval = 30
		}
		filter := fmt.Sprintf("fps=1/%g", interval)
		if _, err := r.Exec.Execute(ctx, r.FFmpegBin,
			"-y",
			"-i", videoPath,
			"-vf", filter,
			"-q:v", "2",
			pattern,
		); err != nil {
			return nil, fmt.Errorf("extract frames: %w", err)
		}
		for ts := 0.0; ts <= duration; ts += interval {
			timestamps = append(timestamps, ts)
		}
	}

	frames, err := filepath.Glob(filepath.Join(frameDir, "frame_*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)

	max := preset.MaxScreenshots
	if max > 0 && len(frames) > max {
		frames = frames[:max]
	}

	screenshots := make([]sessions.Screenshot, 0, len(frames))
	for i, frame := range frames {
		data, err := os.ReadFile(frame)
		if err != nil {
			return nil, fmt.Errorf("read frame %s: %w", frame, err)
		}
		ts := 0.0
		if i < len(timestamps) {
			ts = timestamps[i]
		}
		screenshots = append(screenshots, sessions.Screenshot{
			Image:     data,
			Timestamp: ts,
			Reason:    reason,
		})
	}
	return screenshots, nil
}

func (r *Runner) analyze(ctx context.Context, segments []sessions.SpeechSegment, clientName string, opts Options) ([]sessions.KeywordResult, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	if opts.UseAIAnalysis && r.AIAnalyzer != nil {
		keywords, err := r.AIAnalyzer.Analyze(ctx, segments, clientName)
		if err == nil {
			return keywords, nil
		}
		telemetry.Warn("pipeline.ai_analysis_failed", map[string]any{
			"error": err.Error(),
		})
	}
	return r.Fallback.Analyze(ctx, segments, clientName)
}

// parseSceneTimes extracts pts_time values from ffmpeg's metadata=print
// output. Lines look like "frame:3 pts:112612 pts_time:4.504".
func parseSceneTimes(meta string) []float64 {
	var times []float64
	for _, line := range strings.Split(meta, "\n") {
		idx := strings.Index(line, "pts_time:")
		if idx < 0 {
			continue
		}
		field := strings.TrimSpace(line[idx+len("pts_time:"):])
		if cut := strings.IndexByte(field, ' '); cut >= 0 {
			field = field[:cut]
		}
		if ts, err := strconv.ParseFloat(field, 64); err == nil {
			times = append(times, ts)
		}
	}
	return times
}
