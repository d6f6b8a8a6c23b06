package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
	"github.com/KSKrishna1410/MDOC-meeting-summary/pkg/executor"
)

// Transcriber produces timestamped speech segments for a video.
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath string) ([]sessions.SpeechSegment, error)
}

type whisperTranscriber struct {
	exec      executor.Executor
	ffmpegBin string
	bin       string
	model     string
	workDir   string
}

// NewWhisperTranscriber builds a Transcriber driving the whisper CLI.
// Audio is extracted with ffmpeg first; whisper's JSON output is parsed
// into ordered segments.
func NewWhisperTranscriber(exec executor.Executor, ffmpegBin, whisperBin, model, workDir string) Transcriber {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if whisperBin == "" {
		whisperBin = "whisper"
	}
	if model == "" {
		model = "base"
	}
	return &whisperTranscriber{
		exec:      exec,
		ffmpegBin: ffmpegBin,
		bin:       whisperBin,
		model:     model,
		workDir:   workDir,
	}
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, videoPath string) ([]sessions.SpeechSegment, error) {
	outDir, err := os.MkdirTemp(w.workDir, "speech-")
	if err != nil {
		return nil, fmt.Errorf("create speech work dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	audioPath := filepath.Join(outDir, "audio.wav")
	if _, err := w.exec.Execute(ctx, w.ffmpegBin,
		"-y",
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	if _, err := w.exec.Execute(ctx, w.bin,
		audioPath,
		"--model", w.model,
		"--output_format", "json",
		"--output_dir", outDir,
	); err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	resultPath := filepath.Join(outDir, "audio.json")
	data, err := os.ReadFile(resultPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	segments, err := parseWhisperOutput(data)
	if err != nil {
		return nil, err
	}

	telemetry.Info("speech.transcribed", map[string]any{
		"video":    videoPath,
		"segments": len(segments),
	})
	return segments, nil
}

type whisperResult struct {
	Segments []struct {
		Start float64 `json:"start"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func parseWhisperOutput(data []byte) ([]sessions.SpeechSegment, error) {
	var result whisperResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]sessions.SpeechSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, sessions.SpeechSegment{
			Timestamp: seg.Start,
			Text:      text,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Timestamp < segments[j].Timestamp
	})
	return segments, nil
}
