package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/KSKrishna1410/MDOC-meeting-summary/pkg/executor"
)

// Info describes the probed video stream.
type Info struct {
	FPS        float64 `json:"fps"`
	FrameCount int64   `json:"frame_count"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Duration   float64 `json:"duration"`
}

// Prober reads video metadata via ffprobe.
type Prober interface {
	Probe(ctx context.Context, videoPath string) (Info, error)
	DurationMinutes(ctx context.Context, videoPath string) (float64, error)
}

type ffprobeProber struct {
	exec executor.Executor
	bin  string
}

// NewProber constructs an ffprobe-backed Prober. bin defaults to "ffprobe".
func NewProber(exec executor.Executor, bin string) Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &ffprobeProber{exec: exec, bin: bin}
}

// Probe retrieves stream-level metadata for the first video stream.
func (p *ffprobeProber) Probe(ctx context.Context, videoPath string) (Info, error) {
	out, err := p.exec.Execute(ctx, p.bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "json",
		videoPath,
	)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", videoPath, err)
	}
	return parseProbeOutput(out)
}

// DurationMinutes retrieves the container duration in minutes for the
// human-facing summary.
func (p *ffprobeProber) DurationMinutes(ctx context.Context, videoPath string) (float64, error) {
	out, err := p.exec.Execute(ctx, p.bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration %s: %w", videoPath, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return seconds / 60.0, nil
}

type probePayload struct {
	Streams []struct {
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		FrameRate string `json:"r_frame_rate"`
		NBFrames  string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeOutput(raw string) (Info, error) {
	var payload probePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(payload.Streams) == 0 {
		return Info{}, fmt.Errorf("no video stream in ffprobe output")
	}

	stream := payload.Streams[0]
	info := Info{
		Width:  stream.Width,
		Height: stream.Height,
	}

	fps, err := parseFrameRate(stream.FrameRate)
	if err != nil {
		return Info{}, err
	}
	info.FPS = fps

	if stream.NBFrames != "" {
		if n, err := strconv.ParseInt(stream.NBFrames, 10, 64); err == nil {
			info.FrameCount = n
		}
	}

	if payload.Format.Duration != "" {
		if d, err := strconv.ParseFloat(payload.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	// Containers like MKV omit nb_frames; derive it from duration.
	if info.FrameCount == 0 && info.Duration > 0 && info.FPS > 0 {
		info.FrameCount = int64(info.Duration * info.FPS)
	}

	return info, nil
}

// parseFrameRate converts ffprobe's rational form ("30000/1001") to a float.
func parseFrameRate(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil {
			return 0, fmt.Errorf("parse frame rate %q", raw)
		}
		if d == 0 {
			return 0, nil
		}
		return n / d, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q", raw)
	}
	return f, nil
}
