package meetings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/media"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/pipeline"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/render"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/staging"
)

// Service orchestrates processing runs and resolves document generation
// against the session store.
type Service struct {
	Sessions sessions.Store
	Stager   *staging.Stager
	Pipeline pipeline.Processor
	Probe    media.Prober
	Renderer render.Renderer
}

// ProcessInput is one upload request.
type ProcessInput struct {
	FileName   string
	File       io.Reader
	ClientName string
	Options    pipeline.Options
}

// GenerateInput is one document-generation request. Either SessionGUID
// or the (VideoPath, ClientName) pair must be supplied.
type GenerateInput struct {
	SessionGUID            string
	VideoPath              string
	ClientName             string
	Title                  string
	DocType                string
	Format                 string
	EnableMissingQuestions bool
	EnableProcessMap       bool
	IncludeScreenshots     bool
}

// ProcessMeeting stages the upload, runs the pipeline once, commits the
// session, and builds the summary payload. The staged file is released
// on every failure path; a session is committed only after the pipeline
// and probes succeed.
func (s *Service) ProcessMeeting(ctx context.Context, in ProcessInput) (ProcessResponse, error) {
	if strings.TrimSpace(in.ClientName) == "" {
		return ProcessResponse{}, fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}

	videoPath, err := s.Stager.Stage(in.FileName, in.File)
	if err != nil {
		if errors.Is(err, staging.ErrUnsupportedType) {
			return ProcessResponse{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		return ProcessResponse{}, fmt.Errorf("stage upload: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			s.Stager.Release(videoPath)
		}
	}()

	sessionGUID := uuid.NewString()

	result, err := s.Pipeline.Process(ctx, videoPath, in.ClientName, in.Options, sessionGUID)
	if err != nil {
		telemetry.Error("meetings.process_failed", map[string]any{
			"session_guid": sessionGUID,
			"video_path":   videoPath,
			"error":        err.Error(),
		})
		return ProcessResponse{}, fmt.Errorf("process video: %w", err)
	}

	info, err := s.Probe.Probe(ctx, videoPath)
	if err != nil {
		return ProcessResponse{}, fmt.Errorf("probe video: %w", err)
	}
	durationMinutes, err := s.Probe.DurationMinutes(ctx, videoPath)
	if err != nil {
		return ProcessResponse{}, fmt.Errorf("probe duration: %w", err)
	}

	if err := s.Sessions.Put(ctx, sessions.Session{
		GUID:           sessionGUID,
		VideoPath:      videoPath,
		ClientName:     in.ClientName,
		Screenshots:    result.Screenshots,
		SpeechSegments: result.SpeechSegments,
		KeywordResults: result.KeywordResults,
	}); err != nil {
		return ProcessResponse{}, fmt.Errorf("commit session: %w", err)
	}
	committed = true

	meta := make([]ScreenshotMeta, 0, len(result.Screenshots))
	for _, shot := range result.Screenshots {
		meta = append(meta, ScreenshotMeta{Timestamp: shot.Timestamp, Reason: shot.Reason})
	}

	transcript := SegmentsToEntries(result.SpeechSegments)

	return ProcessResponse{
		Success:     true,
		SessionGUID: sessionGUID,
		VideoPath:   videoPath,
		VideoInfo: VideoInfo{
			Filename:        filepath.Base(videoPath),
			DurationMinutes: durationMinutes,
			FPS:             info.FPS,
			FrameCount:      info.FrameCount,
			Width:           info.Width,
			Height:          info.Height,
		},
		Screenshots:         meta,
		ScreenshotsCount:    len(result.Screenshots),
		Transcript:          transcript,
		SpeechSegments:      transcript,
		SpeechSegmentsCount: len(result.SpeechSegments),
		KeywordResults:      result.KeywordResults,
		ProcessingTime:      result.ProcessingTime,
		Message:             "Video processed successfully",
	}, nil
}

// GenerateDocument resolves generation inputs from the session store or
// a fresh processing run and delegates to the rendering engine.
func (s *Service) GenerateDocument(ctx context.Context, in GenerateInput) (render.Bundle, error) {
	format, err := normalizeFormat(in.Format)
	if err != nil {
		return render.Bundle{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return render.Bundle{}, fmt.Errorf("%w: doc_title is required", ErrInvalidInput)
	}

	videoPath := in.VideoPath
	clientName := in.ClientName
	sessionGUID := in.SessionGUID
	var screenshots []sessions.Screenshot
	var segments []sessions.SpeechSegment
	var keywords []sessions.KeywordResult

	if sessionGUID != "" {
		sess, err := s.Sessions.Get(ctx, sessionGUID)
		if err != nil {
			if errors.Is(err, sessions.ErrNotFound) {
				return render.Bundle{}, fmt.Errorf("%w: session %s not found, upload and process a video first", ErrNotFound, sessionGUID)
			}
			return render.Bundle{}, fmt.Errorf("load session: %w", err)
		}

		// Unreachable given the commit invariant, checked anyway.
		if sess.VideoPath == "" {
			return render.Bundle{}, fmt.Errorf("%w: session data incomplete, missing video_path", ErrInvalidInput)
		}
		if sess.ClientName == "" {
			return render.Bundle{}, fmt.Errorf("%w: session data incomplete, missing client_name", ErrInvalidInput)
		}

		videoPath = sess.VideoPath
		clientName = sess.ClientName
		screenshots = sess.Screenshots
		segments = sess.SpeechSegments
		keywords = sess.KeywordResults

		telemetry.Info("meetings.session_resolved", map[string]any{"session_guid": sessionGUID})
	} else {
		if videoPath == "" || clientName == "" {
			return render.Bundle{}, fmt.Errorf("%w: either session_guid must be provided, or both video_path and client_name are required", ErrInvalidInput)
		}
		if _, err := os.Stat(videoPath); err != nil {
			return render.Bundle{}, fmt.Errorf("%w: video file not found", ErrNotFound)
		}

		// No prior session: run the pipeline to obtain screenshots and
		// transcript for this video.
		sessionGUID = uuid.NewString()
		telemetry.Info("meetings.reprocessing", map[string]any{
			"session_guid": sessionGUID,
			"video_path":   videoPath,
		})
		result, err := s.Pipeline.Process(ctx, videoPath, clientName, pipeline.Options{
			DetectionMode:     "basic",
			UseSpeech:         true,
			UseMouseDetection: true,
			UseAIAnalysis:     true,
		}, sessionGUID)
		if err != nil {
			return render.Bundle{}, fmt.Errorf("process video: %w", err)
		}
		screenshots = result.Screenshots
		segments = result.SpeechSegments
		keywords = result.KeywordResults
	}

	bundle, err := s.Renderer.Render(ctx, render.Request{
		VideoPath:              videoPath,
		Screenshots:            screenshots,
		ClientName:             clientName,
		Title:                  in.Title,
		DocType:                in.DocType,
		Format:                 format,
		SpeechSegments:         segments,
		KeywordResults:         keywords,
		EnableMissingQuestions: in.EnableMissingQuestions,
		EnableProcessMap:       in.EnableProcessMap,
		IncludeScreenshots:     in.IncludeScreenshots,
		SessionGUID:            sessionGUID,
	})
	if err != nil {
		return render.Bundle{}, fmt.Errorf("render document: %w", err)
	}
	return bundle, nil
}

// normalizeFormat canonicalizes the requested format tag.
func normalizeFormat(raw string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "PDF":
		return "PDF", nil
	case "DOCX":
		return "DOCX", nil
	case "WORD":
		return "WORD", nil
	case "BOTH":
		return "Both", nil
	default:
		return "", fmt.Errorf("%w: doc_format must be PDF, DOCX or Both", ErrInvalidInput)
	}
}
