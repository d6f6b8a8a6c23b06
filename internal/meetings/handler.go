package meetings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/pipeline"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 500 << 20
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches meeting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.POST("/generate/meeting-summary", h.generateMeetingSummary)
	rg.GET("/health", h.health)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	clientName := c.PostForm("client_name")
	if clientName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "client_name is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	resp, err := h.Svc.ProcessMeeting(c.Request.Context(), ProcessInput{
		FileName:   fileHeader.Filename,
		File:       file,
		ClientName: clientName,
		Options: pipeline.Options{
			DetectionMode:     c.DefaultPostForm("detection_mode", "basic"),
			UseSpeech:         formBool(c, "use_speech", true),
			UseMouseDetection: formBool(c, "use_mouse_detection", true),
			UseSceneDetection: formBool(c, "use_scene_detection", false),
			UseAIAnalysis:     formBool(c, "use_ai_analysis", true),
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "processing_error", "Error processing video: "+err.Error(), nil)
		}
		return
	}

	c.Set("sessionGuid", resp.SessionGUID)
	respond.OK(c, resp)
}

func (h *Handler) generateMeetingSummary(c *gin.Context) {
	in := GenerateInput{
		SessionGUID:            c.PostForm("session_guid"),
		VideoPath:              c.PostForm("video_path"),
		ClientName:             c.PostForm("client_name"),
		Title:                  c.PostForm("doc_title"),
		DocType:                "meeting_summary",
		Format:                 c.DefaultPostForm("doc_format", "PDF"),
		EnableMissingQuestions: formBool(c, "enable_missing_questions", true),
		EnableProcessMap:       formBool(c, "enable_process_map", true),
		IncludeScreenshots:     formBool(c, "include_screenshots", true),
	}
	if in.SessionGUID != "" {
		c.Set("sessionGuid", in.SessionGUID)
	}

	bundle, err := h.Svc.GenerateDocument(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_error", "Error generating document: "+err.Error(), nil)
		}
		return
	}

	download, fallback, err := BuildDownload(bundle, time.Now())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "generation_error", "Error generating document: "+err.Error(), nil)
		return
	}
	if fallback != nil {
		respond.OK(c, fallback)
		return
	}

	respond.File(c, download.ContentType, download.Filename, download.Content)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{"status": "healthy", "service": "MDoc API"})
}

// formBool parses an optional boolean form field, keeping the default on
// absent or malformed values.
func formBool(c *gin.Context, field string, def bool) bool {
	raw := c.PostForm(field)
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}
