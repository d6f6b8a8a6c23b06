package meetings

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
)

func newTestRouter(t *testing.T, pipe *fakePipeline, renderer *fakeRenderer) (*gin.Engine, *sessions.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, store, _ := newTestService(t, pipe, renderer)
	handler := NewHandler(svc, 10<<20)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/"))
	return r, store
}

func multipartUpload(t *testing.T, fileName string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fileWriter, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fileWriter.Write([]byte("fake video bytes"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadThenGenerateBoth(t *testing.T) {
	pipe := &fakePipeline{result: pipelineResult()}
	renderer := &fakeRenderer{producePDF: true, produceDOCX: true}
	router, _ := newTestRouter(t, pipe, renderer)

	// Upload and process.
	body, contentType := multipartUpload(t, "meeting.mp4", map[string]string{
		"client_name":    "Acme",
		"detection_mode": "advanced",
		"use_speech":     "true",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var summary struct {
		Success          bool              `json:"success"`
		SessionGUID      string            `json:"session_guid"`
		ScreenshotsCount int               `json:"screenshots_count"`
		Transcript       []TranscriptEntry `json:"transcript"`
		SpeechSegments   []TranscriptEntry `json:"speech_segments"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.True(t, summary.Success)
	require.NotEmpty(t, summary.SessionGUID)
	require.GreaterOrEqual(t, summary.ScreenshotsCount, 0)
	require.Equal(t, summary.Transcript, summary.SpeechSegments)
	require.Equal(t, "advanced", pipe.lastOpts.DetectionMode)

	// Generate both formats from the fresh session.
	form := url.Values{
		"doc_title":    {"Kickoff Summary"},
		"session_guid": {summary.SessionGUID},
		"doc_format":   {"Both"},
	}
	genReq := httptest.NewRequest(http.MethodPost, "/generate/meeting-summary", bytes.NewBufferString(form.Encode()))
	genReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	genResp := httptest.NewRecorder()
	router.ServeHTTP(genResp, genReq)

	require.Equal(t, http.StatusOK, genResp.Code, genResp.Body.String())
	require.Equal(t, "application/zip", genResp.Header().Get("Content-Type"))

	today := time.Now().Format("2006-01-02")
	expectedName := fmt.Sprintf("Kickoff_Summary_meeting_summary_%s.zip", today)
	require.Contains(t, genResp.Header().Get("Content-Disposition"), expectedName)

	zipBytes := genResp.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	names := []string{zr.File[0].Name, zr.File[1].Name}
	require.Contains(t, names, fmt.Sprintf("Kickoff_Summary_meeting_summary_%s.pdf", today))
	require.Contains(t, names, fmt.Sprintf("Kickoff_Summary_meeting_summary_%s.docx", today))
}

func TestUploadRejectsBadExtension(t *testing.T) {
	router, store := newTestRouter(t, &fakePipeline{result: pipelineResult()}, &fakeRenderer{})

	body, contentType := multipartUpload(t, "meeting.txt", map[string]string{"client_name": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, 0, store.Len())

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	require.Equal(t, "validation_error", errResp.Error.Code)
}

func TestUploadRequiresClientName(t *testing.T) {
	router, _ := newTestRouter(t, &fakePipeline{result: pipelineResult()}, &fakeRenderer{})

	body, contentType := multipartUpload(t, "meeting.mp4", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGenerateUnknownSessionIs404(t *testing.T) {
	router, _ := newTestRouter(t, &fakePipeline{}, &fakeRenderer{producePDF: true})

	form := "doc_title=Summary&session_guid=not-real&doc_format=PDF"
	req := httptest.NewRequest(http.MethodPost, "/generate/meeting-summary", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)

	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	require.Equal(t, "not_found", errResp.Error.Code)
	require.Contains(t, errResp.Error.Message, "not-real")
}

func TestGenerateFallbackWhenNoArtifact(t *testing.T) {
	// Renderer produces nothing for the PDF request.
	renderer := &fakeRenderer{}
	router, store := newTestRouter(t, &fakePipeline{}, renderer)

	require.NoError(t, store.Put(context.Background(), sessions.Session{
		GUID:       "g1",
		VideoPath:  "/data/temp/v.mp4",
		ClientName: "Acme",
	}))

	form := "doc_title=Summary&session_guid=g1&doc_format=PDF"
	req := httptest.NewRequest(http.MethodPost, "/generate/meeting-summary", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var fallback NoArtifactResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fallback))
	require.False(t, fallback.Success)
	require.False(t, fallback.HasPDF)
	require.False(t, fallback.HasDOCX)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &fakePipeline{}, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, "MDoc API", health.Service)
}
