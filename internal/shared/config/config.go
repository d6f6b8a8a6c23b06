package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	TempDir         string
	WorkDir         string
	MaxUploadBytes  int64
	SessionTTL      time.Duration
	CleanupWindow   time.Duration
	PresetsPath     string
	FFmpegBin       string
	FFprobeBin      string
	WhisperBin      string
	WhisperModel    string
	GeminiAPIKey    string
	GeminiModel     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8000"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		TempDir:         getEnv("TEMP_DIR", "data/temp"),
		WorkDir:         getEnv("WORK_DIR", "data/work"),
		MaxUploadBytes:  getBytes(getEnv("MAX_UPLOAD_MB", "500")),
		SessionTTL:      getDuration("SESSION_TTL", 0),
		CleanupWindow:   getDuration("CLEANUP_WINDOW", 0),
		PresetsPath:     getEnv("DETECTION_PRESETS", ""),
		FFmpegBin:       getEnv("FFMPEG_BIN", "ffmpeg"),
		FFprobeBin:      getEnv("FFPROBE_BIN", "ffprobe"),
		WhisperBin:      getEnv("WHISPER_BIN", "whisper"),
		WhisperModel:    getEnv("WHISPER_MODEL", "base"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func getBytes(mb string) int64 {
	n := int64(0)
	for _, r := range mb {
		if r < '0' || r > '9' {
			return 500 << 20
		}
		n = n*10 + int64(r-'0')
	}
	if n <= 0 {
		return 500 << 20
	}
	return n << 20
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
