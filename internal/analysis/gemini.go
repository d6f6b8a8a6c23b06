package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

const analysisPrompt = `You are an expert meeting analyst. The transcript below comes from a
client meeting for %q. Identify the key topics, decisions, action items
and commitments that were discussed.

Respond ONLY with a JSON array. Each element must have this shape:
{"keyword": "<short label>", "timestamp": <seconds as number>, "confidence": <0..1>}

Use the timestamps prefixed to each transcript line. Do not include any
text outside the JSON array.

Transcript:
---
%s
---`

type geminiAnalyzer struct {
	apiKey string
	model  string
}

// NewGeminiAnalyzer builds an Analyzer backed by the Gemini API.
func NewGeminiAnalyzer(apiKey, model string) Analyzer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiAnalyzer{apiKey: apiKey, model: model}
}

func (g *geminiAnalyzer) Analyze(ctx context.Context, segments []sessions.SpeechSegment, clientName string) ([]sessions.KeywordResult, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	prompt := fmt.Sprintf(analysisPrompt, clientName, formatTranscript(segments))
	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var text string
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	findings, err := parseFindings(text)
	if err != nil {
		return nil, err
	}

	telemetry.Info("analysis.complete", map[string]any{
		"model":    g.model,
		"findings": len(findings),
	})
	return findings, nil
}

func formatTranscript(segments []sessions.SpeechSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%.1f] %s\n", seg.Timestamp, seg.Text)
	}
	return b.String()
}

// parseFindings tolerates markdown code fences around the JSON array.
func parseFindings(text string) ([]sessions.KeywordResult, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var findings []sessions.KeywordResult
	if err := json.Unmarshal([]byte(trimmed), &findings); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	for i := range findings {
		if findings[i].Source == "" {
			findings[i].Source = "ai_analysis"
		}
	}
	return findings, nil
}
