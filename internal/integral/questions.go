package integral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/AbdouB/persona/internal/models"
)

// QuestionGenerator produces clarification questions for the uncertain
// level pairs of one result. Implementations may call out to a text
// generator; failures surface as errors and never touch the caller's
// IntegralDetail.
type QuestionGenerator interface {
	Generate(ctx context.Context, detail *models.IntegralDetail, areas []models.LevelPair, profile *models.PersonalityProfile) ([]models.DynamicQuestion, error)
}

// GenerateClarificationQuestions runs a generator over the uncertain
// areas. Convenience wrapper for callers that don't hold a Flow.
func GenerateClarificationQuestions(ctx context.Context, gen QuestionGenerator, detail *models.IntegralDetail, areas []models.LevelPair, profile *models.PersonalityProfile) ([]models.DynamicQuestion, error) {
	questions, err := gen.Generate(ctx, detail, areas, profile)
	if err != nil {
		return nil, &EnhancementError{Stage: "generating_questions", Err: err}
	}
	return questions, nil
}

// StaticGenerator builds clarification questions from a fixed template per
// level pair. Deterministic and dependency-free; used when no API key is
// configured and as the fallback path in tests.
type StaticGenerator struct{}

// Generate implements QuestionGenerator.
func (StaticGenerator) Generate(_ context.Context, _ *models.IntegralDetail, areas []models.LevelPair, _ *models.PersonalityProfile) ([]models.DynamicQuestion, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("no uncertain areas to clarify")
	}
	questions := make([]models.DynamicQuestion, 0, len(areas))
	for i, pair := range areas {
		questions = append(questions, models.DynamicQuestion{
			ID:      fmt.Sprintf("clarify-%d", i+1),
			Text:    fmt.Sprintf("Which statement sits closer to how you actually operate day to day? (%s vs %s)", pair.First, pair.Second),
			Targets: pair,
			Options: []models.QuestionOption{
				{Text: levelStance(pair.First), Points: map[string]float64{pair.First: 3}},
				{Text: levelStance(pair.Second), Points: map[string]float64{pair.Second: 3}},
				{Text: "Genuinely both, depending on the situation", Points: map[string]float64{pair.First: 1, pair.Second: 1}},
			},
		})
	}
	return questions, nil
}

// levelStance renders a first-person statement characteristic of a level,
// reusing the self leg of the reality triad.
func levelStance(level string) string {
	p, ok := levelProfiles[level]
	if !ok {
		return "I relate to this level"
	}
	return "My sense of self is closest to: " + p.Triad["self"]
}

// Claude text-generation constants, matching the Anthropic messages API.
const (
	claudeEndpoint   = "https://api.anthropic.com/v1/messages"
	claudeModel      = "claude-sonnet-4-20250514"
	claudeAPIVersion = "2023-06-01"
)

// ClaudeGenerator produces clarification questions through the Anthropic
// messages API. The response must be a JSON array of DynamicQuestion;
// anything else is a generation failure the flow can retry or skip past.
type ClaudeGenerator struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClaudeGenerator creates a generator. An empty model selects the
// default.
func NewClaudeGenerator(apiKey, model string) *ClaudeGenerator {
	if model == "" {
		model = claudeModel
	}
	return &ClaudeGenerator{
		apiKey:   apiKey,
		model:    model,
		endpoint: claudeEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Generate implements QuestionGenerator.
func (c *ClaudeGenerator) Generate(ctx context.Context, detail *models.IntegralDetail, areas []models.LevelPair, profile *models.PersonalityProfile) ([]models.DynamicQuestion, error) {
	if len(areas) == 0 {
		return nil, errors.New("no uncertain areas to clarify")
	}

	responseText, err := c.sendRequest(ctx, buildClarificationPrompt(detail, areas, profile))
	if err != nil {
		return nil, errors.Wrap(err, "clarification generation request failed")
	}

	cleaned := stripMarkdownCodeFences(responseText)
	var questions []models.DynamicQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, errors.Wrapf(err, "failed to parse generated questions: %s", responseText)
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = fmt.Sprintf("clarify-%d", i+1)
		}
		if len(questions[i].Options) == 0 {
			return nil, errors.Errorf("generated question %d has no options", i+1)
		}
	}
	return questions, nil
}

func (c *ClaudeGenerator) sendRequest(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: 2048,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", errors.Wrap(err, "failed to create HTTP request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", claudeAPIVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed claudeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrapf(err, "failed to parse response: %s", string(respBody))
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("no content in response")
	}
	return parsed.Content[0].Text, nil
}

func buildClarificationPrompt(detail *models.IntegralDetail, areas []models.LevelPair, profile *models.PersonalityProfile) string {
	var b strings.Builder
	b.WriteString("You are generating follow-up questions for a developmental-stage assessment.\n")
	fmt.Fprintf(&b, "The respondent scored primary level %q", detail.PrimaryLevel)
	if detail.SecondaryLevel != "" {
		fmt.Fprintf(&b, " with secondary level %q", detail.SecondaryLevel)
	}
	fmt.Fprintf(&b, " at confidence %.0f/100.\n", detail.Confidence)
	b.WriteString("The instrument could not separate these level pairs:\n")
	for _, pair := range areas {
		fmt.Fprintf(&b, "- %s vs %s\n", pair.First, pair.Second)
	}
	if profile != nil && len(profile.DominantTraits) > 0 {
		b.WriteString("Dominant traits from the broader profile:\n")
		for key, trait := range profile.DominantTraits {
			fmt.Fprintf(&b, "- %s: %s\n", key, trait)
		}
	}
	b.WriteString(`
Write one multiple-choice question per level pair that discriminates between
the two levels in everyday terms. Respond with ONLY a JSON array, each element:
{"id": "", "text": "...", "targets": {"first": "<level>", "second": "<level>"},
 "options": [{"text": "...", "points": {"<level>": 3}}, ...]}
Use the exact level names given above as points keys.`)
	return b.String()
}

// stripMarkdownCodeFences removes markdown code fences from JSON responses.
func stripMarkdownCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
