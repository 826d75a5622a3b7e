// Package llm wraps the Gemini generative model for the two language
// stages of the pipeline: summarizing search results into a brief, and
// turning the brief into a Host/Guest conversation script.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"github.com/podforge/podforge/models"
)

// Summarizer condenses search results into a grounding brief.
type Summarizer interface {
	Summarize(ctx context.Context, topic string, results []models.SearchResult) (models.Brief, error)
}

// ScriptGenerator produces the ordered two-speaker script.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, topic string, brief models.Brief) (models.Script, error)
}

// Gemini implements both language stages on a single configured model.
type Gemini struct {
	model *genai.GenerativeModel

	// DropUnattributed switches the parser policy for completion lines
	// without a recognized speaker prefix.
	DropUnattributed bool
}

// NewGemini wraps an already configured generative model.
func NewGemini(model *genai.GenerativeModel) *Gemini {
	return &Gemini{model: model}
}

// Summarize condenses the collected results. With no results it still
// produces a brief from the topic alone rather than failing.
func (g *Gemini) Summarize(ctx context.Context, topic string, results []models.SearchResult) (models.Brief, error) {
	prompt := summaryPrompt(topic, results)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return models.Brief(text), nil
}

// GenerateScript prompts for Host:/Guest: prefixed turns and parses the
// completion back into script lines.
func (g *Gemini) GenerateScript(ctx context.Context, topic string, brief models.Brief) (models.Script, error) {
	prompt := scriptPrompt(topic, brief)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseScript(text, g.DropUnattributed)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapErr(err)
	}
	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", models.ErrLLMEmptyResponse
	}
	return text, nil
}

// extractText flattens the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

func mapErr(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return fmt.Errorf("%w: %v", models.ErrLLMAuth, err)
		}
	}
	return fmt.Errorf("%w: %v", models.ErrLLMUnavailable, err)
}
