package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/logging"
	"fjacquet/hsa-bills/internal/models"
)

// GeminiInferrer extracts bill fields by prompting the Gemini API.
type GeminiInferrer struct {
	apiKey  string
	model   string
	timeout time.Duration

	client   *genai.Client
	genModel *genai.GenerativeModel
}

// NewGeminiInferrer creates a GeminiInferrer. The API client is initialized
// lazily on the first Infer call so construction never needs the network.
func NewGeminiInferrer(apiKey, model string, timeoutSeconds int) *GeminiInferrer {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &GeminiInferrer{
		apiKey:  apiKey,
		model:   model,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// ensureClient ensures the Gemini client is initialized
func (g *GeminiInferrer) ensureClient(ctx context.Context) error {
	if g.client != nil {
		return nil
	}

	if g.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.client = client
	g.genModel = client.GenerativeModel(g.model)
	return nil
}

// Infer prompts Gemini with the bill text and parses the structured fields
// out of its response.
func (g *GeminiInferrer) Infer(ctx context.Context, text string) (Fields, error) {
	if err := g.ensureClient(ctx); err != nil {
		return Fields{}, &billerror.InferenceError{Source: "gemini", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(text)

	resp, err := g.genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Fields{}, &billerror.InferenceError{Source: "gemini", Err: err}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Fields{}, &billerror.InferenceError{
			Source: "gemini",
			Err:    fmt.Errorf("no response from Gemini API"),
		}
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	fields := ParseFieldsFromResponse(responseText)

	log.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: fields.Provider},
		logging.Field{Key: logging.FieldCategory, Value: fields.Category},
	).Debug("Gemini inferred bill fields")

	return fields, nil
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Extract the key information from the following healthcare bill text.

Bill text:
%s

Look for the provider or facility name, the service date, the amount due
(labels like "Amount Due", "Total", "Balance"), and a short description of
the service. Assign exactly one category from: %s.

Respond in this format:
Provider: [provider or facility name]
Date: [service date in YYYY-MM-DD format]
Amount: [numeric amount, no currency symbol]
Category: [selected category]
Description: [one-line description of the service]

Leave a field blank if the information is not present in the text.`,
		text,
		strings.Join([]string{
			models.CategoryMedical,
			models.CategoryDental,
			models.CategoryVision,
			models.CategoryPharmacy,
			models.CategoryOther,
		}, ", "))
}
