package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shree6791/gramvana/config"
	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

var (
	// ErrBackendUnavailable covers network failures, timeouts, auth problems
	// and missing credentials on the generation backend.
	ErrBackendUnavailable = errors.New("generation backend unavailable")
	// ErrMalformedResponse is returned when the backend answers with
	// something that cannot be parsed into a recipe.
	ErrMalformedResponse = errors.New("malformed generation response")
)

const systemPrompt = "You are a culinary expert specializing in vegetarian nutrition."

// Guidance text appended to the brief per meal slot.
var mealGuidance = map[models.MealType]string{
	models.MealBreakfast: "This should be a morning meal that provides energy for the day. Focus on protein-rich breakfast options that are satisfying and quick to prepare.",
	models.MealLunch:     "This should be a balanced midday meal that provides sustained energy. Include a good mix of protein, complex carbs, and vegetables.",
	models.MealSnack:     "This should be a quick, easy-to-prepare snack that is portable and protein-rich. Keep it under 300 calories but with significant protein content.",
	models.MealDinner:    "This should be a satisfying evening meal with substantial protein content. Focus on complete proteins and nutrient-dense ingredients.",
}

// LLMService wraps the hosted chat-completions API used for recipe
// generation.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance. An empty API key is
// allowed; Available then reports false and callers fall back locally.
func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIAPIURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Available reports whether the backend is configured with credentials.
func (s *LLMService) Available() bool {
	return s.apiKey != ""
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat-completions API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Complete sends one prompt to the backend and returns the raw assistant
// text. All failure modes map to ErrBackendUnavailable so the caller can
// treat them uniformly.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("%w: no API key configured", ErrBackendUnavailable)
	}

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrBackendUnavailable, resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformedResponse)
	}

	return result.Choices[0].Message.Content, nil
}

// BuildPrompt assembles the natural-language brief for one recipe request.
// The brief mandates a strictly vegetarian recipe and the fixed JSON shape
// the parser expects.
func BuildPrompt(req types.RecipeRequest) string {
	prefs := strings.Join(req.DietaryPreferences, ", ")
	if prefs == "" {
		prefs = "Vegetarian"
	}
	goal := req.HealthGoal
	if goal == "" {
		goal = "Balanced nutrition"
	}
	allergies := strings.Join(req.Allergies, ", ")
	if allergies == "" {
		allergies = "None"
	}
	mealType := string(req.MealType)
	if mealType == "" {
		mealType = "Any"
	}

	protein := "high protein content"
	if target := ResolveProteinTarget(req); target > 0 {
		protein = fmt.Sprintf("%dg", target)
	}

	var b strings.Builder
	b.WriteString("Generate a detailed vegetarian recipe (NO EGGS, NO MEAT, NO FISH) with the following specifications:\n\n")
	fmt.Fprintf(&b, "- Dietary preferences: %s\n", prefs)
	fmt.Fprintf(&b, "- Health goal: %s\n", goal)
	fmt.Fprintf(&b, "- Allergies to avoid: %s\n", allergies)
	fmt.Fprintf(&b, "- Meal type: %s\n", mealType)
	fmt.Fprintf(&b, "- Protein requirement: Approximately %s\n\n", protein)

	if guidance, ok := mealGuidance[req.MealType]; ok {
		b.WriteString(guidance)
		b.WriteString("\n\n")
	}

	b.WriteString(`The recipe should be strictly vegetarian (no eggs, no meat, no fish).
Focus on plant-based protein sources like legumes, tofu, tempeh, seitan, quinoa, etc.

Return the recipe in JSON format with the following structure:
{
  "id": "unique-id",
  "title": "Recipe Title",
  "image": "placeholder-url",
  "prepTime": minutes,
  "protein": grams,
  "calories": number,
  "carbs": grams,
  "fat": grams,
  "tags": ["tag1", "tag2"],
  "keyBenefits": ["benefit1", "benefit2"],
  "ingredients": ["ingredient1", "ingredient2"],
  "instructions": ["step1", "step2"],
  "mealType": "breakfast/lunch/dinner/snack",
  "dietaryLabels": ["Vegetarian", "other-labels"]
}

For the image URL, use a placeholder from Unsplash that matches the recipe.

Ensure the protein content is accurately calculated and prominently featured.
The goal is to help users achieve 1g of protein per pound of body weight daily.`)

	return b.String()
}

// stripCodeFences removes a leading/trailing markdown code fence from the
// backend's reply, which some models wrap around the JSON document.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
