package generate

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Fallbacks returned whenever the generation endpoint misbehaves. The
// browser must always receive a usable field, never a 5xx.
var textFallbacks = map[string]string{
	"name":    "Pogi",
	"country": "a foreign land",
	"lore":    "Failed to generate lore.",
}

type generationService struct {
	baseUrl string
	apiKey  string
	model   string
	client  *http.Client
}

func newGenerationService() *generationService {
	return &generationService{
		baseUrl: viper.Get("AI_API_URL").(string),
		apiKey:  viper.Get("AI_API_KEY").(string),
		model:   viper.Get("AI_MODEL").(string),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		Url string `json:"url"`
	} `json:"data"`
}

// generateText asks the completion endpoint for a character field. On any
// failure the deterministic fallback for the field type comes back instead;
// the error is logged and masked.
func (gs *generationService) generateText(fieldType, prompt string) string {
	fallback := textFallbacks[fieldType]

	text, err := gs.complete(prompt)
	if err != nil {
		log.Warn().Err(err).Msg(fmt.Sprintf("Generation failed for field %s, using fallback", fieldType))
		return fallback
	}
	return text
}

func (gs *generationService) complete(prompt string) (string, error) {
	reqBody := completionRequest{
		Model:     gs.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 256,
	}

	req, err := http.NewRequest(http.MethodPost, gs.baseUrl+"/chat/completions", bytes.NewBuffer(utils.JsonEncode(reqBody)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+gs.apiKey)

	res, err := gs.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned status %d", res.StatusCode)
	}

	resBody := utils.JsonDecode[completionResponse](res.Body)
	if len(resBody.Choices) == 0 || resBody.Choices[0].Message.Content == "" {
		return "", errors.New("generation endpoint returned no choices")
	}

	return resBody.Choices[0].Message.Content, nil
}

// generateImage returns a portrait URL for the prompt, or the configured
// placeholder when the endpoint fails.
func (gs *generationService) generateImage(prompt string, placeholderUrl string) string {
	reqBody := imageRequest{Prompt: prompt, N: 1, Size: "512x512"}

	req, err := http.NewRequest(http.MethodPost, gs.baseUrl+"/images/generations", bytes.NewBuffer(utils.JsonEncode(reqBody)))
	if err != nil {
		log.Warn().Err(err).Msg("Image generation request build failed, using placeholder")
		return placeholderUrl
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+gs.apiKey)

	res, err := gs.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Image generation failed, using placeholder")
		return placeholderUrl
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Warn().Msg(fmt.Sprintf("Image generation returned status %d, using placeholder", res.StatusCode))
		return placeholderUrl
	}

	resBody := utils.JsonDecode[imageResponse](res.Body)
	if len(resBody.Data) == 0 || resBody.Data[0].Url == "" {
		log.Warn().Msg("Image generation returned no data, using placeholder")
		return placeholderUrl
	}

	return resBody.Data[0].Url
}
