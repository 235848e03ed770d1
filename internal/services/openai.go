package services

import (
	"context"
	"fmt"

	"healthcare-plus/internal/models"

	"github.com/sashabaranov/go-openai"
)

const (
	radiologistSystemPrompt = "You are an expert radiologist analyzing X-ray images. " +
		"Provide a detailed diagnosis, confidence level, additional findings, and recommended actions."

	xrayUserPrompt = "Analyze this X-ray image and provide a detailed diagnosis."
)

// ImageAnalyzer submits an inline image to a vision-capable model and
// returns the completion text verbatim.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageURL string) (string, error)
}

// TextGenerator runs a single-turn text completion.
type TextGenerator interface {
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}

// ChatCompleter runs a multi-turn completion over a full history.
type ChatCompleter interface {
	Chat(ctx context.Context, history []models.ChatMessage) (string, error)
}

type OpenAIService struct {
	client      *openai.Client
	modelVision string
	modelText   string
	temperature float32
}

func NewOpenAIService(apiKey, baseURL, modelVision, modelText string, temperature float32) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIService{
		client:      openai.NewClientWithConfig(cfg),
		modelVision: modelVision,
		modelText:   modelText,
		temperature: temperature,
	}
}

// AnalyzeImage sends the encoded image under the fixed radiologist persona
// and returns the raw completion. One synchronous round trip, no retry.
func (s *OpenAIService) AnalyzeImage(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.modelVision,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: radiologistSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: xrayUserPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return firstChoice(resp)
}

func (s *OpenAIService) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.modelText,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return firstChoice(resp)
}

func (s *OpenAIService) Chat(ctx context.Context, history []models.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.modelText,
		Messages:    messages,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return firstChoice(resp)
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
