package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"app/internal/model"

	"github.com/sashabaranov/go-openai"
)

const generatorSystemPrompt = "Você é um assistente pastoral que produz esboços bíblicos práticos e fiéis às Escrituras em português do Brasil. Responda somente com o JSON pedido."

// SermonGenerator produces an outline for a generation request. An
// error from the generator never fails the user request: the
// orchestrator falls back to FallbackOutline.
type SermonGenerator interface {
	Generate(ctx context.Context, prompt string) (*model.Outline, error)
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator backed by the OpenAI chat
// completions API in JSON mode.
func NewOpenAIGenerator(apiKey, model string) SermonGenerator {
	return &openAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (*model.Outline, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: generatorSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("calling generation provider: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generation provider returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var outline model.Outline
	if err := json.Unmarshal([]byte(content), &outline); err != nil {
		return nil, fmt.Errorf("decoding generated outline: %w", err)
	}
	if err := outline.Validate(); err != nil {
		return nil, fmt.Errorf("generated outline failed validation: %w", err)
	}
	return &outline, nil
}

// FallbackOutline builds the deterministic template outline used when
// the external generator is unavailable or misbehaves. It always
// satisfies Outline.Validate.
func FallbackOutline(req model.SermonRequest) *model.Outline {
	return &model.Outline{
		Thesis: fmt.Sprintf("Em %s, Deus nos chama a viver a fé com propósito %s.", req.Theme, strings.ToLower(req.Category)),
		Points: []model.OutlinePoint{
			{
				Title:   "Dependência do Senhor",
				Summary: "Reconheça que somente na presença de Deus encontramos direção segura para cada passo.",
			},
			{
				Title:   "Prática intencional da Palavra",
				Summary: "Aplique as Escrituras no cotidiano para que a fé seja percebida em atitudes concretas.",
			},
			{
				Title:   "Impacto na comunidade",
				Summary: "Permita que a transformação pessoal alcance outras pessoas com esperança e serviço.",
			},
		},
		Illustration: "Imagine um lampião em uma noite escura: quando abastecido e aceso, torna-se referência para todos ao redor. Assim é a vida que se rende a Cristo.",
		References: []model.OutlineReference{
			{Reference: "Mateus 5:14-16", Note: "Somos chamados a iluminar o mundo com boas obras."},
			{Reference: "Romanos 12:2", Note: "Transformação pela renovação da mente para discernir a vontade de Deus."},
			{Reference: "Salmos 37:5", Note: "Entregar os caminhos ao Senhor com confiança."},
		},
		CallToAction: "Convide a igreja a comprometer-se com momentos diários de devoção, servindo uns aos outros com amor intencional.",
	}
}
