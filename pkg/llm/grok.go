package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const xaiBaseURL = "https://api.x.ai/v1"

// GrokClient scores propositions with xAI's Grok through the
// OpenAI-compatible chat completions endpoint.
type GrokClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewGrokClient(apiKey string) *GrokClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(xaiBaseURL),
	)
	return &GrokClient{
		client:    &client,
		model:     openai.ChatModel("grok-4-1-fast-reasoning"),
		modelName: "grok-4-1-fast-reasoning",
	}
}

// NewOpenAIClient scores propositions with OpenAI directly, for environments
// without an xAI key.
func NewOpenAIClient(apiKey string) *GrokClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &GrokClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *GrokClient) Score(input ScoreInput) (*ScoreResult, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildScoringPrompt(input)),
			openai.UserMessage(buildUserPrompt(input)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("chat completions API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", c.modelName)
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed scorePayload
	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return parsed.toResult(c.modelName), nil
}
