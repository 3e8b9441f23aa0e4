package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Score(input ScoreInput) (*ScoreResult, error) {
	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: buildScoringPrompt(input)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(input))),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	var parsed scorePayload
	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return parsed.toResult(c.modelName), nil
}

// scorePayload is the JSON shape the scoring prompt asks every model for.
type scorePayload struct {
	ConsensusValue     float64 `json:"consensus_value"`
	AttentionValue     float64 `json:"attention_value"`
	MovementAnalysis   string  `json:"movement_analysis"`
	RationaleConsensus string  `json:"rationale_consensus"`
	RationaleAttention string  `json:"rationale_attention"`
	DataQuality        float64 `json:"data_quality"`
}

func (p scorePayload) toResult(modelName string) *ScoreResult {
	return &ScoreResult{
		ConsensusValue:     p.ConsensusValue,
		AttentionValue:     p.AttentionValue,
		MovementAnalysis:   p.MovementAnalysis,
		RationaleConsensus: p.RationaleConsensus,
		RationaleAttention: p.RationaleAttention,
		DataQuality:        p.DataQuality,
		PromptVersion:      promptVersion,
		ModelUsed:          modelName,
	}
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
