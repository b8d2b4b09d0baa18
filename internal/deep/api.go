package deep

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
)

// apiAnalyzer calls the Anthropic API directly.
type apiAnalyzer struct {
	client anthropic.Client
}

func newAPIAnalyzer() *apiAnalyzer {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &apiAnalyzer{client: anthropic.NewClient(option.WithAPIKey(apiKey))}
}

func (a *apiAnalyzer) Name() string {
	return "api"
}

func (a *apiAnalyzer) Analyze(ctx context.Context, l *listing.Listing) ([]recommend.Recommendation, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_5Haiku20241022,
		MaxTokens: 1500,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(l))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}
	return parseAdvice(text)
}
