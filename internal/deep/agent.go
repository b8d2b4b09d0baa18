package deep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
)

// agentAnalyzer shells out to the local agent CLI when no API key is
// configured.
type agentAnalyzer struct{}

func newAgentAnalyzer() *agentAnalyzer {
	_, err := claudecode.Query(context.Background(), "echo test",
		claudecode.WithModel("sonnet"),
		claudecode.WithMaxTurns(1),
	)
	if err != nil && claudecode.IsCLINotFoundError(err) {
		return nil
	}
	return &agentAnalyzer{}
}

func (a *agentAnalyzer) Name() string {
	return "agent"
}

func (a *agentAnalyzer) Analyze(ctx context.Context, l *listing.Listing) ([]recommend.Recommendation, error) {
	iterator, err := claudecode.Query(ctx, buildPrompt(l),
		claudecode.WithModel("sonnet"),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		return nil, fmt.Errorf("agent query: %w", err)
	}
	defer iterator.Close()

	var b strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return nil, fmt.Errorf("read agent response: %w", err)
		}
		if msg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range msg.Content {
				if text, ok := block.(*claudecode.TextBlock); ok {
					b.WriteString(text.Text)
				}
			}
		}
	}

	if b.Len() == 0 {
		return nil, fmt.Errorf("empty response")
	}
	return parseAdvice(b.String())
}
