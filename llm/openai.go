package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIExtract runs the extraction prompt against the OpenAI chat API.
func OpenAIExtract(ctx context.Context, input string, ref time.Time) (Extraction, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Extraction{}, fmt.Errorf("OPENAI_API_KEY not set")
	}

	if strings.TrimSpace(input) == "" {
		return Extraction{}, fmt.Errorf("nothing to extract from empty input")
	}

	prompt := BuildExtractionPrompt(input, ref)

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(30*time.Second),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("request failed: %v", err)
	}

	if len(completion.Choices) == 0 {
		return Extraction{}, fmt.Errorf("no choices returned from OpenAI")
	}
	text := completion.Choices[0].Message.Content
	if text == "" {
		return Extraction{}, fmt.Errorf("no content in message")
	}

	return parseExtractionRobust(text, ref)
}
