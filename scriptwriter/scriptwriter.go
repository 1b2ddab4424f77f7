package scriptwriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const prompt_template = "Write a 10-second YouTube Short script with a strong hook, ending with a call to action, based on the following user prompt: %s"

// ServiceError reports a failed or unusable response from the text
// generation service.
type ServiceError struct {
	Reason string
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script generation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("script generation: %s", e.Reason)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// chatClient is the slice of the OpenAI client the writer uses, kept narrow
// so tests can stub the API.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Writer struct {
	client chatClient
	model  string
}

func New(apiKey string) *Writer {
	return &Writer{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

// Generate asks the model for a short narration script for the given topic.
// A single attempt is made; service errors, including rate limiting, are
// surfaced verbatim.
func (w *Writer) Generate(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", errors.New("topic is empty")
	}

	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: w.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(prompt_template, topic),
			},
		},
	})
	if err != nil {
		return "", &ServiceError{Reason: "chat completion request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Reason: "response contained no choices"}
	}

	script := strings.TrimSpace(resp.Choices[0].Message.Content)
	if script == "" {
		return "", &ServiceError{Reason: "response script was empty"}
	}
	return script, nil
}
