package translate

import (
	"context"
	"fmt"
	"os"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const defaultCohereModel = "command-r"

// CohereTranslator implements MachineTranslator using the Cohere chat API.
type CohereTranslator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereTranslator creates a translator with an explicit API key.
func NewCohereTranslator(apiKey, model string) *CohereTranslator {
	if model == "" {
		model = defaultCohereModel
	}
	return &CohereTranslator{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  model,
	}
}

// NewDefaultMachineTranslator returns a Cohere-backed translator when
// CO_API_KEY is set, nil otherwise. With a nil translator only glossary
// substitution runs.
func NewDefaultMachineTranslator() MachineTranslator {
	apiKey := os.Getenv("CO_API_KEY")
	if apiKey == "" {
		return nil
	}
	return NewCohereTranslator(apiKey, os.Getenv("CO_TRANSLATE_MODEL"))
}

func (c *CohereTranslator) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	preamble := fmt.Sprintf(
		"Translate the user's text to %s. Preserve tokens of the form __TKR<n>__ exactly. Reply with the translation only.",
		targetLang)

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:    &c.model,
		Preamble: &preamble,
		Message:  text,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}
	return resp.Text, nil
}
