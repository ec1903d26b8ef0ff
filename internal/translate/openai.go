package translate

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const defaultOpenAIModel = openai.GPT4o

// segmentSchema constrains the model response to an object holding an array
// of {arabic, english} objects. Structured outputs require a top-level
// object, so the array is wrapped in a "segments" field; parseSegments
// unwraps it again.
var segmentSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"segments": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"arabic":  {Type: jsonschema.String},
					"english": {Type: jsonschema.String},
				},
				Required:             []string{"arabic", "english"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"segments"},
	AdditionalProperties: false,
}

// OpenAITranslator translates Arabic text using the OpenAI Chat API
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAITranslator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAITranslator) Name() string {
	return "openai"
}

func (o *OpenAITranslator) Translate(ctx context.Context, sourceText string) ([]SegmentPair, error) {
	log.Printf("[openai] translating %d bytes with model %s", len(sourceText), o.model)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(sourceText)},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "segment_pairs",
				Schema: &segmentSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty OpenAI response")
	}

	pairs, err := parseSegments(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse OpenAI response: %w", err)
	}

	log.Printf("[openai] translation complete: %d segment pairs", len(pairs))
	return pairs, nil
}
