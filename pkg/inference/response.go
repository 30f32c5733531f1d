package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape identifies which known layout a response body used.
type Shape int

// Known response layouts, in resolution order.
const (
	ShapeUnknown         Shape = iota
	ShapeOutputText            // {"output": "..."}
	ShapeOutputChoices         // {"output": {"choices": [{"text": "..."}]}}
	ShapeChoicesText           // {"choices": [{"text": "..."}]}
	ShapeChoicesMessage        // {"choices": [{"message": {"content": "..."}}]}
	ShapeText                  // {"text": "..."}
	ShapeGeminiCandidate       // genai candidate text part
)

func (s Shape) String() string {
	switch s {
	case ShapeOutputText:
		return "output_text"
	case ShapeOutputChoices:
		return "output_choices"
	case ShapeChoicesText:
		return "choices_text"
	case ShapeChoicesMessage:
		return "choices_message"
	case ShapeText:
		return "text"
	case ShapeGeminiCandidate:
		return "gemini_candidate"
	default:
		return "unknown"
	}
}

// Response is a resolved model output.
type Response struct {
	Text  string
	Shape Shape
}

type choice struct {
	Text    *string `json:"text"`
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
}

type envelope struct {
	Text    *string         `json:"text"`
	Output  json.RawMessage `json:"output"`
	Choices []choice        `json:"choices"`
}

// Resolve decodes a response body and picks the first known layout it matches.
// Undecodable JSON yields ErrMalformedResponse; valid JSON that matches nothing yields
// ErrUnrecognizedShape.
func Resolve(body []byte) (Response, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return Response{}, fmt.Errorf("%w: top-level %T", ErrUnrecognizedShape, raw)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUnrecognizedShape, err)
	}

	if len(env.Output) > 0 {
		var s string
		if env.Output[0] == '"' && json.Unmarshal(env.Output, &s) == nil {
			return Response{Shape: ShapeOutputText, Text: strings.TrimSpace(s)}, nil
		}
		var nested struct {
			Choices []choice `json:"choices"`
		}
		if err := json.Unmarshal(env.Output, &nested); err == nil && len(nested.Choices) > 0 && nested.Choices[0].Text != nil {
			return Response{Shape: ShapeOutputChoices, Text: strings.TrimSpace(*nested.Choices[0].Text)}, nil
		}
	}

	if len(env.Choices) > 0 {
		first := env.Choices[0]
		switch {
		case first.Text != nil:
			return Response{Shape: ShapeChoicesText, Text: strings.TrimSpace(*first.Text)}, nil
		case first.Message != nil:
			return Response{Shape: ShapeChoicesMessage, Text: strings.TrimSpace(first.Message.Content)}, nil
		}
	}

	if env.Text != nil {
		return Response{Shape: ShapeText, Text: strings.TrimSpace(*env.Text)}, nil
	}

	return Response{}, ErrUnrecognizedShape
}
