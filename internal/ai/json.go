package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type clauseResponse struct {
	Clauses []string `mapstructure:"clauses"`
}

func marshalSentences(sentences []string) (string, error) {
	data, err := json.MarshalIndent(sentences, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sentences: %w", err)
	}
	return string(data), nil
}

// parseClauses accepts either {"clauses": [...]} or a bare array.
func parseClauses(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse clauses response: %w", err)
	}

	if list, ok := data.([]any); ok {
		data = map[string]any{"clauses": list}
	}

	var resp clauseResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("create clauses decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode clauses response: %w", err)
	}

	for i, c := range resp.Clauses {
		resp.Clauses[i] = strings.TrimSpace(c)
	}
	return resp.Clauses, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
