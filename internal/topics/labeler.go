package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Completer sends a system and user prompt to a chat model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Labeler asks a chat model for a short label per topic.
type Labeler struct {
	Client Completer
}

type labelRequest struct {
	ID    int      `json:"id"`
	Words []string `json:"words"`
}

type labelResponse struct {
	Topics []struct {
		ID    int    `json:"id"`
		Label string `json:"label"`
	} `json:"topics"`
}

const labelSystemMessage = `
You will receive topics from a topic model as a JSON array. Each topic has an id and its most important words, most important first.

Give every topic a short human readable label of at most four words, in the language of its words.

Respond only with a valid JSON object. Do not include any additional text or commentary.

Expected JSON response format:
{
  "topics": [
    {"id": 0, "label": "Short label"}
  ]
}
`

// Label fills in Topic.Label for every topic the model answered for. On any
// failure the topics are returned unchanged along with the error.
func (l *Labeler) Label(ctx context.Context, topics []Topic) ([]Topic, error) {
	if l == nil || l.Client == nil || len(topics) == 0 {
		return topics, nil
	}

	req := make([]labelRequest, 0, len(topics))
	for _, t := range topics {
		words := make([]string, 0, len(t.Words))
		for _, w := range t.Words {
			words = append(words, w.Word)
		}
		req = append(req, labelRequest{ID: t.ID, Words: words})
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return topics, fmt.Errorf("[Labeler] marshal topics: %w", err)
	}

	raw, err := l.Client.Complete(ctx, labelSystemMessage, string(payload))
	if err != nil {
		return topics, fmt.Errorf("[Labeler] request labels: %w", err)
	}

	cleaned := cleanResponse(raw)
	var resp labelResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		slog.Error("[Labeler] Failed to unmarshal topic labels",
			slog.String("error", err.Error()),
			slog.String("raw_response", raw))
		return topics, fmt.Errorf("[Labeler] decode labels: %w", err)
	}

	labels := make(map[int]string, len(resp.Topics))
	for _, t := range resp.Topics {
		labels[t.ID] = strings.TrimSpace(t.Label)
	}

	labeled := make([]Topic, len(topics))
	for i, t := range topics {
		t.Label = labels[t.ID]
		if t.Label == "" {
			slog.Warn("[Labeler] Model returned no label for topic", slog.Int("topic", t.ID))
		}
		labeled[i] = t
	}
	return labeled, nil
}

// cleanResponse strips Markdown code fences around a JSON object.
func cleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
