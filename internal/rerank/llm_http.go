package rerank

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// --- light http helpers (decoupled for testability) ---

var httpNewRequest = defaultNewRequest
var httpDo = defaultDo

func defaultNewRequest(ctx context.Context, url, method, body string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, url, io.NopCloser(strings.NewReader(body)))
}

func defaultDo(req *http.Request) (*http.Response, error) {
	client := &http.Client{}
	return client.Do(req)
}

// parseRanking pulls the JSON array out of a chat completion reply.
// Models sometimes wrap the array in code fences; strip them first.
func parseRanking(resp *http.Response) ([]rankedEntry, error) {
	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw.Choices) == 0 {
		return nil, nil
	}
	content := strings.TrimSpace(raw.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	var out []rankedEntry
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, err
	}
	return out, nil
}
