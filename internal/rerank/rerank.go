package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"questpick/internal/config"
	"questpick/internal/rank"
	"questpick/internal/util"
)

const maxReasonLen = 70

// Rerank optionally reorders the engine's picks using an LLM provider.
// The model may only permute what the engine produced: unknown ids are
// dropped, duplicates collapse, and anything the model omitted is
// appended in engine order. On any failure the engine order comes back
// untouched alongside the error, so callers degrade instead of failing.
func Rerank(ctx context.Context, cfg config.LLMConfig, moodTags []string, items []rank.Item) ([]rank.Item, map[string]string, error) {
	if strings.ToLower(cfg.Provider) != "openai" || cfg.APIKey == "" || len(items) < 2 {
		return items, nil, nil
	}
	payload, err := buildPayload(cfg.Model, moodTags, items)
	if err != nil {
		return items, nil, err
	}
	req, err := httpNewRequest(ctx, "https://api.openai.com/v1/chat/completions", "POST", payload)
	if err != nil {
		return items, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpDo(req)
	if err != nil {
		return items, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return items, nil, fmt.Errorf("llm status %d", resp.StatusCode)
	}
	ranked, err := parseRanking(resp)
	if err != nil || len(ranked) == 0 {
		return items, nil, err
	}
	return applyRanking(items, ranked)
}

func buildPayload(model string, moodTags []string, items []rank.Item) (string, error) {
	type entry struct {
		ID     string   `json:"id"`
		Title  string   `json:"title"`
		Genres []string `json:"genres"`
		Score  float64  `json:"score"`
	}
	entries := make([]entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry{
			ID:     it.Candidate.Key(),
			Title:  it.Candidate.Title,
			Genres: it.Candidate.GenreTags,
			Score:  it.Score,
		})
	}
	list, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	mood := "no particular mood"
	if len(moodTags) > 0 {
		mood = strings.Join(moodTags, ", ")
	}
	prompt := fmt.Sprintf(
		"Player mood: %s. Reorder these game picks best-first and give a short reason for each. "+
			"Reply with a JSON array of {\"id\",\"reason\"} only, using ids from the list. Picks: %s",
		mood, list)
	body := map[string]any{
		"model":       model,
		"temperature": 0.2,
		"messages": []map[string]string{
			{"role": "system", "content": "You rank video game recommendations. Respond with JSON only."},
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(body)
	return string(b), err
}

type rankedEntry struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// applyRanking validates the model's ordering against the engine output.
// Returns the reordered items and a per-key reason map.
func applyRanking(items []rank.Item, ranked []rankedEntry) ([]rank.Item, map[string]string, error) {
	byKey := make(map[string]rank.Item, len(items))
	for _, it := range items {
		byKey[it.Candidate.Key()] = it
	}
	out := make([]rank.Item, 0, len(items))
	reasons := make(map[string]string)
	seen := make(map[string]bool, len(items))
	for _, r := range ranked {
		it, ok := byKey[r.ID]
		if !ok || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, it)
		if why := sanitizeReason(r.Reason); why != "" {
			reasons[r.ID] = why
		}
	}
	for _, it := range items {
		if !seen[it.Candidate.Key()] {
			out = append(out, it)
		}
	}
	return out, reasons, nil
}

// sanitizeReason collapses whitespace and trims to a display-safe length.
func sanitizeReason(s string) string {
	s = util.NormalizeWhitespace(s)
	r := []rune(s)
	if len(r) > maxReasonLen {
		s = strings.TrimSpace(string(r[:maxReasonLen]))
	}
	return s
}
