package archive

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"
)

// BriefParams holds parameters for brief assembly.
type BriefParams struct {
	SessionID string
	Query     string // optional; empty means recency only
	Budget    int    // max chars in output, default 8000
}

// BriefResult is one scored excerpt in an assembled brief.
type BriefResult struct {
	Ref     string  `json:"ref"`
	URL     string  `json:"url,omitempty"`
	Kind    string  `json:"kind"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Excerpt bool    `json:"excerpt,omitempty"`
}

// Brief is the assembled view of a session's archived results, sized to
// feed downstream prompting.
type Brief struct {
	SessionID string        `json:"session_id"`
	Budget    int           `json:"budget"`
	Used      int           `json:"used"`
	Results   []BriefResult `json:"results"`
}

// AssembleBrief packs a session's archived results into a character budget,
// preferring query matches and recent payloads. Long payloads are cut down
// to the excerpt around the first match.
func (a *Archive) AssembleBrief(ctx context.Context, p BriefParams) (*Brief, error) {
	budget := p.Budget
	if budget <= 0 {
		budget = 8000
	}

	results, err := a.ListSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	brief := &Brief{SessionID: p.SessionID, Budget: budget, Results: []BriefResult{}}
	if len(results) == 0 {
		return brief, nil
	}

	term := strings.ToLower(p.Query)
	now := time.Now()

	type scored struct {
		result Result
		score  float64
	}
	var candidates []scored

	for _, r := range results {
		// Recency: exponential decay, half-life around a week
		age := now.Sub(r.CreatedAt).Hours() / 24.0
		recency := math.Exp(-0.1 * age)

		relevance := 0.5
		if term != "" {
			if !strings.Contains(strings.ToLower(r.Content), term) {
				continue // with a query, misses are excluded entirely
			}
			relevance = 1.0
		}

		candidates = append(candidates, scored{
			result: r,
			score:  relevance*0.6 + recency*0.4,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	used := 0
	for _, c := range candidates {
		remaining := budget - used
		if remaining < 200 {
			break
		}

		content := c.result.Content
		excerpted := false
		if len(content) > remaining {
			content = excerptAround(content, term, remaining)
			excerpted = true
		}

		brief.Results = append(brief.Results, BriefResult{
			Ref:     c.result.Ref,
			URL:     c.result.URL,
			Kind:    c.result.Kind,
			Content: content,
			Score:   math.Round(c.score*100) / 100,
			Excerpt: excerpted,
		})
		used += len(content)
	}

	brief.Used = used
	return brief, nil
}

// excerptAround cuts content down to at most limit chars, centered on the
// first occurrence of term when present, snapped outward to line breaks.
func excerptAround(content, term string, limit int) string {
	if limit >= len(content) {
		return content
	}

	center := 0
	if term != "" {
		if idx := strings.Index(strings.ToLower(content), term); idx >= 0 {
			center = idx
		}
	}

	start := center - limit/2
	if start < 0 {
		start = 0
	}
	end := start + limit
	if end > len(content) {
		end = len(content)
		start = end - limit
	}

	// Snap to line boundaries so excerpts stay readable
	if start > 0 {
		if nl := strings.IndexByte(content[start:end], '\n'); nl >= 0 && nl < limit/4 {
			start += nl + 1
		}
	}
	if end < len(content) {
		if nl := strings.LastIndexByte(content[start:end], '\n'); nl > limit*3/4 {
			end = start + nl
		}
	}

	out := content[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out += "..."
	}
	return out
}
