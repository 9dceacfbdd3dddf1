package viewmodel

import (
	"strconv"
	"strings"

	"coin-dashboard/internal/domain"
)

const LiveSearchLimit = 5

type SearchHit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Price string `json:"price"`
}

type SearchResult struct {
	Hits []SearchHit `json:"hits"`
	More int         `json:"more"`
}

// MoreLabel is the overflow link text, empty when every match is shown.
func (r SearchResult) MoreLabel() string {
	if r.More <= 0 {
		return ""
	}
	return "See more coins (+" + strconv.Itoa(r.More) + ")"
}

// LiveSearch matches coin names case-insensitively and keeps the first limit
// hits. Blank text matches nothing.
func LiveSearch(coins []domain.CoinRecord, text string, limit int) SearchResult {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return SearchResult{Hits: []SearchHit{}}
	}
	if limit <= 0 {
		limit = LiveSearchLimit
	}

	hits := make([]SearchHit, 0, limit)
	matched := 0
	for _, coin := range coins {
		if !strings.Contains(strings.ToLower(coin.Name), needle) {
			continue
		}
		matched++
		if len(hits) < limit {
			hits = append(hits, SearchHit{
				ID:    coin.ID,
				Name:  coin.Name,
				Image: coin.Image,
				Price: FormatUSD(coin.CurrentPrice),
			})
		}
	}
	return SearchResult{Hits: hits, More: matched - len(hits)}
}
