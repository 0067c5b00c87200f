package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type catalogCacheKeyInput struct {
	Query      string `json:"query"`
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Tech       string `json:"tech"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Preview    bool   `json:"preview"`
}

func normalizeFilterValue(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

func CatalogSearchCacheKey(p ProjectListParams) string {
	in := catalogCacheKeyInput{
		Query:      normalizeFilterValue(p.Query),
		Domain:     normalizeFilterValue(p.Domain),
		Difficulty: normalizeFilterValue(p.Difficulty),
		Tech:       normalizeFilterValue(p.Tech),
		Limit:      p.Limit,
		Offset:     p.Offset,
		Preview:    p.Preview,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "projects:search:" + hex.EncodeToString(sum[:])
}

func CatalogSearchLockKey(searchKey string) string {
	return "projects:lock:" + strings.TrimPrefix(searchKey, "projects:search:")
}

func RecommendationCacheKey(userID uuid.UUID, limit int) string {
	in := struct {
		UserID string `json:"user_id"`
		Limit  int    `json:"limit"`
	}{UserID: userID.String(), Limit: limit}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recs:user:" + userID.String() + ":" + hex.EncodeToString(sum[:8])
}
