package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	quiet := CalculateScore(DefaultRankConfig, RankInput{CreatedAt: now}, now)
	assert.Zero(t, quiet)

	busy := CalculateScore(DefaultRankConfig, RankInput{CreatedAt: now, Comments: 5, Upvotes: 10}, now)
	assert.Greater(t, busy, 0.0)

	older := CalculateScore(DefaultRankConfig, RankInput{CreatedAt: now.Add(-48 * time.Hour), Comments: 5, Upvotes: 10}, now)
	assert.Less(t, older, busy)

	buried := CalculateScore(DefaultRankConfig, RankInput{CreatedAt: now, Downvotes: 50}, now)
	assert.Zero(t, buried)
}
