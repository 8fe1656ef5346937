package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // 时间重力
	WeightComment  float64
	WeightUpvote   float64
	WeightDownvote float64
	ScaleFactor    float64 // 放大系数
}

var DefaultRankConfig = RankConfig{
	Gravity:        1.5,
	WeightComment:  2.0,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	ScaleFactor:    100.0,
}

// RankInput is the activity a story has gathered, counted over its comments.
type RankInput struct {
	CreatedAt time.Time
	Comments  int
	Upvotes   int
	Downvotes int
}

// CalculateScore returns a hot score that grows with activity (log smoothed)
// and decays with age.
func CalculateScore(cfg RankConfig, in RankInput, now time.Time) float64 {
	hours := now.Sub(in.CreatedAt).Hours()
	if hours < 0 {
		hours = 0
	}

	weightedSum := float64(in.Upvotes)*cfg.WeightUpvote +
		float64(in.Comments)*cfg.WeightComment -
		float64(in.Downvotes)*cfg.WeightDownvote
	if weightedSum < 0 {
		weightedSum = 0
	}

	numerator := math.Log10(weightedSum+1) * cfg.ScaleFactor
	decay := math.Pow(hours+2, cfg.Gravity)
	return numerator / decay
}
