package services

import (
	"context"
	"sync"
	"time"

	"nardchat/internal/logger"
	"nardchat/internal/utils"
)

const (
	rankQueueSize     = 1000
	rankBatchSize     = 50
	rankBatchInterval = 500 * time.Millisecond
	rankRefreshEvery  = 24 * time.Hour
	rankRefreshWindow = 7 * 24 * time.Hour
)

type RankStore interface {
	RankInput(ctx context.Context, id uint) (utils.RankInput, error)
	UpdateScore(ctx context.Context, id uint, score float64) error
	RecentIDs(ctx context.Context, since time.Time) ([]uint, error)
}

// RankingService 提供异步计算和更新故事 Score 的服务
type RankingService struct {
	store   RankStore
	config  utils.RankConfig
	now     func() time.Time
	queue   chan uint // 待更新的故事 ID 队列
	pending map[uint]bool
	mu      sync.Mutex
}

func NewRankingService(st RankStore) *RankingService {
	return &RankingService{
		store:   st,
		config:  utils.DefaultRankConfig,
		now:     time.Now,
		queue:   make(chan uint, rankQueueSize),
		pending: make(map[uint]bool),
	}
}

// ScheduleUpdate 将故事加入更新队列（异步），已在队列中的会被跳过
func (s *RankingService) ScheduleUpdate(storyID uint) {
	s.mu.Lock()
	if s.pending[storyID] {
		s.mu.Unlock()
		return
	}
	s.pending[storyID] = true
	s.mu.Unlock()

	select {
	case s.queue <- storyID:
	default:
		s.mu.Lock()
		delete(s.pending, storyID)
		s.mu.Unlock()
		logger.Log.Warn().Uint("story_id", storyID).Msg("ranking queue full, skipping update")
	}
}

// Run processes the queue in batches until ctx is done. It also rescores the
// last week of stories once a day so that age decay shows up without
// activity.
func (s *RankingService) Run(ctx context.Context) {
	batch := make([]uint, 0, rankBatchSize)
	ticker := time.NewTicker(rankBatchInterval)
	defer ticker.Stop()
	refresh := time.NewTicker(rankRefreshEvery)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case id := <-s.queue:
			batch = append(batch, id)
			if len(batch) >= rankBatchSize {
				s.processBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-refresh.C:
			s.refreshRecent(ctx)
		}
	}
}

func (s *RankingService) processBatch(ctx context.Context, ids []uint) {
	for _, id := range ids {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()

		s.UpdateScore(ctx, id)
	}
}

// UpdateScore 同步计算并更新单个故事的 Score
func (s *RankingService) UpdateScore(ctx context.Context, storyID uint) {
	in, err := s.store.RankInput(ctx, storyID)
	if err != nil {
		logger.Log.Warn().Err(err).Uint("story_id", storyID).Msg("rank input unavailable")
		return
	}

	score := utils.CalculateScore(s.config, in, s.now())
	if err := s.store.UpdateScore(ctx, storyID, score); err != nil {
		logger.Log.Error().Err(err).Uint("story_id", storyID).Msg("update story score failed")
	}
}

func (s *RankingService) refreshRecent(ctx context.Context) {
	ids, err := s.store.RecentIDs(ctx, s.now().Add(-rankRefreshWindow))
	if err != nil {
		logger.Log.Warn().Err(err).Msg("list recent stories failed")
		return
	}
	for _, id := range ids {
		s.UpdateScore(ctx, id)
	}
	logger.Log.Info().Int("count", len(ids)).Msg("story scores refreshed")
}
