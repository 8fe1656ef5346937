package services

import (
	"context"
	"fmt"
	"sync"

	"nardchat/internal/models"
	"nardchat/internal/store"
)

type fakeStories struct {
	stories   map[uint]*models.Story
	listErr   error
	getErr    error
	plainErr  error
	nextID    uint
	lastSort  string
	lastLimit int
}

func newFakeStories() *fakeStories {
	return &fakeStories{stories: map[uint]*models.Story{}, nextID: 100}
}

func (f *fakeStories) List(_ context.Context, limit, _ int, sort string) ([]models.Story, error) {
	f.lastLimit, f.lastSort = limit, sort
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Story{}
	for _, s := range f.stories {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStories) Get(_ context.Context, id uint) (*models.Story, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.stories[id]
	if !ok {
		return nil, fmt.Errorf("get story: %w", store.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStories) GetPlain(_ context.Context, id uint) (*models.Story, error) {
	if f.plainErr != nil {
		return nil, f.plainErr
	}
	s, ok := f.stories[id]
	if !ok {
		return nil, fmt.Errorf("get story row: %w", store.ErrNotFound)
	}
	cp := *s
	cp.Author = models.User{}
	return &cp, nil
}

func (f *fakeStories) Create(_ context.Context, s *models.Story) error {
	f.nextID++
	s.ID = f.nextID
	f.stories[s.ID] = s
	return nil
}

type fakeComments struct {
	comments []models.Comment
	listErr  error
	plainErr error
	nextID   uint
}

func (f *fakeComments) ListByStory(_ context.Context, storyID uint) ([]models.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byStory(storyID), nil
}

func (f *fakeComments) ListByStoryPlain(_ context.Context, storyID uint) ([]models.Comment, error) {
	if f.plainErr != nil {
		return nil, f.plainErr
	}
	out := f.byStory(storyID)
	for i := range out {
		out[i].Author = models.User{}
	}
	return out, nil
}

func (f *fakeComments) byStory(storyID uint) []models.Comment {
	var out []models.Comment
	for _, c := range f.comments {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeComments) Get(_ context.Context, id uint) (*models.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get comment: %w", store.ErrNotFound)
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.nextID++
	c.ID = 1000 + f.nextID
	f.comments = append(f.comments, *c)
	return nil
}

type fakeVotes struct {
	comments map[uint]*models.Comment
	voted    map[string]bool
}

func (f *fakeVotes) Cast(_ context.Context, userID string, commentID uint, value int) (*models.Comment, bool, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return nil, false, fmt.Errorf("cast vote: %w", store.ErrNotFound)
	}
	key := fmt.Sprintf("%s/%d", userID, commentID)
	if f.voted[key] {
		cp := *c
		return &cp, false, nil
	}
	f.voted[key] = true
	if value > 0 {
		c.Upvotes++
	} else {
		c.Downvotes++
	}
	c.VoteScore = c.Upvotes - c.Downvotes
	cp := *c
	return &cp, true, nil
}

type fakeNotifications struct {
	created []models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

// fakeIdentity maps wallets to fixed users; unknown wallets are synthetic.
type fakeIdentity struct {
	users map[string]models.User
}

func (f *fakeIdentity) Resolve(_ context.Context, wallet, _ string) *models.User {
	if u, ok := f.users[wallet]; ok {
		return &u
	}
	return &models.User{ID: "wallet_" + wallet, WalletAddress: wallet, Role: models.RoleUser, Synthetic: true}
}

type fakeScheduler struct {
	mu  sync.Mutex
	ids []uint
}

func (f *fakeScheduler) ScheduleUpdate(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
}
