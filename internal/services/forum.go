package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"nardchat/internal/logger"
	"nardchat/internal/metrics"
	"nardchat/internal/models"
	"nardchat/internal/store"
	"nardchat/internal/tree"
)

const (
	DefaultStoryLimit = 10
	MaxStoryLimit     = 50
	MaxTitleLength    = 200
)

var (
	ErrStoryNotFound    = errors.New("story not found")
	ErrStoryFrozen      = errors.New("story is frozen")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrParentMismatch   = errors.New("parent comment belongs to another story")
	ErrSyntheticAuthor  = errors.New("user profile unavailable, try again later")
	ErrInvalidTitle     = errors.New("title must be 1 to 200 characters")
	ErrEmptyContent     = errors.New("content is required")
	ErrInvalidVoteValue = errors.New("vote value must be 1 or -1")
)

type StoryStore interface {
	List(ctx context.Context, limit, offset int, sort string) ([]models.Story, error)
	Get(ctx context.Context, id uint) (*models.Story, error)
	GetPlain(ctx context.Context, id uint) (*models.Story, error)
	Create(ctx context.Context, story *models.Story) error
}

type CommentStore interface {
	ListByStory(ctx context.Context, storyID uint) ([]models.Comment, error)
	ListByStoryPlain(ctx context.Context, storyID uint) ([]models.Comment, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) error
}

type VoteStore interface {
	Cast(ctx context.Context, userID string, commentID uint, value int) (*models.Comment, bool, error)
}

type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// IdentityResolver turns a wallet into a user; it never fails.
type IdentityResolver interface {
	Resolve(ctx context.Context, wallet, username string) *models.User
}

// ScoreScheduler queues a story for rescoring.
type ScoreScheduler interface {
	ScheduleUpdate(storyID uint)
}

type ForumDeps struct {
	Stories       StoryStore
	Comments      CommentStore
	Votes         VoteStore
	Notifications NotificationWriter
	Identity      IdentityResolver
	Ranking       ScoreScheduler
	Tree          tree.Options
}

// Forum holds the story and comment rules. Reads degrade to empty results,
// writes report errors.
type Forum struct {
	stories       StoryStore
	comments      CommentStore
	votes         VoteStore
	notifications NotificationWriter
	identity      IdentityResolver
	ranking       ScoreScheduler
	treeOpts      tree.Options
}

func NewForum(d ForumDeps) *Forum {
	return &Forum{
		stories:       d.Stories,
		comments:      d.Comments,
		votes:         d.Votes,
		notifications: d.Notifications,
		identity:      d.Identity,
		ranking:       d.Ranking,
		treeOpts:      d.Tree,
	}
}

func (f *Forum) ListStories(ctx context.Context, limit, offset int, sort string) []models.Story {
	if limit <= 0 {
		limit = DefaultStoryLimit
	}
	if limit > MaxStoryLimit {
		limit = MaxStoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	if sort != store.SortHot {
		sort = store.SortNew
	}

	stories, err := f.stories.List(ctx, limit, offset, sort)
	if err != nil {
		metrics.StoreFallbacks.WithLabelValues("list_stories").Inc()
		logger.Log.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("list stories failed")
		return []models.Story{}
	}
	return stories
}

// GetStory returns nil when the story does not exist or cannot be read. When
// the author join fails the story is served with a placeholder author.
func (f *Forum) GetStory(ctx context.Context, id uint) *models.Story {
	story, err := f.stories.Get(ctx, id)
	if err == nil {
		return story
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	metrics.StoreFallbacks.WithLabelValues("get_story").Inc()
	logger.Log.Warn().Err(err).Uint("story_id", id).Msg("story with author failed, retrying without relations")

	story, err = f.stories.GetPlain(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Log.Error().Err(err).Uint("story_id", id).Msg("get story failed")
		}
		return nil
	}
	story.Author = models.PlaceholderAuthor(story.AuthorID)
	return story
}

// StoryComments builds the reply tree of a story.
func (f *Forum) StoryComments(ctx context.Context, storyID uint) tree.Result {
	comments, err := f.comments.ListByStory(ctx, storyID)
	if err != nil {
		metrics.StoreFallbacks.WithLabelValues("list_comments").Inc()
		logger.Log.Warn().Err(err).Uint("story_id", storyID).Msg("comments with authors failed, retrying without relations")

		comments, err = f.comments.ListByStoryPlain(ctx, storyID)
		if err != nil {
			logger.Log.Error().Err(err).Uint("story_id", storyID).Msg("list comments failed")
			return tree.Result{Roots: []*models.Comment{}}
		}
		for i := range comments {
			comments[i].Author = models.PlaceholderAuthor(comments[i].AuthorID)
		}
	}

	res := tree.Build(comments, f.treeOpts)
	if len(res.Orphans) > 0 {
		metrics.CommentTreeOrphans.Add(float64(len(res.Orphans)))
		logger.Log.Warn().Uint("story_id", storyID).Interface("orphans", res.Orphans).Msg("comments with missing parent")
	}
	return res
}

// author resolves the wallet and refuses identities that have no stored row.
func (f *Forum) author(ctx context.Context, wallet string) (*models.User, error) {
	u := f.identity.Resolve(ctx, wallet, "")
	if u.Synthetic {
		return nil, ErrSyntheticAuthor
	}
	return u, nil
}

func (f *Forum) CreateStory(ctx context.Context, wallet, title, content string) (*models.Story, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(title); n == 0 || n > MaxTitleLength {
		return nil, ErrInvalidTitle
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	author, err := f.author(ctx, wallet)
	if err != nil {
		return nil, err
	}

	story := &models.Story{Title: title, Content: content, AuthorID: author.ID}
	if err := f.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	story.Author = *author
	f.ranking.ScheduleUpdate(story.ID)
	return story, nil
}

func (f *Forum) CreateComment(ctx context.Context, wallet string, storyID uint, parentID *uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	story, err := f.stories.GetPlain(ctx, storyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	if story.IsFrozen {
		return nil, ErrStoryFrozen
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = f.comments.Get(ctx, *parentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.StoryID != storyID {
			return nil, ErrParentMismatch
		}
	}

	author, err := f.author(ctx, wallet)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		StoryID:  storyID,
		ParentID: parentID,
		Content:  content,
		AuthorID: author.ID,
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *author

	f.notify(ctx, author, story, parent, comment)
	f.ranking.ScheduleUpdate(storyID)
	return comment, nil
}

// notify tells the parent author about a reply, or the story author about a
// root comment. Nobody is notified about their own comment.
func (f *Forum) notify(ctx context.Context, actor *models.User, story *models.Story, parent *models.Comment, c *models.Comment) {
	n := &models.Notification{
		ActorID:   actor.ID,
		StoryID:   story.ID,
		CommentID: c.ID,
	}
	if parent != nil {
		n.UserID = parent.AuthorID
		n.Type = models.NotificationTypeReplyComment
	} else {
		n.UserID = story.AuthorID
		n.Type = models.NotificationTypeCommentStory
	}
	if n.UserID == "" || n.UserID == actor.ID {
		return
	}

	if err := f.notifications.Create(ctx, n); err != nil {
		logger.Log.Warn().Err(err).Uint("comment_id", c.ID).Msg("create notification failed")
	}
}

// Vote casts one vote per user and comment. cast is false when the user had
// already voted; the comment is then returned unchanged.
func (f *Forum) Vote(ctx context.Context, wallet string, commentID uint, value int) (comment *models.Comment, cast bool, err error) {
	if value != 1 && value != -1 {
		return nil, false, ErrInvalidVoteValue
	}

	voter, err := f.author(ctx, wallet)
	if err != nil {
		return nil, false, err
	}

	comment, cast, err = f.votes.Cast(ctx, voter.ID, commentID, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, ErrCommentNotFound
		}
		return nil, false, err
	}
	if cast {
		f.ranking.ScheduleUpdate(comment.StoryID)
	}
	return comment, cast, nil
}
