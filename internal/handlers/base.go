package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nardchat/internal/logger"
	"nardchat/internal/models"
	"nardchat/internal/services"
	"nardchat/internal/utils"
)

// respondError maps service errors onto status codes. Unknown errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrStoryNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrParentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidVoteValue),
		errors.Is(err, services.ErrParentMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrStoryFrozen):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSyntheticAuthor):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// idParam reads a positive numeric path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		badRequest(c, "invalid "+name)
	}
	return id, ok
}

type authorView struct {
	ID            string             `json:"id"`
	WalletAddress string             `json:"wallet_address,omitempty"`
	Username      string             `json:"username"`
	Role          string             `json:"role"`
	Badges        []models.BadgeInfo `json:"badges"`
}

func newAuthorView(u models.User) authorView {
	badges := make([]models.BadgeInfo, 0, len(u.Badges))
	for _, label := range u.BadgeLabels() {
		badges = append(badges, models.Badge(label).Info())
	}
	return authorView{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		Username:      u.Username,
		Role:          u.Role,
		Badges:        badges,
	}
}

type storyView struct {
	models.Story
	Author      authorView `json:"author"`
	ContentHTML string     `json:"content_html"`
}

func newStoryView(s models.Story) storyView {
	return storyView{
		Story:       s,
		Author:      newAuthorView(s.Author),
		ContentHTML: utils.RenderMarkdown(s.Content, utils.StoryMarkdown),
	}
}

type commentView struct {
	models.Comment
	Author      authorView    `json:"author"`
	ContentHTML string        `json:"content_html"`
	Replies     []commentView `json:"replies"`
}

func newCommentView(c *models.Comment) commentView {
	v := commentView{
		Comment:     *c,
		Author:      newAuthorView(c.Author),
		ContentHTML: utils.RenderMarkdown(c.Content, utils.CommentMarkdown),
		Replies:     make([]commentView, 0, len(c.Replies)),
	}
	for _, r := range c.Replies {
		v.Replies = append(v.Replies, newCommentView(r))
	}
	return v
}
