package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nardchat/internal/middleware"
	"nardchat/internal/models"
	"nardchat/internal/tree"
	"nardchat/internal/utils"
)

// ForumService is the part of services.Forum the HTTP layer uses.
type ForumService interface {
	ListStories(ctx context.Context, limit, offset int, sort string) []models.Story
	GetStory(ctx context.Context, id uint) *models.Story
	StoryComments(ctx context.Context, storyID uint) tree.Result
	CreateStory(ctx context.Context, wallet, title, content string) (*models.Story, error)
	CreateComment(ctx context.Context, wallet string, storyID uint, parentID *uint, content string) (*models.Comment, error)
	Vote(ctx context.Context, wallet string, commentID uint, value int) (*models.Comment, bool, error)
}

type StoryHandler struct {
	forum ForumService
}

func NewStoryHandler(forum ForumService) *StoryHandler {
	return &StoryHandler{forum: forum}
}

// List 故事列表，支持 ?sort=hot|new&limit=&offset=
func (h *StoryHandler) List(c *gin.Context) {
	limit := utils.StringToInt(c.Query("limit"), 0)
	offset := utils.StringToInt(c.Query("offset"), 0)

	stories := h.forum.ListStories(c.Request.Context(), limit, offset, c.Query("sort"))
	views := make([]storyView, 0, len(stories))
	for _, s := range stories {
		views = append(views, newStoryView(s))
	}
	c.JSON(http.StatusOK, gin.H{"stories": views})
}

// Detail 故事详情，包含评论树
func (h *StoryHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	story := h.forum.GetStory(c.Request.Context(), id)
	if story == nil {
		notFound(c, "story")
		return
	}

	res := h.forum.StoryComments(c.Request.Context(), id)
	comments := make([]commentView, 0, len(res.Roots))
	for _, root := range res.Roots {
		comments = append(comments, newCommentView(root))
	}

	c.JSON(http.StatusOK, gin.H{
		"story":    newStoryView(*story),
		"comments": comments,
	})
}

// Comments returns only the comment tree of a story.
func (h *StoryHandler) Comments(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res := h.forum.StoryComments(c.Request.Context(), id)
	comments := make([]commentView, 0, len(res.Roots))
	for _, root := range res.Roots {
		comments = append(comments, newCommentView(root))
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type createStoryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "title and content are required")
		return
	}

	story, err := h.forum.CreateStory(c.Request.Context(), middleware.CurrentWallet(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"story": newStoryView(*story)})
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// CreateComment 发表评论，parent_id 为空时是根评论
func (h *StoryHandler) CreateComment(c *gin.Context) {
	storyID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content is required")
		return
	}
	if req.ParentID != nil && *req.ParentID == 0 {
		req.ParentID = nil
	}

	comment, err := h.forum.CreateComment(c.Request.Context(), middleware.CurrentWallet(c), storyID, req.ParentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": newCommentView(comment)})
}
