package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nardchat/internal/middleware"
)

type VoteHandler struct {
	forum ForumService
}

func NewVoteHandler(forum ForumService) *VoteHandler {
	return &VoteHandler{forum: forum}
}

type voteRequest struct {
	Value int `json:"value"`
}

// Vote 对评论点赞 (1) 或踩 (-1)，重复投票返回当前计数
func (h *VoteHandler) Vote(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}

	comment, cast, err := h.forum.Vote(c.Request.Context(), middleware.CurrentWallet(c), id, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment_id": comment.ID,
		"upvotes":    comment.Upvotes,
		"downvotes":  comment.Downvotes,
		"vote_score": comment.VoteScore,
		"voted":      cast,
	})
}
