package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nardchat/internal/chain"
	"nardchat/internal/middleware"
)

type AdminHandler struct {
	forum    ForumService
	contract *chain.DiscussionStorage
	now      func() time.Time
}

func NewAdminHandler(forum ForumService, contract *chain.DiscussionStorage) *AdminHandler {
	return &AdminHandler{forum: forum, contract: contract, now: time.Now}
}

// Archive returns the calls that store the thread on chain and mark it
// archived. The admin's wallet submits them; nothing changes here.
func (h *AdminHandler) Archive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	story := h.forum.GetStory(c.Request.Context(), id)
	if story == nil {
		notFound(c, "story")
		return
	}

	plan, err := h.contract.ArchiveThreadPlan(uint64(story.ID), story.Title, middleware.CurrentWallet(c), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Contract 合约地址、链 ID 和 ABI
func (h *AdminHandler) Contract(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"address":  h.contract.Address(),
		"chain_id": h.contract.ChainID(),
		"abi":      h.contract.ABI(),
	})
}
