package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nardchat/internal/middleware"
	"nardchat/internal/models"
	"nardchat/internal/store"
)

const notificationPageSize = 50

type NotificationStore interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, id uint) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, id uint) error
}

type NotificationHandler struct {
	store NotificationStore
}

func NewNotificationHandler(st NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: st}
}

type notificationView struct {
	models.Notification
	Actor authorView `json:"actor"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	// Synthetic identities have no row, so nothing can address them.
	if user.Synthetic {
		c.JSON(http.StatusOK, gin.H{"notifications": []notificationView{}, "unread_count": 0})
		return
	}

	list, err := h.store.ListForUser(c.Request.Context(), user.ID, notificationPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := h.store.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]notificationView, 0, len(list))
	for _, n := range list {
		views = append(views, notificationView{Notification: n, Actor: newAuthorView(n.Actor)})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": views, "unread_count": unread})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if user.Synthetic {
		notFound(c, "notification")
		return
	}
	h.finish(c, h.store.MarkRead(c.Request.Context(), user.ID, id))
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Synthetic {
		c.Status(http.StatusNoContent)
		return
	}
	h.finish(c, h.store.MarkAllRead(c.Request.Context(), user.ID))
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if user.Synthetic {
		notFound(c, "notification")
		return
	}
	h.finish(c, h.store.Delete(c.Request.Context(), user.ID, id))
}

func (h *NotificationHandler) finish(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, store.ErrNotFound):
		notFound(c, "notification")
	default:
		respondError(c, err)
	}
}
