package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/wilkadeals/locauto/internal/cache"
	"github.com/wilkadeals/locauto/internal/context"
	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/response"
)

const unreadCountCacheTTL = 30 * time.Second

type NotificationResponseData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationHandler struct {
	NotificationRepo repository.NotificationRepository

	Cache      *cache.Cache
	ErrHandler *errHandler.ErrorHandler
}

func NewNotificationHandler(handler *NotificationHandler) *NotificationHandler {
	return &NotificationHandler{
		NotificationRepo: handler.NotificationRepo,
		Cache:            handler.Cache,
		ErrHandler:       handler.ErrHandler,
	}
}

func unreadCountCacheKey(userID string) string {
	return "notifications:unread:" + userID
}

func (h *NotificationHandler) HandleListMyNotifications(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	notifications, err := h.NotificationRepo.GetAllForUser(user.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]NotificationResponseData, 0, len(notifications))
	for _, notification := range notifications {
		data = append(data, NotificationResponseData{
			ID:        notification.ID,
			Title:     notification.Title,
			Message:   notification.Message,
			Type:      string(notification.Type),
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	message := "Notifications fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *NotificationHandler) HandleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	err := h.NotificationRepo.MarkAllRead(user.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if err := h.Cache.Delete(unreadCountCacheKey(user.ID)); err != nil {
		log.Printf("Error invalidating unread count cache: %v", err)
	}

	message := "Notifications marked as read"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleUnreadNotificationCount backs the badge the storefront polls
// for. The count is cached briefly so polling does not hammer the
// database.
func (h *NotificationHandler) HandleUnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	cacheKey := unreadCountCacheKey(user.ID)

	var count int
	cached, err := h.Cache.Get(cacheKey)
	if err == nil {
		count, err = strconv.Atoi(cached)
	}
	if err != nil {
		count, err = h.NotificationRepo.CountUnread(user.ID)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}

		if err := h.Cache.Set(cacheKey, strconv.Itoa(count), unreadCountCacheTTL); err != nil {
			log.Printf("Error caching unread count: %v", err)
		}
	}

	message := "Unread count fetched successfully"
	data := map[string]int{"count": count}
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
