package http

import (
	"net/http"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subUseCase usecase.SubscriptionUseCase
	logger     *logger.Logger
}

func NewSubscriptionHandler(subUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subUseCase: subUseCase, logger: logger}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	subscribed, err := h.subUseCase.Toggle(c.GetString("user_id"), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Subscribed successfully"
	if !subscribed {
		message = "Unsubscribed successfully"
	}
	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	subscribers, total, err := h.subUseCase.Subscribers(c.Param("channelId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"subscribers": subscribers,
		"total":       total,
	}, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	channels, total, err := h.subUseCase.SubscribedChannels(c.Param("subscriberId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"channels": channels,
		"total":    total,
	}, "Subscribed channels fetched successfully")
}
