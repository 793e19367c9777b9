package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/armguard_console/internal/service"
)

// интервал комментариев keep-alive в SSE
var sseHeartbeat = 15 * time.Second

// @Summary List cached alerts
// @Description Alerts from the synchronization cache, filtered by tab (all, unread, read).
// @Tags Alerts
// @Produce json
// @Param tab query string false "all | unread | read" default(all)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(4)
// @Success 200 {object} service.AlertView
// @Failure 401 {object} map[string]string "Not authenticated"
// @Security ApiKeyAuth
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	st := h.Alerts.State()
	view := service.BuildAlertView(
		st.Alerts,
		service.ParseAlertTab(c.Query("tab")),
		intQuery(c, "page", 1),
		intQuery(c, "page_size", service.AlertPageSize),
	)
	c.JSON(http.StatusOK, view)
}

// @Summary Unread alerts counter
// @Tags Alerts
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Security ApiKeyAuth
// @Router /alerts/unread-count [get]
func (h *Handler) unreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, UnreadCountResponse{UnreadCount: h.Alerts.UnreadCount()})
}

// @Summary Refresh alerts now
// @Tags Alerts
// @Produce json
// @Success 200 {object} alerts.State
// @Failure 502 {object} map[string]string "Backend unavailable"
// @Security ApiKeyAuth
// @Router /alerts/refresh [post]
func (h *Handler) refreshAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "refreshAlerts")
	if err := h.Alerts.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, h.Alerts.State())
}

// @Summary Mark an alert as read
// @Description Optimistic: the cache flips first and reverts if the backend rejects.
// @Tags Alerts
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Alert not cached"
// @Failure 502 {object} map[string]string "Backend failure, change reverted"
// @Security ApiKeyAuth
// @Router /alerts/{id}/read [patch]
func (h *Handler) markAlertRead(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "markAlertRead").WithField("id", id)
	if err := h.AlertActions.MarkAsRead(c.Request.Context(), actor(c), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark all alerts as read
// @Tags Alerts
// @Success 204 "No Content"
// @Failure 502 {object} map[string]string "Backend failure, cache refreshed"
// @Security ApiKeyAuth
// @Router /alerts/read-all [post]
func (h *Handler) markAllAlertsRead(c *gin.Context) {
	log := h.logger.WithField("method", "markAllAlertsRead")
	if err := h.AlertActions.MarkAllAsRead(c.Request.Context(), actor(c)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete an alert
// @Tags Alerts
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 502 {object} map[string]string "Backend failure, list restored"
// @Security ApiKeyAuth
// @Router /alerts/{id} [delete]
func (h *Handler) deleteAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteAlert").WithField("id", id)
	if err := h.AlertActions.DeleteAlert(c.Request.Context(), actor(c), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Stream alert state and notifications
// @Description Server-Sent Events: "alerts" carries the cache snapshot, "notification" carries toasts.
// @Tags Alerts
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Router /alerts/events [get]
func (h *Handler) alertEvents(c *gin.Context) {
	log := h.logger.WithField("method", "alertEvents")
	states, cancelStates := h.Alerts.Subscribe()
	defer cancelStates()
	notes, cancelNotes := h.Hub.Subscribe()
	defer cancelNotes()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	log.Debug("SSE client connected")
	for {
		select {
		case <-ctx.Done():
			log.Debug("SSE client disconnected")
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			c.SSEvent("alerts", st)
		case n, ok := <-notes:
			if !ok {
				return
			}
			c.SSEvent("notification", n)
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
		}
		c.Writer.Flush()
	}
}
