package trigger

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	httperr "github.com/still-asking/sapn-generator/internal/core/errors"
)

const (
	msgInvalidJSON     = "Invalid JSON body"
	msgDispatchFailed  = "Failed to process event"
	msgInvalidSettings = "Invalid settings body"
)

// Handler exposes the dispatcher over HTTP for external hosts.
type Handler struct {
	dispatcher *Dispatcher
}

func NewHandler(d *Dispatcher) *Handler {
	if d == nil {
		panic("trigger: dispatcher must not be nil")
	}
	return &Handler{dispatcher: d}
}

// RegisterRoutes registers the event webhook and settings routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/events", h.EventHandler)
	r.GET("/v1/settings", h.GetSettingsHandler)
	r.PUT("/v1/settings", h.PutSettingsHandler)
}

// EventHandler accepts one host lifecycle notification and processes it
// synchronously. Ignored events still answer 202 with the reason.
func (h *Handler) EventHandler(c *gin.Context) {
	var evt v1.Event
	if err := c.ShouldBindJSON(&evt); err != nil {
		slog.Warn("[Trigger] Invalid JSON body received", "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidJSON,
		})
		return
	}
	if err := evt.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   err.Error(),
		})
		return
	}

	res, err := h.dispatcher.ProcessEvent(c.Request.Context(), evt)
	if err != nil {
		slog.Error("[Trigger] Failed to process event", "delivery_id", res.DeliveryID, "part_id", evt.ID, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   msgDispatchFailed,
		})
		return
	}

	c.JSON(http.StatusAccepted, res)
}

func (h *Handler) GetSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Settings())
}

// PutSettingsHandler updates the toggles present in the body. Omitted
// fields keep their current value.
func (h *Handler) PutSettingsHandler(c *gin.Context) {
	s := h.dispatcher.Settings()
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidSettings,
		})
		return
	}
	h.dispatcher.SetSettings(s)
	c.JSON(http.StatusOK, s)
}
