package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"digibook/models"
	"digibook/services/booking"
	"digibook/services/payment"
	"digibook/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard as server-side sessions.
type WizardHandler struct {
	Sessions       *wizard.SessionManager
	Storage        wizard.Uploader
	PaymentSvc     payment.PaymentService
	BookingSvc     booking.BookingService
	MaxUploadBytes int64
}

func NewWizardHandler(sessions *wizard.SessionManager, storage wizard.Uploader, paymentSvc payment.PaymentService,
	bookingSvc booking.BookingService, maxUploadBytes int64) *WizardHandler {
	return &WizardHandler{
		Sessions:       sessions,
		Storage:        storage,
		PaymentSvc:     paymentSvc,
		BookingSvc:     bookingSvc,
		MaxUploadBytes: maxUploadBytes,
	}
}

type sessionState struct {
	SessionID   string                  `json:"sessionId"`
	CurrentStep int                     `json:"currentStep"`
	Steps       []wizard.Step           `json:"steps"`
	IsLast      bool                    `json:"isLast"`
	Complete    bool                    `json:"complete"`
	Record      *wizard.Record          `json:"record"`
	Errors      wizard.ValidationErrors `json:"errors"`
	Accepted    *bool                   `json:"accepted,omitempty"`
}

func newSessionState(sessionID string, ctrl *wizard.Controller) *sessionState {
	return &sessionState{
		SessionID:   sessionID,
		CurrentStep: ctrl.CurrentStep(),
		Steps:       ctrl.Steps(),
		IsLast:      ctrl.IsLast(),
		Complete:    ctrl.Complete(),
		Record:      ctrl.Record(),
		Errors:      ctrl.Errors(),
	}
}

// mutate loads the session, applies fn and persists the result. fn may return extra fields for the state.
func (h *WizardHandler) mutate(c *gin.Context, fn func(ctrl *wizard.Controller) (*bool, error)) {
	logger := getLogger(c)
	sessionID := c.Param("id")

	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	accepted, err := fn(ctrl)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), sessionID, ctrl); err != nil {
		logger.Error("Failed to save wizard draft", zap.String("sessionID", sessionID), zap.Error(err))
		respondError(c, fmt.Errorf("save session: %w", err))
		return
	}

	state := newSessionState(sessionID, ctrl)
	state.Accepted = accepted
	c.JSON(http.StatusOK, state)
}

// CreateSession handles POST /api/wizard/sessions.
func (h *WizardHandler) CreateSession(c *gin.Context) {
	sessionID, ctrl, err := h.Sessions.Open(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to open wizard session", zap.Error(err))
		respondError(c, fmt.Errorf("open session: %w", err))
		return
	}
	c.JSON(http.StatusCreated, newSessionState(sessionID, ctrl))
}

// GetSession handles GET /api/wizard/sessions/:id.
func (h *WizardHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionState(sessionID, ctrl))
}

// DeleteSession handles DELETE /api/wizard/sessions/:id.
func (h *WizardHandler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, fmt.Errorf("discard session: %w", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectService handles PUT /api/wizard/sessions/:id/service.
func (h *WizardHandler) SelectService(c *gin.Context) {
	var body struct {
		Service string `json:"service" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, wizard.ErrNoService)
		return
	}
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		return nil, ctrl.SelectService(body.Service)
	})
}

// UpdateDetails handles PATCH /api/wizard/sessions/:id/details.
// Numbers and booleans are stored as their string form; null clears a field.
func (h *WizardHandler) UpdateDetails(c *gin.Context) {
	var body struct {
		Details map[string]interface{} `json:"details"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}
	values := make(map[string]string, len(body.Details))
	for k, v := range body.Details {
		s, err := detailValue(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid detail value", "details": fmt.Sprintf("%s: %v", k, err)})
			return
		}
		values[k] = s
	}
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		return nil, ctrl.SetDetails(values)
	})
}

// detailValue converts one decoded JSON value to its stored string form. Objects and arrays are rejected.
func detailValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// UpdateContact handles PUT /api/wizard/sessions/:id/contact.
func (h *WizardHandler) UpdateContact(c *gin.Context) {
	var body models.ContactInfo
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		return nil, ctrl.SetContact(body)
	})
}

// Advance handles POST /api/wizard/sessions/:id/advance.
func (h *WizardHandler) Advance(c *gin.Context) {
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		ok := ctrl.Advance()
		return &ok, nil
	})
}

// Retreat handles POST /api/wizard/sessions/:id/retreat.
func (h *WizardHandler) Retreat(c *gin.Context) {
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		ctrl.Retreat()
		return nil, nil
	})
}

// JumpTo handles POST /api/wizard/sessions/:id/jump.
func (h *WizardHandler) JumpTo(c *gin.Context) {
	var body struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		ok := ctrl.JumpTo(body.Step)
		return &ok, nil
	})
}

// ChangeService handles POST /api/wizard/sessions/:id/change-service.
func (h *WizardHandler) ChangeService(c *gin.Context) {
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		ctrl.ChangeService()
		return nil, nil
	})
}
