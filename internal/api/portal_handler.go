package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/service"
)

// PortalHandler handles the action-dispatched portal endpoint
type PortalHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(services *service.Services, log zerolog.Logger) *PortalHandler {
	return &PortalHandler{
		services: services,
		log:      log.With().Str("handler", "portal").Logger(),
	}
}

// Dispatch handles POST /api. The original deployment's clients read
// the envelope body, not the status code, so every dispatched action
// answers 200 and expresses failure inside the envelope.
func (h *PortalHandler) Dispatch(c *gin.Context) {
	action := c.PostForm("action")
	if action == "" {
		action = c.Query("action")
	}

	switch action {
	case "login":
		h.login(c)
	case "register":
		h.register(c)
	case "forgotPassword":
		h.forgotPassword(c)
	case "getStudentData":
		h.getStudentData(c)
	default:
		c.JSON(http.StatusOK, models.Fail(models.ErrKindValidation, "Invalid action"))
	}
}

func (h *PortalHandler) login(c *gin.Context) {
	profile, err := h.services.Directory.Login(
		c.Request.Context(),
		c.PostForm("email"),
		c.PostForm("password"),
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Login successful", profile))
}

func (h *PortalHandler) register(c *gin.Context) {
	err := h.services.Directory.Register(
		c.Request.Context(),
		c.PostForm("email"),
		c.PostForm("password"),
		c.PostForm("name"),
		c.PostForm("course"),
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Registration successful", nil))
}

func (h *PortalHandler) forgotPassword(c *gin.Context) {
	err := h.services.Directory.ForgotPassword(c.Request.Context(), c.PostForm("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Password has been sent to your email", nil))
}

func (h *PortalHandler) getStudentData(c *gin.Context) {
	profile, err := h.services.Directory.GetStudentData(c.Request.Context(), c.PostForm("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Data retrieved", profile))
}

// fail maps service errors onto the envelope. Directory errors carry
// their own kind and user-facing message; anything else is logged and
// answered with an opaque internal failure.
func (h *PortalHandler) fail(c *gin.Context, err error) {
	var dirErr *models.DirectoryError
	if errors.As(err, &dirErr) {
		c.JSON(http.StatusOK, models.Fail(dirErr.Kind, dirErr.Message))
		return
	}

	h.log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("Directory operation failed")
	c.JSON(http.StatusOK, models.Fail(models.ErrKindInternal, "Server error"))
}
