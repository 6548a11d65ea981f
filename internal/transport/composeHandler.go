package transport

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/internal/entity"
)

// Compose answers POST /compose with the composited PNG.
// Form files: profile, icon. Optional fields: placement, grayscale.
func (h *ComposeHandler) Compose(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	profile, err := c.FormFile("profile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No profile picture provided"})
		return
	}
	icon, err := c.FormFile("icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No icon provided"})
		return
	}

	opts := h.service.Options()
	if p := c.PostForm("placement"); p != "" {
		placement, err := entity.ParsePlacement(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Placement = placement
	}
	if g := c.PostForm("grayscale"); g != "" {
		grayscale, err := strconv.ParseBool(g)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grayscale must be a boolean"})
			return
		}
		opts.Grayscale = grayscale
	}

	profileFile, err := profile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer profileFile.Close()
	iconFile, err := icon.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer iconFile.Close()

	var buf bytes.Buffer
	rect, err := h.service.ComposeStream(c.Request.Context(), opts, profileFile, iconFile, &buf)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"profile":    profile.Filename,
		"icon":       icon.Filename,
		"rect":       rect.String(),
	}).Debug("composited upload")

	c.Header("X-Icon-Rect", rect.String())
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrDecode),
		errors.Is(err, entity.ErrUnsupportedFormat),
		errors.Is(err, entity.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
