package media

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// UploadImages godoc
// @Summary Upload one or more images
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} map[string][]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /upload/images [post]
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form with files is required"})
		return
	}

	urls, err := h.service.StoreAll(c.Request.Context(), form.File["files"])
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_urls": urls})
}

// Serve handles GET /media/:name
func (h *Handler) Serve(c *gin.Context) {
	name := c.Param("name")

	obj, err := h.service.Open(c.Request.Context(), name)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := ContentType(name)
	disposition := "attachment"
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		disposition = "inline"
	}

	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, map[string]string{
		"Cache-Control":       "public, max-age=3600",
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, name),
	})
}
