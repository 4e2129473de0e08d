package crop

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type StepRequest struct {
	Name        string `json:"name" example:"Sowing"`
	Description string `json:"description" example:"Broadcast seed after first rain"`
}

type CropRequest struct {
	CropName string        `json:"crop_name" example:"Paddy"`
	Duration string        `json:"duration" example:"120 days"`
	Steps    []StepRequest `json:"steps"`
}

func (r CropRequest) input() Input {
	in := Input{CropName: r.CropName, Duration: r.Duration, Steps: make([]StepInput, len(r.Steps))}
	for i, s := range r.Steps {
		in.Steps[i] = StepInput{Name: s.Name, Description: s.Description}
	}
	return in
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func mustActor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}

// Create godoc
// @Summary Add a crop plan to a space
// @Tags Crops
// @Accept json
// @Produce json
// @Param id path int true "Space ID"
// @Param body body CropRequest true "Crop"
// @Success 201 {object} Crop
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /spaces/{id}/crops [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	spaceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crop, err := h.service.Create(c.Request.Context(), actor, spaceID, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, crop)
}

// ListBySpace godoc
// @Summary Crops of a space
// @Tags Crops
// @Produce json
// @Param id path int true "Space ID"
// @Success 200 {array} Crop
// @Security BearerAuth
// @Router /spaces/{id}/crops [get]
func (h *Handler) ListBySpace(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	spaceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListBySpace(c.Request.Context(), actor, spaceID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a crop
// @Tags Crops
// @Produce json
// @Param id path int true "Crop ID"
// @Success 200 {object} Crop
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /crops/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	crop, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, crop)
}

// Update godoc
// @Summary Replace a crop's name, duration and steps
// @Description Proofs stay with the step at the same position
// @Tags Crops
// @Accept json
// @Produce json
// @Param id path int true "Crop ID"
// @Param body body CropRequest true "Crop"
// @Success 200 {object} Crop
// @Security BearerAuth
// @Router /crops/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crop, err := h.service.Update(c.Request.Context(), actor, id, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, crop)
}

// Delete godoc
// @Summary Delete a crop and its proofs
// @Tags Crops
// @Produce json
// @Param id path int true "Crop ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /crops/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crop deleted successfully"})
}

// UploadProofs godoc
// @Summary Upload proof files for a crop step
// @Tags Crops
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Crop ID"
// @Param step_index path int true "Zero-based step index"
// @Param files formData file true "Files"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /crops/{id}/steps/{step_index}/proofs [post]
func (h *Handler) UploadProofs(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	stepIndex, err := strconv.Atoi(c.Param("step_index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step_index"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form with files is required"})
		return
	}

	proofs, err := h.service.UploadProofs(c.Request.Context(), actor, id, stepIndex, form.File["files"])
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	urls := make([]string, len(proofs))
	for i, p := range proofs {
		urls[i] = p.FileURL
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Proof uploaded successfully",
		"step_index": stepIndex,
		"file_urls":  urls,
		"proofs":     proofs,
	})
}

// ListProofs godoc
// @Summary Proofs uploaded for a crop
// @Tags Crops
// @Produce json
// @Param id path int true "Crop ID"
// @Success 200 {array} Proof
// @Security BearerAuth
// @Router /crops/{id}/proofs [get]
func (h *Handler) ListProofs(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListProofs(c.Request.Context(), actor, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
