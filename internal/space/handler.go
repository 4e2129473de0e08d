package space

import (
	"encoding/json"
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

type ConnectRequest struct {
	FarmerID    uint   `json:"farmer_id" binding:"required" example:"2"`
	LandlordID  uint   `json:"landlord_id" binding:"required" example:"3"`
	Description string `json:"description" example:"Kharif season paddy"`
}

type UpdateRequest struct {
	Description *string         `json:"description"`
	Progress    json.RawMessage `json:"progress" swaggertype:"object"`
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Connect godoc
// @Summary Pair a farmer and a landlord in a new space
// @Description farmer_id and landlord_id are the user ids owning the profiles
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body ConnectRequest true "Pairing"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/connect [post]
func (h *Handler) Connect(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sp, err := h.service.Connect(c.Request.Context(), actor, ConnectInput{
		FarmerUserID:   req.FarmerID,
		LandlordUserID: req.LandlordID,
		Description:    req.Description,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Connection (space) created successfully",
		"space_id": sp.ID,
		"space":    sp,
	})
}

// ListByAdmin godoc
// @Summary Spaces created by the calling admin
// @Tags Admin
// @Produce json
// @Success 200 {array} Space
// @Security BearerAuth
// @Router /admin/spaces [get]
func (h *Handler) ListByAdmin(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	items, err := h.service.ListByAdmin(c.Request.Context(), actor)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// List godoc
// @Summary Spaces visible to the caller
// @Tags Spaces
// @Produce json
// @Success 200 {array} Space
// @Security BearerAuth
// @Router /spaces [get]
func (h *Handler) List(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	items, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CountForUser godoc
// @Summary Number of spaces a user takes part in
// @Tags Spaces
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /user/{user_id}/spaces [get]
func (h *Handler) CountForUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	n, err := h.service.CountForUser(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "spaces_count": n})
}

// Get godoc
// @Summary Get a space
// @Tags Spaces
// @Produce json
// @Param id path int true "Space ID"
// @Success 200 {object} Space
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /spaces/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sp, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// Update godoc
// @Summary Update a space's description or progress
// @Tags Spaces
// @Accept json
// @Produce json
// @Param id path int true "Space ID"
// @Param body body UpdateRequest true "Changes"
// @Success 200 {object} Space
// @Security BearerAuth
// @Router /spaces/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sp, err := h.service.Update(c.Request.Context(), actor, id, UpdateInput{Description: req.Description, Progress: req.Progress})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// Remove godoc
// @Summary Remove a space with its crops and proofs
// @Tags Admin
// @Param space_id path int true "Space ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/remove-space/{space_id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := idParam(c, "space_id")
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), actor, id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Space removed successfully"})
}
