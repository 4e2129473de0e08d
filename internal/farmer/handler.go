package farmer

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

type FarmerRequest struct {
	UserID               *uint    `json:"user_id" example:"2"`
	PhoneNumber          string   `json:"phone_number" example:"9876543210"`
	LandHandlingCapacity int      `json:"land_handling_capacity" example:"12"`
	PreferredLocations   []string `json:"preferred_locations" example:"Nashik,Pune"`
}

func (r FarmerRequest) input() Input {
	return Input{
		UserID:               r.UserID,
		PhoneNumber:          r.PhoneNumber,
		LandHandlingCapacity: r.LandHandlingCapacity,
		PreferredLocations:   r.PreferredLocations,
	}
}

func actorOrAbort(c *gin.Context) (auth.Actor, bool) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Register godoc
// @Summary Register farmer details
// @Tags Farmers
// @Accept json
// @Produce json
// @Param body body FarmerRequest true "Farmer details"
// @Success 201 {object} FarmerDetails
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /farmer/register [post]
func (h *Handler) Register(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Register(c.Request.Context(), actor, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// Update godoc
// @Summary Update farmer details
// @Tags Farmers
// @Accept json
// @Produce json
// @Param user_id path int true "Farmer user ID"
// @Param body body FarmerRequest true "Farmer details"
// @Success 200 {object} FarmerDetails
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /farmer/update/{user_id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), actor, userID, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// List godoc
// @Summary List farmers
// @Tags Farmers
// @Produce json
// @Success 200 {array} FarmerDetails
// @Security BearerAuth
// @Router /farmers [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a farmer by user id
// @Tags Farmers
// @Produce json
// @Param user_id path int true "Farmer user ID"
// @Success 200 {object} FarmerDetails
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /farmers/{user_id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	f, err := h.service.GetByUserID(c.Request.Context(), actor, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Delete godoc
// @Summary Delete a farmer profile
// @Tags Admin
// @Param farmer_id path int true "Farmer profile ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/delete-farmer/{farmer_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "farmer_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Farmer deleted successfully"})
}
