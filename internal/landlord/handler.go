package landlord

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

type LandlordRequest struct {
	UserID      *uint    `json:"user_id" example:"3"`
	PhoneNumber string   `json:"phone_number" example:"9876543210"`
	SoilType    string   `json:"soil_type" example:"Black cotton"`
	Acres       int      `json:"acres" example:"25"`
	Location    string   `json:"location" example:"Nashik"`
	ImagesList  []string `json:"images_list"`
}

func (r LandlordRequest) input() Input {
	return Input{
		UserID:      r.UserID,
		PhoneNumber: r.PhoneNumber,
		SoilType:    r.SoilType,
		Acres:       r.Acres,
		Location:    r.Location,
		ImagesList:  r.ImagesList,
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Register godoc
// @Summary Register landlord details
// @Tags Landlords
// @Accept json
// @Produce json
// @Param body body LandlordRequest true "Landlord details"
// @Success 201 {object} LandlordDetails
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /landlord/register [post]
func (h *Handler) Register(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req LandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.service.Register(c.Request.Context(), actor, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// Update godoc
// @Summary Update landlord details
// @Tags Landlords
// @Accept json
// @Produce json
// @Param user_id path int true "Landlord user ID"
// @Param body body LandlordRequest true "Landlord details"
// @Success 200 {object} LandlordDetails
// @Security BearerAuth
// @Router /landlord/update/{user_id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var req LandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.service.Update(c.Request.Context(), actor, userID, req.input())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// List godoc
// @Summary List landlords
// @Tags Landlords
// @Produce json
// @Param location query string false "Location contains"
// @Success 200 {array} LandlordDetails
// @Security BearerAuth
// @Router /landlords [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("location"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a landlord by user id
// @Tags Landlords
// @Produce json
// @Param user_id path int true "Landlord user ID"
// @Success 200 {object} LandlordDetails
// @Security BearerAuth
// @Router /landlords/{user_id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	l, err := h.service.GetByUserID(c.Request.Context(), actor, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// Delete godoc
// @Summary Delete a landlord profile
// @Tags Admin
// @Param landlord_id path int true "Landlord profile ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/delete-landlord/{landlord_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathID(c, "landlord_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Landlord deleted successfully"})
}
