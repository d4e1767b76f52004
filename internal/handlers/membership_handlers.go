package handlers

import (
	"errors"
	"net/http"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/services"
	"sport_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

func respondMembershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMembershipNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found.", err.Error()))
	case errors.Is(err, services.ErrMembershipExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Membership already exists.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
	}
}

// CreateMembership handles selling a membership to a client.
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req services.MembershipDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMembership: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.CreateMembership(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateMembership: Error from membershipService.CreateMembership")
		respondMembershipError(c, err, "Failed to create membership.")
		return
	}
	c.JSON(http.StatusCreated, membership)
}

// GetMembershipByID handles fetching a single membership.
func (h *MembershipHandler) GetMembershipByID(c *gin.Context) {
	membershipID, ok := parseIDParam(c, "id", "membership")
	if !ok {
		return
	}

	membership, err := h.membershipService.GetMembershipByID(c.Request.Context(), membershipID)
	if err != nil {
		if !errors.Is(err, services.ErrMembershipNotFound) {
			utils.LogError(err, "GetMembershipByID: Error from membershipService.GetMembershipByID for ID "+membershipID.String())
		}
		respondMembershipError(c, err, "Failed to fetch membership.")
		return
	}
	c.JSON(http.StatusOK, membership)
}

// IsActiveMembership answers whether the membership can be used right now.
func (h *MembershipHandler) IsActiveMembership(c *gin.Context) {
	membershipID, ok := parseIDParam(c, "id", "membership")
	if !ok {
		return
	}

	active, err := h.membershipService.IsActiveMembership(c.Request.Context(), membershipID)
	if err != nil {
		utils.LogError(err, "IsActiveMembership: Error from membershipService.IsActiveMembership for ID "+membershipID.String())
		respondMembershipError(c, err, "Failed to check membership.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"membership_id": membershipID, "active": active})
}

// GetClientMemberships lists the memberships owned by the client in the path.
func (h *MembershipHandler) GetClientMemberships(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	memberships, err := h.membershipService.GetClientMemberships(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotResolved) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetClientMemberships: Error from membershipService.GetClientMemberships for client "+clientID.String())
		respondMembershipError(c, err, "Failed to fetch memberships.")
		return
	}
	if memberships == nil {
		memberships = []models.Membership{}
	}
	c.JSON(http.StatusOK, gin.H{"data": memberships, "total": len(memberships)})
}
