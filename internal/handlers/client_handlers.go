package handlers

import (
	"errors"
	"net/http"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/services"
	"sport_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// BlockRequest is the body of PATCH /clients/:id/block.
type BlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// parseIDParam reads a UUID path parameter, answering 400 itself on failure.
func parseIDParam(c *gin.Context, name, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+entity+" ID format.", err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// respondClientError maps client service errors onto HTTP responses.
func respondClientError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
	case errors.Is(err, services.ErrClientExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Client already exists.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
	}
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.ClientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		respondClientError(c, err, "Failed to create client.")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles fetching all clients with pagination and search.
func (h *ClientHandler) GetClients(c *gin.Context) {
	page := utils.PositiveIntOr(c.Query("page"), 1)
	pageSize := utils.ClampInt(utils.PositiveIntOr(c.Query("page_size"), 10), 1, services.MaxPageSize)

	var searchTerm *string
	if s := c.Query("search"); s != "" {
		searchTerm = &s
	}

	clients, totalCount, err := h.clientService.GetClients(c.Request.Context(), page, pageSize, searchTerm)
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      clients,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if !errors.Is(err, services.ErrClientNotFound) {
			utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID for ID "+clientID.String())
		}
		respondClientError(c, err, "Failed to fetch client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles updating a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	var req services.ClientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateClient: Failed to bind JSON for ID "+clientID.String())
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient for ID "+clientID.String())
		respondClientError(c, err, "Failed to update client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// ToggleBlockStatus blocks or unblocks a client. Unknown ids are accepted and ignored.
func (h *ClientHandler) ToggleBlockStatus(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.clientService.ToggleBlockStatus(c.Request.Context(), clientID, *req.Blocked); err != nil {
		utils.LogError(err, "ToggleBlockStatus: Error from clientService.ToggleBlockStatus for ID "+clientID.String())
		respondClientError(c, err, "Failed to change block status.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_id": clientID, "blocked": *req.Blocked})
}

// GetClientStatus reports the three-state lookup result together with the access decision.
func (h *ClientHandler) GetClientStatus(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	state, err := h.clientService.ClientState(c.Request.Context(), clientID)
	if err != nil {
		utils.LogError(err, "GetClientStatus: Error from clientService.ClientState for ID "+clientID.String())
		respondClientError(c, err, "Failed to fetch client status.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_id": clientID,
		"state":     state,
		"active":    state != models.ClientBlocked,
	})
}
