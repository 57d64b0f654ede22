package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/service"
)

// AccountHandler handles HTTP requests for clients and managers
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// OpenAccount handles creation of a new client account
func (h *AccountHandler) OpenAccount(c *gin.Context) {
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cl, err := h.accountService.OpenAccount(c.Request.Context(), req.Name, req.Account, req.Agency)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapClientToResponse(cl))
}

// GetClient retrieves a client by ID, returning 404 if not found
func (h *AccountHandler) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cl, err := h.accountService.GetClient(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapClientToResponse(cl))
}

// CreateManager registers a manager with a unique code
func (h *AccountHandler) CreateManager(c *gin.Context) {
	var req CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.accountService.CreateManager(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapManagerToResponse(m))
}

// GetManager retrieves a manager by ID
func (h *AccountHandler) GetManager(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.accountService.GetManager(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapManagerToResponse(m))
}

// AssignManager assigns a manager to a client
func (h *AccountHandler) AssignManager(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		RespondBadRequest(c, "Invalid manager ID")
		return
	}

	if err := h.accountService.AssignManager(c.Request.Context(), clientID, managerID); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

// UnassignManager removes a client's manager assignment
func (h *AccountHandler) UnassignManager(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.UnassignManager(c.Request.Context(), clientID); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

// GetNotifications lists a client's notifications, newest first
func (h *AccountHandler) GetNotifications(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	messages, err := h.accountService.GetNotifications(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, mapNotificationToResponse(m))
	}
	RespondOK(c, responses)
}

// parseIDParam parses a UUID path parameter, answering 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	idParam := c.Param(name)
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// mapClientToResponse maps a client entity to a client response DTO
func mapClientToResponse(cl *client.Client) ClientResponse {
	resp := ClientResponse{
		ID:          cl.ID.String(),
		Name:        cl.Name,
		Account:     cl.Account,
		Agency:      cl.Agency,
		Balance:     cl.Balance.String(),
		CreditLimit: cl.CreditLimit.String(),
		CreatedAt:   cl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cl.UpdatedAt.Format(time.RFC3339),
	}
	if cl.ManagerID != nil {
		resp.ManagerID = cl.ManagerID.String()
	}
	return resp
}

func mapManagerToResponse(m *manager.Manager) ManagerResponse {
	return ManagerResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Code:      m.Code,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func mapNotificationToResponse(m *notification.Message) NotificationResponse {
	return NotificationResponse{
		ID:       m.ID.String(),
		ClientID: m.ClientID.String(),
		Content:  m.Content,
		Sender:   string(m.Sender),
		SentAt:   m.SentAt.Format(time.RFC3339),
	}
}
