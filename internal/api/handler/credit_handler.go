package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/service"
)

// CreditHandler handles HTTP requests for the credit raise workflow
type CreditHandler struct {
	creditService service.CreditService
	logger        *slog.Logger
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(logger *slog.Logger, creditService service.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		logger:        logger,
	}
}

// RequestRaise opens a credit limit raise request for the client
func (h *CreditHandler) RequestRaise(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreditRaiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.creditService.RequestRaise(c.Request.Context(), clientID, req.Amount, req.Reason)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapCreditRequestToResponse(request))
}

// Approve resolves a credit request positively
func (h *CreditHandler) Approve(c *gin.Context) {
	h.resolve(c, h.creditService.Approve)
}

// Deny resolves a credit request negatively
func (h *CreditHandler) Deny(c *gin.Context) {
	h.resolve(c, h.creditService.Deny)
}

func (h *CreditHandler) resolve(c *gin.Context, fn func(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error)) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ResolveRequest
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

	request, err := fn(c.Request.Context(), requestID, managerID, req.Note)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCreditRequestToResponse(request))
}

// ListByClient lists the client's credit requests, newest first
func (h *CreditHandler) ListByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	requests, err := h.creditService.ListByClient(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCreditRequestsToResponses(requests))
}

// ListPendingForManager lists a manager's pending queue, oldest first
func (h *CreditHandler) ListPendingForManager(c *gin.Context) {
	managerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	requests, err := h.creditService.ListPendingForManager(c.Request.Context(), managerID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCreditRequestsToResponses(requests))
}

func mapCreditRequestToResponse(r *credit.Request) CreditRequestResponse {
	resp := CreditRequestResponse{
		ID:           r.ID.String(),
		ClientID:     r.ClientID.String(),
		ManagerID:    r.ManagerID.String(),
		Amount:       r.Amount.String(),
		Reason:       r.Reason,
		Status:       string(r.Status),
		ResponseNote: r.ResponseNote,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		resp.ResolvedAt = r.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}

func mapCreditRequestsToResponses(requests []*credit.Request) []CreditRequestResponse {
	responses := make([]CreditRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapCreditRequestToResponse(r))
	}
	return responses
}
