package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/transfer"
	"github.com/nobanko/banking-core/internal/service"
)

// LedgerHandler handles HTTP requests for deposits, transfers and statement reads
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Deposit credits a client's account
func (h *LedgerHandler) Deposit(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.ledgerService.Deposit(c.Request.Context(), clientID, req.Amount, req.Description)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// Transfer moves money from the client to the destination account
func (h *LedgerHandler) Transfer(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.ledgerService.Transfer(c.Request.Context(), clientID, req.DestinationAccount, req.Amount, req.Description)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransferToResponse(t))
}

// GetBalance returns the client's current balance
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), clientID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, BalanceResponse{
		ClientID: clientID.String(),
		Balance:  balance.String(),
	})
}

// GetStatement returns a page of the client's ledger entries, newest first
func (h *LedgerHandler) GetStatement(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.ledgerService.GetStatement(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}
	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, int(total))
}

// GetArchivedStatement serves the client's history from the statement
// archive, which may trail the ledger by the archiver's polling interval
func (h *LedgerHandler) GetArchivedStatement(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.ledgerService.GetArchivedStatement(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}
	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, int(total))
}

// GetTransfers lists the transfers the client participated in, newest first
func (h *LedgerHandler) GetTransfers(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	transfers, err := h.ledgerService.GetTransfers(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		responses = append(responses, mapTransferToResponse(t))
	}
	RespondOK(c, responses)
}

// mapEntryToResponse maps a ledger entry to its response DTO
func mapEntryToResponse(entry *ledger.Entry) EntryResponse {
	resp := EntryResponse{
		ID:           entry.ID.String(),
		ClientID:     entry.ClientID.String(),
		Kind:         string(entry.Kind),
		Amount:       entry.Amount.String(),
		Description:  entry.Description,
		BalanceAfter: entry.BalanceAfter.String(),
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.CounterpartyID != nil {
		resp.CounterpartyID = entry.CounterpartyID.String()
	}
	if entry.TransferID != nil {
		resp.TransferID = entry.TransferID.String()
	}
	return resp
}

// mapTransferToResponse maps a transfer to its response DTO
func mapTransferToResponse(t *transfer.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:              t.ID.String(),
		OriginID:        t.OriginID.String(),
		DestinationID:   t.DestinationID.String(),
		Amount:          t.Amount.String(),
		Description:     t.Description,
		Status:          string(t.Status),
		OutgoingEntryID: t.OutgoingEntryID.String(),
		IncomingEntryID: t.IncomingEntryID.String(),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
	if t.ProcessedAt != nil {
		resp.ProcessedAt = t.ProcessedAt.Format(time.RFC3339)
	}
	return resp
}
