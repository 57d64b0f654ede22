package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/service"
)

// CardHandler handles HTTP requests for the card issuance workflow
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(logger *slog.Logger, cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// CreateProduct adds a card product to the catalog
func (h *CardHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.cardService.CreateProduct(c.Request.Context(), req.Name, req.Description, req.MinLimit, req.MaxLimit)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapProductToResponse(p))
}

// ListEligibleProducts lists the active products the client qualifies for
func (h *CardHandler) ListEligibleProducts(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	products, err := h.cardService.ListEligibleProducts(c.Request.Context(), clientID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, mapProductToResponse(p))
	}
	RespondOK(c, responses)
}

// RequestCard opens a card request routed to the client's manager
func (h *CardHandler) RequestCard(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CardRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		RespondBadRequest(c, "Invalid product ID")
		return
	}

	request, err := h.cardService.RequestCard(c.Request.Context(), clientID, productID, req.Justification)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapCardRequestToResponse(request))
}

// Approve resolves a card request and mints the card
func (h *CardHandler) Approve(c *gin.Context) {
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

	request, minted, err := h.cardService.Approve(c.Request.Context(), requestID, managerID, req.Note)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{
		"request": mapCardRequestToResponse(request),
		"card":    mapCardToResponse(minted),
	})
}

// Deny resolves a card request negatively; no card is created
func (h *CardHandler) Deny(c *gin.Context) {
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

	request, err := h.cardService.Deny(c.Request.Context(), requestID, managerID, req.Note)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCardRequestToResponse(request))
}

// ListCards lists the client's issued cards
func (h *CardHandler) ListCards(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), clientID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]CardResponse, 0, len(cards))
	for _, cd := range cards {
		responses = append(responses, mapCardToResponse(cd))
	}
	RespondOK(c, responses)
}

// ListRequestsByClient lists the client's card requests, newest first
func (h *CardHandler) ListRequestsByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	requests, err := h.cardService.ListRequestsByClient(c.Request.Context(), clientID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCardRequestsToResponses(requests))
}

// ListPendingForManager lists a manager's pending card queue, oldest first
func (h *CardHandler) ListPendingForManager(c *gin.Context) {
	managerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	requests, err := h.cardService.ListPendingForManager(c.Request.Context(), managerID, pagination.Limit(), pagination.Offset())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapCardRequestsToResponses(requests))
}

func mapProductToResponse(p *card.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		MinLimit:    p.MinLimit.String(),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.MaxLimit != nil {
		resp.MaxLimit = p.MaxLimit.String()
	}
	return resp
}

func mapCardRequestToResponse(r *card.Request) CardRequestResponse {
	resp := CardRequestResponse{
		ID:            r.ID.String(),
		ClientID:      r.ClientID.String(),
		ProductID:     r.ProductID.String(),
		ManagerID:     r.ManagerID.String(),
		Justification: r.Justification,
		Status:        string(r.Status),
		ResponseNote:  r.ResponseNote,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.CardID != nil {
		resp.CardID = r.CardID.String()
	}
	if r.ResolvedAt != nil {
		resp.ResolvedAt = r.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}

func mapCardRequestsToResponses(requests []*card.Request) []CardRequestResponse {
	responses := make([]CardRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapCardRequestToResponse(r))
	}
	return responses
}

func mapCardToResponse(cd *card.Card) CardResponse {
	resp := CardResponse{
		ID:        cd.ID.String(),
		ClientID:  cd.ClientID.String(),
		Number:    cd.Number,
		Expiry:    cd.Expiry.Format(time.RFC3339),
		Limit:     cd.Limit.String(),
		CreatedAt: cd.CreatedAt.Format(time.RFC3339),
	}
	if cd.ProductID != nil {
		resp.ProductID = cd.ProductID.String()
	}
	return resp
}
