package handler

// OpenAccountRequest represents a request to open a client account
type OpenAccountRequest struct {
	Name    string `json:"name" binding:"required"`
	Account string `json:"account" binding:"required"`
	Agency  string `json:"agency"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Account     string `json:"account"`
	Agency      string `json:"agency"`
	Balance     string `json:"balance"`
	CreditLimit string `json:"credit_limit"`
	ManagerID   string `json:"manager_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateManagerRequest represents a request to register a manager
type CreateManagerRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// ManagerResponse represents a manager in API responses
type ManagerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
}

// AssignManagerRequest represents a manager assignment for a client
type AssignManagerRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
}

// DepositRequest represents a deposit into a client account
type DepositRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// TransferRequest represents a transfer to another client's account
type TransferRequest struct {
	DestinationAccount string `json:"destination_account" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
	Description        string `json:"description"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID             string `json:"id"`
	ClientID       string `json:"client_id"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	BalanceAfter   string `json:"balance_after"`
	CounterpartyID string `json:"counterparty_id,omitempty"`
	TransferID     string `json:"transfer_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// BalanceResponse represents a client's current balance
type BalanceResponse struct {
	ClientID string `json:"client_id"`
	Balance  string `json:"balance"`
}

// TransferResponse represents a transfer in API responses
type TransferResponse struct {
	ID              string `json:"id"`
	OriginID        string `json:"origin_id"`
	DestinationID   string `json:"destination_id"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	OutgoingEntryID string `json:"outgoing_entry_id"`
	IncomingEntryID string `json:"incoming_entry_id"`
	CreatedAt       string `json:"created_at"`
	ProcessedAt     string `json:"processed_at,omitempty"`
}

// CreditRaiseRequest represents a credit limit raise petition
type CreditRaiseRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// ResolveRequest carries a manager's decision on a workflow request
type ResolveRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
	Note      string `json:"note"`
}

// CreditRequestResponse represents a credit raise request in API responses
type CreditRequestResponse struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	ManagerID    string `json:"manager_id"`
	Amount       string `json:"amount"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	ResponseNote string `json:"response_note,omitempty"`
	CreatedAt    string `json:"created_at"`
	ResolvedAt   string `json:"resolved_at,omitempty"`
}

// CreateProductRequest represents a card product catalog entry
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	MinLimit    string  `json:"min_limit" binding:"required"`
	MaxLimit    *string `json:"max_limit,omitempty"`
}

// ProductResponse represents a card product in API responses
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MinLimit    string `json:"min_limit"`
	MaxLimit    string `json:"max_limit,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

// CardRequestRequest represents a client's petition for a card
type CardRequestRequest struct {
	ProductID     string `json:"product_id" binding:"required,uuid"`
	Justification string `json:"justification"`
}

// CardRequestResponse represents a card request in API responses
type CardRequestResponse struct {
	ID            string `json:"id"`
	ClientID      string `json:"client_id"`
	ProductID     string `json:"product_id"`
	ManagerID     string `json:"manager_id"`
	Justification string `json:"justification"`
	Status        string `json:"status"`
	ResponseNote  string `json:"response_note,omitempty"`
	CardID        string `json:"card_id,omitempty"`
	CreatedAt     string `json:"created_at"`
	ResolvedAt    string `json:"resolved_at,omitempty"`
}

// CardResponse represents an issued card in API responses.
// The security code is never exposed.
type CardResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	ProductID string `json:"product_id,omitempty"`
	Number    string `json:"number"`
	Expiry    string `json:"expiry"`
	Limit     string `json:"limit"`
	CreatedAt string `json:"created_at"`
}

// NotificationResponse represents a client notification in API responses
type NotificationResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Content  string `json:"content"`
	Sender   string `json:"sender"`
	SentAt   string `json:"sent_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

// Limit returns the page size as a query limit.
func (p PaginationParams) Limit() int {
	return p.PerPage
}

// Offset converts the 1-based page to a query offset.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}
