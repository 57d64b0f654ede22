package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// CardProductRepository implements the card.ProductRepository interface for PostgreSQL
type CardProductRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCardProductRepository creates a new PostgreSQL card product repository
func NewCardProductRepository(logger *slog.Logger, db *persistence.PostgresDB) card.ProductRepository {
	return &CardProductRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CardProductRepository) WithTx(tx pgx.Tx) card.ProductRepository {
	return &CardProductRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new card product
func (r *CardProductRepository) Create(ctx context.Context, p *card.Product) error {
	query := `
		INSERT INTO card_products (id, name, description, min_limit, max_limit, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query, p.ID, p.Name, p.Description, p.MinLimit, p.MaxLimit, p.Active, p.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create card product", "error", err)
		return fmt.Errorf("failed to create card product: %w", err)
	}

	return nil
}

// GetByID retrieves a card product by its ID
func (r *CardProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Product, error) {
	query := `
		SELECT id, name, description, min_limit, max_limit, active, created_at
		FROM card_products
		WHERE id = $1
	`

	var p card.Product
	err := r.querier.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.MinLimit, &p.MaxLimit, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrProductNotFound{ProductID: id}
		}
		r.logger.Error("Failed to get card product", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get card product: %w", err)
	}

	return &p, nil
}

// GetByName retrieves a card product by name. Returns nil, nil when no
// product matches.
func (r *CardProductRepository) GetByName(ctx context.Context, name string) (*card.Product, error) {
	query := `
		SELECT id, name, description, min_limit, max_limit, active, created_at
		FROM card_products
		WHERE name = $1
	`

	var p card.Product
	err := r.querier.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.Description, &p.MinLimit, &p.MaxLimit, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get card product by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get card product by name: %w", err)
	}

	return &p, nil
}

// ListActive retrieves all products currently open for requests.
func (r *CardProductRepository) ListActive(ctx context.Context) ([]*card.Product, error) {
	query := `
		SELECT id, name, description, min_limit, max_limit, active, created_at
		FROM card_products
		WHERE active = TRUE
		ORDER BY min_limit ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list card products", "error", err)
		return nil, fmt.Errorf("failed to list card products: %w", err)
	}
	defer rows.Close()

	var products []*card.Product
	for rows.Next() {
		var p card.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.MinLimit, &p.MaxLimit, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card product: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card products: %w", err)
	}

	return products, nil
}

// CardRequestRepository implements the card.RequestRepository interface for PostgreSQL
type CardRequestRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCardRequestRepository creates a new PostgreSQL card request repository
func NewCardRequestRepository(logger *slog.Logger, db *persistence.PostgresDB) card.RequestRepository {
	return &CardRequestRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CardRequestRepository) WithTx(tx pgx.Tx) card.RequestRepository {
	return &CardRequestRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new card request
func (r *CardRequestRepository) Create(ctx context.Context, req *card.Request) error {
	query := `
		INSERT INTO card_requests (id, client_id, product_id, manager_id, justification, status, response_note, card_id, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		req.ID,
		req.ClientID,
		req.ProductID,
		req.ManagerID,
		req.Justification,
		req.Status,
		req.ResponseNote,
		req.CardID,
		req.CreatedAt,
		req.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create card request", "error", err)
		return fmt.Errorf("failed to create card request: %w", err)
	}

	return nil
}

// GetByID retrieves a card request by its ID
func (r *CardRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Request, error) {
	query := cardRequestSelect + ` WHERE id = $1`
	return r.scanRequest(ctx, query, id)
}

// LockForUpdate obtains a pessimistic lock on the request row so that
// concurrent resolutions serialize. Must be called within a transaction.
func (r *CardRequestRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*card.Request, error) {
	query := cardRequestSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanRequest(ctx, query, id)
}

// UpdateResolution persists the outcome of an approve or deny decision,
// including the issued card link on approval.
func (r *CardRequestRepository) UpdateResolution(ctx context.Context, req *card.Request) error {
	query := `
		UPDATE card_requests
		SET status = $1, response_note = $2, card_id = $3, resolved_at = $4
		WHERE id = $5
	`

	result, err := r.querier.Exec(ctx, query, req.Status, req.ResponseNote, req.CardID, req.ResolvedAt, req.ID)
	if err != nil {
		r.logger.Error("Failed to update card request", "id", req.ID.String(), "error", err)
		return fmt.Errorf("failed to update card request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return card.ErrRequestNotFound{RequestID: req.ID}
	}

	return nil
}

// GetByClientID retrieves a client's card requests, most recent first.
func (r *CardRequestRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	query := cardRequestSelect + ` WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.querier.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query card requests", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query card requests: %w", err)
	}
	defer rows.Close()

	return scanCardRequests(rows)
}

// GetPendingByManagerID retrieves the pending requests assigned to a manager,
// oldest first.
func (r *CardRequestRepository) GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	query := cardRequestSelect + ` WHERE manager_id = $1 AND status = $2 ORDER BY created_at ASC LIMIT $3 OFFSET $4`

	rows, err := r.querier.Query(ctx, query, managerID, shared.RequestStatusPending, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query pending card requests", "manager_id", managerID.String(), "error", err)
		return nil, fmt.Errorf("failed to query pending card requests: %w", err)
	}
	defer rows.Close()

	return scanCardRequests(rows)
}

const cardRequestSelect = `
	SELECT id, client_id, product_id, manager_id, justification, status, response_note, card_id, created_at, resolved_at
	FROM card_requests`

func (r *CardRequestRepository) scanRequest(ctx context.Context, query string, id uuid.UUID) (*card.Request, error) {
	var req card.Request
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.ClientID,
		&req.ProductID,
		&req.ManagerID,
		&req.Justification,
		&req.Status,
		&req.ResponseNote,
		&req.CardID,
		&req.CreatedAt,
		&req.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrRequestNotFound{RequestID: id}
		}
		r.logger.Error("Failed to get card request", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get card request: %w", err)
	}

	return &req, nil
}

func scanCardRequests(rows pgx.Rows) ([]*card.Request, error) {
	var requests []*card.Request
	for rows.Next() {
		var req card.Request
		err := rows.Scan(
			&req.ID,
			&req.ClientID,
			&req.ProductID,
			&req.ManagerID,
			&req.Justification,
			&req.Status,
			&req.ResponseNote,
			&req.CardID,
			&req.CreatedAt,
			&req.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card requests: %w", err)
	}

	return requests, nil
}

// CardRepository implements the card.CardRepository interface for PostgreSQL
type CardRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCardRepository creates a new PostgreSQL card repository
func NewCardRepository(logger *slog.Logger, db *persistence.PostgresDB) card.CardRepository {
	return &CardRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CardRepository) WithTx(tx pgx.Tx) card.CardRepository {
	return &CardRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a newly issued card
func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	query := `
		INSERT INTO cards (id, client_id, product_id, number, expiry, security_code, card_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		c.ID,
		c.ClientID,
		c.ProductID,
		c.Number,
		c.Expiry,
		c.SecurityCode,
		c.Limit,
		c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create card", "error", err)
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	query := `
		SELECT id, client_id, product_id, number, expiry, security_code, card_limit, created_at
		FROM cards
		WHERE id = $1
	`

	var c card.Card
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ClientID,
		&c.ProductID,
		&c.Number,
		&c.Expiry,
		&c.SecurityCode,
		&c.Limit,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCardNotFound{CardID: id}
		}
		r.logger.Error("Failed to get card", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return &c, nil
}

// GetByClientID retrieves a client's cards, most recent first.
func (r *CardRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	query := `
		SELECT id, client_id, product_id, number, expiry, security_code, card_limit, created_at
		FROM cards
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, clientID)
	if err != nil {
		r.logger.Error("Failed to query cards", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card
	for rows.Next() {
		var c card.Card
		err := rows.Scan(
			&c.ID,
			&c.ClientID,
			&c.ProductID,
			&c.Number,
			&c.Expiry,
			&c.SecurityCode,
			&c.Limit,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

// ExistsByNumber reports whether a card with the given number already exists.
// Used by the number generator to guarantee uniqueness.
func (r *CardRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cards WHERE number = $1)`

	var exists bool
	err := r.querier.QueryRow(ctx, query, number).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check card number", "error", err)
		return false, fmt.Errorf("failed to check card number: %w", err)
	}

	return exists, nil
}
