package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/shared"
)

type CardServiceImpl struct {
	txRunner    TxRunner
	clientRepo  client.Repository
	productRepo card.ProductRepository
	requestRepo card.RequestRepository
	cardRepo    card.CardRepository
	notifier    Notifier
	logger      *slog.Logger
}

func NewCardService(
	txRunner TxRunner,
	clientRepo client.Repository,
	productRepo card.ProductRepository,
	requestRepo card.RequestRepository,
	cardRepo card.CardRepository,
	notifier Notifier,
	logger *slog.Logger,
) CardService {
	return &CardServiceImpl{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		requestRepo: requestRepo,
		cardRepo:    cardRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateProduct adds an active product to the catalog.
func (s *CardServiceImpl) CreateProduct(ctx context.Context, name, description, minLimitRaw string, maxLimitRaw *string) (*card.Product, error) {
	minLimit, err := money.Parse(minLimitRaw)
	if err != nil {
		return nil, err
	}

	var maxLimit *money.Money
	if maxLimitRaw != nil {
		m, err := money.Parse(*maxLimitRaw)
		if err != nil {
			return nil, err
		}
		maxLimit = &m
	}

	p, err := card.NewProduct(name, description, minLimit, maxLimit)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Card product created", "product_id", p.ID.String(), "name", p.Name)
	return p, nil
}

// ListEligibleProducts returns the active products whose limit range contains
// the client's credit limit.
func (s *CardServiceImpl) ListEligibleProducts(ctx context.Context, clientID uuid.UUID) ([]*card.Product, error) {
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]*card.Product, 0, len(products))
	for _, p := range products {
		if p.IsEligible(c) {
			eligible = append(eligible, p)
		}
	}
	return eligible, nil
}

// RequestCard opens a card request routed to the client's manager. The
// client must be eligible for the product at request time; eligibility is
// re-checked at approval.
func (s *CardServiceImpl) RequestCard(ctx context.Context, clientID, productID uuid.UUID, justification string) (*card.Request, error) {
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !c.HasManager() {
		return nil, shared.ErrNoManagerAssigned
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsEligible(c) {
		return nil, shared.ErrNotEligible
	}

	req := card.NewRequest(c.ID, p.ID, *c.ManagerID, justification)
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Card request opened",
		"request_id", req.ID.String(),
		"client_id", c.ID.String(),
		"product_id", p.ID.String())

	return req, nil
}

// Approve resolves the request and mints the card in the same transaction.
// The issued limit is the client's credit limit capped by the product max.
// Eligibility is re-checked against the client's current state.
func (s *CardServiceImpl) Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, *card.Card, error) {
	var (
		req    *card.Request
		minted *card.Card
	)
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		requestRepo := s.requestRepo.WithTx(tx)
		cardRepo := s.cardRepo.WithTx(tx)

		locked, err := requestRepo.LockForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		// Resolvability first: a resolved request or a wrong manager fails
		// before eligibility is evaluated or a card number is generated.
		if err := locked.EnsureResolvable(managerID); err != nil {
			return err
		}

		c, err := s.clientRepo.WithTx(tx).GetByID(ctx, locked.ClientID)
		if err != nil {
			return err
		}
		p, err := s.productRepo.WithTx(tx).GetByID(ctx, locked.ProductID)
		if err != nil {
			return err
		}
		if !p.IsEligible(c) {
			return shared.ErrNotEligible
		}

		number, err := generateUniqueNumber(ctx, cardRepo)
		if err != nil {
			return err
		}

		minted, err = card.NewCard(c.ID, &p.ID, number, p.IssuedLimit(c))
		if err != nil {
			return err
		}
		if err := cardRepo.Create(ctx, minted); err != nil {
			return err
		}

		if err := locked.Approve(managerID, note, minted.ID); err != nil {
			return err
		}
		if err := requestRepo.UpdateResolution(ctx, locked); err != nil {
			return err
		}

		req = locked
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Card request approved",
		"request_id", req.ID.String(),
		"card_id", minted.ID.String(),
		"manager_id", managerID.String())

	s.notifier.Notify(req.ClientID, notification.SenderManager,
		fmt.Sprintf("Your card request was approved; card ending %s was issued", minted.Number[len(minted.Number)-4:]))

	return req, minted, nil
}

// Deny resolves the request negatively; no card is created.
func (s *CardServiceImpl) Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, error) {
	var req *card.Request
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		requestRepo := s.requestRepo.WithTx(tx)

		locked, err := requestRepo.LockForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if err := locked.Deny(managerID, note); err != nil {
			return err
		}
		if err := requestRepo.UpdateResolution(ctx, locked); err != nil {
			return err
		}

		req = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Card request denied",
		"request_id", req.ID.String(),
		"manager_id", managerID.String())

	s.notifier.Notify(req.ClientID, notification.SenderManager, "Your card request was denied")
	return req, nil
}

func (s *CardServiceImpl) ListCards(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	return s.cardRepo.GetByClientID(ctx, clientID)
}

func (s *CardServiceImpl) ListRequestsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	return s.requestRepo.GetByClientID(ctx, clientID, limit, offset)
}

func (s *CardServiceImpl) ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	return s.requestRepo.GetPendingByManagerID(ctx, managerID, limit, offset)
}

// generateUniqueNumber draws random card numbers until one is free. The
// space is 10^16, so a retry is already rare; the unique index on the number
// column is the backstop against a concurrent insert of the same number.
func generateUniqueNumber(ctx context.Context, repo card.CardRepository) (string, error) {
	for {
		number, err := card.GenerateNumber()
		if err != nil {
			return "", err
		}

		exists, err := repo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}
