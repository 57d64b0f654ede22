package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/shared"
)

type CreditServiceImpl struct {
	txRunner   TxRunner
	clientRepo client.Repository
	creditRepo credit.Repository
	notifier   Notifier
	logger     *slog.Logger
}

func NewCreditService(
	txRunner TxRunner,
	clientRepo client.Repository,
	creditRepo credit.Repository,
	notifier Notifier,
	logger *slog.Logger,
) CreditService {
	return &CreditServiceImpl{
		txRunner:   txRunner,
		clientRepo: clientRepo,
		creditRepo: creditRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// RequestRaise opens a credit-limit request routed to the client's assigned
// manager. Clients without a manager cannot request.
func (s *CreditServiceImpl) RequestRaise(ctx context.Context, clientID uuid.UUID, amountRaw, reason string) (*credit.Request, error) {
	amount, err := money.ParsePositive(amountRaw)
	if err != nil {
		return nil, err
	}

	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !c.HasManager() {
		return nil, shared.ErrNoManagerAssigned
	}

	req := credit.NewRequest(c.ID, *c.ManagerID, amount, reason)
	if err := s.creditRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Credit request opened",
		"request_id", req.ID.String(),
		"client_id", c.ID.String(),
		"manager_id", req.ManagerID.String(),
		"amount", amount.String())

	return req, nil
}

// Approve resolves the request positively. The request row is locked so that
// a concurrent resolution attempt observes the terminal status and fails
// with ErrAlreadyResolved. Approval records the decision; it does not change
// the client's credit limit.
func (s *CreditServiceImpl) Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error) {
	req, err := s.resolve(ctx, requestID, managerID, func(r *credit.Request) error {
		return r.Approve(managerID, note)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(req.ClientID, notification.SenderManager,
		fmt.Sprintf("Your credit limit request for %s was approved", req.Amount))
	return req, nil
}

// Deny resolves the request negatively under the same locking discipline.
func (s *CreditServiceImpl) Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error) {
	req, err := s.resolve(ctx, requestID, managerID, func(r *credit.Request) error {
		return r.Deny(managerID, note)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(req.ClientID, notification.SenderManager,
		fmt.Sprintf("Your credit limit request for %s was denied", req.Amount))
	return req, nil
}

func (s *CreditServiceImpl) resolve(ctx context.Context, requestID, managerID uuid.UUID, transition func(*credit.Request) error) (*credit.Request, error) {
	var req *credit.Request
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		creditRepo := s.creditRepo.WithTx(tx)

		locked, err := creditRepo.LockForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if err := transition(locked); err != nil {
			return err
		}
		if err := creditRepo.UpdateResolution(ctx, locked); err != nil {
			return err
		}

		req = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Credit request resolved",
		"request_id", req.ID.String(),
		"status", string(req.Status),
		"manager_id", managerID.String())

	return req, nil
}

func (s *CreditServiceImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	return s.creditRepo.GetByClientID(ctx, clientID, limit, offset)
}

func (s *CreditServiceImpl) ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	return s.creditRepo.GetPendingByManagerID(ctx, managerID, limit, offset)
}
