package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/notification"
)

type AccountServiceImpl struct {
	clientRepo       client.Repository
	managerRepo      manager.Repository
	notificationRepo notification.Repository
	logger           *slog.Logger
}

func NewAccountService(
	clientRepo client.Repository,
	managerRepo manager.Repository,
	notificationRepo notification.Repository,
	logger *slog.Logger,
) AccountService {
	return &AccountServiceImpl{
		clientRepo:       clientRepo,
		managerRepo:      managerRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// OpenAccount creates a client with a zero balance and the default credit
// limit. The account number must be unique.
func (s *AccountServiceImpl) OpenAccount(ctx context.Context, name, account, agency string) (*client.Client, error) {
	existing, err := s.clientRepo.GetByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, client.ErrDuplicateAccount{Account: account}
	}

	c, err := client.NewClient(name, account, agency)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Account opened", "client_id", c.ID.String(), "account", c.Account)
	return c, nil
}

func (s *AccountServiceImpl) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *AccountServiceImpl) GetClientByAccount(ctx context.Context, account string) (*client.Client, error) {
	c, err := s.clientRepo.GetByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, client.ErrClientNotFound{}
	}
	return c, nil
}

// CreateManager registers a manager with a unique staff code.
func (s *AccountServiceImpl) CreateManager(ctx context.Context, name, code string) (*manager.Manager, error) {
	existing, err := s.managerRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, manager.ErrDuplicateCode{Code: code}
	}

	m, err := manager.NewManager(name, code)
	if err != nil {
		return nil, err
	}

	if err := s.managerRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Manager created", "manager_id", m.ID.String(), "code", m.Code)
	return m, nil
}

func (s *AccountServiceImpl) GetManager(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	return s.managerRepo.GetByID(ctx, id)
}

// AssignManager links a client to a manager. Both must exist.
func (s *AccountServiceImpl) AssignManager(ctx context.Context, clientID, managerID uuid.UUID) error {
	if _, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return err
	}

	if err := s.clientRepo.SetManager(ctx, clientID, &managerID); err != nil {
		return err
	}

	s.logger.Info("Manager assigned", "client_id", clientID.String(), "manager_id", managerID.String())
	return nil
}

// UnassignManager clears the client's manager link. Requests already routed
// to the previous manager keep their assignment.
func (s *AccountServiceImpl) UnassignManager(ctx context.Context, clientID uuid.UUID) error {
	return s.clientRepo.SetManager(ctx, clientID, nil)
}

// GetNotifications returns a page of the client's messages, most recent first.
func (s *AccountServiceImpl) GetNotifications(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*notification.Message, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetByClientID(ctx, clientID, limit, offset)
}
