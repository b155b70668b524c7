package service

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
)

// clientService implements ClientService with plain store delegation plus
// input validation.
type clientService struct {
	clientRepository store.ClientRepository
	logger           *logger.Logger
}

func NewClientService(clientRepository store.ClientRepository, logger *logger.Logger) ClientService {
	return &clientService{
		clientRepository: clientRepository,
		logger:           logger,
	}
}

func (c *clientService) CreateClient(ctx context.Context, req models.ClientRequest) (models.Client, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" {
		log.Error().Msg("client creation without a name")
		return models.Client{}, ErrInvalidDataProvided
	}

	created, err := c.clientRepository.CreateClient(ctx, models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Balance: req.Balance,
	})
	if err != nil {
		return models.Client{}, fmt.Errorf("client creation ended with error: %w", err)
	}

	return created, nil
}

func (c *clientService) GetClient(ctx context.Context, id int64) (models.Client, error) {
	return c.clientRepository.FindClientByID(ctx, id)
}

func (c *clientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return c.clientRepository.ListClients(ctx)
}

func (c *clientService) UpdateClient(ctx context.Context, id int64, req models.ClientRequest) (models.Client, error) {
	if req.Name == "" {
		return models.Client{}, ErrInvalidDataProvided
	}

	updated, err := c.clientRepository.UpdateClient(ctx, models.Client{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Balance: req.Balance,
	})
	if err != nil {
		return models.Client{}, fmt.Errorf("client update ended with error: %w", err)
	}

	return updated, nil
}

func (c *clientService) DeleteClient(ctx context.Context, id int64) error {
	return c.clientRepository.DeleteClient(ctx, id)
}
