package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
)

// CreateClientRequest defines the request to create a client
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// CreateContractRequest defines the request to create a contract
type CreateContractRequest struct {
	ClientID    string  `json:"client_id" binding:"required"`
	ProjectCode string  `json:"project_code" binding:"required"`
	TonsPerLoad float64 `json:"tons_per_load"`
}

// ClientService defines client and contract operations
type ClientService interface {
	CreateClient(ctx context.Context, req *CreateClientRequest) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateContract(ctx context.Context, req *CreateContractRequest) (*models.Contract, error)
	ListContracts(ctx context.Context, clientID string) ([]models.Contract, error)
}

// clientService implements ClientService
type clientService struct {
	repo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// CreateClient creates a new client
func (s *clientService) CreateClient(ctx context.Context, req *CreateClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	client := &models.Client{
		Base:         models.Base{UUID: uuid.NewString()},
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Active:       true,
	}
	return s.repo.CreateClient(ctx, client)
}

// GetClient gets a client by ID
func (s *clientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return client, nil
}

// ListClients lists all clients
func (s *clientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.repo.ListClients(ctx)
}

// CreateContract creates a new contract for a client
func (s *clientService) CreateContract(ctx context.Context, req *CreateContractRequest) (*models.Contract, error) {
	if strings.TrimSpace(req.ProjectCode) == "" {
		return nil, ErrInvalidInput
	}

	// Validate the client exists
	if _, err := s.repo.GetClient(ctx, req.ClientID); err != nil {
		return nil, mapRepoError(err)
	}

	contract := &models.Contract{
		Base:        models.Base{UUID: uuid.NewString()},
		ClientID:    req.ClientID,
		ProjectCode: req.ProjectCode,
		TonsPerLoad: req.TonsPerLoad,
		Active:      true,
	}
	return s.repo.CreateContract(ctx, contract)
}

// ListContracts lists contracts, optionally filtered by client
func (s *clientService) ListContracts(ctx context.Context, clientID string) ([]models.Contract, error) {
	return s.repo.ListContracts(ctx, clientID)
}
