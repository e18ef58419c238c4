package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/database"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
)

// ClientRepository defines the interface for client and contract persistence
type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error)
	GetContract(ctx context.Context, id string) (*models.Contract, error)
	ListContracts(ctx context.Context, clientID string) ([]models.Contract, error)
}

// clientRepository implements ClientRepository
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// CreateClient creates a new client
func (r *clientRepository) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient gets a client by ID
func (r *clientRepository) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&client).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// ListClients lists all clients
func (r *clientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateContract creates a new contract
func (r *clientRepository) CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error) {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContract gets a contract by ID
func (r *clientRepository) GetContract(ctx context.Context, id string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).Preload("Client").Where("uuid = ?", id).First(&contract).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// ListContracts lists contracts, optionally filtered by client
func (r *clientRepository) ListContracts(ctx context.Context, clientID string) ([]models.Contract, error) {
	query := r.db.WithContext(ctx).Preload("Client")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var contracts []models.Contract
	if err := query.Order("created_at ASC").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}
