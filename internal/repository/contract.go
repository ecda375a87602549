package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
)

type AdminRepository interface {
	GetStats(ctx context.Context) (data domain.Stats, err error)
	GetUsers(ctx context.Context) (data []domain.User, err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetOrders(ctx context.Context) (data []domain.Order, err error)

	UpdateUserStatus(ctx context.Context, id string, isActive bool) (err error)
	UpdateProductStatus(ctx context.Context, id string, isAvailable bool) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	AddProduct(ctx context.Context, req dto.OutgoingRequest) (err error)
	GetInvoiceData(ctx context.Context, orderID string) (data domain.InvoiceData, err error)
}

// Authorizer supplies the Authorization header for backend calls.
type Authorizer interface {
	AuthHeader() (string, error)
}
