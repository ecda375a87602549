package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
)

type AdminService interface {
	LoadDashboard(ctx context.Context) (err error)
	RefreshDashboard(ctx context.Context) (err error)
	Dashboard() (data dto.DashboardResponse, err error)

	ToggleUserStatus(ctx context.Context, id string, isActive *bool) (err error)
	ToggleProductStatus(ctx context.Context, id string, isAvailable *bool) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)

	StartAuthoring() (data dto.AuthoringResponse, err error)
	Authoring() (data dto.AuthoringResponse, err error)
	CancelAuthoring() (err error)
	UpdateAuthoringFields(req dto.AuthoringFieldsRequest) (data dto.AuthoringResponse, err error)
	SelectGalleryItem(req dto.GallerySelectionRequest) (data dto.AuthoringResponse, err error)
	SelectMediaURL(req dto.URLSelectionRequest) (data dto.AuthoringResponse, err error)
	AddUploadedImages(files []domain.Blob) (data dto.AuthoringResponse, err error)
	SetUploadedVideo(file domain.Blob) (data dto.AuthoringResponse, err error)
	ClearMedia() (data dto.AuthoringResponse, err error)
	Preview(id string) (data domain.Blob, err error)
	GalleryItems(category domain.Category) (data []string)
	SubmitProduct(ctx context.Context) (err error)

	DownloadInvoice(ctx context.Context, orderID string) (data domain.Blob, err error)
	ExportOrders() (data domain.Blob, err error)
	Logout(ctx context.Context) (err error)
}

// EventPublisher receives an audit event for every confirmed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

// InvoiceFormatter turns fetched invoice data into a downloadable file.
type InvoiceFormatter interface {
	Format(orderID string, data domain.InvoiceData) (domain.Blob, error)
}

// SessionCloser ends the operator session on logout.
type SessionCloser interface {
	Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	return nil
}
