package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/admin-console/internal/dashboard"
	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/draft"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
	"github.com/alimikegami/point-of-sales/admin-console/internal/encoder"
	"github.com/alimikegami/point-of-sales/admin-console/internal/export"
	"github.com/alimikegami/point-of-sales/admin-console/internal/media"
	"github.com/alimikegami/point-of-sales/admin-console/internal/repository"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

const (
	EventUserStatusChanged    = "user_status_changed"
	EventProductStatusChanged = "product_status_changed"
	EventProductDeleted       = "product_deleted"
	EventProductAdded         = "product_added"
)

// authoring is the product currently being added. While submitting is set
// the draft is read only.
type authoring struct {
	form       draft.ProductDraft
	media      *media.State
	detection  *media.Detection
	submitting bool
}

type AdminServiceImpl struct {
	repository  repository.AdminRepository
	coordinator *dashboard.Coordinator
	gallery     media.GalleryLookup
	previews    *media.PreviewRegistry
	publisher   EventPublisher
	invoices    InvoiceFormatter
	session     SessionCloser

	mu      sync.Mutex
	current *authoring
}

func CreateAdminService(repository repository.AdminRepository, coordinator *dashboard.Coordinator, gallery media.GalleryLookup, previews *media.PreviewRegistry, publisher EventPublisher, invoices InvoiceFormatter, session SessionCloser) AdminService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if invoices == nil {
		invoices = export.Invoice{}
	}
	return &AdminServiceImpl{
		repository:  repository,
		coordinator: coordinator,
		gallery:     gallery,
		previews:    previews,
		publisher:   publisher,
		invoices:    invoices,
		session:     session,
	}
}

func (s *AdminServiceImpl) LoadDashboard(ctx context.Context) (err error) {
	return s.coordinator.Load(ctx)
}

// RefreshDashboard loads everything when the first load has not succeeded
// yet and refreshes every collection otherwise.
func (s *AdminServiceImpl) RefreshDashboard(ctx context.Context) (err error) {
	if !s.coordinator.Ready() {
		return s.coordinator.Load(ctx)
	}
	return s.coordinator.Refresh(ctx, dashboard.AllCollections...)
}

func (s *AdminServiceImpl) Dashboard() (data dto.DashboardResponse, err error) {
	snap := s.coordinator.Snapshot()
	if !snap.Ready {
		return data, errs.ErrNotLoaded
	}

	products := make([]dto.ProductResponse, 0, len(snap.Products))
	for _, p := range snap.Products {
		products = append(products, dto.ProductResponse{Product: p, Media: p.Media()})
	}

	return dto.DashboardResponse{
		Ready:    snap.Ready,
		Stats:    snap.Stats,
		Users:    snap.Users,
		Products: products,
		Orders:   snap.Orders,
	}, nil
}

// ToggleUserStatus sets a user's active flag. A nil isActive flips the flag
// shown in the current snapshot.
func (s *AdminServiceImpl) ToggleUserStatus(ctx context.Context, id string, isActive *bool) (err error) {
	if isActive == nil {
		user, ok := s.findUser(id)
		if !ok {
			return errs.ErrNotFound
		}
		flipped := !user.IsActive
		isActive = &flipped
	}

	if err = s.repository.UpdateUserStatus(ctx, id, *isActive); err != nil {
		return err
	}

	s.refresh(ctx, dashboard.AfterUserToggle)
	s.publish(ctx, id, EventUserStatusChanged, dto.UserStatusEvent{UserID: id, IsActive: *isActive})
	return nil
}

// ToggleProductStatus sets a product's availability. A nil isAvailable flips
// the flag shown in the current snapshot.
func (s *AdminServiceImpl) ToggleProductStatus(ctx context.Context, id string, isAvailable *bool) (err error) {
	if isAvailable == nil {
		product, ok := s.findProduct(id)
		if !ok {
			return errs.ErrNotFound
		}
		flipped := !product.IsAvailable
		isAvailable = &flipped
	}

	if err = s.repository.UpdateProductStatus(ctx, id, *isAvailable); err != nil {
		return err
	}

	s.refresh(ctx, dashboard.AfterProductChange)
	s.publish(ctx, id, EventProductStatusChanged, dto.ProductStatusEvent{ProductID: id, IsAvailable: *isAvailable})
	return nil
}

func (s *AdminServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	if err = s.repository.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.refresh(ctx, dashboard.AfterProductChange)
	s.publish(ctx, id, EventProductDeleted, dto.ProductDeletedEvent{ProductID: id})
	return nil
}

func (s *AdminServiceImpl) StartAuthoring() (data dto.AuthoringResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return data, errs.ErrDraftInProgress
	}
	s.current = &authoring{
		form:  draft.New(),
		media: media.NewState(s.gallery, s.previews),
	}
	return s.view(), nil
}

func (s *AdminServiceImpl) Authoring() (data dto.AuthoringResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return data, errs.ErrNoDraft
	}
	return s.view(), nil
}

// CancelAuthoring drops the draft and releases its previews.
func (s *AdminServiceImpl) CancelAuthoring() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return errs.ErrNoDraft
	}
	if s.current.submitting {
		return errs.ErrSubmitting
	}
	s.discard()
	return nil
}

func (s *AdminServiceImpl) UpdateAuthoringFields(req dto.AuthoringFieldsRequest) (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		a.form = draft.ProductDraft{
			Name:            req.Name,
			Details:         req.ProductDetails,
			Price:           req.Price,
			Category:        domain.Category(req.Category),
			Quantity:        req.Quantity,
			Unit:            domain.Unit(req.Unit),
			DiscountPercent: req.DiscountPercent,
			TaxPercent:      req.TaxPercent,
		}
		return nil
	})
}

func (s *AdminServiceImpl) SelectGalleryItem(req dto.GallerySelectionRequest) (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		a.media.SelectGalleryItem(req.ItemName)
		a.detection = nil
		return nil
	})
}

func (s *AdminServiceImpl) SelectMediaURL(req dto.URLSelectionRequest) (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		d := a.media.SelectURL(req.URL, media.Kind(req.Kind))
		a.detection = &d
		return nil
	})
}

func (s *AdminServiceImpl) AddUploadedImages(files []domain.Blob) (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		if err := a.media.AddUploadedImages(files); err != nil {
			return err
		}
		if _, ok := a.media.Current().(media.Upload); ok {
			a.detection = nil
		}
		return nil
	})
}

func (s *AdminServiceImpl) SetUploadedVideo(file domain.Blob) (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		if err := a.media.SetUploadedVideo(file); err != nil {
			return err
		}
		a.detection = nil
		return nil
	})
}

func (s *AdminServiceImpl) ClearMedia() (data dto.AuthoringResponse, err error) {
	return s.withDraft(func(a *authoring) error {
		a.media.Reset()
		a.detection = nil
		return nil
	})
}

func (s *AdminServiceImpl) Preview(id string) (data domain.Blob, err error) {
	blob, ok := s.previews.Lookup(id)
	if !ok {
		return data, errs.ErrNotFound
	}
	return blob, nil
}

func (s *AdminServiceImpl) GalleryItems(category domain.Category) (data []string) {
	return s.gallery.ItemsByCategory(category)
}

// SubmitProduct validates, encodes and sends the draft. The draft survives
// any failure; on success it is discarded and products and stats are
// refreshed. The authoring lock is not held while the backend is called.
func (s *AdminServiceImpl) SubmitProduct(ctx context.Context) (err error) {
	a, validated, req, err := s.beginSubmit()
	if err != nil {
		return err
	}

	if err = s.repository.AddProduct(ctx, req); err != nil {
		s.mu.Lock()
		a.submitting = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.current == a {
		s.discard()
	}
	s.mu.Unlock()

	s.refresh(ctx, dashboard.AfterProductChange)
	s.publish(ctx, validated.Name, EventProductAdded, dto.ProductAddedEvent{
		Name:     validated.Name,
		Category: string(validated.Category),
		Encoding: req.Encoding,
	})
	return nil
}

// beginSubmit builds the outgoing request and marks the draft as submitting.
func (s *AdminServiceImpl) beginSubmit() (*authoring, draft.Validated, dto.OutgoingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.current
	if a == nil {
		return nil, draft.Validated{}, dto.OutgoingRequest{}, errs.ErrNoDraft
	}
	if a.submitting {
		return nil, draft.Validated{}, dto.OutgoingRequest{}, errs.ErrSubmitting
	}

	validated, err := a.form.Validate()
	if err != nil {
		return nil, draft.Validated{}, dto.OutgoingRequest{}, err
	}

	req, err := encoder.Encode(validated, a.media.Current())
	if err != nil {
		return nil, draft.Validated{}, dto.OutgoingRequest{}, err
	}

	a.submitting = true
	return a, validated, req, nil
}

func (s *AdminServiceImpl) DownloadInvoice(ctx context.Context, orderID string) (data domain.Blob, err error) {
	invoice, err := s.repository.GetInvoiceData(ctx, orderID)
	if err != nil {
		return data, err
	}

	data, err = s.invoices.Format(orderID, invoice)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DownloadInvoice").Msg("")
		return data, errs.ErrInternalServer
	}
	return data, nil
}

// ExportOrders renders the orders of the current snapshot.
func (s *AdminServiceImpl) ExportOrders() (data domain.Blob, err error) {
	snap := s.coordinator.Snapshot()
	if !snap.Ready {
		return data, errs.ErrNotLoaded
	}

	data, err = export.Orders(snap.Orders)
	if err != nil {
		log.Error().Err(err).Str("component", "ExportOrders").Msg("")
		return data, errs.ErrInternalServer
	}
	return data, nil
}

// Logout closes the session and drops any draft.
func (s *AdminServiceImpl) Logout(ctx context.Context) (err error) {
	s.mu.Lock()
	if s.current != nil {
		s.discard()
	}
	s.mu.Unlock()

	s.session.Close()
	log.Ctx(ctx).Info().Msg("operator logged out")
	return nil
}

func (s *AdminServiceImpl) withDraft(fn func(a *authoring) error) (data dto.AuthoringResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return data, errs.ErrNoDraft
	}
	if s.current.submitting {
		return data, errs.ErrSubmitting
	}
	if err = fn(s.current); err != nil {
		return data, err
	}
	return s.view(), nil
}

// discard releases the draft's previews and forgets it. s.mu must be held.
func (s *AdminServiceImpl) discard() {
	s.current.media.Reset()
	s.current = nil
}

// view renders the current draft. s.mu must be held.
func (s *AdminServiceImpl) view() dto.AuthoringResponse {
	a := s.current
	m := dto.MediaResponse{Mode: string(a.media.Current().Mode())}

	switch sel := a.media.Current().(type) {
	case media.Gallery:
		m.GalleryItem = sel.ItemName
		m.ResolvedURL = sel.ResolvedURL
	case media.URL:
		m.URL = sel.Value
		m.URLKind = string(sel.Kind)
		if a.detection != nil {
			m.KindOverridden = a.detection.Overridden
		}
	case media.Upload:
		for _, p := range a.media.Previews() {
			m.Previews = append(m.Previews, dto.PreviewResponse{ID: p.ID, Name: p.Name})
		}
	}

	return dto.AuthoringResponse{Fields: a.form, Media: m, Submitting: a.submitting}
}

// refresh re-fetches collections after a confirmed mutation. The mutation
// already succeeded, so a failed refresh is only logged.
func (s *AdminServiceImpl) refresh(ctx context.Context, collections []dashboard.Collection) {
	if err := s.coordinator.Refresh(ctx, collections...); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "refresh").Msg("")
	}
}

func (s *AdminServiceImpl) publish(ctx context.Context, key, eventType string, data interface{}) {
	err := s.publisher.Publish(ctx, key, dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
	}
}

func (s *AdminServiceImpl) findUser(id string) (domain.User, bool) {
	for _, u := range s.coordinator.Snapshot().Users {
		if u.ID.Hex() == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *AdminServiceImpl) findProduct(id string) (domain.Product, bool) {
	for _, p := range s.coordinator.Snapshot().Products {
		if p.ID.Hex() == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
