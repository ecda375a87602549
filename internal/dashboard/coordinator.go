// Package dashboard keeps the console's copy of the backend collections and
// decides which collections to re-fetch after a mutation.
package dashboard

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/repository"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

type Collection string

const (
	CollectionStats    Collection = "stats"
	CollectionUsers    Collection = "users"
	CollectionProducts Collection = "products"
	CollectionOrders   Collection = "orders"
)

var AllCollections = []Collection{CollectionStats, CollectionUsers, CollectionProducts, CollectionOrders}

// Collections to re-fetch after each kind of confirmed mutation.
var (
	AfterUserToggle    = []Collection{CollectionUsers}
	AfterProductChange = []Collection{CollectionProducts, CollectionStats}
)

const (
	outcomeApplied = "applied"
	outcomeStale   = "stale"
	outcomeFailed  = "failed"
)

type Snapshot struct {
	Ready    bool
	Stats    domain.Stats
	Users    []domain.User
	Products []domain.Product
	Orders   []domain.Order
}

type Coordinator struct {
	repo repository.AdminRepository

	mu         sync.RWMutex
	ready      bool
	stats      domain.Stats
	users      []domain.User
	products   []domain.Product
	orders     []domain.Order
	generation map[Collection]uint64

	refreshes *prometheus.CounterVec
}

// NewCoordinator builds an empty, not ready coordinator. The refresh counter
// is registered with reg when reg is not nil.
func NewCoordinator(repo repository.AdminRepository, reg prometheus.Registerer) *Coordinator {
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_console_collection_refreshes_total",
		Help: "Collection fetch results by collection and outcome.",
	}, []string{"collection", "outcome"})
	if reg != nil {
		reg.MustRegister(refreshes)
	}

	return &Coordinator{
		repo:       repo,
		generation: make(map[Collection]uint64),
		refreshes:  refreshes,
	}
}

// Load fetches every collection concurrently and applies them only when all
// fetches succeed. On failure nothing is replaced and Ready stays as it was.
func (c *Coordinator) Load(ctx context.Context) error {
	tokens := c.begin(AllCollections)

	var (
		stats    domain.Stats
		users    []domain.User
		products []domain.Product
		orders   []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = c.repo.GetStats(gctx)
		return
	})
	g.Go(func() (err error) {
		users, err = c.repo.GetUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		products, err = c.repo.GetProducts(gctx)
		return
	})
	g.Go(func() (err error) {
		orders, err = c.repo.GetOrders(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		for _, col := range AllCollections {
			c.refreshes.WithLabelValues(string(col), outcomeFailed).Inc()
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Load").Msg("")
		return errs.LoadFailure(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(tokens, CollectionStats, func() { c.stats = stats })
	c.apply(tokens, CollectionUsers, func() { c.users = users })
	c.apply(tokens, CollectionProducts, func() { c.products = products })
	c.apply(tokens, CollectionOrders, func() { c.orders = orders })
	c.ready = true

	return nil
}

// Refresh re-fetches the named collections concurrently and replaces each one
// wholesale. A result is dropped when a newer fetch of the same collection
// began after this one. The first fetch error is returned once all fetches
// have finished.
func (c *Coordinator) Refresh(ctx context.Context, collections ...Collection) error {
	collections = dedupe(collections)
	tokens := c.begin(collections)

	var g errgroup.Group
	for _, col := range collections {
		g.Go(func() error {
			set, err := c.fetch(ctx, col)
			if err != nil {
				c.refreshes.WithLabelValues(string(col), outcomeFailed).Inc()
				log.Ctx(ctx).Error().Err(err).Str("component", "Refresh").Str("collection", string(col)).Msg("")
				return err
			}

			c.mu.Lock()
			defer c.mu.Unlock()
			c.apply(tokens, col, set)
			return nil
		})
	}

	return g.Wait()
}

func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Snapshot returns copies of the collections.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Ready:    c.ready,
		Stats:    c.stats,
		Users:    slices.Clone(c.users),
		Products: slices.Clone(c.products),
		Orders:   slices.Clone(c.orders),
	}
}

// StartAutoRefresh schedules a refresh of every collection at interval. The
// caller owns the returned scheduler and must shut it down.
func (c *Coordinator) StartAutoRefresh(interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if err := c.Refresh(ctx, AllCollections...); err != nil {
				log.Warn().Err(err).Str("component", "AutoRefresh").Msg("")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}

// begin takes a generation token for each collection.
func (c *Coordinator) begin(collections []Collection) map[Collection]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := make(map[Collection]uint64, len(collections))
	for _, col := range collections {
		c.generation[col]++
		tokens[col] = c.generation[col]
	}
	return tokens
}

// apply runs set when tokens still holds the newest generation of col.
// c.mu must be held.
func (c *Coordinator) apply(tokens map[Collection]uint64, col Collection, set func()) {
	if c.generation[col] != tokens[col] {
		c.refreshes.WithLabelValues(string(col), outcomeStale).Inc()
		return
	}
	set()
	c.refreshes.WithLabelValues(string(col), outcomeApplied).Inc()
}

func (c *Coordinator) fetch(ctx context.Context, col Collection) (func(), error) {
	switch col {
	case CollectionStats:
		stats, err := c.repo.GetStats(ctx)
		return func() { c.stats = stats }, err
	case CollectionUsers:
		users, err := c.repo.GetUsers(ctx)
		return func() { c.users = users }, err
	case CollectionProducts:
		products, err := c.repo.GetProducts(ctx)
		return func() { c.products = products }, err
	case CollectionOrders:
		orders, err := c.repo.GetOrders(ctx)
		return func() { c.orders = orders }, err
	}
	return nil, errs.ErrClient
}

func dedupe(collections []Collection) []Collection {
	out := make([]Collection, 0, len(collections))
	for _, col := range collections {
		if !slices.Contains(out, col) {
			out = append(out, col)
		}
	}
	return out
}
