package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/application/mapping"
	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// ErrSyncInProgress is returned when a sync run is already active for the
// tenant. One active run per tenant; retries are an explicit re-invocation.
var ErrSyncInProgress = errors.New("sync already in progress for this shop")

// RecordPolicy decides what a single record's failure aborts.
type RecordPolicy int

const (
	// AbortEntityOnError fails the whole entity type on the first record
	// error.
	AbortEntityOnError RecordPolicy = iota
	// SkipFailedRecords logs and skips the failing record and continues
	// with the rest of the page.
	SkipFailedRecords
)

// SyncConfig tunes one orchestrator instance. Record policies are explicit
// per entity type rather than an accident of implementation.
type SyncConfig struct {
	PageSize      int
	SyncCustomers bool
	SyncOrders    bool
	Policies      map[domain.EntityType]RecordPolicy
}

// DefaultSyncConfig gates customers and orders off (the API scope needed to
// read them is usually unavailable), aborts products and collections on the
// first record error, and isolates record failures for customers and orders.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		PageSize: 50,
		Policies: map[domain.EntityType]RecordPolicy{
			domain.EntityProducts:    AbortEntityOnError,
			domain.EntityCollections: AbortEntityOnError,
			domain.EntityCustomers:   SkipFailedRecords,
			domain.EntityOrders:      SkipFailedRecords,
		},
	}
}

// SyncService orchestrates the initial sync of a shop: shop record first
// (blocking, fatal on failure), then one task per enabled entity type,
// products and collections running concurrently, each attempt recorded in a
// SyncLog row.
type SyncService struct {
	admin     ports.AdminClient
	shops     ports.ShopRepository
	catalog   ports.CatalogRepository
	customers ports.CustomerRepository
	orders    ports.OrderRepository
	syncLogs  ports.SyncLogRepository
	logger    zerolog.Logger
	metrics   *Metrics
	cfg       SyncConfig

	mu      sync.Mutex
	running map[int64]struct{}
}

// NewSyncService creates the sync orchestrator.
func NewSyncService(
	admin ports.AdminClient,
	shops ports.ShopRepository,
	catalog ports.CatalogRepository,
	customers ports.CustomerRepository,
	orders ports.OrderRepository,
	syncLogs ports.SyncLogRepository,
	logger zerolog.Logger,
	metrics *Metrics,
	cfg SyncConfig,
) *SyncService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &SyncService{
		admin:     admin,
		shops:     shops,
		catalog:   catalog,
		customers: customers,
		orders:    orders,
		syncLogs:  syncLogs,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
		running:   make(map[int64]struct{}),
	}
}

// HasCompletedSync reports whether the shop has at least one successful
// shop-level sync, which is what gates the automatic run on session
// bootstrap.
func (s *SyncService) HasCompletedSync(ctx context.Context, shopID int64) (bool, error) {
	last, err := s.syncLogs.Latest(ctx, shopID, domain.EntityShop)
	if err != nil {
		return false, err
	}
	return last != nil && last.Status == domain.SyncStatusCompleted, nil
}

// Status returns the most recent SyncLog per entity type, verbatim.
func (s *SyncService) Status(ctx context.Context, shopID int64) ([]domain.SyncLog, error) {
	return s.syncLogs.LatestPerEntity(ctx, shopID)
}

func (s *SyncService) acquire(shopID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.running[shopID]; busy {
		return false
	}
	s.running[shopID] = struct{}{}
	return true
}

func (s *SyncService) release(shopID int64) {
	s.mu.Lock()
	delete(s.running, shopID)
	s.mu.Unlock()
}

// StartAsync acquires the per-shop guard synchronously and runs the sync in
// the background. The caller learns immediately whether the run was accepted.
func (s *SyncService) StartAsync(shop *domain.Shop, baseURL string) error {
	if !s.acquire(shop.ID) {
		return ErrSyncInProgress
	}
	go func() {
		defer s.release(shop.ID)
		if err := s.run(context.Background(), shop, baseURL); err != nil {
			s.logger.Error().Err(err).Str("shop", shop.Domain).Msg("Background sync run failed")
		}
	}()
	return nil
}

// Run performs one full sync run for the shop. Entity-type failures are
// written to their SyncLog rows and do not abort siblings; only a shop-level
// failure (no tenant, nothing else can proceed) is returned as an error.
func (s *SyncService) Run(ctx context.Context, shop *domain.Shop, baseURL string) error {
	if !s.acquire(shop.ID) {
		return ErrSyncInProgress
	}
	defer s.release(shop.ID)
	return s.run(ctx, shop, baseURL)
}

func (s *SyncService) run(ctx context.Context, shop *domain.Shop, baseURL string) error {

	sc := domain.SyncContext{
		ShopID:      shop.ID,
		ShopDomain:  shop.Domain,
		AccessToken: shop.AccessToken,
		BaseURL:     baseURL,
		StartedAt:   time.Now().UTC(),
	}

	if err := s.syncShop(ctx, sc, shop); err != nil {
		s.logger.Error().Err(err).Str("shop", shop.Domain).Msg("Shop sync failed; aborting run")
		return err
	}

	var wg sync.WaitGroup
	for _, task := range s.tasks(sc) {
		if !task.enabled {
			continue
		}
		wg.Add(1)
		go func(task entityTask) {
			defer wg.Done()
			if err := task.run(ctx); err != nil {
				// Recorded in the task's SyncLog; a sibling's failure
				// must not cancel the others.
				s.logger.Error().
					Err(err).
					Str("shop", sc.ShopDomain).
					Str("entity", string(task.entity)).
					Msg("Entity sync failed")
			}
		}(task)
	}
	wg.Wait()

	if err := s.shops.TouchLastSynced(ctx, sc.ShopID); err != nil {
		s.logger.Error().Err(err).Str("shop", sc.ShopDomain).Msg("Failed to update last-sync timestamp")
	}

	s.logger.Info().
		Str("shop", sc.ShopDomain).
		Dur("elapsed", time.Since(sc.StartedAt)).
		Msg("Sync run finished")
	return nil
}

// entityTask is one orchestrated entity-type sync. The closed set of tasks
// is built here, selected by a table rather than string comparisons.
type entityTask struct {
	entity  domain.EntityType
	enabled bool
	run     func(ctx context.Context) error
}

func (s *SyncService) tasks(sc domain.SyncContext) []entityTask {
	return []entityTask{
		{
			entity:  domain.EntityProducts,
			enabled: true,
			run: func(ctx context.Context) error {
				return runEntitySync(ctx, s, sc, domain.EntityProducts,
					func(ctx context.Context, cursor string, first int) (*domain.Connection[domain.RemoteProduct], error) {
						return s.admin.ProductsPage(ctx, sc, cursor, first)
					},
					func(ctx context.Context, node domain.RemoteProduct) error {
						return s.handleProduct(ctx, sc, node)
					})
			},
		},
		{
			entity:  domain.EntityCollections,
			enabled: true,
			run: func(ctx context.Context) error {
				return runEntitySync(ctx, s, sc, domain.EntityCollections,
					func(ctx context.Context, cursor string, first int) (*domain.Connection[domain.RemoteCollection], error) {
						return s.admin.CollectionsPage(ctx, sc, cursor, first)
					},
					func(ctx context.Context, node domain.RemoteCollection) error {
						return s.handleCollection(ctx, sc, node)
					})
			},
		},
		{
			entity:  domain.EntityCustomers,
			enabled: s.cfg.SyncCustomers,
			run: func(ctx context.Context) error {
				return runEntitySync(ctx, s, sc, domain.EntityCustomers,
					func(ctx context.Context, cursor string, first int) (*domain.Connection[domain.RemoteCustomer], error) {
						return s.admin.CustomersPage(ctx, sc, cursor, first)
					},
					func(ctx context.Context, node domain.RemoteCustomer) error {
						return s.handleCustomer(ctx, sc, node)
					})
			},
		},
		{
			entity:  domain.EntityOrders,
			enabled: s.cfg.SyncOrders,
			run: func(ctx context.Context) error {
				return runEntitySync(ctx, s, sc, domain.EntityOrders,
					func(ctx context.Context, cursor string, first int) (*domain.Connection[domain.RemoteOrder], error) {
						return s.admin.OrdersPage(ctx, sc, cursor, first)
					},
					func(ctx context.Context, node domain.RemoteOrder) error {
						return s.handleOrder(ctx, sc, node)
					})
			},
		},
	}
}

// syncShop refreshes the tenant row from the remote shop record. It must
// succeed before anything else runs.
func (s *SyncService) syncShop(ctx context.Context, sc domain.SyncContext, shop *domain.Shop) error {
	log := s.newSyncLog(sc, domain.EntityShop)
	if err := s.syncLogs.Create(ctx, log); err != nil {
		return err
	}

	remote, err := s.admin.GetShop(ctx, sc)
	if err != nil {
		s.finishSyncLog(ctx, log, err)
		return err
	}
	mapped, err := mapping.Shop(*remote)
	if err != nil {
		s.finishSyncLog(ctx, log, err)
		return err
	}

	shop.RemoteID = mapped.RemoteID
	shop.Name = mapped.Name
	shop.Email = mapped.Email
	shop.Currency = mapped.Currency
	if err := s.shops.UpsertByDomain(ctx, shop); err != nil {
		s.finishSyncLog(ctx, log, err)
		return err
	}

	log.RecordsProcessed = 1
	log.RecordsTotal = 1
	s.finishSyncLog(ctx, log, nil)
	return nil
}

// runEntitySync is the shared page loop: fetch a page, map and upsert each
// record, persist the counter, stop when the paginator reports no next page.
// A failed run starts the whole entity type over on the next invocation;
// no mid-run resume token is persisted.
func runEntitySync[T any](
	ctx context.Context,
	s *SyncService,
	sc domain.SyncContext,
	entity domain.EntityType,
	fetch func(ctx context.Context, cursor string, first int) (*domain.Connection[T], error),
	handle func(ctx context.Context, node T) error,
) error {
	log := s.newSyncLog(sc, entity)
	if err := s.syncLogs.Create(ctx, log); err != nil {
		return err
	}

	policy := s.cfg.Policies[entity]
	cursor := ""
	var runErr error

pages:
	for {
		page, err := fetch(ctx, cursor, s.cfg.PageSize)
		if err != nil {
			runErr = err
			break
		}

		for _, node := range page.Nodes() {
			log.RecordsTotal++
			if err := handle(ctx, node); err != nil {
				if policy == SkipFailedRecords {
					s.logger.Warn().
						Err(err).
						Str("shop", sc.ShopDomain).
						Str("entity", string(entity)).
						Msg("Record failed; skipping")
					s.metrics.RecordsSkipped.WithLabelValues(string(entity)).Inc()
					continue
				}
				runErr = err
				break pages
			}
			log.RecordsProcessed++
			s.metrics.RecordsProcessed.WithLabelValues(string(entity)).Inc()
		}

		if err := s.syncLogs.Update(ctx, log); err != nil {
			runErr = err
			break
		}
		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	s.finishSyncLog(ctx, log, runErr)
	return runErr
}

func (s *SyncService) newSyncLog(sc domain.SyncContext, entity domain.EntityType) *domain.SyncLog {
	return &domain.SyncLog{
		ShopID:     sc.ShopID,
		SyncType:   domain.SyncTypeInitial,
		EntityType: entity,
		Status:     domain.SyncStatusStarted,
		StartedAt:  time.Now().UTC(),
	}
}

// finishSyncLog writes the terminal state. CompletedAt is set exactly here,
// for both outcomes.
func (s *SyncService) finishSyncLog(ctx context.Context, log *domain.SyncLog, runErr error) {
	now := time.Now().UTC()
	log.CompletedAt = &now
	if runErr != nil {
		log.Status = domain.SyncStatusFailed
		log.ErrorMessage = runErr.Error()
	} else {
		log.Status = domain.SyncStatusCompleted
	}
	s.metrics.SyncRuns.WithLabelValues(string(log.EntityType), string(log.Status)).Inc()
	if err := s.syncLogs.Update(ctx, log); err != nil {
		s.logger.Error().
			Err(err).
			Str("entity", string(log.EntityType)).
			Msg("Failed to write terminal sync log state")
	}
}

// handleProduct upserts one product and, once its local id is known, its
// variants and images.
func (s *SyncService) handleProduct(ctx context.Context, sc domain.SyncContext, node domain.RemoteProduct) error {
	product, err := mapping.Product(node, sc.ShopID)
	if err != nil {
		return err
	}
	if err := s.catalog.UpsertProduct(ctx, product); err != nil {
		return err
	}
	for i := range product.Variants {
		product.Variants[i].ProductID = product.ID
		if err := s.catalog.UpsertVariant(ctx, &product.Variants[i]); err != nil {
			return err
		}
	}
	for i := range product.Images {
		product.Images[i].ProductID = product.ID
		if err := s.catalog.UpsertImage(ctx, &product.Images[i]); err != nil {
			return err
		}
	}
	return nil
}

// handleCollection upserts one collection and links its member products.
// Members that have not been synced yet are skipped, not failed.
func (s *SyncService) handleCollection(ctx context.Context, sc domain.SyncContext, node domain.RemoteCollection) error {
	mapped, err := mapping.Collection(node, sc.ShopID)
	if err != nil {
		return err
	}
	if err := s.catalog.UpsertCollection(ctx, mapped.Collection); err != nil {
		return err
	}
	for _, remoteID := range mapped.MemberRemoteIDs {
		productID, err := s.catalog.ProductIDByRemoteID(ctx, remoteID)
		if err != nil {
			return err
		}
		if productID == 0 {
			continue
		}
		if err := s.catalog.LinkCollectionProduct(ctx, mapped.Collection.ID, productID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) handleCustomer(ctx context.Context, sc domain.SyncContext, node domain.RemoteCustomer) error {
	customer, err := mapping.Customer(node, sc.ShopID)
	if err != nil {
		return err
	}
	if err := s.customers.UpsertCustomer(ctx, customer); err != nil {
		return err
	}
	for i := range customer.Addresses {
		customer.Addresses[i].CustomerID = customer.ID
		if err := s.customers.UpsertAddress(ctx, &customer.Addresses[i]); err != nil {
			return err
		}
	}
	return nil
}

// handleOrder upserts one order with its line items and addresses. Customer,
// variant and product references degrade to null when the target row is
// absent.
func (s *SyncService) handleOrder(ctx context.Context, sc domain.SyncContext, node domain.RemoteOrder) error {
	mapped, err := mapping.Order(node, sc.ShopID)
	if err != nil {
		return err
	}

	if mapped.RemoteCustomerID != 0 {
		customerID, err := s.customers.CustomerIDByRemoteID(ctx, mapped.RemoteCustomerID)
		if err != nil {
			return err
		}
		if customerID != 0 {
			mapped.Order.CustomerID = &customerID
		}
	}
	if err := s.orders.UpsertOrder(ctx, mapped.Order); err != nil {
		return err
	}

	for i := range mapped.Items {
		item := &mapped.Items[i]
		item.Item.OrderID = mapped.Order.ID
		if item.RemoteVariantID != 0 {
			variantID, err := s.catalog.VariantIDByRemoteID(ctx, item.RemoteVariantID)
			if err != nil {
				return err
			}
			if variantID != 0 {
				item.Item.VariantID = &variantID
			}
		}
		if item.RemoteProductID != 0 {
			productID, err := s.catalog.ProductIDByRemoteID(ctx, item.RemoteProductID)
			if err != nil {
				return err
			}
			if productID != 0 {
				item.Item.ProductID = &productID
			}
		}
		if err := s.orders.UpsertItem(ctx, &item.Item); err != nil {
			return err
		}
	}

	for i := range mapped.Addresses {
		mapped.Addresses[i].OrderID = mapped.Order.ID
		if err := s.orders.UpsertAddress(ctx, &mapped.Addresses[i]); err != nil {
			return err
		}
	}
	return nil
}
