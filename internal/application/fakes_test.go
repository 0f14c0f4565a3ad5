package application_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"storelens-shopify-sync/internal/domain"
)

// pageOf serves scripted pages through the cursor protocol: the cursor is the
// next page index.
func pageOf[T any](pages [][]T, cursor string) (*domain.Connection[T], error) {
	idx := 0
	if cursor != "" {
		var err error
		idx, err = strconv.Atoi(cursor)
		if err != nil {
			return nil, fmt.Errorf("bad test cursor %q", cursor)
		}
	}
	if idx >= len(pages) {
		return &domain.Connection[T]{}, nil
	}
	conn := &domain.Connection[T]{}
	for _, node := range pages[idx] {
		conn.Edges = append(conn.Edges, domain.Edge[T]{Node: node})
	}
	if idx < len(pages)-1 {
		conn.PageInfo = domain.PageInfo{HasNextPage: true, EndCursor: strconv.Itoa(idx + 1)}
	}
	return conn, nil
}

type fakeAdmin struct {
	mu sync.Mutex

	shop      domain.RemoteShop
	shopErr   error
	shopBlock chan struct{}

	productPages    [][]domain.RemoteProduct
	collectionPages [][]domain.RemoteCollection
	customerPages   [][]domain.RemoteCustomer
	orderPages      [][]domain.RemoteOrder
	productsErr     error

	productFetches int

	webhooks      []domain.WebhookSubscription
	nextWebhookID int64
	creates       int
	deletes       int
	createErr     error
	deleteErr     error
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{
		shop:          domain.RemoteShop{ID: "gid://shopify/Shop/100", Name: "Test Shop", Email: "owner@test.dev", CurrencyCode: "USD"},
		nextWebhookID: 1,
	}
}

func (f *fakeAdmin) AuthorizeURL(shopDomain string, scopes []string, redirectURI, state string) string {
	return "https://" + shopDomain + "/admin/oauth/authorize?state=" + state
}

func (f *fakeAdmin) ExchangeToken(ctx context.Context, shopDomain, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty code")
	}
	return "token-" + code, nil
}

func (f *fakeAdmin) GetShop(ctx context.Context, sc domain.SyncContext) (*domain.RemoteShop, error) {
	if f.shopBlock != nil {
		<-f.shopBlock
	}
	if f.shopErr != nil {
		return nil, f.shopErr
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeAdmin) ProductsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteProduct], error) {
	f.mu.Lock()
	f.productFetches++
	f.mu.Unlock()
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return pageOf(f.productPages, cursor)
}

func (f *fakeAdmin) CollectionsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCollection], error) {
	return pageOf(f.collectionPages, cursor)
}

func (f *fakeAdmin) CustomersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCustomer], error) {
	return pageOf(f.customerPages, cursor)
}

func (f *fakeAdmin) OrdersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteOrder], error) {
	return pageOf(f.orderPages, cursor)
}

func (f *fakeAdmin) ListWebhooks(ctx context.Context, shopDomain, accessToken string) ([]domain.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WebhookSubscription, len(f.webhooks))
	copy(out, f.webhooks)
	return out, nil
}

func (f *fakeAdmin) CreateWebhook(ctx context.Context, shopDomain, accessToken, topic, address string) (*domain.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates++
	sub := domain.WebhookSubscription{RemoteID: f.nextWebhookID, Topic: topic, CallbackURL: address}
	f.nextWebhookID++
	f.webhooks = append(f.webhooks, sub)
	return &sub, nil
}

func (f *fakeAdmin) DeleteWebhook(ctx context.Context, shopDomain, accessToken string, webhookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes++
	kept := f.webhooks[:0]
	for _, sub := range f.webhooks {
		if sub.RemoteID != webhookID {
			kept = append(kept, sub)
		}
	}
	f.webhooks = kept
	return nil
}

func (f *fakeAdmin) VerifyWebhook(payload []byte, hmacHeader string) bool {
	return hmacHeader == "valid"
}

type fakeShops struct {
	mu     sync.Mutex
	byDom  map[string]*domain.Shop
	nextID int64
}

func newFakeShops() *fakeShops {
	return &fakeShops{byDom: map[string]*domain.Shop{}, nextID: 1}
}

func (f *fakeShops) UpsertByDomain(ctx context.Context, shop *domain.Shop) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byDom[shop.Domain]; ok {
		shop.ID = existing.ID
	} else {
		shop.ID = f.nextID
		f.nextID++
	}
	clone := *shop
	f.byDom[shop.Domain] = &clone
	return nil
}

func (f *fakeShops) GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shop, ok := f.byDom[shopDomain]
	if !ok {
		return nil, nil
	}
	clone := *shop
	return &clone, nil
}

func (f *fakeShops) TouchLastSynced(ctx context.Context, shopID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, shop := range f.byDom {
		if shop.ID == shopID {
			shop.LastSyncedAt = &now
		}
	}
	return nil
}

func (f *fakeShops) Deactivate(ctx context.Context, shopDomain string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if shop, ok := f.byDom[shopDomain]; ok {
		shop.Active = false
		shop.AccessToken = ""
	}
	return nil
}

type fakeCatalog struct {
	mu          sync.Mutex
	products    map[int64]*domain.Product
	variants    map[int64]*domain.ProductVariant
	images      map[int64]*domain.ProductImage
	collections map[int64]*domain.Collection
	links       map[[2]int64]bool
	nextID      int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:    map[int64]*domain.Product{},
		variants:    map[int64]*domain.ProductVariant{},
		images:      map[int64]*domain.ProductImage{},
		collections: map[int64]*domain.Collection{},
		links:       map[[2]int64]bool{},
		nextID:      1,
	}
}

func (f *fakeCatalog) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeCatalog) UpsertProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.products[p.RemoteID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = f.id()
	}
	clone := *p
	f.products[p.RemoteID] = &clone
	return nil
}

func (f *fakeCatalog) UpsertVariant(ctx context.Context, v *domain.ProductVariant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.variants[v.RemoteID]; ok {
		v.ID = existing.ID
	} else {
		v.ID = f.id()
	}
	clone := *v
	f.variants[v.RemoteID] = &clone
	return nil
}

func (f *fakeCatalog) UpsertImage(ctx context.Context, img *domain.ProductImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.images[img.RemoteID]; ok {
		img.ID = existing.ID
	} else {
		img.ID = f.id()
	}
	clone := *img
	f.images[img.RemoteID] = &clone
	return nil
}

func (f *fakeCatalog) UpsertCollection(ctx context.Context, c *domain.Collection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.collections[c.RemoteID]; ok {
		c.ID = existing.ID
	} else {
		c.ID = f.id()
	}
	clone := *c
	f.collections[c.RemoteID] = &clone
	return nil
}

func (f *fakeCatalog) LinkCollectionProduct(ctx context.Context, collectionID, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[[2]int64{collectionID, productID}] = true
	return nil
}

func (f *fakeCatalog) ProductIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[remoteID]; ok {
		return p.ID, nil
	}
	return 0, nil
}

func (f *fakeCatalog) VariantIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.variants[remoteID]; ok {
		return v.ID, nil
	}
	return 0, nil
}

type fakeCustomers struct {
	mu        sync.Mutex
	customers map[int64]*domain.Customer
	addresses map[int64]*domain.CustomerAddress
	nextID    int64
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{customers: map[int64]*domain.Customer{}, addresses: map[int64]*domain.CustomerAddress{}, nextID: 1}
}

func (f *fakeCustomers) UpsertCustomer(ctx context.Context, c *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.customers[c.RemoteID]; ok {
		c.ID = existing.ID
	} else {
		c.ID = f.nextID
		f.nextID++
	}
	clone := *c
	f.customers[c.RemoteID] = &clone
	return nil
}

func (f *fakeCustomers) UpsertAddress(ctx context.Context, a *domain.CustomerAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.addresses[a.RemoteID]; ok {
		a.ID = existing.ID
	} else {
		a.ID = f.nextID
		f.nextID++
	}
	clone := *a
	f.addresses[a.RemoteID] = &clone
	return nil
}

func (f *fakeCustomers) CustomerIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.customers[remoteID]; ok {
		return c.ID, nil
	}
	return 0, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	items  map[int64]*domain.OrderItem
	addrs  map[string]*domain.OrderAddress
	nextID int64
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]*domain.Order{}, items: map[int64]*domain.OrderItem{}, addrs: map[string]*domain.OrderAddress{}, nextID: 1}
}

func (f *fakeOrders) UpsertOrder(ctx context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.orders[o.RemoteID]; ok {
		o.ID = existing.ID
	} else {
		o.ID = f.nextID
		f.nextID++
	}
	clone := *o
	f.orders[o.RemoteID] = &clone
	return nil
}

func (f *fakeOrders) UpsertItem(ctx context.Context, item *domain.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.items[item.RemoteID]; ok {
		item.ID = existing.ID
	} else {
		item.ID = f.nextID
		f.nextID++
	}
	clone := *item
	f.items[item.RemoteID] = &clone
	return nil
}

func (f *fakeOrders) UpsertAddress(ctx context.Context, a *domain.OrderAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d/%s", a.OrderID, a.Kind)
	if existing, ok := f.addrs[key]; ok {
		a.ID = existing.ID
	} else {
		a.ID = f.nextID
		f.nextID++
	}
	clone := *a
	f.addrs[key] = &clone
	return nil
}

type fakeSyncLogs struct {
	mu     sync.Mutex
	logs   []*domain.SyncLog
	nextID int64
}

func newFakeSyncLogs() *fakeSyncLogs {
	return &fakeSyncLogs{nextID: 1}
}

func (f *fakeSyncLogs) Create(ctx context.Context, log *domain.SyncLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = f.nextID
	f.nextID++
	clone := *log
	f.logs = append(f.logs, &clone)
	return nil
}

func (f *fakeSyncLogs) Update(ctx context.Context, log *domain.SyncLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.logs {
		if existing.ID == log.ID {
			clone := *log
			f.logs[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("unknown sync log %d", log.ID)
}

func (f *fakeSyncLogs) Latest(ctx context.Context, shopID int64, entity domain.EntityType) (*domain.SyncLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].ShopID == shopID && f.logs[i].EntityType == entity {
			clone := *f.logs[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSyncLogs) LatestPerEntity(ctx context.Context, shopID int64) ([]domain.SyncLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	latest := map[domain.EntityType]domain.SyncLog{}
	for _, log := range f.logs {
		if log.ShopID == shopID {
			latest[log.EntityType] = *log
		}
	}
	out := make([]domain.SyncLog, 0, len(latest))
	for _, log := range latest {
		out = append(out, log)
	}
	return out, nil
}

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{}}
}

func (f *fakeSettings) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeSettings) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*domain.WebhookEvent
}

func (f *fakeEvents) Log(ctx context.Context, event *domain.WebhookEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *event
	f.events = append(f.events, &clone)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domain.WebhookEvent
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, event *domain.WebhookEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}
