package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore — хранилище в памяти; txManager откатывает его к снимку при ошибке.
type memStore struct {
	mu        sync.Mutex
	products  map[uuid.UUID]domain.TrackedProduct
	history   []domain.PriceObservation
	alerts    map[uuid.UUID]domain.PriceAlert
	logs      []domain.ScrapeLogEntry
	profiles  map[uuid.UUID]domain.Profile
	outbox    []OutboxEvent
	appendErr error
}

func newMemStore() *memStore {
	return &memStore{
		products: map[uuid.UUID]domain.TrackedProduct{},
		alerts:   map[uuid.UUID]domain.PriceAlert{},
		profiles: map[uuid.UUID]domain.Profile{},
	}
}

type snapshot struct {
	products map[uuid.UUID]domain.TrackedProduct
	history  []domain.PriceObservation
	alerts   map[uuid.UUID]domain.PriceAlert
	logs     []domain.ScrapeLogEntry
	outbox   []OutboxEvent
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		products: make(map[uuid.UUID]domain.TrackedProduct, len(s.products)),
		alerts:   make(map[uuid.UUID]domain.PriceAlert, len(s.alerts)),
		history:  append([]domain.PriceObservation(nil), s.history...),
		logs:     append([]domain.ScrapeLogEntry(nil), s.logs...),
		outbox:   append([]OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.alerts {
		snap.alerts[k] = v
	}

	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.alerts = snap.alerts
	s.history = snap.history
	s.logs = snap.logs
	s.outbox = snap.outbox
}

// txKey помечает контекст как транзакционный
type txKey struct{}

type memTx struct {
	store *memStore
}

func (m *memTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}

	return nil
}

// products

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *domain.TrackedProduct) (*domain.TrackedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *p
	cp.CreatedAt = time.Now().UTC()
	r.s.products[cp.ID] = cp
	return &cp, nil
}

func (r memProducts) GetOwned(_ context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (r memProducts) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.TrackedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.TrackedProduct
	for _, p := range r.s.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memProducts) ApplyScrape(_ context.Context, ownerID, id uuid.UUID, u domain.ProductUpdate) (*domain.TrackedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, e.ErrProductNotFound
	}
	p.Apply(u)
	r.s.products[id] = p
	return &p, nil
}

func (r memProducts) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || p.OwnerID != ownerID {
		return e.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

// price history

type memHistory struct{ s *memStore }

func (r memHistory) Append(_ context.Context, o *domain.PriceObservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.appendErr != nil {
		return r.s.appendErr
	}
	r.s.history = append(r.s.history, *o)
	return nil
}

func (r memHistory) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.PriceObservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.PriceObservation
	for _, o := range r.s.history {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out, nil
}

// alerts

type memAlerts struct{ s *memStore }

func (r memAlerts) ListArmedByProduct(_ context.Context, ownerID, productID uuid.UUID) ([]domain.PriceAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.PriceAlert
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.OwnerID == ownerID && a.Armed() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAlerts) MarkTriggered(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.alerts[id]
	if !ok || !a.Armed() {
		return false, nil
	}
	a.Triggered = true
	a.TriggeredAt = &at
	r.s.alerts[id] = a
	return true, nil
}

func (r memAlerts) Upsert(_ context.Context, ownerID, productID uuid.UUID, target decimal.Decimal, enabled bool) (*domain.PriceAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, a := range r.s.alerts {
		if a.OwnerID == ownerID && a.ProductID == productID {
			a.TargetPrice = target
			a.Enabled = enabled
			r.s.alerts[id] = a
			return &a, nil
		}
	}

	a := domain.PriceAlert{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ProductID:   productID,
		TargetPrice: target,
		Enabled:     enabled,
		CreatedAt:   time.Now().UTC(),
	}
	r.s.alerts[a.ID] = a
	return &a, nil
}

func (r memAlerts) GetByProduct(_ context.Context, ownerID, productID uuid.UUID) (*domain.PriceAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.alerts {
		if a.OwnerID == ownerID && a.ProductID == productID {
			return &a, nil
		}
	}
	return nil, e.ErrAlertNotFound
}

func (r memAlerts) update(ownerID, id uuid.UUID, fn func(a *domain.PriceAlert)) (*domain.PriceAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.alerts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, e.ErrAlertNotFound
	}
	fn(&a)
	r.s.alerts[id] = a
	return &a, nil
}

func (r memAlerts) SetEnabled(_ context.Context, ownerID, id uuid.UUID, enabled bool) (*domain.PriceAlert, error) {
	return r.update(ownerID, id, func(a *domain.PriceAlert) { a.Enabled = enabled })
}

func (r memAlerts) Dismiss(_ context.Context, ownerID, id uuid.UUID) (*domain.PriceAlert, error) {
	return r.update(ownerID, id, func(a *domain.PriceAlert) {
		a.Enabled = false
		a.Triggered = false
	})
}

func (r memAlerts) ListTriggered(_ context.Context, ownerID uuid.UUID) ([]Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []Notification
	for _, a := range r.s.alerts {
		if a.OwnerID != ownerID || !a.Triggered {
			continue
		}
		p := r.s.products[a.ProductID]
		out = append(out, Notification{
			AlertID:     a.ID,
			TargetPrice: a.TargetPrice,
			TriggeredAt: a.TriggeredAt,
			Product: NotificationProduct{
				ID:           p.ID,
				Title:        p.Title,
				CurrentPrice: p.CurrentPrice,
				Currency:     p.Currency,
			},
		})
	}
	return out, nil
}

func (r memAlerts) CountTriggered(ctx context.Context, ownerID uuid.UUID) (int, error) {
	n, err := r.ListTriggered(ctx, ownerID)
	return len(n), err
}

// scrape logs

type memLogs struct{ s *memStore }

func (r memLogs) Create(_ context.Context, entry *domain.ScrapeLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (r memLogs) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.ScrapeLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.ScrapeLogEntry
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		if r.s.logs[i].ProductID == productID {
			out = append(out, r.s.logs[i])
		}
	}
	return out, nil
}

func (r memLogs) Get(_ context.Context, productID, id uuid.UUID) (*domain.ScrapeLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.logs {
		if l.ID == id && l.ProductID == productID {
			return &l, nil
		}
	}
	return nil, e.ErrScrapeLogNotFound
}

func (r memLogs) SetRawObjectKey(_ context.Context, id uuid.UUID, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.logs {
		if r.s.logs[i].ID == id {
			r.s.logs[i].RawObjectKey = &key
			return nil
		}
	}
	return e.ErrScrapeLogNotFound
}

// profiles

type memProfiles struct{ s *memStore }

func (r memProfiles) GetOrCreate(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		p = domain.Profile{ID: id, CreatedAt: time.Now().UTC()}
		r.s.profiles[id] = p
	}
	return &p, nil
}

func (r memProfiles) Update(_ context.Context, id uuid.UUID, req *UpdateProfileReq) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.profiles[id]
	p.FullName = req.FullName
	p.TelegramChatID = req.TelegramChatID
	now := time.Now().UTC()
	p.UpdatedAt = &now
	r.s.profiles[id] = p
	return &p, nil
}

// outbox

type memOutbox struct{ s *memStore }

func (r memOutbox) Create(_ context.Context, ev *OutboxEvent) (*OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *ev
	cp.ID = int64(len(r.s.outbox) + 1)
	r.s.outbox = append(r.s.outbox, cp)
	return &cp, nil
}

func (r memOutbox) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, errors.New("not implemented")
}

func (r memOutbox) MarkAsProcessed(context.Context, int64) error  { return nil }
func (r memOutbox) ReleaseToPending(context.Context, int64) error { return nil }

// infrastructure

type fakeExtractor struct {
	res   *ExtractRes
	err   error
	calls atomic.Int32
	gate  chan struct{} // если не nil, Extract ждёт его закрытия
}

func (f *fakeExtractor) Extract(ctx context.Context, _ *ExtractReq) (*ExtractRes, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.res
	return &cp, nil
}

type fakeBus struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (b *fakeBus) Publish(_ context.Context, ev domain.ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *fakeBus) Subscribe(context.Context, domain.ChangeFilter) (Subscription, error) {
	return nil, errors.New("not implemented")
}

func (b *fakeBus) count(table domain.Table) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, ev := range b.events {
		if ev.Table == table {
			n++
		}
	}
	return n
}

type fakeCache struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.TrackedProduct
	history  map[uuid.UUID][]domain.PriceObservation
	gens     map[uuid.UUID]int64
	deletes  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		products: map[uuid.UUID]domain.TrackedProduct{},
		history:  map[uuid.UUID][]domain.PriceObservation{},
		gens:     map[uuid.UUID]int64{},
	}
}

func (c *fakeCache) GetProduct(_ context.Context, id uuid.UUID) (*domain.TrackedProduct, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	return &p, ok, nil
}

func (c *fakeCache) SetProduct(_ context.Context, p *domain.TrackedProduct) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = *p
	return nil
}

func (c *fakeCache) DeleteProduct(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
	c.deletes++
	return nil
}

func (c *fakeCache) GetHistory(_ context.Context, id uuid.UUID) ([]domain.PriceObservation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.history[id]
	return h, ok, nil
}

func (c *fakeCache) HistoryGeneration(_ context.Context, id uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id], nil
}

func (c *fakeCache) SetHistory(_ context.Context, id uuid.UUID, gen int64, h []domain.PriceObservation) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] != gen {
		return false, nil
	}
	c.history[id] = h
	return true, nil
}

func (c *fakeCache) DeleteHistory(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	delete(c.history, id)
	return nil
}

func (c *fakeCache) cachedHistory(id uuid.UUID) ([]domain.PriceObservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.history[id]
	return h, ok
}

type fakeArchive struct {
	mu   sync.Mutex
	reqs []*ArchiveRawReq
}

func (a *fakeArchive) ArchiveRaw(req *ArchiveRawReq) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reqs = append(a.reqs, req)
}

type jsonEncoder struct{}

func (jsonEncoder) EncodeAlertTriggered(ev *AlertTriggeredEvent) ([]byte, error) {
	return json.Marshal(ev)
}

func (jsonEncoder) DecodeAlertTriggered(payload []byte) (*AlertTriggeredEvent, error) {
	var ev AlertTriggeredEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

type fakeNotifier struct {
	enabled bool
	sent    []*AlertMessage
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) SendAlert(_ context.Context, msg *AlertMessage) error {
	n.sent = append(n.sent, msg)
	return nil
}

// env собирает use case'ы поверх общего хранилища в памяти.
type env struct {
	store     *memStore
	extractor *fakeExtractor
	bus       *fakeBus
	cache     *fakeCache
	archive   *fakeArchive
	alerts    *AlertUseCase
	scrape    *ScrapeUseCase
	products  *ProductUseCase
}

func newEnv() *env {
	store := newMemStore()
	tx := &memTx{store: store}
	bus := &fakeBus{}
	cache := newFakeCache()
	archive := &fakeArchive{}
	extractor := &fakeExtractor{}
	log := logger.Nop{}

	alerts := NewAlertUC(memAlerts{store}, memProducts{store}, memOutbox{store}, jsonEncoder{}, tx, bus, log)
	scrape := NewScrapeUC(extractor, memProducts{store}, memHistory{store}, memLogs{store}, alerts, tx, bus, cache, archive, log)
	products := NewProductUC(memProducts{store}, memHistory{store}, memLogs{store}, cache, scrape, bus, log)

	return &env{
		store:     store,
		extractor: extractor,
		bus:       bus,
		cache:     cache,
		archive:   archive,
		alerts:    alerts,
		scrape:    scrape,
		products:  products,
	}
}

// addProduct кладёт заглушку товара напрямую в хранилище, без фонового запуска.
func (v *env) addProduct(owner uuid.UUID, url string) *domain.TrackedProduct {
	p, _ := memProducts{v.store}.Create(context.Background(), domain.NewTrackedProduct(owner, url))
	return p
}

func (v *env) product(id uuid.UUID) domain.TrackedProduct {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.products[id]
}

func (v *env) logs() []domain.ScrapeLogEntry {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return append([]domain.ScrapeLogEntry(nil), v.store.logs...)
}

func (v *env) history() []domain.PriceObservation {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return append([]domain.PriceObservation(nil), v.store.history...)
}

func (v *env) outbox() []OutboxEvent {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return append([]OutboxEvent(nil), v.store.outbox...)
}

func profileWithChat(id uuid.UUID, chat *int64) domain.Profile {
	return domain.Profile{ID: id, FullName: "Owner", TelegramChatID: chat, CreatedAt: time.Now().UTC()}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
