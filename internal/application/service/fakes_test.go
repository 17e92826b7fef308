package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/pkg/printer"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories, so tests observe the same cross-repo effects the
// database would produce.
type fakeStore struct {
	mu sync.Mutex

	orders      map[uuid.UUID]entity.Order
	lines       map[uuid.UUID]entity.OrderLine
	payments    []entity.Payment
	tickets     map[uuid.UUID]entity.Ticket
	audits      []entity.TicketAudit
	restaurants map[uuid.UUID]entity.Restaurant
	configs     map[uuid.UUID]entity.RestaurantConfig
	products    map[uuid.UUID]entity.Product
	tables      map[uuid.UUID]entity.DiningTable
	users       map[uuid.UUID]entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:      make(map[uuid.UUID]entity.Order),
		lines:       make(map[uuid.UUID]entity.OrderLine),
		tickets:     make(map[uuid.UUID]entity.Ticket),
		restaurants: make(map[uuid.UUID]entity.Restaurant),
		configs:     make(map[uuid.UUID]entity.RestaurantConfig),
		products:    make(map[uuid.UUID]entity.Product),
		tables:      make(map[uuid.UUID]entity.DiningTable),
		users:       make(map[uuid.UUID]entity.User),
	}
}

func (s *fakeStore) orderLines(orderID uuid.UUID) []entity.OrderLine {
	var lines []entity.OrderLine
	for _, l := range s.lines {
		if l.OrderID == orderID {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	return lines
}

func (s *fakeStore) orderPayments(orderID uuid.UUID) []entity.Payment {
	var rows []entity.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			rows = append(rows, p)
		}
	}
	return rows
}

// --- orders ---

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.store.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	o.Lines = r.store.orderLines(id)
	o.Payments = r.store.orderPayments(id)
	if o.TableID != nil {
		if tbl, ok := r.store.tables[*o.TableID]; ok {
			o.Table = &tbl
		}
	}
	if o.UserID != nil {
		if u, ok := r.store.users[*o.UserID]; ok {
			o.User = &u
		}
	}
	return &o, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if params != nil && params.Status != nil && o.Status != *params.Status {
			continue
		}
		if params != nil && params.OpenOnly && o.Status.IsTerminal() {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []enum.OrderStatus, order *entity.Order) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[id]
	if !ok {
		return false, nil
	}
	match := false
	for _, e := range expected {
		if stored.Status == e {
			match = true
			break
		}
	}
	if !match {
		return false, nil
	}
	stored.Status = order.Status
	stored.PaidAt = order.PaidAt
	stored.CancelledAt = order.CancelledAt
	stored.CancelledFrom = order.CancelledFrom
	stored.Folio = order.Folio
	r.store.orders[id] = stored
	return true, nil
}

func (r *fakeOrderRepo) UpdateTotals(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[order.ID]
	if !ok {
		return nil
	}
	stored.SubTotal = order.SubTotal
	stored.Tax = order.Tax
	stored.Total = order.Total
	stored.DeliveryFee = order.DeliveryFee
	stored.RoundingAdjustment = order.RoundingAdjustment
	stored.TaxMode = order.TaxMode
	stored.TaxRate = order.TaxRate
	r.store.orders[order.ID] = stored
	return nil
}

// --- order lines ---

type fakeLineRepo struct{ store *fakeStore }

func (r *fakeLineRepo) Create(ctx context.Context, line *entity.OrderLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	r.store.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLineRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.orderLines(orderID), nil
}

func (r *fakeLineRepo) Update(ctx context.Context, line *entity.OrderLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.lines, id)
	return nil
}

// --- payments ---

type fakePaymentRepo struct{ store *fakeStore }

func (r *fakePaymentRepo) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range payments {
		if payments[i].ID == uuid.Nil {
			payments[i].ID = uuid.New()
		}
		r.store.payments = append(r.store.payments, payments[i])
	}
	return nil
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.orderPayments(orderID), nil
}

// --- restaurants ---

type fakeRestaurantRepo struct{ store *fakeStore }

func (r *fakeRestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	r.store.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *fakeRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rest, ok := r.store.restaurants[id]
	if !ok {
		return nil, nil
	}
	if cfg, ok := r.store.configs[id]; ok {
		rest.Config = &cfg
	}
	return &rest, nil
}

func (r *fakeRestaurantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rest := range r.store.restaurants {
		if rest.Slug == slug {
			return &rest, nil
		}
	}
	return nil, nil
}

func (r *fakeRestaurantRepo) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *fakeRestaurantRepo) GetConfig(ctx context.Context, restaurantID uuid.UUID) (*entity.RestaurantConfig, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cfg, ok := r.store.configs[restaurantID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *fakeRestaurantRepo) SaveConfig(ctx context.Context, config *entity.RestaurantConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.configs[config.RestaurantID] = *config
	return nil
}

func (r *fakeRestaurantRepo) NextFolio(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cfg := r.store.configs[restaurantID]
	claimed := cfg.NextFolio
	cfg.NextFolio++
	r.store.configs[restaurantID] = cfg
	return claimed, nil
}

// --- tables ---

type fakeTableRepo struct{ store *fakeStore }

func (r *fakeTableRepo) Create(ctx context.Context, table *entity.DiningTable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	r.store.tables[table.ID] = *table
	return nil
}

func (r *fakeTableRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tables[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTableRepo) List(ctx context.Context) ([]entity.DiningTable, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.DiningTable
	for _, t := range r.store.tables {
		out = append(out, t)
	}
	return out, nil
}

// --- products ---

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(ctx context.Context, activeOnly bool) ([]entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, p := range r.store.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// --- tickets ---

type fakeTicketRepo struct{ store *fakeStore }

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	r.store.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tickets[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTicketRepo) GetByOrderAndKind(ctx context.Context, orderID uuid.UUID, kind enum.TicketKind) (*entity.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.tickets {
		if t.OrderID == orderID && t.Kind == kind {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTicketRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Ticket
	for _, t := range r.store.tickets {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) UpdateContent(ctx context.Context, ticket *entity.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.tickets[ticket.ID]
	if !ok {
		return nil
	}
	stored.Content = ticket.Content
	stored.QRPayload = ticket.QRPayload
	stored.GeneratedAt = ticket.GeneratedAt
	stored.GeneratedBy = ticket.GeneratedBy
	r.store.tickets[ticket.ID] = stored
	return nil
}

func (r *fakeTicketRepo) IncrementCopies(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.tickets[id]
	if !ok {
		return nil
	}
	stored.CopiesPrinted++
	r.store.tickets[id] = stored
	return nil
}

// --- ticket audits ---

type fakeAuditRepo struct{ store *fakeStore }

func (r *fakeAuditRepo) Create(ctx context.Context, audit *entity.TicketAudit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	r.store.audits = append(r.store.audits, *audit)
	return nil
}

func (r *fakeAuditRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.TicketAudit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.TicketAudit
	for _, a := range r.store.audits {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- print sink ---

// fakeSink records delivered jobs and can be told to fail.
type fakeSink struct {
	mu       sync.Mutex
	jobs     []printer.Job
	printErr error
	printers []string
	pingErr  error
}

func (s *fakeSink) Print(ctx context.Context, job *printer.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printErr != nil {
		return s.printErr
	}
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *fakeSink) Ping(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pingErr != nil {
		return nil, s.pingErr
	}
	return s.printers, nil
}

func (s *fakeSink) jobsOfKind(kind string) []printer.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []printer.Job
	for _, j := range s.jobs {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}
