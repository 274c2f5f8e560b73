// Package store is the in-memory record store: seeded orders plus the
// counters behind every issued identifier (tickets, refunds, replacements,
// credits, callbacks, escalations, shipments). All state is held on the
// Store instance and counter increments are serialized by a mutex, so a
// host that parallelizes requests still gets unique, ordered identifiers.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// etaDateFormat renders ETAs the way they appear in customer replies.
const etaDateFormat = "Jan 02, 2006"

// Order is a stored order record.
type Order struct {
	ID             string
	CreatedAt      time.Time
	Status         string
	RefundableDays int
	Amount         float64
}

// Shipment describes a dispatched missing-part shipment.
type Shipment struct {
	ID      string
	Content string
	ETA     string
}

// Refund, Replacement, Credit, Callback and Escalation records are retained
// for inspection by the demo runner and tests.
type Refund struct {
	ID      string
	OrderID string
	Amount  float64
	ETA     string
}

type Replacement struct {
	ID       string
	OrderID  string
	SKU      string
	Delivery string
}

type Credit struct {
	ID      string
	Account string
	Amount  float64
	Applied string
}

type Callback struct {
	Phone  string
	Window string
}

type Escalation struct {
	ID     string
	Reason string
}

// Ticket records a created support case.
type Ticket struct {
	ID      string
	Kind    string
	Payload map[string]string
}

// Store holds all records and counters for one process.
type Store struct {
	mu    sync.Mutex
	clock func() time.Time

	orders map[string]*Order

	ticketSeq int

	tickets      []Ticket
	refunds      []Refund
	replacements []Replacement
	credits      []Credit
	callbacks    []Callback
	escalations  []Escalation
	shipments    []Shipment
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects a clock for deterministic ids and ETAs in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// New returns an empty store. Ticket numbering starts at 1001.
func New(opts ...Option) *Store {
	s := &Store{
		clock:     time.Now,
		orders:    make(map[string]*Order),
		ticketSeq: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded returns a store preloaded with the demo orders, created relative
// to the store clock so refund-window checks behave the same on any day.
func NewSeeded(refundWindowDays int, opts ...Option) *Store {
	s := New(opts...)
	now := s.clock()
	seed := []struct {
		id      string
		daysAgo int
		status  string
		amount  float64
	}{
		{"ORD12345", 20, "delivered", 79.99},
		{"ORD9ZX88", 45, "delivered", 129.00},
		{"ORD-7842-CA", 13, "carrier_damage_scan", 149.00},
		{"US-55291", 7, "delivered", 29.00},
		{"CA-993144", 21, "delivered", 199.00},
	}
	for _, o := range seed {
		s.PutOrder(&Order{
			ID:             o.id,
			CreatedAt:      now.AddDate(0, 0, -o.daysAgo),
			Status:         o.status,
			RefundableDays: refundWindowDays,
			Amount:         o.amount,
		})
	}
	return s
}

// PutOrder inserts or replaces an order record.
func (s *Store) PutOrder(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// LookupOrder returns the order for id, or nil when unknown.
func (s *Store) LookupOrder(id string) *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// DaysSince returns whole days elapsed between the order creation and now.
func (s *Store) DaysSince(o *Order) int {
	return int(s.clock().Sub(o.CreatedAt).Hours() / 24)
}

// CreateTicket issues a new support case id. Cancellation threats get the
// RET retention prefix; everything else is TCK. The id embeds today's date,
// a two-letter kind tag and the next counter value.
func (s *Store) CreateTicket(kind string, payload map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := "TCK"
	if kind == "cancellation_threat" {
		prefix = "RET"
	}
	s.ticketSeq++
	tag := strings.ToUpper(kind)
	if len(tag) > 2 {
		tag = tag[:2]
	}
	id := fmt.Sprintf("%s-%s-%s%d", prefix, s.clock().Format("2006-01-02"), tag, s.ticketSeq)
	s.tickets = append(s.tickets, Ticket{ID: id, Kind: kind, Payload: payload})
	return id
}

// IssueRefund records a refund and returns its id and posting ETA.
func (s *Store) IssueRefund(orderID string, amount float64, etaDays int) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	id := fmt.Sprintf("RF-%s-%04d", now.Format("20060102"), len(s.refunds)+1)
	eta := now.AddDate(0, 0, etaDays).Format(etaDateFormat)
	s.refunds = append(s.refunds, Refund{ID: id, OrderID: orderID, Amount: amount, ETA: eta})
	return id, eta
}

// CreateReplacement records a replacement shipment and returns its id and
// delivery ETA.
func (s *Store) CreateReplacement(orderID, skuHint string, deliveryDays int) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	id := fmt.Sprintf("RP-%s-%04d", now.Format("20060102"), len(s.replacements)+1)
	eta := now.AddDate(0, 0, deliveryDays).Format(etaDateFormat)
	s.replacements = append(s.replacements, Replacement{ID: id, OrderID: orderID, SKU: skuHint, Delivery: eta})
	return id, eta
}

// AddCredit records an account credit and returns its id and applied date.
func (s *Store) AddCredit(accountID string, amount float64) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	id := fmt.Sprintf("CR-%s-%04d", now.Format("20060102"), len(s.credits)+1)
	applied := now.Format(etaDateFormat)
	s.credits = append(s.credits, Credit{ID: id, Account: accountID, Amount: amount, Applied: applied})
	return id, applied
}

// ScheduleCallback records a callback and returns the confirmation line.
func (s *Store) ScheduleCallback(phone, window string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callbacks = append(s.callbacks, Callback{Phone: phone, Window: window})
	return fmt.Sprintf("Callback scheduled to %s %s", phone, window)
}

// Escalate records an escalation and returns its id.
func (s *Store) Escalate(reason string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("ESC-%s-%04d", s.clock().Format("20060102"), len(s.escalations)+1)
	s.escalations = append(s.escalations, Escalation{ID: id, Reason: reason})
	return id
}

// ShipPart dispatches a missing part and returns the shipment record.
func (s *Store) ShipPart(partName string, etaDays int) Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh := Shipment{
		ID:      fmt.Sprintf("S%04d", len(s.shipments)+1),
		Content: partName,
		ETA:     s.clock().AddDate(0, 0, etaDays).Format(etaDateFormat),
	}
	s.shipments = append(s.shipments, sh)
	return sh
}

// Credits returns a copy of all issued credits.
func (s *Store) Credits() []Credit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Credit(nil), s.credits...)
}

// Tickets returns a copy of all created tickets.
func (s *Store) Tickets() []Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Ticket(nil), s.tickets...)
}
