package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStubFailure = errors.New("stub failure")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users    map[string]*domain.User
	nextID   int
	touched  map[string]time.Time
	touchErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), touched: make(map[string]time.Time)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListActive(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update domain.UserUpdate) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == update.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.Name, u.Email, u.Role = update.Name, update.Email, update.Role
	if update.PasswordHash != "" {
		u.PasswordHash = update.PasswordHash
	}
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) TouchLastAccess(_ context.Context, id string, at time.Time) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastAccessAt = &at
	r.touched[id] = at
	return nil
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

type stubHistoryRepo struct {
	entries   []*domain.HistoryEntry
	appendErr error
	lastLimit int
}

func (r *stubHistoryRepo) Append(_ context.Context, entry *domain.HistoryEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubHistoryRepo) Recent(_ context.Context, limit int) ([]*domain.HistoryEntry, error) {
	r.lastLimit = limit
	out := make([]*domain.HistoryEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *stubHistoryRepo) actions() []domain.Action {
	out := make([]domain.Action, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

// ---------------------------------------------------------------------------
// Password hasher and tokens
// ---------------------------------------------------------------------------

// stubHasher stores "hashed:<plaintext>".
type stubHasher struct {
	verifyErr error
}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h stubHasher) Verify(password, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+password, nil
}

type stubTokens struct {
	issued   int
	issueErr error
}

func (s *stubTokens) Issue(userID, email string, role domain.Role) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.issued++
	return strings.Join([]string{userID, email, string(role)}, "|"), nil
}

func (s *stubTokens) Validate(token string) (*domain.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Claims{UserID: parts[0], Email: parts[1], Role: domain.Role(parts[2])}, nil
}

// ---------------------------------------------------------------------------
// Clients and payments
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients map[string]*domain.Client
	nextID  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if c.CPF != "" {
		for _, other := range r.clients {
			if other.CPF == c.CPF {
				return nil, domain.ErrDuplicateCPF
			}
		}
	}
	r.nextID++
	clone := *c
	clone.ID = fmt.Sprintf("client_%d", r.nextID)
	r.clients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClientRepo) List(_ context.Context, search string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		if !c.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) && !strings.Contains(c.CPF, search) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, f domain.ClientFields) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Name, c.Email, c.Phone, c.CPF, c.Address, c.Notes = f.Name, f.Email, f.Phone, f.CPF, f.Address, f.Notes
	return nil
}

func (r *stubClientRepo) Deactivate(_ context.Context, id string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Active = false
	return nil
}

type stubPaymentRepo struct {
	payments map[string]*domain.Payment
	nextID   int
	// afterFind runs once FindByID has copied the payment, simulating a
	// concurrent write between read and update.
	afterFind func(id string)
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("payment_%d", r.nextID)
	r.payments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	if r.afterFind != nil {
		hook := r.afterFind
		r.afterFind = nil
		hook(id)
	}
	return &clone, nil
}

func (r *stubPaymentRepo) List(_ context.Context, f ports.ListPaymentsFilter) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Month != "" && p.DueDate.Format(domain.MonthLayout) != f.Month {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPaymentRepo) ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	return r.List(ctx, ports.ListPaymentsFilter{ClientID: clientID})
}

func (r *stubPaymentRepo) Stats(_ context.Context, clientID string) (*domain.ClientStats, error) {
	stats := &domain.ClientStats{}
	for _, p := range r.payments {
		if p.ClientID != clientID {
			continue
		}
		stats.TotalPayments++
		switch p.Status {
		case domain.PaymentPaid:
			stats.PaidPayments++
		case domain.PaymentPending:
			stats.PendingPayments++
			stats.PendingAmount += p.Amount
		}
	}
	return stats, nil
}

func (r *stubPaymentRepo) MarkPaid(_ context.Context, id, method string, paidAt domain.Date) error {
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if !p.Status.CanTransitionTo(domain.PaymentPaid) {
		return domain.ErrInvalidTransition
	}
	p.Status, p.Method, p.PaidAt = domain.PaymentPaid, method, &paidAt
	return nil
}

func (r *stubPaymentRepo) SetStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if !p.Status.CanTransitionTo(status) {
		return domain.ErrInvalidTransition
	}
	p.Status = status
	return nil
}

func (r *stubPaymentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(r.payments, id)
	return nil
}

// ---------------------------------------------------------------------------
// Reports and cache
// ---------------------------------------------------------------------------

type stubReportRepo struct {
	dashboardCalls int
	lastToday      domain.Date
	lastMonth      string
	stats          domain.DashboardStats
}

func (r *stubReportRepo) Dashboard(_ context.Context, today domain.Date) (*domain.DashboardStats, error) {
	r.dashboardCalls++
	r.lastToday = today
	stats := r.stats
	return &stats, nil
}

func (r *stubReportRepo) Overdue(_ context.Context, today domain.Date) ([]*domain.OverdueClient, error) {
	r.lastToday = today
	return []*domain.OverdueClient{}, nil
}

func (r *stubReportRepo) PaidInMonth(_ context.Context, month string) ([]*domain.PaidClient, error) {
	r.lastMonth = month
	return []*domain.PaidClient{}, nil
}

type stubStatsCache struct {
	entries       map[string]domain.DashboardStats
	getErr        error
	setErr        error
	invalidations int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]domain.DashboardStats)}
}

func (c *stubStatsCache) Get(_ context.Context, key string) (*domain.DashboardStats, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	stats, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &stats, nil
}

func (c *stubStatsCache) Set(_ context.Context, key string, stats *domain.DashboardStats) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = *stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.entries = make(map[string]domain.DashboardStats)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
