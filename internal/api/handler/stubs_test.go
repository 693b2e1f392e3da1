package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/api/middleware"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// ---- services ----

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	verifyFn func(ctx context.Context, token string) (*domain.Claims, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Verify(ctx context.Context, token string) (*domain.Claims, error) {
	return s.verifyFn(ctx, token)
}

type stubUserService struct {
	createFn     func(ctx context.Context, actorID string, in ports.CreateUserInput) (*domain.User, error)
	listFn       func(ctx context.Context) ([]*domain.User, error)
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	updateFn     func(ctx context.Context, actorID, id string, in ports.UpdateUserInput) error
	deactivateFn func(ctx context.Context, actorID, id string) error
}

func (s *stubUserService) Create(ctx context.Context, actorID string, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actorID, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, actorID, id string, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, actorID, id, in)
}

func (s *stubUserService) Deactivate(ctx context.Context, actorID, id string) error {
	return s.deactivateFn(ctx, actorID, id)
}

type stubClientService struct {
	createFn     func(ctx context.Context, actorID string, fields domain.ClientFields) (*domain.Client, error)
	listFn       func(ctx context.Context, search string) ([]*domain.Client, error)
	getFn        func(ctx context.Context, id string) (*domain.Client, error)
	updateFn     func(ctx context.Context, actorID, id string, fields domain.ClientFields) error
	deactivateFn func(ctx context.Context, actorID, id string) error
}

func (s *stubClientService) Create(ctx context.Context, actorID string, fields domain.ClientFields) (*domain.Client, error) {
	return s.createFn(ctx, actorID, fields)
}

func (s *stubClientService) List(ctx context.Context, search string) ([]*domain.Client, error) {
	return s.listFn(ctx, search)
}

func (s *stubClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) Update(ctx context.Context, actorID, id string, fields domain.ClientFields) error {
	return s.updateFn(ctx, actorID, id, fields)
}

func (s *stubClientService) Deactivate(ctx context.Context, actorID, id string) error {
	return s.deactivateFn(ctx, actorID, id)
}

type stubPaymentService struct {
	createFn        func(ctx context.Context, actorID string, in ports.CreatePaymentInput) (*domain.Payment, error)
	listFn          func(ctx context.Context, in ports.ListPaymentsInput) ([]*domain.Payment, error)
	clientHistoryFn func(ctx context.Context, clientID string) ([]*domain.Payment, error)
	payFn           func(ctx context.Context, actorID, id, method string) error
	cancelFn        func(ctx context.Context, actorID, id string) error
	deleteFn        func(ctx context.Context, actorID, id string) error
}

func (s *stubPaymentService) Create(ctx context.Context, actorID string, in ports.CreatePaymentInput) (*domain.Payment, error) {
	return s.createFn(ctx, actorID, in)
}

func (s *stubPaymentService) List(ctx context.Context, in ports.ListPaymentsInput) ([]*domain.Payment, error) {
	return s.listFn(ctx, in)
}

func (s *stubPaymentService) ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	return s.clientHistoryFn(ctx, clientID)
}

func (s *stubPaymentService) Pay(ctx context.Context, actorID, id, method string) error {
	return s.payFn(ctx, actorID, id, method)
}

func (s *stubPaymentService) Cancel(ctx context.Context, actorID, id string) error {
	return s.cancelFn(ctx, actorID, id)
}

func (s *stubPaymentService) Delete(ctx context.Context, actorID, id string) error {
	return s.deleteFn(ctx, actorID, id)
}

type stubReportService struct {
	dashboardFn     func(ctx context.Context) (*domain.DashboardStats, error)
	overdueFn       func(ctx context.Context) ([]*domain.OverdueClient, error)
	paidThisMonthFn func(ctx context.Context) ([]*domain.PaidClient, error)
}

func (s *stubReportService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return s.dashboardFn(ctx)
}

func (s *stubReportService) Overdue(ctx context.Context) ([]*domain.OverdueClient, error) {
	return s.overdueFn(ctx)
}

func (s *stubReportService) PaidThisMonth(ctx context.Context) ([]*domain.PaidClient, error) {
	return s.paidThisMonthFn(ctx)
}

type stubHistoryService struct {
	recentFn func(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}

func (s *stubHistoryService) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	return s.recentFn(ctx, limit)
}

// ---- helpers ----

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a request context with an optional JSON body.
func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser attaches claims the way Authenticate does.
func asUser(c echo.Context, id string, role domain.Role) echo.Context {
	c.Set(middleware.CtxClaims, &domain.Claims{UserID: id, Email: id + "@example.com", Role: role})
	return c
}

// httpError asserts err is an *echo.HTTPError and returns it.
func httpError(err error) (*echo.HTTPError, bool) {
	he, ok := err.(*echo.HTTPError)
	return he, ok
}
