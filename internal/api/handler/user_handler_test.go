package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

func TestUserHandler_Create_DefaultsToOperator(t *testing.T) {
	var got ports.CreateUserInput
	stub := &stubUserService{
		createFn: func(_ context.Context, actorID string, in ports.CreateUserInput) (*domain.User, error) {
			if actorID != "admin1" {
				t.Fatalf("expected actor admin1, got %q", actorID)
			}
			got = in
			return &domain.User{ID: "u9", Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/api/usuarios", `{"nome":"Ana","email":"ana@academia.com","senha":"senha123"}`)
	if err := handler.Create(asUser(c, "admin1", domain.RoleAdmin)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Role != domain.RoleOperator || got.Password != "senha123" {
		t.Fatalf("unexpected service input: %+v", got)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.ID != "u9" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, string, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	bodies := map[string]string{
		"missing name":   `{"email":"a@b.com","senha":"senha123"}`,
		"bad email":      `{"nome":"A","email":"nope","senha":"senha123"}`,
		"short password": `{"nome":"A","email":"a@b.com","senha":"123"}`,
		"unknown role":   `{"nome":"A","email":"a@b.com","senha":"senha123","tipo":"root"}`,
	}
	for name, body := range bodies {
		c, _ := newJSONContext(newEcho(), http.MethodPost, "/api/usuarios", body)
		if err := handler.Create(asUser(c, "admin1", domain.RoleAdmin)); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestUserHandler_Create_RequiresClaims(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(newEcho(), http.MethodPost, "/api/usuarios", `{"nome":"A","email":"a@b.com","senha":"senha123"}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, string, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newJSONContext(newEcho(), http.MethodPost, "/api/usuarios", `{"nome":"A","email":"a@b.com","senha":"senha123"}`)
	if err := handler.Create(asUser(c, "admin1", domain.RoleAdmin)); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) { return nil, nil },
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(newEcho(), http.MethodGet, "/api/usuarios", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestUserHandler_Update(t *testing.T) {
	var gotID string
	var got ports.UpdateUserInput
	stub := &stubUserService{
		updateFn: func(_ context.Context, _, id string, in ports.UpdateUserInput) error {
			gotID, got = id, in
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(newEcho(), http.MethodPut, "/api/usuarios/u2", `{"nome":"Bia","email":"bia@academia.com","tipo":"admin"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	if err := handler.Update(asUser(c, "admin1", domain.RoleAdmin)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK || gotID != "u2" {
		t.Fatalf("expected 200 for u2, got %d for %q", rec.Code, gotID)
	}
	if got.Role != domain.RoleAdmin || got.Password != "" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	stub := &stubUserService{
		deactivateFn: func(context.Context, string, string) error { return domain.ErrUserNotFound },
	}
	handler := NewUserHandler(stub)

	c, _ := newJSONContext(newEcho(), http.MethodDelete, "/api/usuarios/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := handler.Delete(asUser(c, "admin1", domain.RoleAdmin)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
