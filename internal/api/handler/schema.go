package handler

import "github.com/NatanCav/FlowFit/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. It mirrors the one rendered by the API error handler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"   example:"Token inválido"`
}

// messageResponse acknowledges a mutation.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	User    domain.UserSummary `json:"usuario"`
}

type verifyResponse struct {
	Success bool       `json:"success"`
	Claims  claimsView `json:"usuario"`
}

// claimsView is the token payload as it travels on the wire; exp is a Unix
// timestamp.
type claimsView struct {
	UserID    string      `json:"usuario_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"tipo"`
	ExpiresAt int64       `json:"exp"`
}

func newClaimsView(c *domain.Claims) claimsView {
	return claimsView{UserID: c.UserID, Email: c.Email, Role: c.Role, ExpiresAt: c.ExpiresAt.Unix()}
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"nome"  validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
	Role     string `json:"tipo"  validate:"omitempty,oneof=admin operador"`
}

type updateUserRequest struct {
	Name     string `json:"nome"  validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"omitempty,min=6"`
	Role     string `json:"tipo"  validate:"required,oneof=admin operador"`
}

// --- Clients ---

type clientRequest struct {
	Name    string `json:"nome"        validate:"required"`
	Email   string `json:"email"       validate:"omitempty,email"`
	Phone   string `json:"telefone"`
	CPF     string `json:"cpf"`
	Address string `json:"endereco"`
	Notes   string `json:"observacoes"`
}

// --- Payments ---

type createPaymentRequest struct {
	ClientID    string  `json:"cliente_id" validate:"required"`
	Amount      float64 `json:"valor"      validate:"required,gt=0"`
	DueDate     string  `json:"vencimento" validate:"required"`
	Description string  `json:"descricao"`
}

type payRequest struct {
	Method string `json:"metodo_pagamento"`
}

// --- Status ---

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"mensagem"`
}
