package domain

import "time"

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pendente"
	PaymentPaid      PaymentStatus = "pago"
	PaymentOverdue   PaymentStatus = "atrasado"
	PaymentCancelled PaymentStatus = "cancelado"
)

// DefaultPaymentMethod is recorded when a payment is settled without a method.
const DefaultPaymentMethod = "Não informado"

// validTransitions defines the allowed payment status transitions.
// Paid and cancelled are terminal.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentCancelled, PaymentOverdue},
	PaymentOverdue: {PaymentPaid, PaymentCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionSources returns the statuses that may move to s, in a stable order.
func (s PaymentStatus) TransitionSources() []PaymentStatus {
	var sources []PaymentStatus
	for _, from := range []PaymentStatus{PaymentPending, PaymentOverdue, PaymentPaid, PaymentCancelled} {
		if from.CanTransitionTo(s) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

// Payment is a single amount owed by a client, due on a calendar date.
type Payment struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"cliente_id"`
	Amount      float64       `json:"valor"`
	DueDate     Date          `json:"vencimento"`
	PaidAt      *Date         `json:"data_pagamento"`
	Status      PaymentStatus `json:"status"`
	Description string        `json:"descricao"`
	Method      string        `json:"metodo_pagamento,omitempty"`
	Notes       string        `json:"observacoes,omitempty"`
	RecordedBy  string        `json:"usuario_registro_id,omitempty"`
	CreatedAt   time.Time     `json:"data_criacao"`

	// Joined on read, depending on the query.
	ClientName     string `json:"cliente_nome,omitempty"`
	ClientCPF      string `json:"cliente_cpf,omitempty"`
	ClientPhone    string `json:"cliente_telefone,omitempty"`
	RecordedByName string `json:"usuario_nome,omitempty"`
}

// IsOverdue reports whether a still-open payment is past its due date as of today.
func (p *Payment) IsOverdue(today Date) bool {
	return (p.Status == PaymentPending || p.Status == PaymentOverdue) && p.DueDate.Before(today)
}
