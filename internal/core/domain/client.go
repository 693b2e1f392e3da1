package domain

import "time"

// Client is a customer whose recurring payments are tracked.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	CPF       string    `json:"cpf"`
	Address   string    `json:"endereco"`
	Notes     string    `json:"observacoes"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"data_cadastro"`

	Stats *ClientStats `json:"estatisticas,omitempty"`
}

// ClientStats aggregates a client's payments.
type ClientStats struct {
	TotalPayments   int64   `json:"total_pagamentos"`
	PaidPayments    int64   `json:"pagamentos_pagos"`
	PendingPayments int64   `json:"pagamentos_pendentes"`
	PendingAmount   float64 `json:"valor_pendente"`
}

// ClientFields carries the editable fields of a client.
type ClientFields struct {
	Name    string
	Email   string
	Phone   string
	CPF     string
	Address string
	Notes   string
}
