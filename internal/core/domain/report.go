package domain

// DashboardStats summarizes the state of receivables.
type DashboardStats struct {
	TotalClients       int64   `json:"total_clientes"`
	PendingPayments    int64   `json:"pagamentos_pendentes"`
	OverduePayments    int64   `json:"pagamentos_vencidos"`
	PendingAmount      float64 `json:"valor_pendente"`
	OverdueAmount      float64 `json:"valor_vencido"`
	OpenAmount         float64 `json:"valor_em_aberto"`
	ReceivedThisMonth  float64 `json:"valor_recebido_mes"`
	ClientsPaidInMonth int64   `json:"clientes_pagaram_mes"`
}

// OverdueClient is a client with at least one pending payment past due.
type OverdueClient struct {
	ClientID      string  `json:"id"`
	Name          string  `json:"nome"`
	Phone         string  `json:"telefone"`
	Email         string  `json:"email"`
	OpenCount     int64   `json:"qtd_pendencias"`
	TotalAmount   float64 `json:"valor_total"`
	OldestDueDate Date    `json:"vencimento_mais_antigo"`
}

// PaidClient is a client that settled payments in a given month.
type PaidClient struct {
	ClientID    string  `json:"id"`
	Name        string  `json:"nome"`
	Phone       string  `json:"telefone"`
	PaidCount   int64   `json:"qtd_pagamentos"`
	TotalAmount float64 `json:"valor_total"`
	LastPaidAt  Date    `json:"ultimo_pagamento"`
}
