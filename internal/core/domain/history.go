package domain

import "time"

// Action is the code stored with every audit entry.
type Action string

const (
	ActionLogin           Action = "LOGIN"
	ActionCreateUser      Action = "CRIAR_USUARIO"
	ActionUpdateUser      Action = "ATUALIZAR_USUARIO"
	ActionDeleteUser      Action = "DELETAR_USUARIO"
	ActionCreateClient    Action = "CRIAR_CLIENTE"
	ActionUpdateClient    Action = "ATUALIZAR_CLIENTE"
	ActionDeleteClient    Action = "DELETAR_CLIENTE"
	ActionCreatePayment   Action = "CRIAR_PAGAMENTO"
	ActionRegisterPayment Action = "REGISTRAR_PAGAMENTO"
	ActionCancelPayment   Action = "CANCELAR_PAGAMENTO"
	ActionDeletePayment   Action = "DELETAR_PAGAMENTO"
)

// HistoryEntry is one append-only audit record. UserName is filled on read.
type HistoryEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"usuario_id"`
	UserName    string    `json:"usuario_nome,omitempty"`
	Action      Action    `json:"acao"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"data_acao"`
}
