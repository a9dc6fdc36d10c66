package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientAccountResponse cuenta dependiente abierta en el servicio de cuentas.
type ClientAccountResponse struct {
	ID                   int             `json:"id"`
	MasterAccountID      int             `json:"master_account_id"`
	MasterAccountCode    string          `json:"master_account_code,omitempty"`
	MasterAccountName    string          `json:"master_account_name,omitempty"`
	ClientIdentification string          `json:"client_identification"`
	AccountNumber        string          `json:"account_number"`
	AvailableBalance     decimal.Decimal `json:"available_balance"`
	BookBalance          decimal.Decimal `json:"book_balance"`
	OpeningDate          *time.Time      `json:"opening_date,omitempty"`
	State                string          `json:"state"`
	Version              int64           `json:"version"`
}

// AccountResponse cuenta maestra (producto).
type AccountResponse struct {
	ID          int        `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Version     int64      `json:"version"`
}
