package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account es la cuenta maestra (tipo de producto) expuesta por el servicio de cuentas.
type Account struct {
	ID             int
	AccountTypeID  int
	InterestRateID int
	Code           string
	Name           string
	Description    string
	CreatedAt      *time.Time
	ModifiedAt     *time.Time
	State          string
	Version        int64
}

// ClientAccount es la cuenta dependiente creada para un cliente. Solo lectura, vive en el servicio remoto.
type ClientAccount struct {
	ID                   int
	MasterAccountID      int
	MasterAccountCode    string
	MasterAccountName    string
	ClientIdentification string
	AccountNumber        string
	AvailableBalance     decimal.Decimal
	BookBalance          decimal.Decimal
	OpeningDate          *time.Time
	State                string
	Version              int64
}
