package application

import "github.com/shopspring/decimal"

type SetAccountConfigCommand struct {
	AccessToken  string
	UserID       int64
	ExchangeRate decimal.Decimal
	QuotaPerUnit decimal.Decimal
}
