package newapi

import "github.com/shopspring/decimal"

type userSelfResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *userSelfData `json:"data"`
}

type userSelfData struct {
	Quota     int64 `json:"quota"`
	UsedQuota int64 `json:"used_quota"`
}

type subscriptionResponse struct {
	Object             string          `json:"object"`
	HasPaymentMethod   bool            `json:"has_payment_method"`
	HardLimitUSD       decimal.Decimal `json:"hard_limit_usd"`
	SoftLimitUSD       decimal.Decimal `json:"soft_limit_usd"`
	SystemHardLimitUSD decimal.Decimal `json:"system_hard_limit_usd"`
	AccessUntil        int64           `json:"access_until"`
}

type usageResponse struct {
	Object string `json:"object"`
	// TotalUsage is in cents.
	TotalUsage decimal.Decimal `json:"total_usage"`
}
