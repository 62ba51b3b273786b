package dto

import (
	storeDomain "github.com/allisson/vending/internal/store/domain"
)

// PurchaseResponse describes a completed purchase.
type PurchaseResponse struct {
	TotalSpent int64   `json:"total_spent"`
	Product    string  `json:"product"`
	CoinChange []int64 `json:"coin_change"`
}

// MapPurchaseToResponse converts a purchase result to an API response.
func MapPurchaseToResponse(result *storeDomain.PurchaseResult) PurchaseResponse {
	coinChange := result.CoinChange
	if coinChange == nil {
		coinChange = []int64{}
	}
	return PurchaseResponse{
		TotalSpent: result.TotalSpent,
		Product:    result.Product,
		CoinChange: coinChange,
	}
}
