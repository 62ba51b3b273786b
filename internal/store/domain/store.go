// Package domain defines coin handling and purchase results for the vending store.
package domain

import (
	"slices"
)

// DefaultDenominations are the coins accepted when no other set is configured.
var DefaultDenominations = []int64{100, 50, 20, 10, 5}

// PurchaseResult describes a completed purchase.
type PurchaseResult struct {
	TotalSpent int64
	Product    string
	// CoinChange is sorted from the largest coin down. It is empty when no change is due.
	CoinChange []int64
}

// normalizeDenominations returns the positive, distinct denominations sorted descending.
func normalizeDenominations(denominations []int64) []int64 {
	coins := make([]int64, 0, len(denominations))
	for _, d := range denominations {
		if d > 0 && !slices.Contains(coins, d) {
			coins = append(coins, d)
		}
	}
	slices.Sort(coins)
	slices.Reverse(coins)
	return coins
}

// IsAccepted reports whether coin is one of denominations.
func IsAccepted(denominations []int64, coin int64) bool {
	return coin > 0 && slices.Contains(denominations, coin)
}
