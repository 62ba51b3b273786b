package domain

import (
	"github.com/allisson/vending/internal/errors"
)

// Store errors.
var (
	// ErrInvalidCoin indicates a deposit of a value outside the accepted denominations.
	ErrInvalidCoin = errors.Coded(errors.ErrInvalidInput, "store/invalid-coin", "coin is not an accepted denomination")

	// ErrInvalidAmount indicates a purchase of zero or fewer units.
	ErrInvalidAmount = errors.Coded(errors.ErrInvalidInput, "store/invalid-amount", "amount must be positive")

	// ErrOutOfStock indicates a purchase of more units than the product has available.
	ErrOutOfStock = errors.Coded(errors.ErrInvalidInput, "store/out-of-stock", "not enough products available")

	// ErrInsufficientFunds indicates a purchase costing more than the deposited balance.
	ErrInsufficientFunds = errors.Coded(
		errors.ErrInvalidInput,
		"store/insufficient-funds",
		"deposit is not enough to pay for the purchase",
	)

	// ErrPurchaseTooLarge indicates a purchase whose total price does not fit in an int64.
	ErrPurchaseTooLarge = errors.Coded(
		errors.ErrInvalidInput,
		"store/purchase-too-large",
		"purchase total is too large",
	)

	// ErrChangeNotPossible indicates the change cannot be paid out with the accepted coins.
	ErrChangeNotPossible = errors.Coded(
		errors.ErrConflict,
		"store/change-not-possible",
		"change cannot be returned with the accepted coins",
	)
)
