package domain

import (
	"slices"
)

// ChangeMaker breaks an amount down into coins.
type ChangeMaker interface {
	// Change returns coins summing to amount, largest first, using as few coins as possible.
	// It returns an empty slice for 0 and ErrChangeNotPossible when no combination exists.
	Change(amount int64) ([]int64, error)
	// Denominations returns the coin set, largest first.
	Denominations() []int64
}

// GreedyChange repeatedly takes the largest coin that fits. It is only minimal for
// canonical coin systems such as DefaultDenominations.
type GreedyChange struct {
	denominations []int64
}

// NewGreedyChange creates a GreedyChange over denominations.
func NewGreedyChange(denominations []int64) *GreedyChange {
	return &GreedyChange{denominations: normalizeDenominations(denominations)}
}

// Denominations returns the coin set, largest first.
func (g *GreedyChange) Denominations() []int64 {
	return slices.Clone(g.denominations)
}

// Change breaks amount down largest coin first.
func (g *GreedyChange) Change(amount int64) ([]int64, error) {
	if amount < 0 {
		return nil, ErrChangeNotPossible
	}
	coins := []int64{}
	remaining := amount
	for _, coin := range g.denominations {
		for remaining >= coin {
			coins = append(coins, coin)
			remaining -= coin
		}
	}
	if remaining != 0 {
		return nil, ErrChangeNotPossible
	}
	return coins, nil
}

// OptimalChange finds the minimum number of coins with dynamic programming. It works for
// any coin set.
type OptimalChange struct {
	denominations []int64
}

// NewOptimalChange creates an OptimalChange over denominations.
func NewOptimalChange(denominations []int64) *OptimalChange {
	return &OptimalChange{denominations: normalizeDenominations(denominations)}
}

// Denominations returns the coin set, largest first.
func (o *OptimalChange) Denominations() []int64 {
	return slices.Clone(o.denominations)
}

// Change returns a minimum-count breakdown of amount.
func (o *OptimalChange) Change(amount int64) ([]int64, error) {
	if amount < 0 {
		return nil, ErrChangeNotPossible
	}
	if amount == 0 {
		return []int64{}, nil
	}

	// counts[a] is the fewest coins summing to a, or -1 when a is unreachable.
	// last[a] is the coin that completes that breakdown.
	counts := make([]int64, amount+1)
	last := make([]int64, amount+1)
	for a := int64(1); a <= amount; a++ {
		counts[a] = -1
		for _, coin := range o.denominations {
			if coin > a || counts[a-coin] < 0 {
				continue
			}
			if counts[a] < 0 || counts[a-coin]+1 < counts[a] {
				counts[a] = counts[a-coin] + 1
				last[a] = coin
			}
		}
	}
	if counts[amount] < 0 {
		return nil, ErrChangeNotPossible
	}

	coins := make([]int64, 0, counts[amount])
	for a := amount; a > 0; a -= last[a] {
		coins = append(coins, last[a])
	}
	slices.Sort(coins)
	slices.Reverse(coins)
	return coins, nil
}

// IsGreedyCanonical reports whether greedy change is minimal for every amount. A
// counterexample, if one exists, is smaller than the sum of the two largest coins, so
// only amounts below that bound are compared against the optimal solver.
func IsGreedyCanonical(denominations []int64) bool {
	coins := normalizeDenominations(denominations)
	if len(coins) < 2 {
		return true
	}

	greedy := &GreedyChange{denominations: coins}
	optimal := &OptimalChange{denominations: coins}
	bound := coins[0] + coins[1]
	for amount := int64(1); amount < bound; amount++ {
		want, optimalErr := optimal.Change(amount)
		got, greedyErr := greedy.Change(amount)
		if optimalErr != nil {
			continue
		}
		if greedyErr != nil || len(got) != len(want) {
			return false
		}
	}
	return true
}

// NewChangeMaker returns the greedy solver when it is provably minimal for the coin set
// and the dynamic programming solver otherwise.
func NewChangeMaker(denominations []int64) ChangeMaker {
	if IsGreedyCanonical(denominations) {
		return NewGreedyChange(denominations)
	}
	return NewOptimalChange(denominations)
}
