package engine

import (
	"sort"

	"debt-planner/domain"
)

// payoffOrder returns the indices of accounts still carrying a balance, in
// the order discretionary payment is applied. Avalanche sorts by APR
// descending, snowball by balance ascending. Ties preserve the original
// input order; that is part of the contract, not an accident of the sort,
// which is why the comparators below compare nothing but the sort key.
func payoffOrder(accounts []domain.Account, bal []float64, strategy domain.Strategy) []int {
	order := make([]int, 0, len(accounts))
	for i := range accounts {
		if bal[i] > BalanceEpsilon {
			order = append(order, i)
		}
	}

	switch strategy {
	case domain.Snowball:
		sort.SliceStable(order, func(a, b int) bool {
			return bal[order[a]] < bal[order[b]]
		})
	default: // avalanche
		sort.SliceStable(order, func(a, b int) bool {
			return accounts[order[a]].APR > accounts[order[b]].APR
		})
	}
	return order
}
