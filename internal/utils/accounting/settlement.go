package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBalance = fmt.Errorf("%w: balance amount must not be negative", apperrors.ErrValidation)
	ErrSelfBalance     = fmt.Errorf("%w: balance cannot be owed to oneself", apperrors.ErrValidation)
)

func validateBalances(balances []domain.Balance) error {
	for _, b := range balances {
		if b.Amount.IsNegative() {
			return fmt.Errorf("%w: %s owes %s %s", ErrNegativeBalance, b.From, b.To, b.Amount.String())
		}
		if b.From == b.To {
			return fmt.Errorf("%w: %s", ErrSelfBalance, b.From)
		}
	}
	return nil
}

// GroupTotals sums raw directed debts per (from, to) pair without cancelling opposite directions.
// Rows are ordered by from then to.
func GroupTotals(balances []domain.Balance) ([]domain.Settlement, error) {
	if err := validateBalances(balances); err != nil {
		return nil, err
	}

	type pair struct{ from, to domain.Participant }
	sums := make(map[pair]decimal.Decimal)
	for _, b := range balances {
		k := pair{b.From, b.To}
		sums[k] = sums[k].Add(b.Amount)
	}

	out := make([]domain.Settlement, 0, len(sums))
	for k, amount := range sums {
		out = append(out, domain.Settlement{From: k.from, To: k.to, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out, nil
}

// NetPositions returns, per participant, what they are owed minus what they owe.
func NetPositions(balances []domain.Balance) (map[domain.Participant]decimal.Decimal, error) {
	if err := validateBalances(balances); err != nil {
		return nil, err
	}
	net := make(map[domain.Participant]decimal.Decimal)
	for _, b := range balances {
		net[b.To] = net[b.To].Add(b.Amount)
		net[b.From] = net[b.From].Sub(b.Amount)
	}
	return net, nil
}

// NetSettlements reduces directed debts to one-directional amounts per participant pair.
// For every pair (p, q) with p < q whose net positions have strictly opposite signs it emits
// one row from the debtor to the creditor for the smaller of the two absolute positions.
//
// The result is exact for two participants. With three or more it is a pairwise heuristic:
// a participant may appear in several rows whose total exceeds their net position, and the
// row count is not guaranteed to be minimal.
func NetSettlements(balances []domain.Balance) ([]domain.Settlement, error) {
	net, err := NetPositions(balances)
	if err != nil {
		return nil, err
	}

	participants := make([]domain.Participant, 0, len(net))
	for p := range net {
		participants = append(participants, p)
	}
	domain.SortParticipants(participants)

	out := make([]domain.Settlement, 0)
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			p, q := participants[i], participants[j]
			np, nq := net[p], net[q]
			if np.Sign()*nq.Sign() >= 0 {
				continue
			}
			from, to := p, q
			if np.IsPositive() {
				from, to = q, p
			}
			out = append(out, domain.Settlement{
				From:   from,
				To:     to,
				Amount: decimal.Min(np.Abs(), nq.Abs()),
			})
		}
	}
	return out, nil
}
