package split

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/models"
)

// ComputeBalances aggregates a trip's expenses, splits, and recorded
// settlements into one Balance per member.
//
// A single pass accumulates totals: each expense adds its amount to the
// payer's TotalPaid and each split adds its share to that member's
// TotalOwed; a settlement adds to the sender's TotalPaid and the
// receiver's TotalOwed. Sums are order-independent, so shuffling the
// inputs yields identical output, and the returned balances always sum
// to zero provided every expense's splits reconcile to its amount.
//
// Every member in memberIDs gets a balance, including members with no
// activity. Users found in the data but missing from memberIDs are
// appended in sorted-ID order so conservation holds over the full
// result.
func ComputeBalances(expenses []models.Expense, settlements []models.Settlement, memberIDs []string) []models.Balance {
	acc := make(map[string]*models.Balance)
	get := func(userID string) *models.Balance {
		b, ok := acc[userID]
		if !ok {
			b = &models.Balance{
				UserID:    userID,
				TotalPaid: decimal.Zero,
				TotalOwed: decimal.Zero,
			}
			acc[userID] = b
		}
		return b
	}

	for _, id := range memberIDs {
		get(id)
	}

	for _, e := range expenses {
		if e.PayerID != "" {
			p := get(e.PayerID)
			p.TotalPaid = p.TotalPaid.Add(e.Amount)
		}
		for _, s := range e.Splits {
			b := get(s.UserID)
			b.TotalOwed = b.TotalOwed.Add(s.AmountOwed)
		}
	}

	for _, s := range settlements {
		from := get(s.FromUserID)
		from.TotalPaid = from.TotalPaid.Add(s.Amount)
		to := get(s.ToUserID)
		to.TotalOwed = to.TotalOwed.Add(s.Amount)
	}

	for _, b := range acc {
		b.Net = b.TotalPaid.Sub(b.TotalOwed)
	}

	// Members first, in the caller's order; anyone else sorted after.
	out := make([]models.Balance, 0, len(acc))
	inMembers := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		if inMembers[id] {
			continue
		}
		inMembers[id] = true
		out = append(out, *acc[id])
	}
	var extras []string
	for id := range acc {
		if !inMembers[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		out = append(out, *acc[id])
	}
	return out
}

// SuggestSettlements reduces a set of balances to a short list of
// transfers that would settle the group: debtors are greedily matched
// against creditors, largest first. Transfers below one cent are
// dropped as rounding noise.
func SuggestSettlements(balances []models.Balance) []models.Transfer {
	var creditors, debtors []models.Balance
	for _, b := range balances {
		switch {
		case b.Net.GreaterThanOrEqual(centTolerance):
			creditors = append(creditors, b)
		case b.Net.Neg().GreaterThanOrEqual(centTolerance):
			debtors = append(debtors, b)
		}
	}

	byMagnitude := func(s []models.Balance) {
		sort.Slice(s, func(i, j int) bool {
			a, b := s[i].Net.Abs(), s[j].Net.Abs()
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return s[i].UserID < s[j].UserID
		})
	}
	byMagnitude(creditors)
	byMagnitude(debtors)

	owed := make(map[string]decimal.Decimal, len(debtors))
	for _, d := range debtors {
		owed[d.UserID] = d.Net.Neg()
	}
	due := make(map[string]decimal.Decimal, len(creditors))
	for _, c := range creditors {
		due[c.UserID] = c.Net
	}

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].UserID
		creditor := creditors[j].UserID

		amount := owed[debtor]
		if due[creditor].LessThan(amount) {
			amount = due[creditor]
		}

		if amount.GreaterThanOrEqual(centTolerance) {
			transfers = append(transfers, models.Transfer{
				FromUserID: debtor,
				ToUserID:   creditor,
				Amount:     amount,
			})
		}

		owed[debtor] = owed[debtor].Sub(amount)
		due[creditor] = due[creditor].Sub(amount)

		if owed[debtor].LessThan(centTolerance) {
			i++
		}
		if due[creditor].LessThan(centTolerance) {
			j++
		}
	}

	return transfers
}
