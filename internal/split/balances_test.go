package split

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/models"
)

func expense(payer, amount string, shares map[string]string) models.Expense {
	e := models.Expense{PayerID: payer, Amount: dec(amount)}
	for user, owed := range shares {
		e.Splits = append(e.Splits, models.Split{UserID: user, AmountOwed: dec(owed)})
	}
	return e
}

func balanceByUser(balances []models.Balance, userID string) models.Balance {
	for _, b := range balances {
		if b.UserID == userID {
			return b
		}
	}
	return models.Balance{}
}

func TestComputeBalances(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	expenses := []models.Expense{
		expense("alice", "90.00", map[string]string{
			"alice": "30.00", "bob": "30.00", "carol": "30.00",
		}),
	}

	balances := ComputeBalances(expenses, nil, members)
	if len(balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances))
	}

	tests := []struct {
		user string
		net  string
	}{
		{"alice", "60.00"},
		{"bob", "-30.00"},
		{"carol", "-30.00"},
	}
	sum := decimal.Zero
	for _, tt := range tests {
		b := balanceByUser(balances, tt.user)
		if !b.Net.Equal(dec(tt.net)) {
			t.Errorf("%s net = %s, want %s", tt.user, b.Net, tt.net)
		}
		sum = sum.Add(b.Net)
	}
	if !sum.IsZero() {
		t.Errorf("balances sum to %s, want 0", sum)
	}
}

func TestComputeBalancesZeroActivityMember(t *testing.T) {
	balances := ComputeBalances(nil, nil, []string{"alice", "bob"})
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	for _, b := range balances {
		if !b.Net.IsZero() || !b.TotalPaid.IsZero() || !b.TotalOwed.IsZero() {
			t.Errorf("%s should have zero activity, got %+v", b.UserID, b)
		}
		if !b.Settled() {
			t.Errorf("%s should report settled", b.UserID)
		}
	}
}

func TestComputeBalancesWithSettlements(t *testing.T) {
	members := []string{"alice", "bob"}
	expenses := []models.Expense{
		expense("alice", "40.00", map[string]string{
			"alice": "20.00", "bob": "20.00",
		}),
	}
	settlements := []models.Settlement{
		{FromUserID: "bob", ToUserID: "alice", Amount: dec("20.00")},
	}

	balances := ComputeBalances(expenses, settlements, members)
	for _, b := range balances {
		if !b.Net.IsZero() {
			t.Errorf("%s net = %s, want 0 after settling up", b.UserID, b.Net)
		}
	}
}

// Shuffling the expense list must not change the result.
func TestComputeBalancesOrderIndependent(t *testing.T) {
	members := []string{"alice", "bob", "carol", "dave"}
	expenses := []models.Expense{
		expense("alice", "90.00", map[string]string{"alice": "30.00", "bob": "30.00", "carol": "30.00"}),
		expense("bob", "10.00", map[string]string{"bob": "3.34", "carol": "3.33", "dave": "3.33"}),
		expense("carol", "55.55", map[string]string{"alice": "38.88", "carol": "16.67"}),
		expense("dave", "12.00", map[string]string{"alice": "6.00", "dave": "6.00"}),
	}

	want := ComputeBalances(expenses, nil, members)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]models.Expense, len(expenses))
		copy(shuffled, expenses)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := ComputeBalances(shuffled, nil, members)
		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d balances, want %d", trial, len(got), len(want))
		}
		for i := range want {
			if got[i].UserID != want[i].UserID || !got[i].Net.Equal(want[i].Net) {
				t.Errorf("trial %d: balance[%d] = %s/%s, want %s/%s",
					trial, i, got[i].UserID, got[i].Net, want[i].UserID, want[i].Net)
			}
		}
	}
}

func TestComputeBalancesNonMemberAppended(t *testing.T) {
	expenses := []models.Expense{
		expense("zoe", "10.00", map[string]string{"alice": "10.00"}),
	}
	balances := ComputeBalances(expenses, nil, []string{"alice"})
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	if balances[0].UserID != "alice" || balances[1].UserID != "zoe" {
		t.Errorf("order = [%s, %s], want [alice, zoe]", balances[0].UserID, balances[1].UserID)
	}
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Net)
	}
	if !sum.IsZero() {
		t.Errorf("balances sum to %s, want 0", sum)
	}
}

func TestSuggestSettlements(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	expenses := []models.Expense{
		expense("alice", "90.00", map[string]string{
			"alice": "30.00", "bob": "30.00", "carol": "30.00",
		}),
	}
	balances := ComputeBalances(expenses, nil, members)

	transfers := SuggestSettlements(balances)
	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2: %+v", len(transfers), transfers)
	}
	total := decimal.Zero
	for _, tr := range transfers {
		if tr.ToUserID != "alice" {
			t.Errorf("transfer to %s, want alice", tr.ToUserID)
		}
		if !tr.Amount.Equal(dec("30.00")) {
			t.Errorf("transfer amount = %s, want 30.00", tr.Amount)
		}
		total = total.Add(tr.Amount)
	}
	if !total.Equal(dec("60.00")) {
		t.Errorf("transfers total %s, want 60.00", total)
	}
}

func TestSuggestSettlementsSettledGroup(t *testing.T) {
	balances := ComputeBalances(nil, nil, []string{"alice", "bob"})
	if transfers := SuggestSettlements(balances); len(transfers) != 0 {
		t.Errorf("settled group produced transfers: %+v", transfers)
	}
}
