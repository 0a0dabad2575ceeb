package split

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func equalParticipants(ids ...string) []Participant {
	ps := make([]Participant, len(ids))
	for i, id := range ids {
		ps[i] = Participant{UserID: id}
	}
	return ps
}

func TestComputeEqual(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		ids    []string
		want   []string
	}{
		{
			name:   "even division",
			amount: "30.00",
			ids:    []string{"alice", "bob", "carol"},
			want:   []string{"10", "10", "10"},
		},
		{
			name:   "cent remainder goes to first participant",
			amount: "10.00",
			ids:    []string{"alice", "bob", "carol"},
			want:   []string{"3.34", "3.33", "3.33"},
		},
		{
			name:   "two cent remainder",
			amount: "1.00",
			ids:    []string{"a", "b", "c", "d", "e", "f", "g"},
			want:   []string{"0.16", "0.14", "0.14", "0.14", "0.14", "0.14", "0.14"},
		},
		{
			name:   "single participant",
			amount: "42.37",
			ids:    []string{"alice"},
			want:   []string{"42.37"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := Compute(Input{
				Amount:       dec(tt.amount),
				Type:         models.SplitEqual,
				Participants: equalParticipants(tt.ids...),
			})
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if len(splits) != len(tt.want) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.want))
			}
			for i, w := range tt.want {
				if !splits[i].AmountOwed.Equal(dec(w)) {
					t.Errorf("split[%d] = %s, want %s", i, splits[i].AmountOwed, w)
				}
			}
		})
	}
}

// Equal splits must reconcile to the cent for any participant count.
func TestComputeEqualReconciles(t *testing.T) {
	amounts := []string{"10.00", "0.01", "99.99", "100.03", "7.77", "1234.56"}
	for n := 1; n <= 50; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("user-%02d", i)
		}
		for _, a := range amounts {
			amount := dec(a)
			splits, err := Compute(Input{
				Amount:       amount,
				Type:         models.SplitEqual,
				Participants: equalParticipants(ids...),
			})
			if err != nil {
				t.Fatalf("n=%d amount=%s: %v", n, a, err)
			}
			sum := decimal.Zero
			for _, s := range splits {
				sum = sum.Add(s.AmountOwed)
				if s.AmountOwed.IsNegative() {
					t.Errorf("n=%d amount=%s: negative share %s", n, a, s.AmountOwed)
				}
			}
			if !sum.Equal(amount) {
				t.Errorf("n=%d amount=%s: shares sum to %s", n, a, sum)
			}
		}
	}
}

func TestComputePercentage(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		percentages map[string]string
		order       []string
		want        map[string]string
	}{
		{
			name:        "exact thirds notation",
			amount:      "100.00",
			order:       []string{"alice", "bob", "carol"},
			percentages: map[string]string{"alice": "33.33", "bob": "33.33", "carol": "33.34"},
			want:        map[string]string{"alice": "33.33", "bob": "33.33", "carol": "33.34"},
		},
		{
			name:        "rounding residual absorbed by first",
			amount:      "10.00",
			order:       []string{"alice", "bob", "carol"},
			percentages: map[string]string{"alice": "33.33", "bob": "33.33", "carol": "33.34"},
			// naive: 3.33 + 3.33 + 3.33 = 9.99, residual 0.01 to alice
			want: map[string]string{"alice": "3.34", "bob": "3.33", "carol": "3.33"},
		},
		{
			name:        "uneven weights",
			amount:      "55.55",
			order:       []string{"alice", "bob"},
			// naive: 38.89 + 16.67 = 55.56, residual -0.01 to alice
			percentages: map[string]string{"alice": "70", "bob": "30"},
			want:        map[string]string{"alice": "38.88", "bob": "16.67"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := make([]Participant, len(tt.order))
			for i, id := range tt.order {
				ps[i] = Participant{UserID: id, Percentage: dec(tt.percentages[id])}
			}
			splits, err := Compute(Input{
				Amount:       dec(tt.amount),
				Type:         models.SplitPercentage,
				Participants: ps,
			})
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			sum := decimal.Zero
			for _, s := range splits {
				sum = sum.Add(s.AmountOwed)
				if want := dec(tt.want[s.UserID]); !s.AmountOwed.Equal(want) {
					t.Errorf("%s = %s, want %s", s.UserID, s.AmountOwed, want)
				}
			}
			if !sum.Equal(dec(tt.amount)) {
				t.Errorf("shares sum to %s, want %s", sum, tt.amount)
			}
		})
	}
}

func TestComputeCustomPassThrough(t *testing.T) {
	splits, err := Compute(Input{
		Amount: dec("25.50"),
		Type:   models.SplitCustom,
		Participants: []Participant{
			{UserID: "alice", Amount: dec("20.00")},
			{UserID: "bob", Amount: dec("5.50")},
		},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !splits[0].AmountOwed.Equal(dec("20.00")) || !splits[1].AmountOwed.Equal(dec("5.50")) {
		t.Errorf("custom amounts changed: %s, %s", splits[0].AmountOwed, splits[1].AmountOwed)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantField string
	}{
		{
			name: "no participants",
			in: Input{
				Amount: dec("10.00"),
				Type:   models.SplitEqual,
			},
			wantField: "participants",
		},
		{
			name: "non-positive amount",
			in: Input{
				Amount:       dec("0"),
				Type:         models.SplitEqual,
				Participants: equalParticipants("alice"),
			},
			wantField: "amount",
		},
		{
			name: "amount with sub-cent precision",
			in: Input{
				Amount:       dec("10.001"),
				Type:         models.SplitEqual,
				Participants: equalParticipants("alice"),
			},
			wantField: "amount",
		},
		{
			name: "unknown split type",
			in: Input{
				Amount:       dec("10.00"),
				Type:         models.SplitType("HALVSIES"),
				Participants: equalParticipants("alice"),
			},
			wantField: "splitType",
		},
		{
			name: "duplicate participant",
			in: Input{
				Amount:       dec("10.00"),
				Type:         models.SplitEqual,
				Participants: equalParticipants("alice", "alice"),
			},
			wantField: "participants[1].userId",
		},
		{
			name: "custom sum off by a cent",
			in: Input{
				Amount: dec("10.00"),
				Type:   models.SplitCustom,
				Participants: []Participant{
					{UserID: "alice", Amount: dec("5.00")},
					{UserID: "bob", Amount: dec("4.99")},
				},
			},
			wantField: "participants",
		},
		{
			name: "custom entry not positive",
			in: Input{
				Amount: dec("10.00"),
				Type:   models.SplitCustom,
				Participants: []Participant{
					{UserID: "alice", Amount: dec("10.00")},
					{UserID: "bob", Amount: dec("0")},
				},
			},
			wantField: "participants[1].amount",
		},
		{
			name: "percentages off by a cent",
			in: Input{
				Amount: dec("10.00"),
				Type:   models.SplitPercentage,
				Participants: []Participant{
					{UserID: "alice", Percentage: dec("50")},
					{UserID: "bob", Percentage: dec("49.99")},
				},
			},
			wantField: "participants",
		},
		{
			name: "percentage entry not positive",
			in: Input{
				Amount: dec("10.00"),
				Type:   models.SplitPercentage,
				Participants: []Participant{
					{UserID: "alice", Percentage: dec("100")},
					{UserID: "bob", Percentage: dec("-0.5")},
				},
			},
			wantField: "participants[1].percentage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("Validate() returned %T, want ValidationErrors", err)
			}
			for _, fe := range verrs {
				if fe.Field == tt.wantField {
					return
				}
			}
			t.Errorf("no error for field %q in %v", tt.wantField, verrs)
		})
	}
}

// Sub-tolerance deviations are accepted: only >= 0.01 is rejected.
func TestValidateToleranceBoundary(t *testing.T) {
	err := Validate(Input{
		Amount: dec("10.00"),
		Type:   models.SplitCustom,
		Participants: []Participant{
			{UserID: "alice", Amount: dec("5.005")},
			{UserID: "bob", Amount: dec("5.00")},
		},
	})
	if err != nil {
		t.Errorf("deviation of 0.005 rejected: %v", err)
	}

	err = Validate(Input{
		Amount: dec("10.00"),
		Type:   models.SplitPercentage,
		Participants: []Participant{
			{UserID: "alice", Percentage: dec("50.005")},
			{UserID: "bob", Percentage: dec("50")},
		},
	})
	if err != nil {
		t.Errorf("percentage deviation of 0.005 rejected: %v", err)
	}
}

// Validation reports every failing rule, not just the first.
func TestValidateCollectsAllErrors(t *testing.T) {
	err := Validate(Input{
		Amount: dec("-1"),
		Type:   models.SplitCustom,
		Participants: []Participant{
			{UserID: "alice", Amount: dec("0")},
			{UserID: "alice", Amount: dec("3.00")},
		},
	})
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Validate() returned %T, want ValidationErrors", err)
	}
	if len(verrs) < 3 {
		t.Errorf("expected at least 3 field errors, got %d: %v", len(verrs), verrs)
	}
}
