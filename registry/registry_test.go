package registry

import (
	"testing"

	"github.com/holiman/uint256"
)

func founders(balances map[string]uint64) []Founder {
	result := make([]Founder, 0, len(balances))
	for addr, bal := range balances {
		result = append(result, Founder{Address: addr, Balance: uint256.NewInt(bal)})
	}
	return result
}

// supplyInvariant checks that the sum of member balances equals the total supply.
func supplyInvariant(t *testing.T, r *Registry) {
	t.Helper()
	sum := uint256.NewInt(0)
	for _, m := range r.Members() {
		sum.Add(sum, m.Balance)
	}
	if sum.Cmp(r.TotalSupply()) != 0 {
		t.Fatalf("supply invariant violated: balances sum to %s, total supply %s",
			sum.Dec(), r.TotalSupply().Dec())
	}
}

func TestInitFounders(t *testing.T) {
	r := New()
	if r.Initialized() {
		t.Error("new registry should not be initialized")
	}

	err := r.InitFounders(founders(map[string]uint64{"alice": 100, "bob": 100, "carol": 100}))
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !r.Initialized() {
		t.Error("registry should be initialized")
	}
	supplyInvariant(t, r)

	if got := r.TotalSupply().Uint64(); got != 300 {
		t.Errorf("total supply = %d, want 300", got)
	}
	if !r.IsMember("alice") {
		t.Error("alice should be a member")
	}
	if r.IsMember("mallory") {
		t.Error("mallory should not be a member")
	}
	if !r.IsDistributor("bob") {
		t.Error("founders should be distributors")
	}

	// Second init fails.
	err = r.InitFounders(founders(map[string]uint64{"dave": 50}))
	if err != ErrAlreadyInitialized {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestInitFoundersEmpty(t *testing.T) {
	r := New()
	if err := r.InitFounders(nil); err != ErrNoFounders {
		t.Errorf("expected ErrNoFounders, got %v", err)
	}
}

func TestInitFoundersDuplicateAddress(t *testing.T) {
	r := New()
	dup := []Founder{
		{Address: "alice", Balance: uint256.NewInt(100)},
		{Address: "alice", Balance: uint256.NewInt(50)},
	}
	if err := r.InitFounders(dup); err != ErrDuplicateFounder {
		t.Fatalf("expected ErrDuplicateFounder, got %v", err)
	}

	// The rejected init leaves no partial state.
	if r.Initialized() {
		t.Error("registry should not be initialized")
	}
	if got := r.TotalSupply().Uint64(); got != 0 {
		t.Errorf("total supply = %d, want 0", got)
	}
	supplyInvariant(t, r)
}

func TestEqualAllocation(t *testing.T) {
	tests := []struct {
		name      string
		addresses []string
		total     uint64
		wantEach  uint64
	}{
		{"even split", []string{"a", "b", "c"}, 300, 100},
		{"remainder dropped", []string{"a", "b", "c"}, 100, 33},
		{"single founder", []string{"a"}, 42, 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := EqualAllocation(tc.addresses, uint256.NewInt(tc.total))
			if len(fs) != len(tc.addresses) {
				t.Fatalf("got %d founders, want %d", len(fs), len(tc.addresses))
			}
			for _, f := range fs {
				if f.Balance.Uint64() != tc.wantEach {
					t.Errorf("%s balance = %d, want %d", f.Address, f.Balance.Uint64(), tc.wantEach)
				}
			}
		})
	}
}

func TestCredit(t *testing.T) {
	r := New()
	if err := r.InitFounders(founders(map[string]uint64{"alice": 100, "bob": 100})); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := r.Credit("alice", uint256.NewInt(50)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	supplyInvariant(t, r)

	if got := r.BalanceOf("alice").Uint64(); got != 150 {
		t.Errorf("alice balance = %d, want 150", got)
	}
	if got := r.TotalSupply().Uint64(); got != 250 {
		t.Errorf("total supply = %d, want 250", got)
	}

	if err := r.Credit("mallory", uint256.NewInt(1)); err != ErrNotAMember {
		t.Errorf("expected ErrNotAMember, got %v", err)
	}
	supplyInvariant(t, r)
}

func TestDeactivate(t *testing.T) {
	r := New()
	if err := r.InitFounders(founders(map[string]uint64{"alice": 100, "bob": 100})); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := r.Deactivate("bob"); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if r.IsMember("bob") {
		t.Error("deactivated member should not count as a member")
	}

	// Balance is retained and still counts toward the supply.
	if got := r.BalanceOf("bob").Uint64(); got != 100 {
		t.Errorf("bob balance = %d, want 100", got)
	}
	supplyInvariant(t, r)

	if err := r.Deactivate("mallory"); err != ErrNotAMember {
		t.Errorf("expected ErrNotAMember, got %v", err)
	}
}

func TestMembersSorted(t *testing.T) {
	r := New()
	if err := r.InitFounders(founders(map[string]uint64{"carol": 1, "alice": 1, "bob": 1})); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	members := r.Members()
	want := []string{"alice", "bob", "carol"}
	for i, m := range members {
		if m.Address != want[i] {
			t.Errorf("member %d = %s, want %s", i, m.Address, want[i])
		}
	}
}
