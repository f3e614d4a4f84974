package proposal

import (
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
)

var (
	t0       = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	period   = 10 * time.Minute
	eligible = uint256.NewInt(300)
)

func TestNewGeneralVote(t *testing.T) {
	p, err := New(1, "alice", "colors", "pick one", KindGeneralVote,
		[]string{"red", "green", "blue"}, "", nil, t0, period, eligible)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if p.Status != StatusOpen {
		t.Errorf("status = %s, want open", p.Status)
	}
	if !p.Deadline.Equal(t0.Add(period)) {
		t.Errorf("deadline = %v, want %v", p.Deadline, t0.Add(period))
	}
	if p.EligibleWeight.Uint64() != 300 {
		t.Errorf("eligible weight = %d, want 300", p.EligibleWeight.Uint64())
	}
	if p.WinningOption != NoWinner {
		t.Errorf("winning option = %d, want NoWinner", p.WinningOption)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		options   []string
		recipient string
		amount    *uint256.Int
		period    time.Duration
	}{
		{"empty options", KindGeneralVote, nil, "", nil, period},
		{"duplicate options", KindGeneralVote, []string{"a", "a"}, "", nil, period},
		{"zero amount", KindFundingRequest, nil, "bob", uint256.NewInt(0), period},
		{"nil amount", KindFundingRequest, nil, "bob", nil, period},
		{"empty recipient", KindFundingRequest, nil, "", uint256.NewInt(10), period},
		{"unknown kind", Kind("bogus"), nil, "", nil, period},
		{"zero period", KindGeneralVote, []string{"a"}, "", nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(1, "alice", "t", "d", tc.kind, tc.options,
				tc.recipient, tc.amount, t0, tc.period, eligible)
			if !errors.Is(err, ErrInvalidProposal) {
				t.Errorf("expected ErrInvalidProposal, got %v", err)
			}
		})
	}
}

func TestFundingRequestOptions(t *testing.T) {
	p, err := New(1, "alice", "grant", "", KindFundingRequest,
		nil, "bob", uint256.NewInt(50), t0, period, eligible)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if len(p.Options) != 2 || p.Options[ChoiceApprove] != "approve" || p.Options[ChoiceReject] != "reject" {
		t.Errorf("funding options = %v, want [approve reject]", p.Options)
	}
	if p.Amount.Uint64() != 50 {
		t.Errorf("amount = %d, want 50", p.Amount.Uint64())
	}
}

func TestTransitions(t *testing.T) {
	t.Run("approval path", func(t *testing.T) {
		p := mustNew(t)
		for _, to := range []Status{StatusClosed, StatusApproved, StatusExecuted} {
			if err := p.Transition(to); err != nil {
				t.Fatalf("transition to %s failed: %v", to, err)
			}
		}
	})

	t.Run("rejection is terminal", func(t *testing.T) {
		p := mustNew(t)
		p.Transition(StatusClosed)
		p.Transition(StatusRejected)
		for _, to := range []Status{StatusOpen, StatusClosed, StatusApproved, StatusExecuted} {
			if err := p.Transition(to); !errors.Is(err, ErrBadTransition) {
				t.Errorf("rejected -> %s should fail, got %v", to, err)
			}
		}
	})

	t.Run("no reopening", func(t *testing.T) {
		p := mustNew(t)
		p.Transition(StatusClosed)
		if err := p.Transition(StatusOpen); !errors.Is(err, ErrBadTransition) {
			t.Errorf("closed -> open should fail, got %v", err)
		}
	})

	t.Run("no skipping close", func(t *testing.T) {
		p := mustNew(t)
		if err := p.Transition(StatusApproved); !errors.Is(err, ErrBadTransition) {
			t.Errorf("open -> approved should fail, got %v", err)
		}
	})
}

func TestExpired(t *testing.T) {
	p := mustNew(t)
	if p.Expired(t0) {
		t.Error("proposal should not be expired at creation")
	}
	if p.Expired(t0.Add(period - time.Second)) {
		t.Error("proposal should not be expired before deadline")
	}
	if !p.Expired(t0.Add(period)) {
		t.Error("proposal should be expired at deadline")
	}
}

func TestStore(t *testing.T) {
	s := NewStore()

	if _, err := s.Get(1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if s.NextID() != 1 {
		t.Errorf("next id = %d, want 1", s.NextID())
	}

	p1 := mustNew(t)
	p1.ID = s.NextID()
	s.Put(p1)

	if s.NextID() != 2 {
		t.Errorf("next id = %d, want 2", s.NextID())
	}

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != p1.Title {
		t.Errorf("title = %q, want %q", got.Title, p1.Title)
	}

	// Active excludes closed and expired proposals.
	p2, _ := New(2, "bob", "later", "", KindGeneralVote, []string{"x", "y"},
		"", nil, t0, period, eligible)
	s.Put(p2)
	p2.Transition(StatusClosed)

	active := s.Active(t0.Add(time.Minute))
	if len(active) != 1 || active[0] != 1 {
		t.Errorf("active = %v, want [1]", active)
	}
	if active := s.Active(t0.Add(period)); len(active) != 0 {
		t.Errorf("active after deadline = %v, want empty", active)
	}
}

func mustNew(t *testing.T) *Proposal {
	t.Helper()
	p, err := New(1, "alice", "colors", "", KindGeneralVote,
		[]string{"red", "green", "blue"}, "", nil, t0, period, eligible)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return p
}
