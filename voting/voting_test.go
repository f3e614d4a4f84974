package voting

import (
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/proposal"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func generalVote(t *testing.T, options ...string) *proposal.Proposal {
	t.Helper()
	p, err := proposal.New(1, "alice", "test", "", proposal.KindGeneralVote,
		options, "", nil, t0, time.Hour, uint256.NewInt(300))
	if err != nil {
		t.Fatalf("new proposal failed: %v", err)
	}
	return p
}

func fundingRequest(t *testing.T, amount uint64) *proposal.Proposal {
	t.Helper()
	p, err := proposal.New(1, "alice", "grant", "", proposal.KindFundingRequest,
		nil, "bob", uint256.NewInt(amount), t0, time.Hour, uint256.NewInt(300))
	if err != nil {
		t.Fatalf("new proposal failed: %v", err)
	}
	return p
}

func vote(pid uint64, voter string, choice int, weight uint64) *Vote {
	return &Vote{
		ProposalID: pid,
		Voter:      voter,
		Choice:     choice,
		Weight:     uint256.NewInt(weight),
		CastAt:     t0,
	}
}

func TestRecordRejectsDoubleVote(t *testing.T) {
	e := NewEngine()
	p := generalVote(t, "red", "green")

	if err := e.Record(vote(p.ID, "alice", 0, 100)); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := e.Record(vote(p.ID, "alice", 1, 100)); err != ErrAlreadyVoted {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	// The tally reflects only the first ballot.
	tally := e.TallyFor(p)
	if tally.Ballots != 1 {
		t.Errorf("ballots = %d, want 1", tally.Ballots)
	}
	if got := tally.Weight(0).Uint64(); got != 100 {
		t.Errorf("option 0 weight = %d, want 100", got)
	}
	if got := tally.Weight(1).Uint64(); got != 0 {
		t.Errorf("option 1 weight = %d, want 0", got)
	}
}

func TestSameVoterDifferentProposals(t *testing.T) {
	e := NewEngine()
	if err := e.Record(vote(1, "alice", 0, 100)); err != nil {
		t.Fatalf("vote on proposal 1 failed: %v", err)
	}
	if err := e.Record(vote(2, "alice", 0, 100)); err != nil {
		t.Errorf("vote on proposal 2 failed: %v", err)
	}
}

func TestTallyAccumulatesWeight(t *testing.T) {
	e := NewEngine()
	p := generalVote(t, "red", "green", "blue")

	e.Record(vote(p.ID, "alice", 0, 100))
	e.Record(vote(p.ID, "bob", 0, 50))
	e.Record(vote(p.ID, "carol", 2, 25))

	tally := e.TallyFor(p)
	if got := tally.Weight(0).Uint64(); got != 150 {
		t.Errorf("option 0 weight = %d, want 150", got)
	}
	if got := tally.Weight(1).Uint64(); got != 0 {
		t.Errorf("option 1 weight = %d, want 0", got)
	}
	if got := tally.Weight(2).Uint64(); got != 25 {
		t.Errorf("option 2 weight = %d, want 25", got)
	}
	if got := tally.Participating.Uint64(); got != 175 {
		t.Errorf("participating = %d, want 175", got)
	}
	if tally.Ballots != 3 {
		t.Errorf("ballots = %d, want 3", tally.Ballots)
	}
}

func TestTallyOptionsDetached(t *testing.T) {
	e := NewEngine()
	p := generalVote(t, "red", "green")

	tally := e.TallyFor(p)
	tally.Options[0] = "mangled"

	if p.Options[0] != "red" {
		t.Errorf("proposal option 0 = %q, want %q", p.Options[0], "red")
	}
}

func TestLeader(t *testing.T) {
	tests := []struct {
		name    string
		weights []uint64
		want    int
		ok      bool
	}{
		{"clear winner", []uint64{100, 200, 50}, 1, true},
		{"tie at top", []uint64{150, 150, 50}, proposal.NoWinner, false},
		{"no votes", []uint64{0, 0, 0}, proposal.NoWinner, false},
		{"winner after tie below", []uint64{50, 50, 100}, 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tally := &Tally{
				Weights:       make([]*uint256.Int, len(tc.weights)),
				Participating: uint256.NewInt(0),
			}
			for i, w := range tc.weights {
				tally.Weights[i] = uint256.NewInt(w)
			}
			got, ok := tally.Leader()
			if got != tc.want || ok != tc.ok {
				t.Errorf("Leader() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestQuorumMet(t *testing.T) {
	eligible := uint256.NewInt(300)

	tests := []struct {
		name          string
		participating uint64
		ballots       int
		percent       uint64
		minVotes      int
		want          bool
	}{
		{"full participation", 300, 3, 100, 1, true},
		{"exactly at threshold", 90, 1, 30, 1, true},
		{"below threshold", 89, 1, 30, 1, false},
		{"below min votes", 300, 1, 30, 2, false},
		{"zero quorum", 0, 0, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tally := &Tally{
				Participating: uint256.NewInt(tc.participating),
				Ballots:       tc.ballots,
			}
			if got := QuorumMet(tally, eligible, tc.percent, tc.minVotes); got != tc.want {
				t.Errorf("QuorumMet() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOutcomeFundingRequest(t *testing.T) {
	e := NewEngine()
	p := fundingRequest(t, 50)

	e.Record(vote(p.ID, "alice", proposal.ChoiceApprove, 100))
	e.Record(vote(p.ID, "bob", proposal.ChoiceApprove, 100))
	e.Record(vote(p.ID, "carol", proposal.ChoiceReject, 100))

	approved, winner := Outcome(p, e.TallyFor(p), 100, 1)
	if !approved {
		t.Error("funding request should be approved (200 approve > 100 reject, full quorum)")
	}
	if winner != proposal.ChoiceApprove {
		t.Errorf("winner = %d, want approve", winner)
	}
}

func TestOutcomeFundingRequestRejected(t *testing.T) {
	e := NewEngine()
	p := fundingRequest(t, 50)

	e.Record(vote(p.ID, "alice", proposal.ChoiceApprove, 100))
	e.Record(vote(p.ID, "bob", proposal.ChoiceReject, 100))

	// Approve does not strictly outweigh reject.
	approved, _ := Outcome(p, e.TallyFor(p), 30, 1)
	if approved {
		t.Error("tied funding request should be rejected")
	}
}

func TestOutcomeGeneralVoteTie(t *testing.T) {
	e := NewEngine()
	p := generalVote(t, "red", "green", "blue")

	e.Record(vote(p.ID, "alice", 0, 150))
	e.Record(vote(p.ID, "bob", 1, 150))

	approved, winner := Outcome(p, e.TallyFor(p), 30, 1)
	if approved {
		t.Error("tied general vote should be rejected")
	}
	if winner != proposal.NoWinner {
		t.Errorf("winner = %d, want NoWinner", winner)
	}
}

func TestOutcomeQuorumFailure(t *testing.T) {
	e := NewEngine()
	p := generalVote(t, "red", "green")

	// 50 of 300 eligible is under a 30% quorum.
	e.Record(vote(p.ID, "alice", 0, 50))

	approved, _ := Outcome(p, e.TallyFor(p), 30, 1)
	if approved {
		t.Error("proposal without quorum should be rejected")
	}
}
