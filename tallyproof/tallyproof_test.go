package tallyproof

import (
	"math/big"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/voting"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testTally(t *testing.T) (*voting.Tally, []voting.Vote) {
	t.Helper()

	options := []string{"red", "blue", "green"}
	votes := []voting.Vote{
		{ProposalID: 1, Voter: "alice", Choice: 0, Weight: uint256.NewInt(50), CastAt: t0},
		{ProposalID: 1, Voter: "bob", Choice: 2, Weight: uint256.NewInt(30), CastAt: t0},
		{ProposalID: 1, Voter: "carol", Choice: 0, Weight: uint256.NewInt(20), CastAt: t0},
	}

	tally := &voting.Tally{
		Options:       options,
		Weights:       []*uint256.Int{uint256.NewInt(70), uint256.NewInt(0), uint256.NewInt(30)},
		Participating: uint256.NewInt(100),
		Ballots:       len(votes),
	}
	return tally, votes
}

func TestProveAndVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}

	const maxBallots = 4
	tally, votes := testTally(t)

	prover, err := NewProver(len(tally.Options), maxBallots)
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	assignment, err := Assignment(tally, votes, maxBallots)
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	proof, err := prover.Prove(assignment)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}

	if err := prover.Verify(proof, PublicAssignment(tally, maxBallots)); err != nil {
		t.Errorf("verify failed: %v", err)
	}
}

func TestInconsistentTallyRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}

	const maxBallots = 4
	tally, votes := testTally(t)

	prover, err := NewProver(len(tally.Options), maxBallots)
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	// Inflate one published total so it no longer matches the ballots.
	assignment, err := Assignment(tally, votes, maxBallots)
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	assignment.OptionTotals[1] = big.NewInt(999)

	if _, err := prover.Prove(assignment); err == nil {
		t.Error("proving an inconsistent tally should fail")
	}
}

func TestVerifyWrongPublicInputs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}

	const maxBallots = 4
	tally, votes := testTally(t)

	prover, err := NewProver(len(tally.Options), maxBallots)
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	assignment, err := Assignment(tally, votes, maxBallots)
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	proof, err := prover.Prove(assignment)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}

	tampered := PublicAssignment(tally, maxBallots)
	tampered.OptionTotals[0] = big.NewInt(71)
	if err := prover.Verify(proof, tampered); err == nil {
		t.Error("verification with tampered public inputs should fail")
	}
}

func TestAssignmentValidation(t *testing.T) {
	tally, votes := testTally(t)

	t.Run("capacity exceeded", func(t *testing.T) {
		if _, err := Assignment(tally, votes, 2); err == nil {
			t.Error("expected capacity error")
		}
	})

	t.Run("choice out of range", func(t *testing.T) {
		bad := append([]voting.Vote(nil), votes...)
		bad[0].Choice = 7
		if _, err := Assignment(tally, bad, 4); err == nil {
			t.Error("expected range error")
		}
	})
}

func TestNewProverBadShape(t *testing.T) {
	if _, err := NewProver(0, 4); err == nil {
		t.Error("expected error for zero options")
	}
	if _, err := NewProver(2, 0); err == nil {
		t.Error("expected error for zero ballots")
	}
}
