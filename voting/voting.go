// Package voting records weighted votes against proposals and computes
// tallies and outcomes. A member votes at most once per proposal; the
// vote's weight is the member's balance captured at cast time.
package voting

import (
	"errors"
	"time"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/proposal"
)

var (
	ErrAlreadyVoted  = errors.New("voting: already voted")
	ErrVotingClosed  = errors.New("voting: voting closed")
	ErrInvalidChoice = errors.New("voting: invalid choice")
)

// Vote is a single immutable ballot.
type Vote struct {
	ProposalID uint64
	Voter      string
	Choice     int
	Weight     *uint256.Int
	CastAt     time.Time
}

// Tally accumulates weight per option for one proposal.
type Tally struct {
	// Options mirrors the proposal's ballot.
	Options []string

	// Weights holds accumulated weight per option index.
	Weights []*uint256.Int

	// Participating is the total weight across all ballots.
	Participating *uint256.Int

	// Ballots is the number of votes cast.
	Ballots int
}

// Weight returns the accumulated weight for an option index.
func (t *Tally) Weight(choice int) *uint256.Int {
	if choice < 0 || choice >= len(t.Weights) {
		return uint256.NewInt(0)
	}
	return t.Weights[choice].Clone()
}

// Leader returns the option with strictly greatest weight. ok is false
// when no votes were cast or the top options tie.
func (t *Tally) Leader() (choice int, ok bool) {
	max := uint256.NewInt(0)
	choice = proposal.NoWinner
	ties := 0
	for i, w := range t.Weights {
		switch w.Cmp(max) {
		case 1:
			max = w
			choice = i
			ties = 0
		case 0:
			ties++
		}
	}
	if max.IsZero() || ties > 0 {
		return proposal.NoWinner, false
	}
	return choice, true
}

// Engine records votes and derives tallies.
type Engine struct {
	ballots map[uint64][]*Vote
	voted   map[uint64]map[string]bool
}

// NewEngine creates an empty voting engine.
func NewEngine() *Engine {
	return &Engine{
		ballots: make(map[uint64][]*Vote),
		voted:   make(map[uint64]map[string]bool),
	}
}

// HasVoted reports whether the voter already cast a ballot on the proposal.
func (e *Engine) HasVoted(proposalID uint64, voter string) bool {
	return e.voted[proposalID][voter]
}

// Record stores a validated vote. Fails with ErrAlreadyVoted on a
// duplicate (proposal, voter) pair; the first ballot stands.
func (e *Engine) Record(v *Vote) error {
	if e.HasVoted(v.ProposalID, v.Voter) {
		return ErrAlreadyVoted
	}
	if e.voted[v.ProposalID] == nil {
		e.voted[v.ProposalID] = make(map[string]bool)
	}
	e.voted[v.ProposalID][v.Voter] = true
	e.ballots[v.ProposalID] = append(e.ballots[v.ProposalID], v)
	return nil
}

// Votes returns the recorded ballots for a proposal in cast order.
func (e *Engine) Votes(proposalID uint64) []*Vote {
	return e.ballots[proposalID]
}

// TallyFor sums recorded ballots per option. Deterministic: ballots are
// accumulated in cast order, and the result depends only on recorded
// votes. Callable at any time, including while voting is open.
func (e *Engine) TallyFor(p *proposal.Proposal) *Tally {
	t := &Tally{
		Options:       append([]string(nil), p.Options...),
		Weights:       make([]*uint256.Int, len(p.Options)),
		Participating: uint256.NewInt(0),
	}
	for i := range t.Weights {
		t.Weights[i] = uint256.NewInt(0)
	}
	for _, v := range e.ballots[p.ID] {
		if v.Choice < 0 || v.Choice >= len(t.Weights) {
			continue
		}
		t.Weights[v.Choice].Add(t.Weights[v.Choice], v.Weight)
		t.Participating.Add(t.Participating, v.Weight)
		t.Ballots++
	}
	return t
}

// QuorumMet reports whether participation reaches quorumPercent of the
// proposal's creation-time eligible weight and at least minVotes ballots
// were cast.
func QuorumMet(t *Tally, eligible *uint256.Int, quorumPercent uint64, minVotes int) bool {
	if t.Ballots < minVotes {
		return false
	}
	scaled := new(uint256.Int).Mul(t.Participating, uint256.NewInt(100))
	required := new(uint256.Int).Mul(eligible, uint256.NewInt(quorumPercent))
	return scaled.Cmp(required) >= 0
}

// Outcome decides a closed proposal from its tally.
//
// General votes pass when quorum is met and one option has strictly
// greatest weight; a tie means no winner and the proposal is rejected.
// Funding requests pass when quorum is met and approve outweighs reject.
func Outcome(p *proposal.Proposal, t *Tally, quorumPercent uint64, minVotes int) (approved bool, winner int) {
	if !QuorumMet(t, p.EligibleWeight, quorumPercent, minVotes) {
		return false, proposal.NoWinner
	}

	switch p.Kind {
	case proposal.KindGeneralVote:
		winner, ok := t.Leader()
		if !ok {
			return false, proposal.NoWinner
		}
		return true, winner

	case proposal.KindFundingRequest:
		if t.Weight(proposal.ChoiceApprove).Cmp(t.Weight(proposal.ChoiceReject)) > 0 {
			return true, proposal.ChoiceApprove
		}
		return false, proposal.NoWinner

	default:
		return false, proposal.NoWinner
	}
}
