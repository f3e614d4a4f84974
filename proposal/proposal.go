// Package proposal owns proposal records and their lifecycle state machine.
//
// A proposal moves through a fixed set of states:
//
//	Open -> Closed -> Approved -> Executed
//	                \-> Rejected
//
// Transitions are monotonic; resolved proposals are never reopened and
// records are never deleted, forming the audit trail.
package proposal

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

var (
	ErrNotFound        = errors.New("proposal: not found")
	ErrInvalidProposal = errors.New("proposal: invalid proposal")
	ErrBadTransition   = errors.New("proposal: invalid status transition")
)

// Kind identifies the proposal variant.
type Kind string

const (
	// KindGeneralVote is a multi-choice vote over caller-supplied options.
	KindGeneralVote Kind = "general_vote"

	// KindFundingRequest asks the treasury to pay a recipient. Its options
	// are fixed to approve/reject.
	KindFundingRequest Kind = "funding_request"
)

// Status is the lifecycle state of a proposal.
type Status int

const (
	StatusOpen Status = iota
	StatusClosed
	StatusApproved
	StatusRejected
	StatusExecuted
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusExecuted:
		return "executed"
	default:
		return "?"
	}
}

// Resolved reports whether the status is terminal for voting purposes.
func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusExecuted
}

// Option indices for funding requests.
const (
	ChoiceApprove = 0
	ChoiceReject  = 1
)

// FundingOptions are the fixed options of a funding request ballot.
var FundingOptions = []string{"approve", "reject"}

// NoWinner marks a proposal without a winning option.
const NoWinner = -1

// Proposal is a time-bounded decision item submitted for a vote.
type Proposal struct {
	ID          uint64
	Title       string
	Description string
	Creator     string
	Kind        Kind

	// Options is the ordered ballot. For funding requests it is always
	// FundingOptions.
	Options []string

	// Recipient and Amount are set for funding requests only.
	Recipient string
	Amount    *uint256.Int

	CreatedAt time.Time
	Deadline  time.Time
	Status    Status

	// EligibleWeight is the total supply snapshot taken at creation,
	// used as the quorum denominator.
	EligibleWeight *uint256.Int

	// WinningOption is the index of the winning option once an approved
	// general vote is resolved, NoWinner otherwise.
	WinningOption int
}

// New validates and builds an open proposal.
func New(id uint64, creator, title, description string, kind Kind, options []string,
	recipient string, amount *uint256.Int, createdAt time.Time, period time.Duration,
	eligible *uint256.Int) (*Proposal, error) {

	p := &Proposal{
		ID:             id,
		Title:          title,
		Description:    description,
		Creator:        creator,
		Kind:           kind,
		CreatedAt:      createdAt,
		Deadline:       createdAt.Add(period),
		Status:         StatusOpen,
		EligibleWeight: eligible.Clone(),
		WinningOption:  NoWinner,
	}

	if period <= 0 {
		return nil, fmt.Errorf("%w: voting period must be positive", ErrInvalidProposal)
	}

	switch kind {
	case KindGeneralVote:
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: general vote requires options", ErrInvalidProposal)
		}
		seen := make(map[string]bool, len(options))
		for _, opt := range options {
			if seen[opt] {
				return nil, fmt.Errorf("%w: duplicate option %q", ErrInvalidProposal, opt)
			}
			seen[opt] = true
		}
		p.Options = append([]string(nil), options...)

	case KindFundingRequest:
		if recipient == "" {
			return nil, fmt.Errorf("%w: funding request requires a recipient", ErrInvalidProposal)
		}
		if amount == nil || amount.IsZero() {
			return nil, fmt.Errorf("%w: funding request requires a positive amount", ErrInvalidProposal)
		}
		p.Recipient = recipient
		p.Amount = amount.Clone()
		p.Options = append([]string(nil), FundingOptions...)

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidProposal, kind)
	}

	return p, nil
}

// Expired reports whether the voting deadline has been reached.
func (p *Proposal) Expired(now time.Time) bool {
	return !now.Before(p.Deadline)
}

// View returns a point-in-time copy for read paths. An open proposal
// past its deadline reads as closed even before the closing transition
// is recorded.
func (p *Proposal) View(now time.Time) Proposal {
	v := *p
	v.Options = append([]string(nil), p.Options...)
	v.EligibleWeight = p.EligibleWeight.Clone()
	if p.Amount != nil {
		v.Amount = p.Amount.Clone()
	}
	if v.Status == StatusOpen && v.Expired(now) {
		v.Status = StatusClosed
	}
	return v
}

// transitions is the allowed status graph.
var transitions = map[Status][]Status{
	StatusOpen:     {StatusClosed},
	StatusClosed:   {StatusApproved, StatusRejected},
	StatusApproved: {StatusExecuted},
}

// Transition moves the proposal to a new status, enforcing monotonicity.
func (p *Proposal) Transition(to Status) error {
	for _, allowed := range transitions[p.Status] {
		if allowed == to {
			p.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrBadTransition, p.Status, to)
}
