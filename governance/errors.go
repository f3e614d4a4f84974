package governance

import (
	"errors"

	"github.com/daokit-xyz/go-daokit/proposal"
	"github.com/daokit-xyz/go-daokit/registry"
	"github.com/daokit-xyz/go-daokit/treasury"
	"github.com/daokit-xyz/go-daokit/voting"
)

// Caller-visible error kinds. Component errors are surfaced directly so
// callers can match with errors.Is regardless of which layer raised them.
var (
	ErrAlreadyInitialized = registry.ErrAlreadyInitialized
	ErrUnauthorized       = registry.ErrUnauthorized
	ErrNotAMember         = registry.ErrNotAMember
	ErrInvalidProposal    = proposal.ErrInvalidProposal
	ErrNotFound           = proposal.ErrNotFound
	ErrVotingClosed       = voting.ErrVotingClosed
	ErrAlreadyVoted       = voting.ErrAlreadyVoted
	ErrInvalidChoice      = voting.ErrInvalidChoice
	ErrInsufficientFunds  = treasury.ErrInsufficientFunds
	ErrAlreadyExecuted    = treasury.ErrAlreadyExecuted

	// ErrVotingOpen is returned by Resolve while the voting period is
	// still running.
	ErrVotingOpen = errors.New("governance: voting period still open")

	// ErrNotApproved is returned by Execute for proposals that are not
	// in the approved state.
	ErrNotApproved = errors.New("governance: proposal not approved")
)
