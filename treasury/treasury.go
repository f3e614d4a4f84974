// Package treasury holds the organization's pooled funds and the
// append-only ledger of executed disbursements. A funding proposal is
// disbursed at most once, and the balance can never go negative.
package treasury

import (
	"errors"
	"time"

	"github.com/holiman/uint256"
)

var (
	ErrInsufficientFunds = errors.New("treasury: insufficient funds")
	ErrAlreadyExecuted   = errors.New("treasury: proposal already executed")
)

// Disbursement records one executed payout.
type Disbursement struct {
	ProposalID uint64
	Recipient  string
	Amount     *uint256.Int
	ExecutedAt time.Time
}

// Treasury is the pooled fund controlled by approved funding requests.
type Treasury struct {
	balance  *uint256.Int
	ledger   []Disbursement
	executed map[uint64]bool
}

// New creates a treasury with the given starting balance.
func New(balance *uint256.Int) *Treasury {
	b := uint256.NewInt(0)
	if balance != nil {
		b = balance.Clone()
	}
	return &Treasury{
		balance:  b,
		executed: make(map[uint64]bool),
	}
}

// Balance returns the current fund balance.
func (t *Treasury) Balance() *uint256.Int {
	return t.balance.Clone()
}

// Deposit credits the treasury.
func (t *Treasury) Deposit(amount *uint256.Int) {
	t.balance.Add(t.balance, amount)
}

// Executed reports whether a proposal has already been disbursed.
func (t *Treasury) Executed(proposalID uint64) bool {
	return t.executed[proposalID]
}

// CanDisburse reports whether the balance covers the amount.
func (t *Treasury) CanDisburse(amount *uint256.Int) bool {
	return t.balance.Cmp(amount) >= 0
}

// Disburse debits the balance and appends a ledger entry. All checks
// happen before any mutation, so a failed call leaves no partial state.
func (t *Treasury) Disburse(proposalID uint64, recipient string, amount *uint256.Int, executedAt time.Time) error {
	if t.executed[proposalID] {
		return ErrAlreadyExecuted
	}
	if !t.CanDisburse(amount) {
		return ErrInsufficientFunds
	}

	t.balance.Sub(t.balance, amount)
	t.executed[proposalID] = true
	t.ledger = append(t.ledger, Disbursement{
		ProposalID: proposalID,
		Recipient:  recipient,
		Amount:     amount.Clone(),
		ExecutedAt: executedAt,
	})
	return nil
}

// Disbursements returns the payout ledger in execution order.
func (t *Treasury) Disbursements() []Disbursement {
	result := make([]Disbursement, len(t.ledger))
	copy(result, t.ledger)
	return result
}
