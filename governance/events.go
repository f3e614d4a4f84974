package governance

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/proposal"
)

// Event types emitted to the DAO's stream, in call order. Replaying the
// stream from version 0 rebuilds the full engine state.
const (
	EventDaoInitiated      = "DaoInitiated"
	EventTokensDistributed = "TokensDistributed"
	EventTreasuryDeposited = "TreasuryDeposited"
	EventMemberDeactivated = "MemberDeactivated"
	EventProposalCreated   = "ProposalCreated"
	EventVoteCast          = "VoteCast"
	EventProposalClosed    = "ProposalClosed"
	EventProposalResolved  = "ProposalResolved"
	EventFundsDisbursed    = "FundsDisbursed"
)

// Token amounts are carried in event payloads as decimal strings.

type founderPayload struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type daoInitiatedPayload struct {
	Founders    []founderPayload `json:"founders"`
	TotalSupply string           `json:"total_supply"`
	Treasury    string           `json:"treasury"`
}

type tokensDistributedPayload struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type treasuryDepositedPayload struct {
	Amount string `json:"amount"`
}

type memberDeactivatedPayload struct {
	Address string `json:"address"`
}

type proposalCreatedPayload struct {
	ID             uint64        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Creator        string        `json:"creator"`
	Kind           proposal.Kind `json:"kind"`
	Options        []string      `json:"options"`
	Recipient      string        `json:"recipient,omitempty"`
	Amount         string        `json:"amount,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Deadline       time.Time     `json:"deadline"`
	EligibleWeight string        `json:"eligible_weight"`
}

type voteCastPayload struct {
	ProposalID uint64    `json:"proposal_id"`
	Voter      string    `json:"voter"`
	Choice     int       `json:"choice"`
	Weight     string    `json:"weight"`
	CastAt     time.Time `json:"cast_at"`
}

type proposalClosedPayload struct {
	ID uint64 `json:"id"`
}

type proposalResolvedPayload struct {
	ID            uint64 `json:"id"`
	Approved      bool   `json:"approved"`
	WinningOption int    `json:"winning_option"`
}

type fundsDisbursedPayload struct {
	ProposalID uint64    `json:"proposal_id"`
	Recipient  string    `json:"recipient"`
	Amount     string    `json:"amount"`
	ExecutedAt time.Time `json:"executed_at"`
}

func decString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func parseDec(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}
