// Package governance composes the membership registry, proposal store,
// voting engine, and treasury behind a single facade.
//
// Every mutating operation validates its preconditions, then commits a
// single event to the DAO's stream before applying it to in-memory state.
// The append is the commit point: a failed call leaves no partial state,
// and replaying the stream (Load) rebuilds the engine exactly.
//
// The engine trusts the host for caller identity and for the clock; it
// performs no authentication of its own.
package governance

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/eventsource"
	"github.com/daokit-xyz/go-daokit/proposal"
	"github.com/daokit-xyz/go-daokit/registry"
	"github.com/daokit-xyz/go-daokit/treasury"
	"github.com/daokit-xyz/go-daokit/voting"
)

// EventHandler observes committed events in call order.
type EventHandler func(*eventsource.Event)

// DAO is the governance engine for one organization. Its event stream
// in the underlying store is named by the DAO ID.
type DAO struct {
	mu      sync.Mutex
	id      string
	cfg     *Config
	clock   Clock
	store   eventsource.Store
	handler EventHandler
	version int

	registry  *registry.Registry
	proposals *proposal.Store
	votes     *voting.Engine
	treasury  *treasury.Treasury
}

// Option configures a DAO.
type Option func(*DAO)

// WithClock replaces the wall clock, e.g. with a block-height-derived
// time source or a fake in tests.
func WithClock(c Clock) Option {
	return func(d *DAO) { d.clock = c }
}

// WithHandler registers an observer notified after each event commits.
func WithHandler(h EventHandler) Option {
	return func(d *DAO) { d.handler = h }
}

// New creates an empty DAO writing to the given event store.
func New(id string, cfg *Config, store eventsource.Store, opts ...Option) *DAO {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := &DAO{
		id:        id,
		cfg:       cfg,
		clock:     SystemClock{},
		store:     store,
		version:   -1,
		registry:  registry.New(),
		proposals: proposal.NewStore(),
		votes:     voting.NewEngine(),
		treasury:  treasury.New(nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load rebuilds a DAO by replaying its event stream from the store.
func Load(ctx context.Context, id string, cfg *Config, store eventsource.Store, opts ...Option) (*DAO, error) {
	d := New(id, cfg, store, opts...)

	events, err := store.Read(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("read stream %s: %w", id, err)
	}
	for _, event := range events {
		if err := d.apply(event); err != nil {
			return nil, fmt.Errorf("replay %s at version %d: %w", event.Type, event.Version, err)
		}
		d.version = event.Version
	}
	return d, nil
}

// ID returns the DAO identifier (its stream name).
func (d *DAO) ID() string {
	return d.id
}

// Version returns the stream version of the last applied event, -1 when
// no events have been committed.
func (d *DAO) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// commit appends one event at the current version, applies it, and
// notifies the handler. Validation must be complete before calling:
// applying a committed event cannot fail.
func (d *DAO) commit(ctx context.Context, eventType string, payload any) error {
	event, err := eventsource.NewEvent(d.id, eventType, payload)
	if err != nil {
		return err
	}
	version, err := d.store.Append(ctx, d.id, d.version, []*eventsource.Event{event})
	if err != nil {
		return fmt.Errorf("append %s: %w", eventType, err)
	}
	if err := d.apply(event); err != nil {
		return fmt.Errorf("apply %s: %w", eventType, err)
	}
	d.version = version
	if d.handler != nil {
		d.handler(event)
	}
	return nil
}

// Init establishes the founding members and the initial treasury balance.
func (d *DAO) Init(ctx context.Context, founders []registry.Founder, treasuryBalance *uint256.Int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.registry.Initialized() {
		return ErrAlreadyInitialized
	}
	if len(founders) == 0 {
		return registry.ErrNoFounders
	}
	seen := make(map[string]bool, len(founders))
	for _, f := range founders {
		if seen[f.Address] {
			return registry.ErrDuplicateFounder
		}
		seen[f.Address] = true
	}

	payload := daoInitiatedPayload{
		Treasury: decString(treasuryBalance),
	}
	supply := uint256.NewInt(0)
	for _, f := range founders {
		payload.Founders = append(payload.Founders, founderPayload{
			Address: f.Address,
			Balance: decString(f.Balance),
		})
		if f.Balance != nil {
			supply.Add(supply, f.Balance)
		}
	}
	payload.TotalSupply = supply.Dec()

	return d.commit(ctx, EventDaoInitiated, payload)
}

// Distribute mints additional tokens to an existing member. The caller
// must be an authorized distributor.
func (d *DAO) Distribute(ctx context.Context, caller, recipient string, amount *uint256.Int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registry.IsDistributor(caller) {
		return ErrUnauthorized
	}
	if !d.registry.IsMember(recipient) {
		return ErrNotAMember
	}

	return d.commit(ctx, EventTokensDistributed, tokensDistributedPayload{
		Recipient: recipient,
		Amount:    decString(amount),
	})
}

// Deposit credits the treasury. The host vouches for the origin of the
// funds.
func (d *DAO) Deposit(ctx context.Context, amount *uint256.Int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.commit(ctx, EventTreasuryDeposited, treasuryDepositedPayload{
		Amount: decString(amount),
	})
}

// Deactivate revokes a member's voting rights. The caller must be an
// authorized distributor. The member's balance is retained.
func (d *DAO) Deactivate(ctx context.Context, caller, member string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registry.IsDistributor(caller) {
		return ErrUnauthorized
	}
	if !d.registry.IsMember(member) {
		return ErrNotAMember
	}

	return d.commit(ctx, EventMemberDeactivated, memberDeactivatedPayload{Address: member})
}

// CreateProposal validates and opens a new proposal, returning its ID.
// For general votes, options carries the ballot; for funding requests,
// recipient and amount describe the payout and options must be empty.
func (d *DAO) CreateProposal(ctx context.Context, creator, title, description string,
	kind proposal.Kind, options []string, recipient string, amount *uint256.Int) (uint64, error) {

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registry.IsMember(creator) {
		return 0, ErrNotAMember
	}

	now := d.clock.Now()
	p, err := proposal.New(d.proposals.NextID(), creator, title, description, kind,
		options, recipient, amount, now, d.cfg.VotingPeriod, d.registry.TotalSupply())
	if err != nil {
		return 0, err
	}

	payload := proposalCreatedPayload{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Creator:        p.Creator,
		Kind:           p.Kind,
		Options:        p.Options,
		Recipient:      p.Recipient,
		CreatedAt:      p.CreatedAt,
		Deadline:       p.Deadline,
		EligibleWeight: p.EligibleWeight.Dec(),
	}
	if p.Amount != nil {
		payload.Amount = p.Amount.Dec()
	}

	if err := d.commit(ctx, EventProposalCreated, payload); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Vote casts a weighted ballot. The weight is the voter's balance at
// cast time. Voting on an expired proposal closes it as a side effect.
func (d *DAO) Vote(ctx context.Context, voter string, proposalID uint64, choice int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return err
	}

	now := d.clock.Now()
	if p.Status == proposal.StatusOpen && p.Expired(now) {
		if err := d.commit(ctx, EventProposalClosed, proposalClosedPayload{ID: proposalID}); err != nil {
			return err
		}
		return ErrVotingClosed
	}
	if p.Status != proposal.StatusOpen {
		return ErrVotingClosed
	}
	if !d.registry.IsMember(voter) {
		return ErrNotAMember
	}
	if d.votes.HasVoted(proposalID, voter) {
		return ErrAlreadyVoted
	}
	if choice < 0 || choice >= len(p.Options) {
		return ErrInvalidChoice
	}

	return d.commit(ctx, EventVoteCast, voteCastPayload{
		ProposalID: proposalID,
		Voter:      voter,
		Choice:     choice,
		Weight:     d.registry.BalanceOf(voter).Dec(),
		CastAt:     now,
	})
}

// CloseIfExpired transitions an open proposal to closed once its
// deadline has passed. Idempotent; reports whether a close happened.
func (d *DAO) CloseIfExpired(ctx context.Context, proposalID uint64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return false, err
	}
	if p.Status != proposal.StatusOpen || !p.Expired(d.clock.Now()) {
		return false, nil
	}
	if err := d.commit(ctx, EventProposalClosed, proposalClosedPayload{ID: proposalID}); err != nil {
		return false, err
	}
	return true, nil
}

// Outcome is the result of resolving a proposal.
type Outcome struct {
	Status        proposal.Status
	WinningOption int
	Tally         *voting.Tally
}

// Resolve closes out voting and decides the proposal. Resolving an
// already-resolved proposal returns the stored outcome without side
// effects. Resolving before the deadline fails with ErrVotingOpen.
func (d *DAO) Resolve(ctx context.Context, proposalID uint64) (*Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return nil, err
	}

	if p.Status.Resolved() {
		return &Outcome{
			Status:        p.Status,
			WinningOption: p.WinningOption,
			Tally:         d.votes.TallyFor(p),
		}, nil
	}

	if p.Status == proposal.StatusOpen {
		if !p.Expired(d.clock.Now()) {
			return nil, ErrVotingOpen
		}
		if err := d.commit(ctx, EventProposalClosed, proposalClosedPayload{ID: proposalID}); err != nil {
			return nil, err
		}
	}

	tally := d.votes.TallyFor(p)
	approved, winner := voting.Outcome(p, tally, d.cfg.QuorumPercent, d.cfg.MinVotes)

	err = d.commit(ctx, EventProposalResolved, proposalResolvedPayload{
		ID:            proposalID,
		Approved:      approved,
		WinningOption: winner,
	})
	if err != nil {
		return nil, err
	}

	return &Outcome{Status: p.Status, WinningOption: p.WinningOption, Tally: tally}, nil
}

// Execute disburses an approved funding request. ErrInsufficientFunds
// leaves the proposal approved so the call can be retried after a
// deposit; the debit, ledger entry, and status change commit together.
func (d *DAO) Execute(ctx context.Context, proposalID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return err
	}
	if p.Kind != proposal.KindFundingRequest {
		return fmt.Errorf("%w: not a funding request", ErrInvalidProposal)
	}
	if p.Status == proposal.StatusExecuted {
		return ErrAlreadyExecuted
	}
	if p.Status != proposal.StatusApproved {
		return ErrNotApproved
	}
	if !d.treasury.CanDisburse(p.Amount) {
		return ErrInsufficientFunds
	}

	return d.commit(ctx, EventFundsDisbursed, fundsDisbursedPayload{
		ProposalID: proposalID,
		Recipient:  p.Recipient,
		Amount:     p.Amount.Dec(),
		ExecutedAt: d.clock.Now(),
	})
}

// apply mutates engine state from a committed or replayed event.
func (d *DAO) apply(event *eventsource.Event) error {
	switch event.Type {
	case EventDaoInitiated:
		var payload daoInitiatedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		founders := make([]registry.Founder, 0, len(payload.Founders))
		for _, f := range payload.Founders {
			balance, err := parseDec(f.Balance)
			if err != nil {
				return err
			}
			founders = append(founders, registry.Founder{Address: f.Address, Balance: balance})
		}
		if err := d.registry.InitFounders(founders); err != nil {
			return err
		}
		initial, err := parseDec(payload.Treasury)
		if err != nil {
			return err
		}
		d.treasury.Deposit(initial)
		return nil

	case EventTokensDistributed:
		var payload tokensDistributedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		amount, err := parseDec(payload.Amount)
		if err != nil {
			return err
		}
		return d.registry.Credit(payload.Recipient, amount)

	case EventTreasuryDeposited:
		var payload treasuryDepositedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		amount, err := parseDec(payload.Amount)
		if err != nil {
			return err
		}
		d.treasury.Deposit(amount)
		return nil

	case EventMemberDeactivated:
		var payload memberDeactivatedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return d.registry.Deactivate(payload.Address)

	case EventProposalCreated:
		var payload proposalCreatedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		eligible, err := parseDec(payload.EligibleWeight)
		if err != nil {
			return err
		}
		p := &proposal.Proposal{
			ID:             payload.ID,
			Title:          payload.Title,
			Description:    payload.Description,
			Creator:        payload.Creator,
			Kind:           payload.Kind,
			Options:        payload.Options,
			Recipient:      payload.Recipient,
			CreatedAt:      payload.CreatedAt,
			Deadline:       payload.Deadline,
			Status:         proposal.StatusOpen,
			EligibleWeight: eligible,
			WinningOption:  proposal.NoWinner,
		}
		if payload.Amount != "" {
			amount, err := parseDec(payload.Amount)
			if err != nil {
				return err
			}
			p.Amount = amount
		}
		d.proposals.Put(p)
		return nil

	case EventVoteCast:
		var payload voteCastPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		weight, err := parseDec(payload.Weight)
		if err != nil {
			return err
		}
		return d.votes.Record(&voting.Vote{
			ProposalID: payload.ProposalID,
			Voter:      payload.Voter,
			Choice:     payload.Choice,
			Weight:     weight,
			CastAt:     payload.CastAt,
		})

	case EventProposalClosed:
		var payload proposalClosedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		p, err := d.proposals.Get(payload.ID)
		if err != nil {
			return err
		}
		return p.Transition(proposal.StatusClosed)

	case EventProposalResolved:
		var payload proposalResolvedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		p, err := d.proposals.Get(payload.ID)
		if err != nil {
			return err
		}
		if payload.Approved {
			p.WinningOption = payload.WinningOption
			return p.Transition(proposal.StatusApproved)
		}
		return p.Transition(proposal.StatusRejected)

	case EventFundsDisbursed:
		var payload fundsDisbursedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		amount, err := parseDec(payload.Amount)
		if err != nil {
			return err
		}
		p, err := d.proposals.Get(payload.ProposalID)
		if err != nil {
			return err
		}
		if err := d.treasury.Disburse(payload.ProposalID, payload.Recipient, amount, payload.ExecutedAt); err != nil {
			return err
		}
		// Member recipients are paid in tokens; anything else is an
		// external payout handled by the host.
		if err := d.registry.Credit(payload.Recipient, amount); err != nil && err != registry.ErrNotAMember {
			return err
		}
		return p.Transition(proposal.StatusExecuted)

	default:
		return fmt.Errorf("governance: unknown event type %q", event.Type)
	}
}

// GetProposal returns a point-in-time copy of a proposal. An open
// proposal past its deadline reads as closed even before the closing
// event commits.
func (d *DAO) GetProposal(proposalID uint64) (proposal.Proposal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return proposal.Proposal{}, err
	}
	return p.View(d.clock.Now()), nil
}

// Proposals returns point-in-time copies of all proposals in creation order.
func (d *DAO) Proposals() []proposal.Proposal {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	all := d.proposals.List()
	result := make([]proposal.Proposal, 0, len(all))
	for _, p := range all {
		result = append(result, p.View(now))
	}
	return result
}

// ActiveProposals returns the IDs of proposals still open for voting.
func (d *DAO) ActiveProposals() []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.proposals.Active(d.clock.Now())
}

// Tally computes the current tally for a proposal. Partial results are
// available while voting is open.
func (d *DAO) Tally(proposalID uint64) (*voting.Tally, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.proposals.Get(proposalID)
	if err != nil {
		return nil, err
	}
	return d.votes.TallyFor(p), nil
}

// IsMember reports whether the address is an active member.
func (d *DAO) IsMember(address string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.IsMember(address)
}

// BalanceOf returns a member's token balance.
func (d *DAO) BalanceOf(address string) *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.BalanceOf(address)
}

// TotalSupply returns the sum of all member balances.
func (d *DAO) TotalSupply() *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.TotalSupply()
}

// Members returns all members sorted by address.
func (d *DAO) Members() []registry.Member {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Members()
}

// TreasuryBalance returns the current treasury balance.
func (d *DAO) TreasuryBalance() *uint256.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.treasury.Balance()
}

// Disbursements returns the treasury payout ledger in execution order.
func (d *DAO) Disbursements() []treasury.Disbursement {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.treasury.Disbursements()
}

// Votes returns the recorded ballots for a proposal in cast order.
func (d *DAO) Votes(proposalID uint64) ([]voting.Vote, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.proposals.Get(proposalID); err != nil {
		return nil, err
	}
	recorded := d.votes.Votes(proposalID)
	result := make([]voting.Vote, 0, len(recorded))
	for _, v := range recorded {
		copied := *v
		copied.Weight = v.Weight.Clone()
		result = append(result, copied)
	}
	return result, nil
}
