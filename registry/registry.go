// Package registry owns the membership set and token balances of a DAO.
// Balances are unsigned 256-bit integers; the sum of all member balances
// always equals the total supply.
package registry

import (
	"errors"
	"sort"

	"github.com/holiman/uint256"
)

var (
	ErrAlreadyInitialized = errors.New("registry: already initialized")
	ErrNotAMember         = errors.New("registry: not a member")
	ErrUnauthorized       = errors.New("registry: unauthorized")
	ErrNoFounders         = errors.New("registry: at least one founder required")
	ErrDuplicateFounder   = errors.New("registry: duplicate founder address")
)

// Member is a DAO member with a token balance.
// Members are never deleted, only deactivated.
type Member struct {
	Address string
	Balance *uint256.Int
	Active  bool
}

// Founder describes an initial member and allocation.
type Founder struct {
	Address string
	Balance *uint256.Int
}

// EqualAllocation splits a total supply evenly across addresses.
// Any indivisible remainder is dropped, so the recorded supply is the
// sum of the shares actually allocated.
func EqualAllocation(addresses []string, total *uint256.Int) []Founder {
	founders := make([]Founder, 0, len(addresses))
	if len(addresses) == 0 {
		return founders
	}
	share := new(uint256.Int).Div(total, uint256.NewInt(uint64(len(addresses))))
	for _, addr := range addresses {
		founders = append(founders, Founder{Address: addr, Balance: share.Clone()})
	}
	return founders
}

// Registry tracks members, balances, and the total supply.
type Registry struct {
	members      map[string]*Member
	distributors map[string]bool
	totalSupply  *uint256.Int
	initialized  bool
}

// New creates an empty, uninitialized registry.
func New() *Registry {
	return &Registry{
		members:      make(map[string]*Member),
		distributors: make(map[string]bool),
		totalSupply:  uint256.NewInt(0),
	}
}

// Initialized reports whether founders have been established.
func (r *Registry) Initialized() bool {
	return r.initialized
}

// InitFounders establishes the founding members with their allocations.
// Founders are authorized distributors. Fails with ErrAlreadyInitialized
// on a second call and ErrDuplicateFounder on a repeated address; a
// duplicate would overwrite the member entry while still counting both
// allocations toward the supply.
func (r *Registry) InitFounders(founders []Founder) error {
	if r.initialized {
		return ErrAlreadyInitialized
	}
	if len(founders) == 0 {
		return ErrNoFounders
	}
	seen := make(map[string]bool, len(founders))
	for _, f := range founders {
		if seen[f.Address] {
			return ErrDuplicateFounder
		}
		seen[f.Address] = true
	}

	for _, f := range founders {
		balance := uint256.NewInt(0)
		if f.Balance != nil {
			balance = f.Balance.Clone()
		}
		r.members[f.Address] = &Member{
			Address: f.Address,
			Balance: balance,
			Active:  true,
		}
		r.distributors[f.Address] = true
		r.totalSupply.Add(r.totalSupply, balance)
	}
	r.initialized = true
	return nil
}

// IsMember reports whether the address is an active member.
func (r *Registry) IsMember(address string) bool {
	m, ok := r.members[address]
	return ok && m.Active
}

// IsDistributor reports whether the address may distribute tokens.
func (r *Registry) IsDistributor(address string) bool {
	return r.distributors[address]
}

// BalanceOf returns the member's balance, or zero for unknown addresses.
func (r *Registry) BalanceOf(address string) *uint256.Int {
	if m, ok := r.members[address]; ok {
		return m.Balance.Clone()
	}
	return uint256.NewInt(0)
}

// TotalSupply returns the sum of all member balances.
func (r *Registry) TotalSupply() *uint256.Int {
	return r.totalSupply.Clone()
}

// Credit increases a member's balance and the total supply.
// The recipient must be a member.
func (r *Registry) Credit(address string, amount *uint256.Int) error {
	m, ok := r.members[address]
	if !ok {
		return ErrNotAMember
	}
	m.Balance.Add(m.Balance, amount)
	r.totalSupply.Add(r.totalSupply, amount)
	return nil
}

// Deactivate marks a member inactive. Deactivated members keep their
// balance (it still counts toward the supply) but lose voting rights.
func (r *Registry) Deactivate(address string) error {
	m, ok := r.members[address]
	if !ok {
		return ErrNotAMember
	}
	m.Active = false
	return nil
}

// Members returns all members sorted by address.
func (r *Registry) Members() []Member {
	result := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		result = append(result, Member{
			Address: m.Address,
			Balance: m.Balance.Clone(),
			Active:  m.Active,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Address < result[j].Address })
	return result
}
