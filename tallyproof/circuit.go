// Package tallyproof produces zero-knowledge proofs that a published
// tally is consistent with a set of ballots, without revealing who
// voted for what. The per-option totals and the participating weight
// are public; the individual (choice, weight) pairs stay private.
package tallyproof

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/daokit-xyz/go-daokit/voting"
)

// Circuit constrains public per-option totals to the private ballots.
//
// Each ballot selects exactly one option; unused ballot slots are
// padded with zero weight so the slice lengths stay fixed.
type Circuit struct {
	// OptionTotals is the published weight total per option.
	OptionTotals []frontend.Variable `gnark:",public"`

	// Participating is the published total weight across all ballots.
	Participating frontend.Variable `gnark:",public"`

	// Choices holds each ballot's option index.
	Choices []frontend.Variable `gnark:",secret"`

	// Weights holds each ballot's voting weight.
	Weights []frontend.Variable `gnark:",secret"`
}

// NewCircuit allocates a circuit shape for the given ballot capacity.
func NewCircuit(numOptions, maxBallots int) *Circuit {
	return &Circuit{
		OptionTotals: make([]frontend.Variable, numOptions),
		Choices:      make([]frontend.Variable, maxBallots),
		Weights:      make([]frontend.Variable, maxBallots),
	}
}

// Define declares the tally constraints.
//
// For each ballot i and option j, a selector bit is 1 iff the ballot
// chose that option. Selector bits per ballot must sum to 1, which
// also forces every choice index into range.
func (c *Circuit) Define(api frontend.API) error {
	numOptions := len(c.OptionTotals)

	totals := make([]frontend.Variable, numOptions)
	for j := range totals {
		totals[j] = frontend.Variable(0)
	}
	participating := frontend.Variable(0)

	for i := range c.Choices {
		selectorSum := frontend.Variable(0)
		for j := 0; j < numOptions; j++ {
			selector := api.IsZero(api.Sub(c.Choices[i], j))
			totals[j] = api.Add(totals[j], api.Mul(selector, c.Weights[i]))
			selectorSum = api.Add(selectorSum, selector)
		}
		api.AssertIsEqual(selectorSum, 1)
		participating = api.Add(participating, c.Weights[i])
	}

	for j := 0; j < numOptions; j++ {
		api.AssertIsEqual(totals[j], c.OptionTotals[j])
	}
	api.AssertIsEqual(participating, c.Participating)

	return nil
}

// Assignment builds a full witness assignment from a tally and its
// ballots. Unused ballot slots are padded with option 0 and weight 0.
func Assignment(t *voting.Tally, votes []voting.Vote, maxBallots int) (*Circuit, error) {
	if len(votes) > maxBallots {
		return nil, fmt.Errorf("tallyproof: %d ballots exceed capacity %d", len(votes), maxBallots)
	}

	a := NewCircuit(len(t.Options), maxBallots)
	for j := range t.Weights {
		a.OptionTotals[j] = t.Weights[j].ToBig()
	}
	a.Participating = t.Participating.ToBig()

	for i := 0; i < maxBallots; i++ {
		if i < len(votes) {
			if votes[i].Choice < 0 || votes[i].Choice >= len(t.Options) {
				return nil, fmt.Errorf("tallyproof: ballot %d choice %d out of range", i, votes[i].Choice)
			}
			a.Choices[i] = votes[i].Choice
			a.Weights[i] = votes[i].Weight.ToBig()
		} else {
			a.Choices[i] = 0
			a.Weights[i] = big.NewInt(0)
		}
	}
	return a, nil
}

// PublicAssignment builds a public-only assignment for verification.
func PublicAssignment(t *voting.Tally, maxBallots int) *Circuit {
	a := NewCircuit(len(t.Options), maxBallots)
	for j := range t.Weights {
		a.OptionTotals[j] = t.Weights[j].ToBig()
	}
	a.Participating = t.Participating.ToBig()
	return a
}
