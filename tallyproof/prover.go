package tallyproof

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Prover compiles the tally circuit for one (options, ballots) shape
// and generates Groth16 proofs over BN254. Safe for concurrent use
// after construction.
type Prover struct {
	curve      ecc.ID
	cs         constraint.ConstraintSystem
	pk         groth16.ProvingKey
	vk         groth16.VerifyingKey
	numOptions int
	maxBallots int
}

// NewProver compiles and sets up the circuit for the given shape.
// Setup here is a single-party ceremony; production deployments would
// substitute a multi-party one.
func NewProver(numOptions, maxBallots int) (*Prover, error) {
	if numOptions <= 0 || maxBallots <= 0 {
		return nil, fmt.Errorf("tallyproof: shape %dx%d invalid", numOptions, maxBallots)
	}

	curve := ecc.BN254
	cs, err := frontend.Compile(curve.ScalarField(), r1cs.NewBuilder, NewCircuit(numOptions, maxBallots))
	if err != nil {
		return nil, fmt.Errorf("compile tally circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("setup tally circuit: %w", err)
	}

	return &Prover{
		curve:      curve,
		cs:         cs,
		pk:         pk,
		vk:         vk,
		numOptions: numOptions,
		maxBallots: maxBallots,
	}, nil
}

// Constraints returns the number of constraints in the compiled circuit.
func (p *Prover) Constraints() int {
	return p.cs.GetNbConstraints()
}

// Prove generates a proof that the assignment's public totals are
// consistent with its private ballots.
func (p *Prover) Prove(assignment *Circuit) (groth16.Proof, error) {
	if len(assignment.OptionTotals) != p.numOptions || len(assignment.Choices) != p.maxBallots {
		return nil, fmt.Errorf("tallyproof: assignment shape %dx%d, prover expects %dx%d",
			len(assignment.OptionTotals), len(assignment.Choices), p.numOptions, p.maxBallots)
	}

	witness, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(p.cs, p.pk, witness)
	if err != nil {
		return nil, fmt.Errorf("generate proof: %w", err)
	}
	return proof, nil
}

// Verify checks a proof against the public part of an assignment.
func (p *Prover) Verify(proof groth16.Proof, public *Circuit) error {
	witness, err := frontend.NewWitness(public, p.curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("build public witness: %w", err)
	}
	if err := groth16.Verify(proof, p.vk, witness); err != nil {
		return fmt.Errorf("verify proof: %w", err)
	}
	return nil
}

// ExportVerifier writes a Solidity verifier contract for the circuit,
// for hosts that anchor resolutions on an EVM chain.
func (p *Prover) ExportVerifier(w io.Writer) error {
	if err := p.vk.ExportSolidity(w); err != nil {
		return fmt.Errorf("export verifier: %w", err)
	}
	return nil
}
