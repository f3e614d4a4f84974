package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/daokit-xyz/go-daokit/tallyproof"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	capacity := fs.Int("capacity", 16, "Maximum number of ballots the circuit supports")
	verifierOut := fs.String("verifier", "", "Write a Solidity verifier contract to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit prove [options] <proposal-id>

Generate and check a zero-knowledge proof that the proposal's published
tally matches its recorded ballots, without revealing individual votes.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  daokit prove --db dao.db 1
  daokit prove --db dao.db --capacity 64 --verifier TallyVerifier.sol 1
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("proposal id required")
	}
	id, err := parseProposalID(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	t, err := dao.Tally(id)
	if err != nil {
		return err
	}
	votes, err := dao.Votes(id)
	if err != nil {
		return err
	}

	fmt.Printf("Compiling tally circuit (%d options, %d ballot slots)...\n",
		len(t.Options), *capacity)
	prover, err := tallyproof.NewProver(len(t.Options), *capacity)
	if err != nil {
		return err
	}
	fmt.Printf("  %d constraints\n", prover.Constraints())

	assignment, err := tallyproof.Assignment(t, votes, *capacity)
	if err != nil {
		return err
	}
	proof, err := prover.Prove(assignment)
	if err != nil {
		return err
	}
	if err := prover.Verify(proof, tallyproof.PublicAssignment(t, *capacity)); err != nil {
		return err
	}
	fmt.Printf("Proof verified: tally of proposal %d is consistent with %d ballots\n",
		id, t.Ballots)

	if *verifierOut != "" {
		f, err := os.Create(*verifierOut)
		if err != nil {
			return fmt.Errorf("create verifier file: %w", err)
		}
		defer f.Close()
		if err := prover.ExportVerifier(f); err != nil {
			return err
		}
		fmt.Printf("Wrote Solidity verifier to %s\n", *verifierOut)
	}
	return nil
}
