package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/daokit-xyz/go-daokit/proposal"
)

func closeProposal(args []string) error {
	fs := flag.NewFlagSet("close", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit close [options] <proposal-id>

Close a proposal whose voting deadline has passed. A no-op for
proposals still open or already closed.

Options:
`)
		fs.PrintDefaults()
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

	closed, err := dao.CloseIfExpired(ctx, id)
	if err != nil {
		return err
	}
	if closed {
		fmt.Printf("Closed proposal %d\n", id)
	} else {
		fmt.Printf("Proposal %d not closed (still open or already past closing)\n", id)
	}
	return nil
}

func resolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit resolve [options] <proposal-id>

Resolve a proposal from its tally once the voting period has ended.
Resolving an already-resolved proposal reprints the stored outcome.

Options:
`)
		fs.PrintDefaults()
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

	outcome, err := dao.Resolve(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Proposal %d: %s\n", id, outcome.Status)
	if outcome.WinningOption != proposal.NoWinner {
		fmt.Printf("  Winning option: [%d] %s\n",
			outcome.WinningOption, outcome.Tally.Options[outcome.WinningOption])
	}
	printTally(outcome.Tally)
	return nil
}

func execute(args []string) error {
	fs := flag.NewFlagSet("execute", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit execute [options] <proposal-id>

Disburse an approved funding request from the treasury. Fails without
side effects if the treasury cannot cover the amount; retry after a
deposit.

Options:
`)
		fs.PrintDefaults()
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

	if err := dao.Execute(ctx, id); err != nil {
		return err
	}

	p, err := dao.GetProposal(id)
	if err != nil {
		return err
	}
	fmt.Printf("Disbursed %s to %s (proposal %d)\n", p.Amount.Dec(), p.Recipient, id)
	fmt.Printf("  Treasury balance: %s\n", dao.TreasuryBalance().Dec())
	return nil
}
