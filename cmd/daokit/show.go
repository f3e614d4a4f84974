package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/daokit-xyz/go-daokit/proposal"
	"github.com/daokit-xyz/go-daokit/voting"
)

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit show [options] <proposal-id>

Show a proposal's details and current tally.

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

	p, err := dao.GetProposal(id)
	if err != nil {
		return err
	}

	fmt.Printf("Proposal %d: %s\n", p.ID, p.Title)
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}
	fmt.Printf("  Kind:     %s\n", p.Kind)
	fmt.Printf("  Creator:  %s\n", p.Creator)
	fmt.Printf("  Status:   %s\n", p.Status)
	fmt.Printf("  Deadline: %s\n", p.Deadline.Format("2006-01-02 15:04:05 MST"))
	if p.Kind == proposal.KindFundingRequest {
		fmt.Printf("  Payout:   %s -> %s\n", p.Amount.Dec(), p.Recipient)
	}
	if p.WinningOption != proposal.NoWinner {
		fmt.Printf("  Winner:   [%d] %s\n", p.WinningOption, p.Options[p.WinningOption])
	}

	t, err := dao.Tally(id)
	if err != nil {
		return err
	}
	printTally(t)
	return nil
}

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	activeOnly := fs.Bool("active", false, "Show only proposals open for voting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit list [options]

List proposals in creation order.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	proposals := dao.Proposals()
	if len(proposals) == 0 {
		fmt.Println("No proposals")
		return nil
	}

	for _, p := range proposals {
		if *activeOnly && p.Status != proposal.StatusOpen {
			continue
		}
		fmt.Printf("%4d  %-10s  %-16s  %s\n", p.ID, p.Status, p.Kind, p.Title)
	}
	return nil
}

func tally(args []string) error {
	fs := flag.NewFlagSet("tally", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit tally [options] <proposal-id>

Show the current tally of a proposal. Partial results are available
while voting is open.

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

	t, err := dao.Tally(id)
	if err != nil {
		return err
	}
	printTally(t)
	return nil
}

func members(args []string) error {
	fs := flag.NewFlagSet("members", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit members [options]

List members with balances, sorted by address.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	all := dao.Members()
	if len(all) == 0 {
		fmt.Println("No members")
		return nil
	}

	for _, m := range all {
		status := "active"
		if !m.Active {
			status = "inactive"
		}
		fmt.Printf("%-24s  %12s  %s\n", m.Address, m.Balance.Dec(), status)
	}
	fmt.Printf("\nTotal supply: %s\n", dao.TotalSupply().Dec())
	fmt.Printf("Treasury:     %s\n", dao.TreasuryBalance().Dec())
	return nil
}

func printTally(t *voting.Tally) {
	fmt.Printf("  Tally (%d ballots, %s participating):\n", t.Ballots, t.Participating.Dec())
	for i, opt := range t.Options {
		fmt.Printf("    [%d] %-12s %s\n", i, opt, t.Weights[i].Dec())
	}
}
