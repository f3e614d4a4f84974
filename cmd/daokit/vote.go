package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
)

func vote(args []string) error {
	fs := flag.NewFlagSet("vote", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	as := fs.String("as", "", "Acting member address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit vote [options] <proposal-id> <choice>

Cast a weighted vote. The choice is an option index or its label; the
vote's weight is the member's current token balance.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  daokit vote --db dao.db --as carol 1 approve
  daokit vote --db dao.db --as bob 2 0
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *as == "" {
		return fmt.Errorf("--as is required")
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("proposal id and choice required")
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

	choice, err := resolveChoice(fs.Arg(1), p.Options)
	if err != nil {
		return err
	}

	if err := dao.Vote(ctx, *as, id, choice); err != nil {
		return err
	}

	fmt.Printf("Recorded vote by %s on proposal %d: %s (weight %s)\n",
		*as, id, p.Options[choice], dao.BalanceOf(*as).Dec())
	return nil
}

// resolveChoice accepts either an option index or an option label.
func resolveChoice(arg string, options []string) (int, error) {
	if idx, err := strconv.Atoi(arg); err == nil {
		return idx, nil
	}
	for i, opt := range options {
		if opt == arg {
			return i, nil
		}
	}
	return 0, fmt.Errorf("choice %q is not an option", arg)
}
