package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/daokit-xyz/go-daokit/registry"
)

func initDao(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	treasury := fs.String("treasury", "0", "Initial treasury balance")
	equal := fs.String("equal-split", "", "Split this total supply evenly across the founders")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit init [options] <addr>=<balance> [<addr>=<balance> ...]

Initialize a DAO with founding members and a treasury. Founders are
authorized token distributors.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Explicit allocations
  daokit init --db dao.db --treasury 1000 alice=100 bob=50

  # Equal split of 300 tokens across three founders
  daokit init --db dao.db --equal-split 300 alice bob carol
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("at least one founder required")
	}

	var founders []registry.Founder
	if *equal != "" {
		total, err := parseAmount(*equal)
		if err != nil {
			return err
		}
		founders = registry.EqualAllocation(fs.Args(), total)
	} else {
		for _, arg := range fs.Args() {
			addr, balance, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("founder %q must be <addr>=<balance>", arg)
			}
			amount, err := parseAmount(balance)
			if err != nil {
				return err
			}
			founders = append(founders, registry.Founder{Address: addr, Balance: amount})
		}
	}

	initial, err := parseAmount(*treasury)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	if err := dao.Init(ctx, founders, initial); err != nil {
		return err
	}

	fmt.Printf("Initialized DAO %q with %d founders\n", dao.ID(), len(founders))
	fmt.Printf("  Total supply: %s\n", dao.TotalSupply().Dec())
	fmt.Printf("  Treasury:     %s\n", dao.TreasuryBalance().Dec())
	return nil
}
