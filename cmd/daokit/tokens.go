package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func deposit(args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	amount := fs.String("amount", "", "Amount to credit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit deposit [options]

Credit the treasury.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return fmt.Errorf("--amount is required")
	}
	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	if err := dao.Deposit(ctx, value); err != nil {
		return err
	}
	fmt.Printf("Treasury balance: %s\n", dao.TreasuryBalance().Dec())
	return nil
}

func distribute(args []string) error {
	fs := flag.NewFlagSet("distribute", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	as := fs.String("as", "", "Acting distributor address")
	to := fs.String("to", "", "Recipient member address")
	amount := fs.String("amount", "", "Amount to distribute")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit distribute [options]

Mint tokens to an existing member. Only authorized distributors
(founders) may distribute.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *as == "" || *to == "" || *amount == "" {
		return fmt.Errorf("--as, --to, and --amount are required")
	}
	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	if err := dao.Distribute(ctx, *as, *to, value); err != nil {
		return err
	}
	fmt.Printf("Distributed %s to %s\n", value.Dec(), *to)
	fmt.Printf("  Balance: %s\n", dao.BalanceOf(*to).Dec())
	fmt.Printf("  Supply:  %s\n", dao.TotalSupply().Dec())
	return nil
}

func deactivate(args []string) error {
	fs := flag.NewFlagSet("deactivate", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	as := fs.String("as", "", "Acting distributor address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit deactivate [options] <member>

Revoke a member's voting rights. The member keeps their balance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *as == "" {
		return fmt.Errorf("--as is required")
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("member address required")
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	if err := dao.Deactivate(ctx, *as, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("Deactivated %s\n", fs.Arg(0))
	return nil
}
