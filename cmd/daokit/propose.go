package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/proposal"
)

func propose(args []string) error {
	fs := flag.NewFlagSet("propose", flag.ExitOnError)
	sf := addStoreFlags(fs)
	cf := addConfigFlags(fs)
	as := fs.String("as", "", "Acting member address")
	kind := fs.String("kind", "general", "Proposal kind: general or funding")
	title := fs.String("title", "", "Proposal title")
	description := fs.String("desc", "", "Proposal description")
	options := fs.String("options", "", "Comma-separated ballot options (general votes)")
	recipient := fs.String("recipient", "", "Payout recipient (funding requests)")
	amount := fs.String("amount", "", "Payout amount (funding requests)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit propose [options]

Create a proposal. General votes carry a caller-supplied ballot;
funding requests ask the treasury to pay a recipient and vote
approve/reject.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  daokit propose --db dao.db --as alice --title "logo color" \
      --options red,blue,green

  daokit propose --db dao.db --as alice --kind funding \
      --title "docs grant" --recipient bob --amount 250
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *as == "" {
		return fmt.Errorf("--as is required")
	}

	var (
		pKind  proposal.Kind
		ballot []string
		payout *uint256.Int
		err    error
	)
	switch *kind {
	case "general":
		pKind = proposal.KindGeneralVote
		if *options != "" {
			ballot = strings.Split(*options, ",")
		}
	case "funding":
		pKind = proposal.KindFundingRequest
		if *amount != "" {
			payout, err = parseAmount(*amount)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown kind %q, want general or funding", *kind)
	}

	ctx := context.Background()
	dao, done, err := loadDAO(ctx, sf, cf.config())
	if err != nil {
		return err
	}
	defer done()

	id, err := dao.CreateProposal(ctx, *as, *title, *description, pKind, ballot, *recipient, payout)
	if err != nil {
		return err
	}

	p, err := dao.GetProposal(id)
	if err != nil {
		return err
	}
	fmt.Printf("Created proposal %d (%s)\n", id, p.Kind)
	fmt.Printf("  Deadline: %s\n", p.Deadline.Format("2006-01-02 15:04:05 MST"))
	for i, opt := range p.Options {
		fmt.Printf("  [%d] %s\n", i, opt)
	}
	return nil
}
