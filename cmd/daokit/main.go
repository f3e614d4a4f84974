package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init":
		if err := initDao(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "propose":
		if err := propose(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "vote":
		if err := vote(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "close":
		if err := closeProposal(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "resolve":
		if err := resolve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "execute":
		if err := execute(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "deposit":
		if err := deposit(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "distribute":
		if err := distribute(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "deactivate":
		if err := deactivate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := show(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := list(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "tally":
		if err := tally(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "members":
		if err := members(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("daokit version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`daokit - event-sourced DAO governance engine

Usage:
  daokit <command> [options]

Commands:
  init        Initialize a DAO with founders and a treasury
  propose     Create a proposal
  vote        Cast a weighted vote on a proposal
  close       Close an expired proposal
  resolve     Resolve a closed proposal from its tally
  execute     Execute an approved funding request
  deposit     Credit the treasury
  distribute  Distribute tokens to a member
  deactivate  Revoke a member's voting rights
  show        Show a proposal
  list        List proposals
  tally       Show the current tally of a proposal
  members     List members and balances
  events      Show the event stream
  prove       Generate a zero-knowledge tally proof
  help        Show this help message
  version     Show version information

Examples:
  # Initialize with three founders sharing 300 tokens
  daokit init --db dao.db --treasury 1000 alice=100 bob=100 carol=100

  # Open a funding request
  daokit propose --db dao.db --as alice --kind funding \
      --title "docs grant" --recipient bob --amount 250

  # Vote, resolve, execute
  daokit vote --db dao.db --as carol 1 approve
  daokit resolve --db dao.db 1
  daokit execute --db dao.db 1

For command-specific help, run:
  daokit <command> --help`)
}
