package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/daokit-xyz/go-daokit/eventsource"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	sf := addStoreFlags(fs)
	typeFilter := fs.String("type", "", "Filter by event type")
	showData := fs.Bool("data", false, "Print event payloads")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daokit events [options]

Display the DAO's event stream in append order.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all events
  daokit events --db dao.db

  # Only votes, with payloads
  daokit events --db dao.db --type VoteCast --data
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := eventsource.NewSQLiteStore(*sf.db)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	filter := eventsource.EventFilter{StreamID: *sf.dao}
	if *typeFilter != "" {
		filter.Types = []string{*typeFilter}
	}

	all, err := store.ReadAll(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	fmt.Printf("=== Event Stream (%d events) ===\n\n", len(all))
	for _, event := range all {
		fmt.Printf("v%-4d  %-20s  %s\n", event.Version, event.Type,
			event.CreatedAt.Format("2006-01-02 15:04:05"))
		if *showData && len(event.Data) > 0 {
			fmt.Printf("       %s\n", event.Data)
		}
	}
	return nil
}
