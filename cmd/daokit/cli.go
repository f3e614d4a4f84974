package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/holiman/uint256"

	"github.com/daokit-xyz/go-daokit/eventsource"
	"github.com/daokit-xyz/go-daokit/governance"
)

// storeFlags holds the flags shared by every command that touches the
// event database.
type storeFlags struct {
	db  *string
	dao *string
}

func addStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		db:  fs.String("db", "daokit.db", "Path to the event database"),
		dao: fs.String("dao", "dao", "DAO identifier"),
	}
}

// configFlags holds the governance parameter flags.
type configFlags struct {
	period   *time.Duration
	quorum   *uint64
	minVotes *int
}

func addConfigFlags(fs *flag.FlagSet) configFlags {
	def := governance.DefaultConfig()
	return configFlags{
		period:   fs.Duration("period", def.VotingPeriod, "Voting period for new proposals"),
		quorum:   fs.Uint64("quorum", def.QuorumPercent, "Quorum as a percentage of eligible weight"),
		minVotes: fs.Int("min-votes", def.MinVotes, "Minimum number of ballots for a valid resolution"),
	}
}

func (c configFlags) config() *governance.Config {
	return &governance.Config{
		VotingPeriod:  *c.period,
		QuorumPercent: *c.quorum,
		MinVotes:      *c.minVotes,
	}
}

// loadDAO opens the event database and replays the DAO's stream.
// The caller must invoke the returned close function.
func loadDAO(ctx context.Context, sf storeFlags, cfg *governance.Config) (*governance.DAO, func(), error) {
	store, err := eventsource.NewSQLiteStore(*sf.db)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	dao, err := governance.Load(ctx, *sf.dao, cfg, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return dao, func() { store.Close() }, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", s)
	}
	return id, nil
}
