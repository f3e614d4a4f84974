package governance

import "time"

// Config holds the governance parameters of a DAO.
type Config struct {
	// VotingPeriod is how long a proposal accepts votes after creation.
	VotingPeriod time.Duration

	// QuorumPercent is the minimum participating weight required for a
	// valid resolution, as a percentage of the eligible weight snapshot
	// taken at proposal creation.
	QuorumPercent uint64

	// MinVotes is the minimum number of ballots required for a valid
	// resolution, independent of their weight.
	MinVotes int
}

// DefaultConfig returns the default governance parameters.
func DefaultConfig() *Config {
	return &Config{
		VotingPeriod:  7 * 24 * time.Hour,
		QuorumPercent: 30,
		MinVotes:      1,
	}
}

// Clock supplies the current time for deadline comparisons. The host is
// expected to provide a monotonically non-decreasing source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
