package holdem

import "errors"

// Options configures a hand of Texas Hold'em
type Options struct {
	SmallBlind int
	BigBlind   int
	// MinBet is the table minimum for an opening bet. Defaults to the big
	// blind when zero.
	MinBet int
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		SmallBlind: 25,
		BigBlind:   50,
	}
}

func validateOptions(opts *Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind cannot be less than the small blind")
	}

	if opts.MinBet == 0 {
		opts.MinBet = opts.BigBlind
	}

	if opts.MinBet < opts.BigBlind {
		return errors.New("minimum bet cannot be less than the big blind")
	}

	return nil
}
