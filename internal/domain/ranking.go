package domain

import "sort"

// RankStrategy names a bid ordering. The set is closed: strategies are pure
// comparison functions in a lookup table, and adding one means adding a
// table entry.
type RankStrategy string

const (
	RankByPrice     RankStrategy = "price"
	RankByRating    RankStrategy = "rating"
	RankByComposite RankStrategy = "composite"
)

// Composite score weights: rating counts 1.5x more than the inverse-price
// term, so a strong rating beats a marginally cheaper bid.
const (
	compositePriceWeight  = 0.4
	compositeRatingWeight = 0.6
)

// RankedBid is the ranking view of a bid: the bid itself plus the submitting
// freelancer's current rating.
type RankedBid struct {
	Bid
	FreelancerRating float64
}

// CompositeScore rewards high rating and low price. ProposedRate is positive
// by the Bid invariant, so the division is safe.
func (b RankedBid) CompositeScore() float64 {
	return (1/b.ProposedRate)*compositePriceWeight + b.FreelancerRating*compositeRatingWeight
}

var rankLess = map[RankStrategy]func(a, b RankedBid) bool{
	RankByPrice:     func(a, b RankedBid) bool { return a.ProposedRate < b.ProposedRate },
	RankByRating:    func(a, b RankedBid) bool { return a.FreelancerRating > b.FreelancerRating },
	RankByComposite: func(a, b RankedBid) bool { return a.CompositeScore() > b.CompositeScore() },
}

// StrategyFor maps a request parameter to a strategy. Unknown names,
// including the empty string, fall back to composite; callers never need to
// validate the name first.
func StrategyFor(name string) RankStrategy {
	switch s := RankStrategy(name); s {
	case RankByPrice, RankByRating, RankByComposite:
		return s
	default:
		return RankByComposite
	}
}

// Rank returns a new slice ordered by the strategy. The input is never
// mutated, and the stable sort keeps equal-key bids in input order, so the
// same input always yields the same output.
func (s RankStrategy) Rank(bids []RankedBid) []RankedBid {
	out := make([]RankedBid, len(bids))
	copy(out, bids)

	less, ok := rankLess[s]
	if !ok {
		less = rankLess[RankByComposite]
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}
