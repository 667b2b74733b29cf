package model

import "fmt"

// BidType is the side of one market order.
// Keep these values stable; they match the API wire format.
type BidType string

const (
	BidSell BidType = "SELL"
	BidBuy  BidType = "BUY"
)

// ParseBidType maps a wire-format type tag onto a BidType.
func ParseBidType(s string) (BidType, error) {
	switch BidType(s) {
	case BidSell:
		return BidSell, nil
	case BidBuy:
		return BidBuy, nil
	default:
		return "", fmt.Errorf("unknown bid type %q", s)
	}
}

// Sign is the profit sign of the side: sells earn, buys cost.
func (t BidType) Sign() float64 {
	switch t {
	case BidSell:
		return 1
	case BidBuy:
		return -1
	default:
		return 0
	}
}

// Bid is one market order for a given date and hour.
// Immutable once constructed.
type Bid struct {
	Date        string
	Hour        int // 0-23
	Type        BidType
	VolumeMWh   float64 // >= 0
	PricePerMWh float64
}

// BidData holds one day's (or month's) bids in row order plus the
// aggregates derived from them.
//
// Invariants:
//   - TotalVolume == VolumeSold + VolumeBought
//   - Profit == sum(volume * price * sign(type))
type BidData struct {
	Bids []Bid

	Profit       float64
	VolumeSold   float64
	VolumeBought float64
	TotalVolume  float64
}
