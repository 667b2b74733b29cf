// Package transform converts validated raw API payloads into typed
// datasets. All three mappings are pure: they never mutate their input and
// identical input yields structurally identical output.
package transform

import (
	"fmt"

	"energy-report/internal/model"
)

// Bids builds a BidData from a validated bids payload. Rows are positional:
// [date, hour, type, volume, price]. Row order is preserved and the
// financial aggregates accumulate in that order.
func Bids(payload any) (*model.BidData, error) {
	obj, _ := payload.(map[string]any)
	rows, ok := obj["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("bids payload has no data array")
	}

	out := &model.BidData{Bids: make([]model.Bid, 0, len(rows))}
	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok || len(row) < 5 {
			return nil, fmt.Errorf("bid row %d is not a 5-field array", i)
		}
		date, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("bid row %d: date is not a string", i)
		}
		hour, ok := row[1].(float64)
		if !ok {
			return nil, fmt.Errorf("bid row %d: hour is not a number", i)
		}
		tag, ok := row[2].(string)
		if !ok {
			return nil, fmt.Errorf("bid row %d: type is not a string", i)
		}
		typ, err := model.ParseBidType(tag)
		if err != nil {
			return nil, fmt.Errorf("bid row %d: %w", i, err)
		}
		volume, ok := row[3].(float64)
		if !ok {
			return nil, fmt.Errorf("bid row %d: volume is not a number", i)
		}
		price, ok := row[4].(float64)
		if !ok {
			return nil, fmt.Errorf("bid row %d: price is not a number", i)
		}

		out.Bids = append(out.Bids, model.Bid{
			Date:        date,
			Hour:        int(hour),
			Type:        typ,
			VolumeMWh:   volume,
			PricePerMWh: price,
		})

		out.Profit += volume * price * typ.Sign()
		out.TotalVolume += volume
		switch typ {
		case model.BidSell:
			out.VolumeSold += volume
		case model.BidBuy:
			out.VolumeBought += volume
		}
	}
	return out, nil
}
