package transform

import (
	"fmt"

	"energy-report/internal/model"
)

// Energy builds an EnergyData from a validated energy payload. Rows are
// positional: [timestamp, predicted demand, predicted solar, predicted
// wind, real demand, real solar, real wind], with every field after the
// timestamp nullable.
//
// Null handling is two-tier and deliberate:
//   - predicted values coerce null to 0 and always produce totals;
//   - RealTotal is computed leniently (nil only when a generation input is
//     nil) while RealNet is computed strictly (nil additionally when real
//     demand is nil, even though the total was computable).
//
// The carbon rate for a row is looked up by the first 10 characters of its
// timestamp; rows without a string timestamp use rate 0, as does a day
// missing from the carbonRate map.
func Energy(payload any) (*model.EnergyData, error) {
	obj, _ := payload.(map[string]any)
	rawRates, ok := obj["carbonRate"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("energy payload has no carbonRate object")
	}
	rows, ok := obj["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("energy payload has no data array")
	}

	out := &model.EnergyData{
		Times:           make([]string, 0, len(rows)),
		PredictedDemand: make([]float64, 0, len(rows)),
		PredictedSolar:  make([]float64, 0, len(rows)),
		PredictedWind:   make([]float64, 0, len(rows)),
		PredictedTotal:  make([]float64, 0, len(rows)),
		PredictedNet:    make([]float64, 0, len(rows)),
		RealDemand:      make([]*float64, 0, len(rows)),
		RealSolar:       make([]*float64, 0, len(rows)),
		RealWind:        make([]*float64, 0, len(rows)),
		RealTotal:       make([]*float64, 0, len(rows)),
		RealNet:         make([]*float64, 0, len(rows)),
		CarbonRate:      make(map[string]float64, len(rawRates)),
	}
	for day, v := range rawRates {
		rate, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("carbonRate[%q] is not a number", day)
		}
		out.CarbonRate[day] = rate
	}

	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok || len(row) < 7 {
			return nil, fmt.Errorf("energy row %d is not a 7-field array", i)
		}

		ts, tsIsString := row[0].(string)
		rate := 0.0
		if tsIsString && len(ts) >= 10 {
			rate = out.CarbonRate[ts[0:10]]
		}

		predDemand := numOrZero(row[1])
		predSolar := numOrZero(row[2])
		predWind := numOrZero(row[3])
		realDemand := numOrNil(row[4])
		realSolar := numOrNil(row[5])
		realWind := numOrNil(row[6])

		predTotal := predSolar + predWind
		predNet := predTotal - predDemand
		out.PredictedCarbonSaved += predNet * rate

		var realTotal, realNet *float64
		if realSolar != nil && realWind != nil {
			realTotal = ptr(*realSolar + *realWind)
			if realDemand != nil {
				realNet = ptr(*realTotal - *realDemand)
				out.RealCarbonSaved += *realNet * rate
			}
		}

		out.Times = append(out.Times, ts)
		out.PredictedDemand = append(out.PredictedDemand, predDemand)
		out.PredictedSolar = append(out.PredictedSolar, predSolar)
		out.PredictedWind = append(out.PredictedWind, predWind)
		out.PredictedTotal = append(out.PredictedTotal, predTotal)
		out.PredictedNet = append(out.PredictedNet, predNet)
		out.RealDemand = append(out.RealDemand, realDemand)
		out.RealSolar = append(out.RealSolar, realSolar)
		out.RealWind = append(out.RealWind, realWind)
		out.RealTotal = append(out.RealTotal, realTotal)
		out.RealNet = append(out.RealNet, realNet)
	}
	return out, nil
}

func numOrZero(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

// numOrNil copies a nullable number out of the payload so the result never
// aliases the input.
func numOrNil(v any) *float64 {
	if f, ok := v.(float64); ok {
		return ptr(f)
	}
	return nil
}

func ptr(f float64) *float64 { return &f }
