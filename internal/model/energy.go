package model

// EnergyData holds the per-interval energy series for one report period.
// All slices are the same length and index-aligned with Times.
//
// Predicted series are plain numbers (missing values arrive as null on the
// wire and are coerced to 0). Real series keep their nulls as nil pointers
// because the null-propagation rules depend on them:
//   - RealTotal[i] is nil iff RealSolar[i] or RealWind[i] is nil.
//   - RealNet[i] is nil iff RealTotal[i] is nil or RealDemand[i] is nil.
//     Demand nullity alone suppresses the net value even when the total was
//     computable; the total stays lenient, the net stays strict.
type EnergyData struct {
	Times []string // raw timestamps; "" where the source value was null

	PredictedDemand []float64
	PredictedSolar  []float64
	PredictedWind   []float64
	PredictedTotal  []float64 // PredictedSolar + PredictedWind
	PredictedNet    []float64 // PredictedTotal - PredictedDemand

	RealDemand []*float64
	RealSolar  []*float64
	RealWind   []*float64
	RealTotal  []*float64
	RealNet    []*float64

	// CarbonRate maps a day string ("2021-07-22") to grid carbon intensity
	// for that day. -1 marks days the upstream had no measurement for.
	CarbonRate map[string]float64

	PredictedCarbonSaved float64
	RealCarbonSaved      float64
}

// Len returns the number of intervals in the series.
func (d *EnergyData) Len() int {
	return len(d.Times)
}
