package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const energyPayload = `{
	"carbonRate": {"2021-07-22": 0.2},
	"data": [["2021-07-22 00:00:00+00:00", 100, 40, 60, null, 35, 55]]
}`

func TestEnergyTwoTierNulls(t *testing.T) {
	d, err := Energy(decode(t, energyPayload))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	assert.Equal(t, 100.0, d.PredictedTotal[0])
	assert.Equal(t, 0.0, d.PredictedNet[0])

	// Real generation is present, so the total computes leniently.
	require.NotNil(t, d.RealTotal[0])
	assert.Equal(t, 90.0, *d.RealTotal[0])

	// Null demand suppresses the net even though the total was computable.
	assert.Nil(t, d.RealNet[0])
	assert.Equal(t, 0.0, d.RealCarbonSaved)
}

func TestEnergyFullRow(t *testing.T) {
	raw := `{
		"carbonRate": {"2021-07-22": 0.5},
		"data": [["2021-07-22 00:00:00+00:00", 80, 40, 60, 70, 35, 55]]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)

	assert.Equal(t, 100.0, d.PredictedTotal[0])
	assert.Equal(t, 20.0, d.PredictedNet[0])
	assert.Equal(t, 10.0, d.PredictedCarbonSaved)

	require.NotNil(t, d.RealNet[0])
	assert.Equal(t, 20.0, *d.RealNet[0])
	assert.Equal(t, 10.0, d.RealCarbonSaved)
}

func TestEnergyNullGeneration(t *testing.T) {
	raw := `{
		"carbonRate": {},
		"data": [["2021-07-22 00:00:00+00:00", 80, 40, 60, 70, null, 55]]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)

	assert.Nil(t, d.RealTotal[0], "null solar makes the total null")
	assert.Nil(t, d.RealNet[0])
	assert.NotNil(t, d.RealDemand[0])
}

func TestEnergyPredictedTotalIdentity(t *testing.T) {
	raw := `{
		"carbonRate": {"2021-07-22": 0.1},
		"data": [
			["2021-07-22 00:00:00+00:00", 80, 40, 60, 70, 35, 55],
			["2021-07-22 00:30:00+00:00", 90, 10, 20, 85, 9, 18],
			["2021-07-22 01:00:00+00:00", 50, 0, 0, 45, 0, 0]
		]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)
	for i := 0; i < d.Len(); i++ {
		assert.Equal(t, d.PredictedSolar[i]+d.PredictedWind[i], d.PredictedTotal[i], "row %d", i)
	}
}

func TestEnergyNullTimestampUsesZeroRate(t *testing.T) {
	raw := `{
		"carbonRate": {"2021-07-22": 5},
		"data": [[null, 10, 20, 30, 15, 20, 30]]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)

	assert.Equal(t, "", d.Times[0])
	// Rate defaults to 0 when the timestamp is not a string, so neither
	// accumulator moves.
	assert.Equal(t, 0.0, d.PredictedCarbonSaved)
	assert.Equal(t, 0.0, d.RealCarbonSaved)
}

func TestEnergyMissingRateDayCountsAsZero(t *testing.T) {
	raw := `{
		"carbonRate": {"2021-07-23": 9},
		"data": [["2021-07-22 00:00:00+00:00", 10, 20, 30, 15, 20, 30]]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.PredictedCarbonSaved)
}

func TestEnergyNullPredictionsCoerceToZero(t *testing.T) {
	// Month payloads carry nulls in predicted columns for days with no
	// data; they behave as zeroes.
	raw := `{
		"carbonRate": {},
		"data": [["2021-07-22 00:00:00+00:00", null, null, 60, null, null, null]]
	}`
	d, err := Energy(decode(t, raw))
	require.NoError(t, err)

	assert.Equal(t, 60.0, d.PredictedTotal[0])
	assert.Equal(t, 60.0, d.PredictedNet[0])
	assert.Nil(t, d.RealTotal[0])
}

func TestEnergyMalformed(t *testing.T) {
	_, err := Energy(decode(t, `{"carbonRate":{},"data":[["t",1,2]]}`))
	assert.Error(t, err)
}

func TestEnergyPure(t *testing.T) {
	payload := decode(t, energyPayload)
	first, err := Energy(payload)
	require.NoError(t, err)
	second, err := Energy(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, decode(t, energyPayload), payload, "input payload must not be mutated")
}
