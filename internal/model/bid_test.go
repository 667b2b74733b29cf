package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBidType(t *testing.T) {
	typ, err := ParseBidType("SELL")
	require.NoError(t, err)
	assert.Equal(t, BidSell, typ)

	typ, err = ParseBidType("BUY")
	require.NoError(t, err)
	assert.Equal(t, BidBuy, typ)

	_, err = ParseBidType("sell")
	assert.Error(t, err)
	_, err = ParseBidType("HOLD")
	assert.Error(t, err)
}

func TestBidTypeSign(t *testing.T) {
	assert.Equal(t, 1.0, BidSell.Sign())
	assert.Equal(t, -1.0, BidBuy.Sign())
}
