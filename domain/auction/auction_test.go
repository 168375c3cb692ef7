package auction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcFee(t *testing.T) {
	req := require.New(t)

	// 1.2 eth at 250 bps
	amount, _ := new(big.Int).SetString("1200000000000000000", 10)
	fee := CalcFee(amount, 250)
	req.Equal("30000000000000000", fee.String())

	// flooring: 999 wei at 250 bps -> floor(999*250/10000) = 24
	fee = CalcFee(big.NewInt(999), 250)
	req.Equal(int64(24), fee.Int64())

	// fee rate capped at MaxFeeBps
	fee = CalcFee(big.NewInt(10000), 5000)
	req.Equal(int64(MaxFeeBps), fee.Int64())

	// negative rates collapse to zero
	fee = CalcFee(big.NewInt(10000), -10)
	req.True(fee.Sign() == 0)
}

func TestSplitProceeds(t *testing.T) {
	req := require.New(t)

	for _, amount := range []int64{1, 39, 999, 10000, 123456789} {
		for _, bps := range []int64{0, 1, 250, MaxFeeBps} {
			proceeds, fee := SplitProceeds(big.NewInt(amount), bps)
			sum := new(big.Int).Add(proceeds, fee)
			req.Equal(amount, sum.Int64(), "proceeds+fee must equal amount")
			req.True(fee.Sign() >= 0)
			req.True(proceeds.Sign() >= 0)
		}
	}
}
