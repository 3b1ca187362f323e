package compose

import (
	"math/big"

	"github.com/mevtrace/engine/classifier"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// Aggregate assembles the final MevBlock: a block's gas/fee totals from
// AccumulateGas, builder/proposer profit projected through the block's ETH
// reference price, and per-type bundle counts alongside the surviving
// bundles themselves.
func Aggregate(tree *types.CallTree, meta metadata.Metadata, bundles []types.Bundle) types.MevBlock {
	gas := classifier.AccumulateGas(tree)

	totalBribe := new(big.Int)
	cumulativeMevPriorityFee := new(big.Int)
	var cumulativeMevProfitUSD float64

	count := types.MevCount{Total: uint64(len(bundles))}
	counts := make(map[types.MevType]uint64)

	for _, b := range bundles {
		if b.Header.Bribe != nil {
			totalBribe.Add(totalBribe, b.Header.Bribe)
		}
		if b.Header.PriorityFeePaid != nil {
			cumulativeMevPriorityFee.Add(cumulativeMevPriorityFee, b.Header.PriorityFeePaid)
		}
		cumulativeMevProfitUSD += b.Header.ProfitUSD
		counts[b.Header.MevType]++
	}
	assignCount(&count.Sandwich, counts[types.MevTypeSandwich])
	assignCount(&count.Jit, counts[types.MevTypeJit])
	assignCount(&count.JitSandwich, counts[types.MevTypeJitSandwich])
	assignCount(&count.CexDex, counts[types.MevTypeCexDex])
	assignCount(&count.CexDexMarkout, counts[types.MevTypeCexDexMarkout])
	assignCount(&count.Backrun, counts[types.MevTypeBackrun])
	assignCount(&count.Liquidation, counts[types.MevTypeLiquidation])

	block := types.MevBlock{
		BlockHash:                    tree.Header.Hash,
		BlockNumber:                  tree.Header.Number,
		MevCount:                     count,
		EthPrice:                     types.RoundToFloat(meta.EthPriceUSD),
		CumulativeGasUsed:            gas.CumulativeGasUsed,
		CumulativePriorityFee:        gas.CumulativePriorityFee,
		TotalBribe:                   totalBribe,
		CumulativeMevPriorityFeePaid: cumulativeMevPriorityFee,
		BuilderAddress:               tree.Header.Beneficiary,
		ProposerFeeRecipient:         meta.ProposerFeeRecipient,
		ProposerMevRewardWei:         meta.ProposerMevReward,
		CumulativeMevProfitUSD:       cumulativeMevProfitUSD,
		Bundles:                      bundles,
	}

	if meta.EthPriceUSD != nil {
		builderProfitWei := new(big.Int).Add(gas.CumulativePriorityFee, totalBribe)
		if meta.ProposerMevReward != nil {
			builderProfitWei.Sub(builderProfitWei, meta.ProposerMevReward)
		}
		builderProfitEth := types.ScaledRational(builderProfitWei, 18)
		builderProfitUSD := new(types.Rat).Mul(builderProfitEth, meta.EthPriceUSD)
		block.BuilderEthProfit = types.RoundToFloat(builderProfitEth)
		block.BuilderProfitUSD = types.RoundToFloat(builderProfitUSD)
	}

	if meta.ProposerMevReward != nil && meta.EthPriceUSD != nil {
		rewardEth := types.ScaledRational(meta.ProposerMevReward, 18)
		rewardUSD := types.RoundToFloat(new(types.Rat).Mul(rewardEth, meta.EthPriceUSD))
		block.ProposerProfitUSD = &rewardUSD
	}

	return block
}

func assignCount(field **uint64, n uint64) {
	if n == 0 {
		return
	}
	v := n
	*field = &v
}
