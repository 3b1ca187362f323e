package inspect

import (
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// LiquidationInspector reports every classified Liquidation action whose
// seized collateral was filled in as a bundle. Its profit figure is the
// seized collateral valued through the collateral/debt DEX post-state price
// at the liquidation's tx index, less the debt repaid; the result is in
// debt-asset units and is not converted to USD.
type LiquidationInspector struct{}

// NewLiquidationInspector constructs a LiquidationInspector.
func NewLiquidationInspector() *LiquidationInspector { return &LiquidationInspector{} }

func (l *LiquidationInspector) MevType() types.MevType { return types.MevTypeLiquidation }

func (l *LiquidationInspector) Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error) {
	var bundles []types.Bundle

	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		for _, action := range txActions(root) {
			liq, ok := action.(*types.Liquidation)
			if !ok || liq.LiquidatedCollateral == nil {
				continue
			}
			profit := liquidationProfitUSD(liq, root.TxIndex, meta)
			data := types.NewLiquidationData(root.TxHash, liq.Liquidator, liq.CollateralAsset, liq.LiquidatedCollateral)
			bundles = append(bundles, types.NewBundle(types.MevTypeLiquidation, profit, nil, nil, data))
		}
	}
	return bundles, nil
}

func liquidationProfitUSD(liq *types.Liquidation, txIdx int, meta metadata.Metadata) float64 {
	if meta.EthPriceUSD == nil {
		return 0
	}
	pair := types.NewPair(liq.CollateralAsset, liq.DebtAsset)
	quote, ok := meta.DexQuoteAt(pair, txIdx)
	if !ok || quote.PostState == nil {
		return 0
	}
	collateralQty := types.ScaledRational(liq.LiquidatedCollateral, 18)
	debtQty := types.ScaledRational(liq.DebtRepaid, 18)
	collateralValue := new(types.Rat).Mul(collateralQty, quote.PostState)
	profit := new(types.Rat).Sub(collateralValue, debtQty)
	return types.RoundToFloat(profit)
}
