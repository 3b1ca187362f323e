package classifier

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// RegisterAaveV2 installs the Aave-V2-shaped LiquidationCall/FlashLoan event
// classifiers for the given protocol tag, grounded on the pool's actual
// event shapes: three indexed addresses on LiquidationCall, one indexed
// address on FlashLoan.
func RegisterAaveV2(d *Dispatcher, protocol types.Protocol) {
	d.RegisterLog(protocol, topicFromSignature("LiquidationCall(address,address,address,uint256,uint256,address,bool)"), classifyAaveLiquidation)
	d.RegisterLog(protocol, topicFromSignature("FlashLoan(address,address,address,uint256,uint256,uint16)"), classifyAaveFlashLoan)
}

// classifyAaveLiquidation decodes collateralAsset/debtAsset/user from the
// indexed topics and debtToCover from the data section. liquidatedCollateralAmount
// is intentionally not trusted here — LiquidatedCollateral is left nil and
// back-filled by the finalization pass from the actual collateral transfer,
// since that is the figure that survives a revert-reordering of the
// liquidation bonus calculation.
func classifyAaveLiquidation(l *LogCall) (types.Action, error) {
	if len(l.Log.Topics) < 4 {
		return nil, fmt.Errorf("aave LiquidationCall: want 4 topics, have %d", len(l.Log.Topics))
	}
	collateralAsset := addrFromTopic(l.Log.Topics, 1)
	debtAsset := addrFromTopic(l.Log.Topics, 2)
	user := addrFromTopic(l.Log.Topics, 3)

	words, err := splitWords(l.Log.Data, 2)
	if err != nil {
		return nil, err
	}
	debtToCover := words[0]

	liquidator := decodeAddressWord(l.Log.Data, 2)

	return types.NewLiquidation(l.TraceIndex, liquidator, user, debtAsset, collateralAsset, debtToCover), nil
}

// classifyAaveFlashLoan decodes the borrower and asset/amount pair; premium
// and referral code are not modeled as separate fields (see spec.md's
// FlashLoan type), only amount feeds the eventual repayment-delta check.
func classifyAaveFlashLoan(l *LogCall) (types.Action, error) {
	if len(l.Log.Topics) < 2 {
		return nil, fmt.Errorf("aave FlashLoan: want 2 topics, have %d", len(l.Log.Topics))
	}
	target := addrFromTopic(l.Log.Topics, 1)

	asset := decodeAddressWord(l.Log.Data, 1)
	words, err := splitWords(l.Log.Data, 3)
	if err != nil {
		return nil, err
	}
	amount := words[2]

	return types.NewFlashLoan(l.TraceIndex, target, asset, amount), nil
}

// decodeAddressWord reads the right-aligned 20-byte address out of the
// idx'th 32-byte word of an event's non-indexed data section.
func decodeAddressWord(data []byte, idx int) common.Address {
	const wordLen = 32
	start, end := idx*wordLen, idx*wordLen+wordLen
	if end > len(data) {
		return common.Address{}
	}
	return common.BytesToAddress(data[start:end])
}
