package store

import (
	"encoding/gob"

	"github.com/mevtrace/engine/types"
)

// init registers every concrete Action and BundleData variant so gob can
// decode back into the correct type behind the sealed interfaces. A variant
// left unregistered here fails to decode at read time rather than at
// compile time, so this list must track the sum types in types/action.go
// and types/bundle.go exactly.
func init() {
	gob.Register(&types.Swap{})
	gob.Register(&types.Transfer{})
	gob.Register(&types.Mint{})
	gob.Register(&types.Burn{})
	gob.Register(&types.Collect{})
	gob.Register(&types.Liquidation{})
	gob.Register(&types.FlashLoan{})
	gob.Register(&types.NewPoolAction{})
	gob.Register(&types.PoolSync{})
	gob.Register(&types.EthTransfer{})
	gob.Register(&types.Revert{})
	gob.Register(&types.Unclassified{})

	gob.Register(&types.SandwichData{})
	gob.Register(&types.JitData{})
	gob.Register(&types.JitSandwichData{})
	gob.Register(&types.CexDexData{})
	gob.Register(&types.CexDexMarkoutData{})
	gob.Register(&types.BackrunData{})
	gob.Register(&types.LiquidationData{})
}
