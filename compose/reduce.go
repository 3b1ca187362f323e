package compose

import "github.com/mevtrace/engine/types"

// Reduce runs stage 2's ordered compose table over stage 1's grouped
// bundles: a Sandwich and a Jit bundle sharing an identical tx-hash set
// merge into a single JitSandwich, and any Backrun or Jit bundle whose
// tx-hash set is wholly contained within a surviving Sandwich's is dropped
// as redundant (the Sandwich already accounts for that arbitrage/JIT
// liquidity leg).
func Reduce(grouped map[types.MevType][]types.Bundle) []types.Bundle {
	sandwiches := append([]types.Bundle{}, grouped[types.MevTypeSandwich]...)
	jits := append([]types.Bundle{}, grouped[types.MevTypeJit]...)
	backruns := append([]types.Bundle{}, grouped[types.MevTypeBackrun]...)

	var jitSandwiches []types.Bundle
	remainingSandwiches := sandwiches[:0:0]
	consumedJit := make(map[int]bool)

	for _, s := range sandwiches {
		merged := false
		for i, j := range jits {
			if consumedJit[i] || !sameTxHashSet(s, j) {
				continue
			}
			jitSandwiches = append(jitSandwiches, mergeJitSandwich(s, j))
			consumedJit[i] = true
			merged = true
			break
		}
		if !merged {
			remainingSandwiches = append(remainingSandwiches, s)
		}
	}

	var remainingJits []types.Bundle
	for i, j := range jits {
		if consumedJit[i] {
			continue
		}
		if subsumedByAny(j, remainingSandwiches) || subsumedByAny(j, jitSandwiches) {
			continue
		}
		remainingJits = append(remainingJits, j)
	}

	var remainingBackruns []types.Bundle
	for _, b := range backruns {
		if subsumedByAny(b, remainingSandwiches) || subsumedByAny(b, jitSandwiches) {
			continue
		}
		remainingBackruns = append(remainingBackruns, b)
	}

	out := make([]types.Bundle, 0, len(grouped[types.MevTypeCexDex])+len(grouped[types.MevTypeCexDexMarkout])+len(grouped[types.MevTypeLiquidation])+len(remainingSandwiches)+len(remainingJits)+len(remainingBackruns)+len(jitSandwiches))
	out = append(out, remainingSandwiches...)
	out = append(out, jitSandwiches...)
	out = append(out, remainingJits...)
	out = append(out, remainingBackruns...)
	out = append(out, grouped[types.MevTypeCexDex]...)
	out = append(out, grouped[types.MevTypeCexDexMarkout]...)
	out = append(out, grouped[types.MevTypeLiquidation]...)
	return out
}

func subsumedByAny(b types.Bundle, outers []types.Bundle) bool {
	for _, outer := range outers {
		if subsumes(outer, b) {
			return true
		}
	}
	return false
}

// mergeJitSandwich combines a Sandwich and a Jit bundle covering the same
// transactions into a single JitSandwich bundle, summing their profit.
func mergeJitSandwich(sandwich, jit types.Bundle) types.Bundle {
	sData, _ := sandwich.Data.(*types.SandwichData)
	jData, _ := jit.Data.(*types.JitData)
	data := types.NewJitSandwichData(sData, jData)

	return types.NewBundle(
		types.MevTypeJitSandwich,
		sandwich.Header.ProfitUSD+jit.Header.ProfitUSD,
		sandwich.Header.Bribe,
		sandwich.Header.PriorityFeePaid,
		data,
	)
}
