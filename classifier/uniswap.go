package classifier

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// RegisterUniswapV2 installs the Uniswap-V2-shaped Swap/Mint/Burn event
// classifiers for the given protocol tag. Mint and Burn decode straight off
// the pair's own event (no call-data decoding needed, since V2 pools settle
// transfers before emitting); Swap resolves its real token-in/token-out
// pair from the two non-zero (amountIn, amountOut) legs the event carries.
func RegisterUniswapV2(d *Dispatcher, protocol types.Protocol) {
	d.RegisterLog(protocol, topicFromSignature("Swap(address,uint256,uint256,uint256,uint256,address)"), classifyV2Swap)
	d.RegisterLog(protocol, topicFromSignature("Mint(address,uint256,uint256)"), classifyV2Mint)
	d.RegisterLog(protocol, topicFromSignature("Burn(address,uint256,uint256,address)"), classifyV2Burn)
	d.RegisterLog(protocol, topicFromSignature("Sync(uint112,uint112)"), classifyV2Sync)
}

func classifyV2Swap(l *LogCall) (types.Action, error) {
	words, err := splitWords(l.Log.Data, 4)
	if err != nil {
		return nil, err
	}
	amount0In, amount1In, amount0Out, amount1Out := words[0], words[1], words[2], words[3]

	token0, token1, ok := l.DB.TokensOf(l.Emitter)
	if !ok {
		token0, token1 = l.Emitter, l.Emitter
	}

	var in, out *big.Int
	var fromToken, toToken common.Address
	if amount0In.Sign() > 0 {
		in, out = amount0In, amount1Out
		fromToken, toToken = token0, token1
	} else {
		in, out = amount1In, amount0Out
		fromToken, toToken = token1, token0
	}

	from := addrFromTopic(l.Log.Topics, 1)
	to := addrFromTopic(l.Log.Topics, 2)
	return types.NewSwap(l.TraceIndex, l.Emitter, from, to, fromToken, toToken, in, out), nil
}

func classifyV2Mint(l *LogCall) (types.Action, error) {
	words, err := splitWords(l.Log.Data, 2)
	if err != nil {
		return nil, err
	}
	token0, token1, ok := l.DB.TokensOf(l.Emitter)
	if !ok {
		token0, token1 = l.Emitter, l.Emitter
	}
	sender := addrFromTopic(l.Log.Topics, 1)
	return types.NewMint(l.TraceIndex, l.Emitter, sender, [2]common.Address{token0, token1}, [2]*big.Int{words[0], words[1]}), nil
}

// classifyV2Sync decodes a pair's post-trade reserves. Unlike Swap/Mint/Burn
// it carries no participant addresses; it exists only to seed the DEX
// pricer's pool-reserve graph for this trace index.
func classifyV2Sync(l *LogCall) (types.Action, error) {
	words, err := splitWords(l.Log.Data, 2)
	if err != nil {
		return nil, err
	}
	return types.NewPoolSync(l.TraceIndex, l.Emitter, words[0], words[1]), nil
}

func classifyV2Burn(l *LogCall) (types.Action, error) {
	words, err := splitWords(l.Log.Data, 2)
	if err != nil {
		return nil, err
	}
	token0, token1, ok := l.DB.TokensOf(l.Emitter)
	if !ok {
		token0, token1 = l.Emitter, l.Emitter
	}
	recipient := addrFromTopic(l.Log.Topics, 2)
	return types.NewBurn(l.TraceIndex, l.Emitter, recipient, [2]common.Address{token0, token1}, [2]*big.Int{words[0], words[1]}), nil
}
