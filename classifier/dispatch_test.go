package classifier

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRegisterAndClassifyCall(t *testing.T) {
	d := NewDispatcher()
	sel := selectorFromSignature("swap(uint256,uint256,address,bytes)")
	called := false
	d.RegisterCall(types.ProtocolUniswapV2, sel, func(c *Call) (types.Action, error) {
		called = true
		return types.NewUnclassified(c.TraceIndex), nil
	})

	input := make([]byte, 4)
	copy(input, sel[:])
	action, ok, err := d.ClassifyCall(types.ProtocolUniswapV2, &Call{TraceIndex: 3, Input: input})
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, called)
	require.Equal(t, 3, action.TraceIdx())
}

func TestDispatcherMissNoPanic(t *testing.T) {
	d := NewDispatcher()
	_, ok, err := d.ClassifyCall(types.ProtocolUniswapV2, &Call{Input: []byte{0, 0, 0, 0}})
	require.False(t, ok)
	require.NoError(t, err)
}

func TestDispatcherClassifyLogRequiresTopics(t *testing.T) {
	d := NewDispatcher()
	d.RegisterLog(types.ProtocolAaveV2, common.Hash{}, func(l *LogCall) (types.Action, error) {
		return types.NewUnclassified(l.TraceIndex), nil
	})
	_, ok, err := d.ClassifyLog(types.ProtocolAaveV2, &LogCall{Log: types.Log{}})
	require.False(t, ok)
	require.NoError(t, err)
}
