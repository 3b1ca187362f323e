package types

// Protocol tags the on-chain venue a classified action belongs to. The
// classifier's dispatch table is keyed primarily by Protocol, resolved from
// an address via the store's AddressToProtocol table.
type Protocol string

const (
	ProtocolUniswapV2 Protocol = "UniswapV2"
	ProtocolUniswapV3 Protocol = "UniswapV3"
	ProtocolSushiSwap Protocol = "SushiSwap"
	ProtocolCurveV1   Protocol = "CurveV1"
	ProtocolBalancerV2 Protocol = "BalancerV2"
	ProtocolAaveV2    Protocol = "AaveV2"
	ProtocolAaveV3    Protocol = "AaveV3"
	ProtocolCompoundV2 Protocol = "CompoundV2"
	ProtocolUnknown   Protocol = ""
)
