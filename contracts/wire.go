package contracts

import (
	"errors"
	"fmt"

	"github.com/0xPolygon/cdk-enconfig/address"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the contracts protobuf schema:
//
//	message Contracts { L1 l1 = 1; L2 l2 = 2; Bridges bridges = 3; }
//	message L1 { bytes governance_addr = 1; bytes verifier_addr = 2; bytes diamond_proxy_addr = 3;
//	             bytes validator_timelock_addr = 4; bytes default_upgrade_addr = 5; bytes multicall3_addr = 6; }
//	message L2 { optional bytes testnet_paymaster_addr = 1; }
//	message Bridge { optional bytes l1_address = 1; optional bytes l2_address = 2; }
//	message Bridges { optional Bridge erc20 = 1; optional Bridge weth = 2; }
const (
	contractsL1Num      protowire.Number = 1
	contractsL2Num      protowire.Number = 2
	contractsBridgesNum protowire.Number = 3

	l1GovernanceAddrNum        protowire.Number = 1
	l1VerifierAddrNum          protowire.Number = 2
	l1DiamondProxyAddrNum      protowire.Number = 3
	l1ValidatorTimelockAddrNum protowire.Number = 4
	l1DefaultUpgradeAddrNum    protowire.Number = 5
	l1Multicall3AddrNum        protowire.Number = 6

	l2TestnetPaymasterAddrNum protowire.Number = 1

	bridgeL1AddressNum protowire.Number = 1
	bridgeL2AddressNum protowire.Number = 2

	bridgesERC20Num protowire.Number = 1
	bridgesWETHNum  protowire.Number = 2
)

// ErrMalformedWire is returned when a message is not valid protobuf wire data
var ErrMalformedWire = errors.New("malformed contracts wire message")

// MarshalProto encodes c using the protobuf wire format of the contracts schema.
// Addresses are 20 byte fields; absent optional values are not emitted.
func MarshalProto(c Contracts) []byte {
	var l1 []byte
	l1 = appendAddress(l1, l1GovernanceAddrNum, c.L1.GovernanceAddr)
	l1 = appendAddress(l1, l1VerifierAddrNum, c.L1.VerifierAddr)
	l1 = appendAddress(l1, l1DiamondProxyAddrNum, c.L1.DiamondProxyAddr)
	l1 = appendAddress(l1, l1ValidatorTimelockAddrNum, c.L1.ValidatorTimelockAddr)
	l1 = appendAddress(l1, l1DefaultUpgradeAddrNum, c.L1.DefaultUpgradeAddr)
	l1 = appendAddress(l1, l1Multicall3AddrNum, c.L1.Multicall3Addr)

	out := appendMessage(nil, contractsL1Num, l1)

	l2 := appendOptionalAddress(nil, l2TestnetPaymasterAddrNum, c.L2.TestnetPaymasterAddr)
	if len(l2) > 0 {
		out = appendMessage(out, contractsL2Num, l2)
	}

	var bridges []byte
	bridges = appendBridge(bridges, bridgesERC20Num, c.Bridges.ERC20)
	bridges = appendBridge(bridges, bridgesWETHNum, c.Bridges.WETH)
	if len(bridges) > 0 {
		out = appendMessage(out, contractsBridgesNum, bridges)
	}
	return out
}

// UnmarshalProto decodes wire data into a Source. It only checks the wire
// encoding; address and presence rules are applied by Parse. Unknown fields
// and fields with an unexpected wire type are skipped.
func UnmarshalProto(b []byte) (Source, error) {
	var src Source
	err := walk(b, func(num protowire.Number, v []byte) error {
		switch num {
		case contractsL1Num:
			if src.L1 == nil {
				src.L1 = &L1Source{}
			}
			return unmarshalL1(v, src.L1)
		case contractsL2Num:
			if src.L2 == nil {
				src.L2 = &L2Source{}
			}
			return walk(v, func(num protowire.Number, v []byte) error {
				if num == l2TestnetPaymasterAddrNum {
					src.L2.TestnetPaymasterAddr = encodeAddress(v)
				}
				return nil
			})
		case contractsBridgesNum:
			if src.Bridges == nil {
				src.Bridges = &BridgesSource{}
			}
			return unmarshalBridges(v, src.Bridges)
		}
		return nil
	})
	if err != nil {
		return Source{}, err
	}
	return src, nil
}

// ParseProto decodes and validates wire data
func ParseProto(b []byte) (Contracts, error) {
	src, err := UnmarshalProto(b)
	if err != nil {
		return Contracts{}, err
	}
	return Parse(src)
}

func unmarshalL1(b []byte, l1 *L1Source) error {
	return walk(b, func(num protowire.Number, v []byte) error {
		switch num {
		case l1GovernanceAddrNum:
			l1.GovernanceAddr = encodeAddress(v)
		case l1VerifierAddrNum:
			l1.VerifierAddr = encodeAddress(v)
		case l1DiamondProxyAddrNum:
			l1.DiamondProxyAddr = encodeAddress(v)
		case l1ValidatorTimelockAddrNum:
			l1.ValidatorTimelockAddr = encodeAddress(v)
		case l1DefaultUpgradeAddrNum:
			l1.DefaultUpgradeAddr = encodeAddress(v)
		case l1Multicall3AddrNum:
			l1.Multicall3Addr = encodeAddress(v)
		}
		return nil
	})
}

func unmarshalBridges(b []byte, bridges *BridgesSource) error {
	return walk(b, func(num protowire.Number, v []byte) error {
		var target **BridgeSource
		switch num {
		case bridgesERC20Num:
			target = &bridges.ERC20
		case bridgesWETHNum:
			target = &bridges.WETH
		default:
			return nil
		}
		if *target == nil {
			*target = &BridgeSource{}
		}
		bridge := *target
		return walk(v, func(num protowire.Number, v []byte) error {
			switch num {
			case bridgeL1AddressNum:
				bridge.L1Address = encodeAddress(v)
			case bridgeL2AddressNum:
				bridge.L2Address = encodeAddress(v)
			}
			return nil
		})
	})
}

// walk calls fn for every length-delimited field of msg
func walk(msg []byte, fn func(num protowire.Number, v []byte) error) error {
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedWire, protowire.ParseError(n))
		}
		msg = msg[n:]
		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, msg)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformedWire, num, protowire.ParseError(n))
			}
			msg = msg[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(msg)
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedWire, num, protowire.ParseError(n))
		}
		msg = msg[n:]
		if err := fn(num, v); err != nil {
			return err
		}
	}
	return nil
}

// encodeAddress keeps the raw bytes as hex so that a wrong length is reported by Parse
func encodeAddress(v []byte) *string {
	s := hexutil.Encode(v)
	return &s
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendAddress(b []byte, num protowire.Number, a address.Address) []byte {
	return appendMessage(b, num, a.Bytes())
}

func appendOptionalAddress(b []byte, num protowire.Number, o address.Optional) []byte {
	a, ok := o.Get()
	if !ok {
		return b
	}
	return appendAddress(b, num, a)
}

func appendBridge(b []byte, num protowire.Number, o OptionalBridge) []byte {
	bridge, ok := o.Get()
	if !ok {
		return b
	}
	var msg []byte
	msg = appendOptionalAddress(msg, bridgeL1AddressNum, bridge.L1Address)
	msg = appendOptionalAddress(msg, bridgeL2AddressNum, bridge.L2Address)
	return appendMessage(b, num, msg)
}
