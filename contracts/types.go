// Package contracts holds the L1/L2 contract addresses an external node needs
// and the required/optional policy applied when they are loaded.
package contracts

import "github.com/0xPolygon/cdk-enconfig/address"

// Field names as they appear in the contracts schema
const (
	FieldGovernanceAddr        = "l1.governance_addr"
	FieldVerifierAddr          = "l1.verifier_addr"
	FieldDiamondProxyAddr      = "l1.diamond_proxy_addr"
	FieldValidatorTimelockAddr = "l1.validator_timelock_addr"
	FieldDefaultUpgradeAddr    = "l1.default_upgrade_addr"
	FieldMulticall3Addr        = "l1.multicall3_addr"
	FieldTestnetPaymasterAddr  = "l2.testnet_paymaster_addr"
	FieldERC20BridgeL1Address  = "bridges.erc20.l1_address"
	FieldERC20BridgeL2Address  = "bridges.erc20.l2_address"
	FieldWETHBridgeL1Address   = "bridges.weth.l1_address"
	FieldWETHBridgeL2Address   = "bridges.weth.l2_address"
)

// L1 contains the contracts deployed on the base chain. All of them are mandatory.
type L1 struct {
	GovernanceAddr        address.Address
	VerifierAddr          address.Address
	DiamondProxyAddr      address.Address
	ValidatorTimelockAddr address.Address
	DefaultUpgradeAddr    address.Address
	Multicall3Addr        address.Address
}

// L2 contains the contracts deployed on the rollup
type L2 struct {
	TestnetPaymasterAddr address.Optional
}

// Bridge is the pair of contracts of one asset bridge. Any side may be missing.
type Bridge struct {
	L1Address address.Optional
	L2Address address.Optional
}

// OptionalBridge is a Bridge that may be absent. A bridge without any address is absent.
type OptionalBridge struct {
	bridge Bridge
	set    bool
}

// NoBridge returns an absent bridge
func NoBridge() OptionalBridge {
	return OptionalBridge{}
}

// SomeBridge returns b as a present bridge, or an absent one when b has no address at all
func SomeBridge(b Bridge) OptionalBridge {
	if !b.L1Address.IsSet() && !b.L2Address.IsSet() {
		return NoBridge()
	}
	return OptionalBridge{bridge: b, set: true}
}

// IsSet reports whether the bridge is present
func (o OptionalBridge) IsSet() bool {
	return o.set
}

// Get returns the bridge and whether it is present
func (o OptionalBridge) Get() (Bridge, bool) {
	return o.bridge, o.set
}

// Bridges lists the known asset bridges
type Bridges struct {
	ERC20 OptionalBridge
	WETH  OptionalBridge
}

// Contracts aggregates every contract address. Values are comparable and never
// share memory, so a Contracts can be read concurrently once built.
type Contracts struct {
	L1      L1
	L2      L2
	Bridges Bridges
}

// Source returns the raw form of c, with absent fields left nil
func (c Contracts) Source() Source {
	l1 := c.L1.source()
	src := Source{L1: &l1}
	if c.L2.TestnetPaymasterAddr.IsSet() {
		src.L2 = &L2Source{TestnetPaymasterAddr: c.L2.TestnetPaymasterAddr.Ptr()}
	}
	if c.Bridges.ERC20.IsSet() || c.Bridges.WETH.IsSet() {
		src.Bridges = &BridgesSource{
			ERC20: bridgeSource(c.Bridges.ERC20),
			WETH:  bridgeSource(c.Bridges.WETH),
		}
	}
	return src
}

func (l L1) source() L1Source {
	return L1Source{
		GovernanceAddr:        ptr(l.GovernanceAddr.Hex()),
		VerifierAddr:          ptr(l.VerifierAddr.Hex()),
		DiamondProxyAddr:      ptr(l.DiamondProxyAddr.Hex()),
		ValidatorTimelockAddr: ptr(l.ValidatorTimelockAddr.Hex()),
		DefaultUpgradeAddr:    ptr(l.DefaultUpgradeAddr.Hex()),
		Multicall3Addr:        ptr(l.Multicall3Addr.Hex()),
	}
}

func bridgeSource(o OptionalBridge) *BridgeSource {
	b, ok := o.Get()
	if !ok {
		return nil
	}
	return &BridgeSource{
		L1Address: b.L1Address.Ptr(),
		L2Address: b.L2Address.Ptr(),
	}
}

func ptr(s string) *string {
	return &s
}
