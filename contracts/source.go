package contracts

// Source is the unvalidated form of Contracts as read from a configuration
// document, the environment or the wire. Every field is nullable: a nil
// pointer means the field was not provided. Whether a field is required is
// decided by Parse, not by this representation.
type Source struct {
	L1      *L1Source      `mapstructure:"L1" toml:"L1,omitempty" json:"L1,omitempty"`
	L2      *L2Source      `mapstructure:"L2" toml:"L2,omitempty" json:"L2,omitempty"`
	Bridges *BridgesSource `mapstructure:"Bridges" toml:"Bridges,omitempty" json:"Bridges,omitempty"`
}

// L1Source is the unvalidated form of L1
type L1Source struct {
	GovernanceAddr        *string `mapstructure:"GovernanceAddr" toml:"GovernanceAddr,omitempty" json:"GovernanceAddr,omitempty"`                      //nolint:lll
	VerifierAddr          *string `mapstructure:"VerifierAddr" toml:"VerifierAddr,omitempty" json:"VerifierAddr,omitempty"`                            //nolint:lll
	DiamondProxyAddr      *string `mapstructure:"DiamondProxyAddr" toml:"DiamondProxyAddr,omitempty" json:"DiamondProxyAddr,omitempty"`                //nolint:lll
	ValidatorTimelockAddr *string `mapstructure:"ValidatorTimelockAddr" toml:"ValidatorTimelockAddr,omitempty" json:"ValidatorTimelockAddr,omitempty"` //nolint:lll
	DefaultUpgradeAddr    *string `mapstructure:"DefaultUpgradeAddr" toml:"DefaultUpgradeAddr,omitempty" json:"DefaultUpgradeAddr,omitempty"`          //nolint:lll
	Multicall3Addr        *string `mapstructure:"Multicall3Addr" toml:"Multicall3Addr,omitempty" json:"Multicall3Addr,omitempty"`                      //nolint:lll
}

// L2Source is the unvalidated form of L2
type L2Source struct {
	TestnetPaymasterAddr *string `mapstructure:"TestnetPaymasterAddr" toml:"TestnetPaymasterAddr,omitempty" json:"TestnetPaymasterAddr,omitempty"` //nolint:lll
}

// BridgeSource is the unvalidated form of Bridge
type BridgeSource struct {
	L1Address *string `mapstructure:"L1Address" toml:"L1Address,omitempty" json:"L1Address,omitempty"`
	L2Address *string `mapstructure:"L2Address" toml:"L2Address,omitempty" json:"L2Address,omitempty"`
}

// BridgesSource is the unvalidated form of Bridges
type BridgesSource struct {
	ERC20 *BridgeSource `mapstructure:"ERC20" toml:"ERC20,omitempty" json:"ERC20,omitempty"`
	WETH  *BridgeSource `mapstructure:"WETH" toml:"WETH,omitempty" json:"WETH,omitempty"`
}
