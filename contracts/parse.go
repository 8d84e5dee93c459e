package contracts

import (
	"github.com/0xPolygon/cdk-enconfig/address"
)

// Parse validates src and builds the Contracts. Every L1 field must be present
// and valid; L2 and bridge fields may be absent but must be valid when present.
// All defects are reported together in a *ValidationError.
func Parse(src Source) (Contracts, error) {
	v := &collector{}

	var l1 L1Source
	if src.L1 != nil {
		l1 = *src.L1
	}
	var l2 L2Source
	if src.L2 != nil {
		l2 = *src.L2
	}
	var bridges BridgesSource
	if src.Bridges != nil {
		bridges = *src.Bridges
	}

	c := Contracts{
		L1: L1{
			GovernanceAddr:        v.required(FieldGovernanceAddr, l1.GovernanceAddr),
			VerifierAddr:          v.required(FieldVerifierAddr, l1.VerifierAddr),
			DiamondProxyAddr:      v.required(FieldDiamondProxyAddr, l1.DiamondProxyAddr),
			ValidatorTimelockAddr: v.required(FieldValidatorTimelockAddr, l1.ValidatorTimelockAddr),
			DefaultUpgradeAddr:    v.required(FieldDefaultUpgradeAddr, l1.DefaultUpgradeAddr),
			Multicall3Addr:        v.required(FieldMulticall3Addr, l1.Multicall3Addr),
		},
		L2: L2{
			TestnetPaymasterAddr: v.optional(FieldTestnetPaymasterAddr, l2.TestnetPaymasterAddr),
		},
		Bridges: Bridges{
			ERC20: v.bridge(FieldERC20BridgeL1Address, FieldERC20BridgeL2Address, bridges.ERC20),
			WETH:  v.bridge(FieldWETHBridgeL1Address, FieldWETHBridgeL2Address, bridges.WETH),
		},
	}
	if len(v.errs) > 0 {
		return Contracts{}, &ValidationError{Errors: v.errs}
	}
	return c, nil
}

// MustParse is like Parse but panics on error
func MustParse(src Source) Contracts {
	c, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return c
}

type collector struct {
	errs []error
}

func (v *collector) required(field string, raw *string) address.Address {
	if raw == nil {
		v.errs = append(v.errs, &MissingRequiredFieldError{Field: field})
		return address.Address{}
	}
	addr, err := address.Validate(*raw)
	if err != nil {
		v.errs = append(v.errs, &FieldError{Field: field, Err: err})
		return address.Address{}
	}
	return addr
}

func (v *collector) optional(field string, raw *string) address.Optional {
	opt, err := address.ParseOptional(raw)
	if err != nil {
		v.errs = append(v.errs, &FieldError{Field: field, Err: err})
		return address.None()
	}
	return opt
}

func (v *collector) bridge(l1Field, l2Field string, src *BridgeSource) OptionalBridge {
	if src == nil {
		return NoBridge()
	}
	return SomeBridge(Bridge{
		L1Address: v.optional(l1Field, src.L1Address),
		L2Address: v.optional(l2Field, src.L2Address),
	})
}
