package contracts

import (
	"errors"
	"testing"

	"github.com/0xPolygon/cdk-enconfig/address"
	"github.com/stretchr/testify/require"
)

const (
	addr1 = "0x1111111111111111111111111111111111111111"
	addr2 = "0x2222222222222222222222222222222222222222"
	addr3 = "0x3333333333333333333333333333333333333333"
	addr4 = "0x4444444444444444444444444444444444444444"
	addr5 = "0x5555555555555555555555555555555555555555"
	addr6 = "0x6666666666666666666666666666666666666666"
)

func str(s string) *string {
	return &s
}

func validL1Source() *L1Source {
	return &L1Source{
		GovernanceAddr:        str(addr1),
		VerifierAddr:          str(addr2),
		DiamondProxyAddr:      str(addr3),
		ValidatorTimelockAddr: str(addr4),
		DefaultUpgradeAddr:    str(addr5),
		Multicall3Addr:        str(addr6),
	}
}

func TestParseOnlyL1(t *testing.T) {
	c, err := Parse(Source{L1: validL1Source()})
	require.NoError(t, err)
	require.Equal(t, addr1, c.L1.GovernanceAddr.Hex())
	require.Equal(t, addr2, c.L1.VerifierAddr.Hex())
	require.Equal(t, addr3, c.L1.DiamondProxyAddr.Hex())
	require.Equal(t, addr4, c.L1.ValidatorTimelockAddr.Hex())
	require.Equal(t, addr5, c.L1.DefaultUpgradeAddr.Hex())
	require.Equal(t, addr6, c.L1.Multicall3Addr.Hex())
	require.False(t, c.L2.TestnetPaymasterAddr.IsSet())
	require.False(t, c.Bridges.ERC20.IsSet())
	require.False(t, c.Bridges.WETH.IsSet())
}

func TestParseNormalizesAddresses(t *testing.T) {
	src := Source{
		L1: validL1Source(),
		L2: &L2Source{TestnetPaymasterAddr: str("ABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD")},
	}
	src.L1.GovernanceAddr = str("0XAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	c, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", c.L1.GovernanceAddr.Hex())
	paymaster, ok := c.L2.TestnetPaymasterAddr.Get()
	require.True(t, ok)
	require.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", paymaster.Hex())
}

func TestParseMissingSingleField(t *testing.T) {
	tests := []struct {
		field string
		unset func(*L1Source)
	}{
		{FieldGovernanceAddr, func(s *L1Source) { s.GovernanceAddr = nil }},
		{FieldVerifierAddr, func(s *L1Source) { s.VerifierAddr = nil }},
		{FieldDiamondProxyAddr, func(s *L1Source) { s.DiamondProxyAddr = nil }},
		{FieldValidatorTimelockAddr, func(s *L1Source) { s.ValidatorTimelockAddr = nil }},
		{FieldDefaultUpgradeAddr, func(s *L1Source) { s.DefaultUpgradeAddr = nil }},
		{FieldMulticall3Addr, func(s *L1Source) { s.Multicall3Addr = nil }},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.field, func(t *testing.T) {
			l1 := validL1Source()
			tt.unset(l1)
			_, err := Parse(Source{L1: l1})
			require.ErrorIs(t, err, ErrMissingRequiredField)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Errors, 1)
			require.Equal(t, []string{tt.field}, verr.MissingFields())

			var missing *MissingRequiredFieldError
			require.True(t, errors.As(err, &missing))
			require.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestParseReportsEveryDefect(t *testing.T) {
	l1 := validL1Source()
	l1.VerifierAddr = nil
	l1.Multicall3Addr = nil
	l1.DiamondProxyAddr = str("0x1234")
	src := Source{
		L1: l1,
		L2: &L2Source{TestnetPaymasterAddr: str("not an address")},
		Bridges: &BridgesSource{
			WETH: &BridgeSource{L2Address: str("0xzz22222222222222222222222222222222222222")},
		},
	}

	_, err := Parse(src)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 5)
	require.Equal(t, []string{FieldVerifierAddr, FieldMulticall3Addr}, verr.MissingFields())
	require.Equal(t, []string{FieldDiamondProxyAddr, FieldTestnetPaymasterAddr, FieldWETHBridgeL2Address},
		verr.InvalidFields())
	require.ErrorIs(t, err, address.ErrInvalidAddressFormat)
	require.Contains(t, err.Error(), FieldVerifierAddr)
	require.Contains(t, err.Error(), FieldWETHBridgeL2Address)
}

func TestParseEmptySource(t *testing.T) {
	_, err := Parse(Source{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{
		FieldGovernanceAddr,
		FieldVerifierAddr,
		FieldDiamondProxyAddr,
		FieldValidatorTimelockAddr,
		FieldDefaultUpgradeAddr,
		FieldMulticall3Addr,
	}, verr.MissingFields())
}

func TestParseBridges(t *testing.T) {
	src := Source{
		L1: validL1Source(),
		Bridges: &BridgesSource{
			ERC20: &BridgeSource{L1Address: str(addr1), L2Address: str(addr2)},
			// asymmetric deployment: only the L1 side exists
			WETH: &BridgeSource{L1Address: str(addr3)},
		},
	}
	c, err := Parse(src)
	require.NoError(t, err)

	erc20, ok := c.Bridges.ERC20.Get()
	require.True(t, ok)
	require.Equal(t, address.Some(address.MustValidate(addr1)), erc20.L1Address)
	require.Equal(t, address.Some(address.MustValidate(addr2)), erc20.L2Address)

	weth, ok := c.Bridges.WETH.Get()
	require.True(t, ok)
	require.True(t, weth.L1Address.IsSet())
	require.False(t, weth.L2Address.IsSet())
}

func TestParseEmptyBridgeIsAbsent(t *testing.T) {
	c, err := Parse(Source{
		L1:      validL1Source(),
		Bridges: &BridgesSource{ERC20: &BridgeSource{}},
	})
	require.NoError(t, err)
	require.False(t, c.Bridges.ERC20.IsSet())
	require.Equal(t, NoBridge(), c.Bridges.ERC20)
}

func TestSourceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{
			name: "only L1",
			src:  Source{L1: validL1Source()},
		},
		{
			name: "everything",
			src: Source{
				L1: validL1Source(),
				L2: &L2Source{TestnetPaymasterAddr: str(addr6)},
				Bridges: &BridgesSource{
					ERC20: &BridgeSource{L1Address: str(addr1), L2Address: str(addr2)},
					WETH:  &BridgeSource{L2Address: str(addr4)},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			c := MustParse(tt.src)
			again, err := Parse(c.Source())
			require.NoError(t, err)
			require.True(t, c == again)
			require.Equal(t, tt.src, c.Source())
		})
	}
}

func TestContractsCopiesDoNotAlias(t *testing.T) {
	c := MustParse(Source{L1: validL1Source()})
	cp := c
	cp.L1.GovernanceAddr = address.MustValidate(addr6)
	require.Equal(t, addr1, c.L1.GovernanceAddr.Hex())
}
