package address

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "lower case with prefix",
			raw:      "0x1111111111111111111111111111111111111111",
			expected: "0x1111111111111111111111111111111111111111",
		},
		{
			name:     "without prefix",
			raw:      "abcdefabcdefabcdefabcdefabcdefabcdefabcd",
			expected: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		},
		{
			name:     "mixed case checksum is lower cased",
			raw:      "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			expected: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		},
		{
			name:     "upper case prefix",
			raw:      "0XABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD",
			expected: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		},
		{
			name:     "zero address",
			raw:      "0x0000000000000000000000000000000000000000",
			expected: "0x0000000000000000000000000000000000000000",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			addr, err := Validate(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.expected, addr.Hex())
			require.Equal(t, tt.expected, addr.String())
		})
	}
}

func TestValidateInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prefix only", raw: "0x"},
		{name: "too short", raw: "0x111111111111111111111111111111111111111"},
		{name: "too long", raw: "0x11111111111111111111111111111111111111111"},
		{name: "non hex char", raw: "0x111111111111111111111111111111111111111g"},
		{name: "double prefix", raw: "0x0x11111111111111111111111111111111111111"},
		{name: "spaces", raw: " 0x1111111111111111111111111111111111111111"},
		{name: "42 digits without prefix", raw: "001111111111111111111111111111111111111111"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Validate(tt.raw)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidAddressFormat)
			var formatErr *InvalidFormatError
			require.True(t, errors.As(err, &formatErr))
			require.Equal(t, tt.raw, formatErr.Value)
		})
	}
}

func TestValidateEveryHexDigit(t *testing.T) {
	for _, c := range "0123456789abcdefABCDEF" {
		raw := strings.Repeat(string(c), hexLength)
		addr, err := Validate(raw)
		require.NoError(t, err)
		require.Equal(t, "0x"+strings.ToLower(raw), addr.Hex())

		prefixed, err := Validate("0x" + raw)
		require.NoError(t, err)
		require.Equal(t, addr, prefixed)
	}
}

func TestAddressText(t *testing.T) {
	var addr Address
	err := addr.UnmarshalText([]byte("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	require.NoError(t, err)
	text, err := addr.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", string(text))
	require.Equal(t, common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"), addr.Common())

	err = addr.UnmarshalText([]byte("nope"))
	require.ErrorIs(t, err, ErrInvalidAddressFormat)
}

func TestFromBytes(t *testing.T) {
	addr, err := FromBytes(common.HexToAddress("0x1111111111111111111111111111111111111111").Bytes())
	require.NoError(t, err)
	require.Equal(t, "0x1111111111111111111111111111111111111111", addr.Hex())

	_, err = FromBytes([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrInvalidAddressFormat)
}

func TestOptional(t *testing.T) {
	none := None()
	require.False(t, none.IsSet())
	require.Nil(t, none.Ptr())
	require.Equal(t, Optional{}, none)

	raw := "0X2222222222222222222222222222222222222222"
	some, err := ParseOptional(&raw)
	require.NoError(t, err)
	require.True(t, some.IsSet())
	got, ok := some.Get()
	require.True(t, ok)
	require.Equal(t, MustValidate(raw), got)
	require.Equal(t, "0x2222222222222222222222222222222222222222", *some.Ptr())

	absent, err := ParseOptional(nil)
	require.NoError(t, err)
	require.Equal(t, none, absent)

	bad := "0x12"
	_, err = ParseOptional(&bad)
	require.ErrorIs(t, err, ErrInvalidAddressFormat)
}
