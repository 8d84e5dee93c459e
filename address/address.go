// Package address validates and normalizes H160 contract addresses.
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/invopop/jsonschema"
)

const (
	hexPrefix = "0x"
	// hexLength is the number of hex digits of an H160 address without prefix
	hexLength = 2 * common.AddressLength
)

// ErrInvalidAddressFormat is matched by every InvalidFormatError
var ErrInvalidAddressFormat = errors.New("invalid address format")

// InvalidFormatError reports a raw value that is not a 40 hex digit address
type InvalidFormatError struct {
	Value  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid address format %q: %s", e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidAddressFormat) true for any InvalidFormatError
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidAddressFormat
}

// Address is a validated H160 address. Its text form is always the canonical
// lower-case 0x-prefixed representation.
type Address common.Address

// Validate strips an optional 0x prefix, requires exactly 40 hex digits and
// returns the address. No checksum validation is performed.
func Validate(raw string) (Address, error) {
	if raw == "" {
		return Address{}, &InvalidFormatError{Value: raw, Reason: "empty value"}
	}
	digits := raw
	if len(digits) >= len(hexPrefix) && strings.EqualFold(digits[:len(hexPrefix)], hexPrefix) {
		digits = digits[len(hexPrefix):]
	}
	if len(digits) != hexLength {
		return Address{}, &InvalidFormatError{
			Value:  raw,
			Reason: fmt.Sprintf("expected %d hex digits, got %d", hexLength, len(digits)),
		}
	}
	for i, c := range digits {
		if !isHexDigit(c) {
			return Address{}, &InvalidFormatError{
				Value:  raw,
				Reason: fmt.Sprintf("non-hex character %q at position %d", c, i),
			}
		}
	}
	return Address(common.HexToAddress(digits)), nil
}

// MustValidate is like Validate but panics on error. Intended for constants and tests.
func MustValidate(raw string) Address {
	a, err := Validate(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBytes builds an Address from its 20 byte representation
func FromBytes(b []byte) (Address, error) {
	if len(b) != common.AddressLength {
		return Address{}, &InvalidFormatError{
			Value:  hexutil.Encode(b),
			Reason: fmt.Sprintf("expected %d bytes, got %d", common.AddressLength, len(b)),
		}
	}
	return Address(common.BytesToAddress(b)), nil
}

// Hex returns the canonical lower-case 0x-prefixed form, not the EIP-55 one
func (a Address) Hex() string {
	return hexutil.Encode(a[:])
}

// Common returns the go-ethereum representation
func (a Address) Common() common.Address {
	return common.Address(a)
}

// Bytes returns the 20 byte representation
func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(data []byte) error {
	res, err := Validate(string(data))
	if err != nil {
		return err
	}
	*a = res
	return nil
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func (Address) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Address",
		Description: "H160 address: 40 hex digits with an optional 0x prefix",
		Pattern:     "^(0[xX])?[0-9a-fA-F]{40}$",
		Examples: []interface{}{
			"0x1111111111111111111111111111111111111111",
		},
	}
}
