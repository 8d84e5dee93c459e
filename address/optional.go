package address

import "github.com/invopop/jsonschema"

// Optional is an Address that may be absent. The zero value is absent.
// It is a plain value so copies never alias each other.
type Optional struct {
	addr Address
	set  bool
}

// None returns an absent address
func None() Optional {
	return Optional{}
}

// Some returns a present address
func Some(a Address) Optional {
	return Optional{addr: a, set: true}
}

// ParseOptional validates raw when present. A nil raw yields an absent value.
func ParseOptional(raw *string) (Optional, error) {
	if raw == nil {
		return None(), nil
	}
	a, err := Validate(*raw)
	if err != nil {
		return None(), err
	}
	return Some(a), nil
}

// IsSet reports whether the address is present
func (o Optional) IsSet() bool {
	return o.set
}

// Get returns the address and whether it is present
func (o Optional) Get() (Address, bool) {
	return o.addr, o.set
}

// Ptr returns the canonical text form or nil when absent
func (o Optional) Ptr() *string {
	if !o.set {
		return nil
	}
	s := o.addr.Hex()
	return &s
}

func (o Optional) String() string {
	if !o.set {
		return "<none>"
	}
	return o.addr.Hex()
}

func (Optional) JSONSchema() *jsonschema.Schema {
	s := Address{}.JSONSchema()
	s.Description = "optional " + s.Description
	return s
}
