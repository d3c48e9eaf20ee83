package registry

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
)

// maxBudget is 2^128-1.
var maxBudget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Budget is an unsigned integer in the 128-bit range. The zero value is 0.
type Budget struct {
	v *big.Int
}

func NewBudget(amount uint64) Budget {
	return Budget{v: new(big.Int).SetUint64(amount)}
}

// ParseBudget parses a base 10 string.
func ParseBudget(s string) (Budget, error) {
	if s == "" {
		return Budget{}, fmt.Errorf("%w: empty value", ErrInvalidBudget)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Budget{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidBudget, s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Budget{}, fmt.Errorf("%w: %q", ErrInvalidBudget, s)
	}
	if v.Cmp(maxBudget) > 0 {
		return Budget{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrInvalidBudget, s)
	}
	return Budget{v: v}, nil
}

func (b Budget) int() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return b.v
}

func (b Budget) String() string {
	return b.int().String()
}

// Uint64 reports the value and whether it fits in a uint64.
func (b Budget) Uint64() (uint64, bool) {
	v := b.int()
	return v.Uint64(), v.IsUint64()
}

func (b Budget) Equal(other Budget) bool {
	return b.int().Cmp(other.int()) == 0
}

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a decimal string or a bare JSON number.
func (b *Budget) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	parsed, err := ParseBudget(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b Budget) Value() (driver.Value, error) {
	return b.String(), nil
}

func (b *Budget) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: negative value %d", ErrInvalidBudget, v)
		}
		*b = NewBudget(uint64(v))
		return nil
	case nil:
		*b = Budget{}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidBudget, src)
	}
	parsed, err := ParseBudget(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
