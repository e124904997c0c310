package shell

import (
	"fmt"

	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
)

// raw is a register of the map, typed at run time.
type raw struct {
	reg *regspec.Register
	v   uint64
}

func (r *raw) RegisterAddress() uint64 { return r.reg.Addr }
func (r *raw) RegisterName() string    { return r.reg.Name }

func (r *raw) MarshalBinary() ([]byte, error) {
	return regmap.EncodeUint(r.v, r.reg.Bytes()), nil
}

func (r *raw) UnmarshalBinary(b []byte) error {
	if len(b) != r.reg.Bytes() {
		return fmt.Errorf("%s: want %d bytes, got %d", r.reg.Name, r.reg.Bytes(), len(b))
	}
	v, err := regmap.DecodeUint(b)
	if err != nil {
		return err
	}
	r.v = v
	return nil
}
