package enactment

import (
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-democracy/common/types"
)

const (
	maxKeyLength   = 256
	maxValueLength = 4096
)

// SetParameter is the body of KindSetParameter.
type SetParameter struct {
	Key   string
	Value []byte
}

// EncodeScale implements scale codec interface.
func (p *SetParameter) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, []byte(p.Key), maxKeyLength)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, p.Value, maxValueLength)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (p *SetParameter) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, maxKeyLength)
		if err != nil {
			return total, err
		}
		total += n
		p.Key = string(field)
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, maxValueLength)
		if err != nil {
			return total, err
		}
		total += n
		p.Value = field
	}
	return total, nil
}

// Transfer is the body of KindTransfer.
type Transfer struct {
	From   types.Address
	To     types.Address
	Amount types.Amount
}

// EncodeScale implements scale codec interface.
func (t *Transfer) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, t.From[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.To[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, uint64(t.Amount))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Transfer) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, t.From[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, t.To[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		t.Amount = types.Amount(field)
	}
	return total, nil
}
