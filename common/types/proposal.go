package types

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-democracy/codec"
	"github.com/spacemeshos/go-democracy/hash"
)

// MaxProposalBody bounds the size of a proposal payload.
const MaxProposalBody = 1 << 16

// ProposalKind selects the enactment handler.
type ProposalKind uint16

// Proposal is an opaque payload enacted when a ballot passes.
type Proposal struct {
	Kind ProposalKind
	Body []byte
}

// Hash returns blake3 hash of the scale encoded proposal.
func (p *Proposal) Hash() Hash32 {
	return Hash32(hash.Sum(codec.MustEncode(p)))
}

// MarshalLogObject implements logging interface.
func (p *Proposal) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint16("kind", uint16(p.Kind))
	encoder.AddInt("size", len(p.Body))
	encoder.AddString("hash", p.Hash().ShortString())
	return nil
}

// EncodeScale implements scale codec interface.
func (p *Proposal) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact16(enc, uint16(p.Kind))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, p.Body, MaxProposalBody)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (p *Proposal) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact16(dec)
		if err != nil {
			return total, err
		}
		total += n
		p.Kind = ProposalKind(field)
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxProposalBody)
		if err != nil {
			return total, err
		}
		total += n
		p.Body = field
	}
	return total, nil
}
