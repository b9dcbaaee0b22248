package bignum

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

const (
	hashTagInt  byte = 'i'
	hashTagFrac byte = 'f'
)

// Hash returns a 64-bit digest of the canonical form. Equal values hash equally.
func (i BigInt) Hash() uint64 {
	buf := make([]byte, 0, 2+4*len(i.limbs))
	buf = append(buf, hashTagInt)
	buf = appendSigned(buf, i.IsNegative(), i.limbs)
	return digest(buf)
}

// Hash returns a 64-bit digest of the reduced form. Equal values hash equally.
func (f Fraction) Hash() uint64 {
	den := f.denom()
	buf := make([]byte, 0, 8+4*(len(f.num.limbs)+len(den.limbs)))
	buf = append(buf, hashTagFrac)
	buf = appendSigned(buf, f.IsNegative(), f.num.limbs)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(den.limbs))) //nolint:gosec // G115: len <= MaxLimbs.
	for _, limb := range den.limbs {
		buf = binary.LittleEndian.AppendUint32(buf, limb)
	}
	return digest(buf)
}

func appendSigned(buf []byte, neg bool, limbs []uint32) []byte {
	if neg {
		buf = append(buf, '-')
	} else {
		buf = append(buf, '+')
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(limbs))) //nolint:gosec // G115: len <= MaxLimbs.
	for _, limb := range limbs {
		buf = binary.LittleEndian.AppendUint32(buf, limb)
	}
	return buf
}

func digest(buf []byte) uint64 {
	sum := blake3.Sum256(buf)
	return binary.LittleEndian.Uint64(sum[:8])
}
