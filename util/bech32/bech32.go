// Package bech32 implements the BIP 173 bech32 encoding and the segwit
// address encoding built on top of it. Only the encoding direction is
// provided, and only the BIP 173 checksum constant is used, which
// is the one witness version 0 addresses require.
package bech32

import (
	"errors"
	"fmt"
	"strings"
)

const (
	charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	Separator    = '1'
	ChecksumSize = 6
	MaxLength    = 90

	checksumConst = 1
)

var gen = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

var (
	ErrInvalidWitnessProgram = errors.New("invalid witness program")
	ErrInvalidPrefix         = errors.New("invalid human-readable prefix")
	ErrInvalidDataValue      = errors.New("invalid data value")
)

func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// hrpExpand returns the high bits of each prefix character, a zero, then
// the low bits of each character.
func hrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]&31)
	}
	return out
}

func createChecksum(hrp string, data []byte) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, make([]byte, ChecksumSize)...)
	mod := polymod(values) ^ checksumConst
	cksum := make([]byte, ChecksumSize)
	for i := range cksum {
		cksum[i] = byte(mod>>uint(5*(5-i))) & 31
	}
	return cksum
}

// Encode renders hrp and the 5-bit groups in data as a lower case bech32
// string with a trailing 6 characters checksum.
func Encode(hrp string, data []byte) (string, error) {
	if len(hrp) < 1 || len(hrp) > MaxLength-1-ChecksumSize {
		return "", fmt.Errorf("%w: length %d", ErrInvalidPrefix, len(hrp))
	}
	if l := len(hrp) + 1 + len(data) + ChecksumSize; l > MaxLength {
		return "", fmt.Errorf("invalid bech32 string length %d", l)
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", fmt.Errorf("%w: character %d", ErrInvalidPrefix, hrp[i])
		}
	}
	hrp = strings.ToLower(hrp)

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(data) + ChecksumSize)
	sb.WriteString(hrp)
	sb.WriteByte(Separator)
	for _, b := range data {
		if b > 31 {
			return "", fmt.Errorf("%w: %d", ErrInvalidDataValue, b)
		}
		sb.WriteByte(charset[b])
	}
	for _, b := range createChecksum(hrp, data) {
		sb.WriteByte(charset[b])
	}
	return sb.String(), nil
}

// ConvertBits regroups data from fromBits wide groups into toBits wide
// groups. With pad, the final group is filled with zero bits, otherwise
// any leftover bits must be zero and narrower than fromBits.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, fmt.Errorf("invalid bit groups %d %d", fromBits, toBits)
	}

	var acc uint32
	var bits uint8
	maxv := uint32(1)<<toBits - 1
	ret := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	for _, value := range data {
		if value>>fromBits != 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidDataValue, value)
		}
		acc = acc<<fromBits | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte(acc>>bits&maxv))
		}
	}
	if pad {
		if bits > 0 {
			ret = append(ret, byte(acc<<(toBits-bits)&maxv))
		}
	} else if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, fmt.Errorf("invalid padding %d", bits)
	}
	return ret, nil
}

// ValidateWitnessProgram checks the BIP 141 witness version and program
// length rules.
func ValidateWitnessProgram(version byte, program []byte) error {
	if version > 16 {
		return fmt.Errorf("%w: version %d", ErrInvalidWitnessProgram, version)
	}
	if len(program) < 2 || len(program) > 40 {
		return fmt.Errorf("%w: length %d", ErrInvalidWitnessProgram, len(program))
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		return fmt.Errorf("%w: length %d for version 0", ErrInvalidWitnessProgram, len(program))
	}
	return nil
}

// EncodeSegWit encodes a witness version and program as a segwit address
// under the human-readable prefix hrp.
func EncodeSegWit(hrp string, version byte, program []byte) (string, error) {
	err := ValidateWitnessProgram(version, program)
	if err != nil {
		return "", err
	}
	// TODO: witness versions 1 to 16 need the BIP 350 bech32m constant
	if version != 0 {
		return "", fmt.Errorf("%w: unsupported version %d", ErrInvalidWitnessProgram, version)
	}

	converted, err := ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	combined := make([]byte, len(converted)+1)
	combined[0] = version
	copy(combined[1:], converted)
	return Encode(hrp, combined)
}
