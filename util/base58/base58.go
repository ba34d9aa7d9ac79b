// Package base58 implements the bitcoin flavored base58 and base58check
// encodings. Only the encoding direction is provided.
package base58

import (
	"math/big"

	"github.com/MixinNetwork/btcaddr/crypto"
)

const (
	alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	ChecksumSize = 4
)

var (
	bigRadix = big.NewInt(58)
	bigZero  = big.NewInt(0)
)

// Encode treats b as a big-endian unsigned integer, and every leading
// zero byte becomes a leading '1'.
func Encode(b []byte) string {
	x := new(big.Int).SetBytes(b)

	// log(256) / log(58), rounded up
	answer := make([]byte, 0, len(b)*138/100+1)
	mod := new(big.Int)
	for x.Cmp(bigZero) > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, alphabet[mod.Int64()])
	}

	for _, i := range b {
		if i != 0 {
			break
		}
		answer = append(answer, alphabet[0])
	}

	for i, j := 0, len(answer)-1; i < j; i, j = i+1, j-1 {
		answer[i], answer[j] = answer[j], answer[i]
	}
	return string(answer)
}

// checksum: first four bytes of sha256^2
func checksum(input []byte) (cksum [ChecksumSize]byte) {
	h := crypto.DoubleSha256Hash(input)
	copy(cksum[:], h[:ChecksumSize])
	return
}

// CheckEncode prepends a version byte and appends a four byte checksum.
func CheckEncode(input []byte, version byte) string {
	b := make([]byte, 0, 1+len(input)+ChecksumSize)
	b = append(b, version)
	b = append(b, input...)
	cksum := checksum(b)
	b = append(b, cksum[:]...)
	return Encode(b)
}
