package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/ripemd160"
)

type Hash [sha256.Size]byte

// ShortHash is the 20 bytes RIPEMD-160 digest, also used for hash160
type ShortHash [ripemd160.Size]byte

func Sha256Hash(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

func DoubleSha256Hash(data []byte) Hash {
	h := sha256.Sum256(data)
	return Hash(sha256.Sum256(h[:]))
}

func Ripemd160Hash(data []byte) ShortHash {
	var sh ShortHash
	r := ripemd160.New()
	r.Write(data)
	copy(sh[:], r.Sum(nil))
	return sh
}

// Hash160 computes RIPEMD160(SHA256(data))
func Hash160(data []byte) ShortHash {
	h := Sha256Hash(data)
	return Ripemd160Hash(h[:])
}

func HashFromString(src string) (Hash, error) {
	var hash Hash
	data, err := hex.DecodeString(src)
	if err != nil {
		return hash, err
	}
	if len(data) != len(hash) {
		return hash, fmt.Errorf("invalid hash length %d", len(data))
	}
	copy(hash[:], data)
	return hash, nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(h.String())), nil
}

func (sh ShortHash) String() string {
	return hex.EncodeToString(sh[:])
}
