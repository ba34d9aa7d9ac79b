package base58

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/MixinNetwork/btcaddr/crypto"
	btcbase58 "github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	strs := map[string]string{
		"":                           "",
		" ":                          "Z",
		"-":                          "n",
		"0":                          "q",
		"1":                          "r",
		"-1":                         "4SU",
		"11":                         "4k8",
		"abc":                        "ZiCa",
		"1234598760":                 "3mJr7AoUXx2Wqd",
		"abcdefghijklmnopqrstuvwxyz": "3yxU3u1igY8WkgtjK92fbJQCd4BZiiT1v25f",
	}
	for in, out := range strs {
		assert.Equal(out, Encode([]byte(in)), in)
	}

	hexes := map[string]string{
		"61":                   "2g",
		"626262":               "a3gV",
		"636363":               "aPEr",
		"516b6fcd0f":           "ABnLTmg",
		"bf4f89001e670274dd":   "3SEo3LWLoPntC",
		"572e4794":             "3EFU7m",
		"ecac89cad93923c02321": "EJDM8drfXA6uyA",
		"10c8511e":             "Rt5zm",
		"00000000000000000000": "1111111111",
		"00":                   "1",
		"0000ff":               "115Q",
	}
	for in, out := range hexes {
		b, err := hex.DecodeString(in)
		assert.Nil(err)
		assert.Equal(out, Encode(b), in)
		assert.Equal(btcbase58.Encode(b), Encode(b), in)
	}
}

func TestCheckEncode(t *testing.T) {
	assert := assert.New(t)

	for _, version := range []byte{0x00, 0x05, 0x6f, 0xc4, 0x14, 0xff} {
		for _, n := range []int{0, 1, 20, 32} {
			payload := bytes.Repeat([]byte{version ^ 0x5a}, n)
			encoded := CheckEncode(payload, version)
			assert.Equal(btcbase58.CheckEncode(payload, version), encoded)

			decoded, v, err := btcbase58.CheckDecode(encoded)
			assert.Nil(err)
			assert.Equal(version, v)
			assert.True(bytes.Equal(payload, decoded))

			raw := btcbase58.Decode(encoded)
			assert.Len(raw, 1+n+ChecksumSize)
			body := raw[:len(raw)-ChecksumSize]
			h := crypto.DoubleSha256Hash(body)
			assert.Equal(h[:ChecksumSize], raw[len(raw)-ChecksumSize:])
		}
	}

	hash := bytes.Repeat([]byte{0}, 20)
	encoded := CheckEncode(hash, 0x00)
	assert.True(strings.HasPrefix(encoded, strings.Repeat("1", 21)))
	assert.Equal("1111111111111111111114oLvT2", encoded)
}
