package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
)

const PrivateKeySize = 32

type KeyPair struct {
	private *btcec.PrivateKey
}

func NewKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}
	return &KeyPair{private: priv}, nil
}

func KeyPairFromString(src string) (*KeyPair, error) {
	data, err := hex.DecodeString(src)
	if err != nil {
		return nil, err
	}
	if len(data) != PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length %d", len(data))
	}
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), data)
	if priv.D.Sign() == 0 || priv.D.Cmp(btcec.S256().N) >= 0 {
		return nil, fmt.Errorf("invalid private key %s", src)
	}
	return &KeyPair{private: priv}, nil
}

// PublicKey returns the 33 bytes compressed SEC serialization
func (k *KeyPair) PublicKey() []byte {
	return k.private.PubKey().SerializeCompressed()
}

func (k *KeyPair) PrivateKey() []byte {
	return k.private.Serialize()
}

func (k *KeyPair) String() string {
	return hex.EncodeToString(k.PrivateKey())
}
