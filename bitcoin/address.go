package bitcoin

import (
	"fmt"
	"strings"

	"github.com/MixinNetwork/btcaddr/crypto"
	"github.com/MixinNetwork/btcaddr/util/base58"
	"github.com/MixinNetwork/btcaddr/util/bech32"
)

// Payload is one of PubkeyHash, ScriptHash or WitnessProgram.
type Payload interface {
	payload()
}

type PubkeyHash crypto.ShortHash

type ScriptHash crypto.ShortHash

type WitnessProgram struct {
	Version byte
	Program []byte
}

func (PubkeyHash) payload()     {}
func (ScriptHash) payload()     {}
func (WitnessProgram) payload() {}

type Kind int

const (
	KindP2PKH Kind = iota
	KindP2SH
	KindP2WPKH
	KindP2WSH
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p2pkh":
		return KindP2PKH, nil
	case "p2sh":
		return KindP2SH, nil
	case "p2wpkh":
		return KindP2WPKH, nil
	case "p2wsh":
		return KindP2WSH, nil
	}
	return KindP2PKH, fmt.Errorf("invalid address type %s", s)
}

func (k Kind) String() string {
	switch k {
	case KindP2PKH:
		return "p2pkh"
	case KindP2SH:
		return "p2sh"
	case KindP2WPKH:
		return "p2wpkh"
	case KindP2WSH:
		return "p2wsh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RequiresScript reports whether the kind is built from a script rather
// than a public key.
func (k Kind) RequiresScript() bool {
	return k == KindP2SH || k == KindP2WSH
}

type Address struct {
	network Network
	payload Payload
}

func P2PKH(publicKey []byte, network Network) Address {
	return Address{network, PubkeyHash(crypto.Hash160(publicKey))}
}

func P2SH(script []byte, network Network) Address {
	return Address{network, ScriptHash(crypto.Hash160(script))}
}

func P2WPKH(publicKey []byte, network Network) Address {
	h := crypto.Hash160(publicKey)
	return Address{network, WitnessProgram{Version: 0, Program: h[:]}}
}

// P2WSH uses the single sha256 of the script, the 32 bytes program
// witness version 0 expects.
func P2WSH(script []byte, network Network) Address {
	h := crypto.Sha256Hash(script)
	return Address{network, WitnessProgram{Version: 0, Program: h[:]}}
}

// New builds the address of kind from either a public key or a script.
func New(kind Kind, data []byte, network Network) Address {
	switch kind {
	case KindP2PKH:
		return P2PKH(data, network)
	case KindP2SH:
		return P2SH(data, network)
	case KindP2WPKH:
		return P2WPKH(data, network)
	case KindP2WSH:
		return P2WSH(data, network)
	}
	panic(kind)
}

func (a Address) Network() Network {
	return a.network
}

func (a Address) Payload() Payload {
	if w, ok := a.payload.(WitnessProgram); ok {
		program := make([]byte, len(w.Program))
		copy(program, w.Program)
		return WitnessProgram{Version: w.Version, Program: program}
	}
	return a.payload
}

// Encode renders the address as base58check for hash payloads and as
// bech32 for witness programs.
func (a Address) Encode() (string, error) {
	params := a.network.params()
	switch p := a.payload.(type) {
	case PubkeyHash:
		return base58.CheckEncode(p[:], params.PubKeyHashAddrID), nil
	case ScriptHash:
		return base58.CheckEncode(p[:], params.ScriptHashAddrID), nil
	case WitnessProgram:
		return bech32.EncodeSegWit(params.Bech32HRPSegwit, p.Version, p.Program)
	}
	panic(fmt.Errorf("unknown payload %#v for %s", a.payload, a.network))
}

func (a Address) String() string {
	s, err := a.Encode()
	if err != nil {
		return ""
	}
	return s
}
