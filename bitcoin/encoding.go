package bitcoin

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MixinNetwork/btcaddr/util/bech32"
	"github.com/vmihailenco/msgpack/v4"
	"golang.org/x/crypto/ripemd160"
)

const (
	payloadPubkeyHash     = "pubkey_hash"
	payloadScriptHash     = "script_hash"
	payloadWitnessProgram = "witness_program"
)

type addressWire struct {
	Network string `json:"network" msgpack:"N"`
	Payload string `json:"payload" msgpack:"P"`
	Version byte   `json:"version" msgpack:"V"`
	Data    []byte `json:"-" msgpack:"D"`
	Hex     string `json:"data" msgpack:"-"`
}

func (a Address) wire() *addressWire {
	w := &addressWire{Network: a.network.String()}
	switch p := a.payload.(type) {
	case PubkeyHash:
		w.Payload, w.Data = payloadPubkeyHash, p[:]
	case ScriptHash:
		w.Payload, w.Data = payloadScriptHash, p[:]
	case WitnessProgram:
		w.Payload, w.Version, w.Data = payloadWitnessProgram, p.Version, p.Program
	default:
		panic(fmt.Errorf("unknown payload %#v", a.payload))
	}
	w.Hex = hex.EncodeToString(w.Data)
	return w
}

func (w *addressWire) address() (Address, error) {
	var a Address
	network, err := ParseNetwork(w.Network)
	if err != nil {
		return a, err
	}
	a.network = network

	switch w.Payload {
	case payloadPubkeyHash, payloadScriptHash:
		if len(w.Data) != ripemd160.Size || w.Version != 0 {
			return a, fmt.Errorf("invalid %s length %d", w.Payload, len(w.Data))
		}
		var h [ripemd160.Size]byte
		copy(h[:], w.Data)
		if w.Payload == payloadPubkeyHash {
			a.payload = PubkeyHash(h)
		} else {
			a.payload = ScriptHash(h)
		}
	case payloadWitnessProgram:
		err = bech32.ValidateWitnessProgram(w.Version, w.Data)
		if err != nil {
			return a, err
		}
		program := make([]byte, len(w.Data))
		copy(program, w.Data)
		a.payload = WitnessProgram{Version: w.Version, Program: program}
	default:
		return a, fmt.Errorf("invalid address payload %s", w.Payload)
	}
	return a, nil
}

func MarshalAddress(a Address) []byte {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseCompactEncoding(true).SortMapKeys(true)
	err := enc.Encode(a.wire())
	if err != nil {
		panic(fmt.Errorf("MarshalAddress: %#v %s", a, err.Error()))
	}
	return buf.Bytes()
}

func UnmarshalAddress(data []byte) (Address, error) {
	var w addressWire
	err := msgpack.Unmarshal(data, &w)
	if err != nil {
		return Address{}, fmt.Errorf("UnmarshalAddress: %s %s", hex.EncodeToString(data), err.Error())
	}
	return w.address()
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.wire())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var w addressWire
	err := json.Unmarshal(b, &w)
	if err != nil {
		return err
	}
	w.Data, err = hex.DecodeString(w.Hex)
	if err != nil {
		return err
	}
	addr, err := w.address()
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
