package rpc

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MixinNetwork/btcaddr/bitcoin"
	"github.com/MixinNetwork/btcaddr/logger"
	"github.com/unrolled/render"
)

type GenerateRequest struct {
	AddressType string `json:"address_type"`
	Network     string `json:"network,omitempty"`
	Script      string `json:"script,omitempty"`
}

type GenerateResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

func (impl *R) generate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req GenerateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		renderError(w, http.StatusBadRequest, err)
		return
	}
	kind, network, script, err := impl.parseRequest(&req)
	if err != nil {
		renderError(w, http.StatusBadRequest, err)
		return
	}

	key, err := impl.NewKey()
	if err != nil {
		renderError(w, http.StatusInternalServerError, err)
		return
	}
	public := key.PublicKey()
	data := public
	if kind.RequiresScript() {
		data = script
	}
	address, err := bitcoin.New(kind, data, network).Encode()
	if err != nil {
		renderError(w, http.StatusBadRequest, err)
		return
	}

	logger.Verbosef("generate %s %s %s\n", kind, network, address)
	render.New().JSON(w, http.StatusOK, GenerateResponse{
		Address:   address,
		PublicKey: hex.EncodeToString(public),
	})
}

// parseRequest rejects unknown networks instead of falling back to the
// default, only an empty network selects it.
func (impl *R) parseRequest(req *GenerateRequest) (bitcoin.Kind, bitcoin.Network, []byte, error) {
	kind, err := bitcoin.ParseKind(req.AddressType)
	if err != nil {
		return kind, impl.Network, nil, err
	}
	network := impl.Network
	if strings.TrimSpace(req.Network) != "" {
		network, err = bitcoin.ParseNetwork(req.Network)
		if err != nil {
			return kind, network, nil, err
		}
	}
	if !kind.RequiresScript() {
		return kind, network, nil, nil
	}
	script, err := ParseScript(req.Script)
	return kind, network, script, err
}

// ParseScript concatenates the comma separated hex chunks of s.
func ParseScript(s string) ([]byte, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("missing script")
	}
	var script []byte
	for i, chunk := range strings.Split(s, ",") {
		b, err := hex.DecodeString(strings.TrimSpace(chunk))
		if err != nil {
			return nil, fmt.Errorf("invalid script chunk %d %s", i, err.Error())
		}
		script = append(script, b...)
	}
	if len(script) == 0 {
		return nil, errors.New("empty script")
	}
	return script, nil
}

func renderError(w http.ResponseWriter, status int, err error) {
	logger.Printf("generate error %d %s\n", status, err.Error())
	render.New().JSON(w, status, map[string]interface{}{"error": err.Error()})
}
