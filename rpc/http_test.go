package rpc

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MixinNetwork/btcaddr/bitcoin"
	"github.com/MixinNetwork/btcaddr/crypto"
	"github.com/stretchr/testify/require"
)

const (
	generatorPrivate = "0000000000000000000000000000000000000000000000000000000000000001"
	generatorPublic  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func newTestServer(network bitcoin.Network) *httptest.Server {
	impl := &R{Network: network, NewKey: func() (*crypto.KeyPair, error) {
		return crypto.KeyPairFromString(generatorPrivate)
	}}
	return httptest.NewServer(handleCORS(newRouter(impl)))
}

func post(t *testing.T, url, body string) (int, map[string]interface{}) {
	resp, err := http.Post(url+"/generate", "application/json", strings.NewReader(body))
	require.Nil(t, err)
	defer resp.Body.Close()
	var res map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&res)
	require.Nil(t, err)
	return resp.StatusCode, res
}

func TestGenerate(t *testing.T) {
	require := require.New(t)

	server := newTestServer(bitcoin.Mainnet)
	defer server.Close()

	code, res := post(t, server.URL, `{"address_type":"p2pkh","network":"mainnet"}`)
	require.Equal(http.StatusOK, code)
	require.Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", res["address"])
	require.Equal(generatorPublic, res["public_key"])

	code, res = post(t, server.URL, `{"address_type":"p2wpkh","network":"TESTNET"}`)
	require.Equal(http.StatusOK, code)
	require.Equal("tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", res["address"])

	code, res = post(t, server.URL, `{"address_type":"p2wpkh"}`)
	require.Equal(http.StatusOK, code)
	require.Equal("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", res["address"])

	code, res = post(t, server.URL, `{"address_type":"p2wsh","network":"mainnet","script":"21,`+generatorPublic+`,ac"}`)
	require.Equal(http.StatusOK, code)
	require.Equal("bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv3", res["address"])
	require.Equal(generatorPublic, res["public_key"])

	script, _ := hex.DecodeString("21" + generatorPublic + "ac")
	code, res = post(t, server.URL, `{"address_type":"p2sh","network":"testnet","script":"21`+generatorPublic+`ac"}`)
	require.Equal(http.StatusOK, code)
	require.Equal(bitcoin.P2SH(script, bitcoin.Testnet).String(), res["address"])
	require.True(strings.HasPrefix(res["address"].(string), "2"))
}

func TestGenerateInvalid(t *testing.T) {
	require := require.New(t)

	server := newTestServer(bitcoin.Testnet)
	defer server.Close()

	invalid := map[string]string{
		`{"address_type":"p2tr"}`:                      "invalid address type",
		`{"address_type":"p2pkh","network":"regtest"}`: "invalid bitcoin network",
		`{"address_type":"p2sh","network":"mainnet"}`:  "missing script",
		`{"address_type":"p2wsh","script":"51,zz"}`:    "invalid script chunk 1",
		`{"address_type":"p2wsh","script":" , "}`:      "empty script",
		`{"address_type":`:                             "unexpected EOF",
	}
	for body, msg := range invalid {
		code, res := post(t, server.URL, body)
		require.Equal(http.StatusBadRequest, code, body)
		require.Contains(res["error"], msg, body)
	}

	resp, err := http.Get(server.URL + "/generate")
	require.Nil(err)
	require.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	resp, err = http.Get(server.URL + "/missing")
	require.Nil(err)
	require.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGenerateKeyFailure(t *testing.T) {
	require := require.New(t)

	impl := &R{Network: bitcoin.Mainnet, NewKey: func() (*crypto.KeyPair, error) {
		return nil, errors.New("entropy exhausted")
	}}
	server := httptest.NewServer(newRouter(impl))
	defer server.Close()

	code, res := post(t, server.URL, `{"address_type":"p2pkh"}`)
	require.Equal(http.StatusInternalServerError, code)
	require.Equal("entropy exhausted", res["error"])

	panicking := httptest.NewServer(newRouter(&R{Network: bitcoin.Mainnet, NewKey: func() (*crypto.KeyPair, error) {
		panic("broken key source")
	}}))
	defer panicking.Close()
	code, res = post(t, panicking.URL, `{"address_type":"p2pkh"}`)
	require.Equal(http.StatusInternalServerError, code)
	require.Contains(res["error"], "broken key source")
}

func TestGenerateRandomKeys(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(NewHandler(bitcoin.Mainnet))
	defer server.Close()

	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		res, err := Generate(server.URL, &GenerateRequest{AddressType: "p2wpkh"})
		require.Nil(err)
		require.False(seen[res.Address])
		seen[res.Address] = true
		public, err := hex.DecodeString(res.PublicKey)
		require.Nil(err)
		require.Len(public, 33)
		require.Equal(bitcoin.P2WPKH(public, bitcoin.Mainnet).String(), res.Address)
	}

	_, err := Generate(server.URL, &GenerateRequest{AddressType: "p2pk"})
	require.NotNil(err)
	require.Contains(err.Error(), "invalid address type")
}

func TestInfoAndCORS(t *testing.T) {
	require := require.New(t)

	server := newTestServer(bitcoin.Testnet)
	defer server.Close()

	resp, err := http.Get(server.URL + "/info")
	require.Nil(err)
	var info map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&info)
	resp.Body.Close()
	require.Nil(err)
	require.Equal("testnet", info["network"])
	require.NotEmpty(info["version"])

	req, err := http.NewRequest("OPTIONS", server.URL+"/generate", nil)
	require.Nil(err)
	req.Header.Set("Origin", "https://wallet.example.com")
	resp, err = http.DefaultClient.Do(req)
	require.Nil(err)
	resp.Body.Close()
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Equal("https://wallet.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestParseScript(t *testing.T) {
	require := require.New(t)

	script, err := ParseScript("51,21" + generatorPublic + ",51ae")
	require.Nil(err)
	require.Equal("5121"+generatorPublic+"51ae", hex.EncodeToString(script))
	script, err = ParseScript(" 76a9 , 14 ")
	require.Nil(err)
	require.Equal("76a914", hex.EncodeToString(script))
	_, err = ParseScript("")
	require.NotNil(err)
	_, err = ParseScript("7")
	require.NotNil(err)
}
