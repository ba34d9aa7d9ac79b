package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/MixinNetwork/btcaddr/bitcoin"
	"github.com/MixinNetwork/btcaddr/config"
	"github.com/MixinNetwork/btcaddr/crypto"
	"github.com/MixinNetwork/btcaddr/logger"
	"github.com/MixinNetwork/btcaddr/rpc"
	"github.com/urfave/cli/v2"
)

func serverCmd(c *cli.Context) error {
	custom, err := config.Initialize(c.String("config"))
	if err != nil {
		return err
	}
	logger.SetLevel(custom.Log.Level)
	logger.SetLimiter(custom.Log.Limiter)
	err = logger.SetFilter(custom.Log.Filter)
	if err != nil {
		return err
	}
	return rpc.StartHTTP(custom)
}

func createAddressCmd(c *cli.Context) error {
	kind, network, err := parseKindAndNetwork(c.String("type"), c.String("network"))
	if err != nil {
		return err
	}
	var script []byte
	if kind.RequiresScript() {
		script, err = rpc.ParseScript(c.String("script"))
		if err != nil {
			return err
		}
	}
	key, err := crypto.NewKeyPair()
	if err != nil {
		return err
	}
	return printAddress(os.Stdout, key, kind, network, script)
}

func printAddress(w io.Writer, key *crypto.KeyPair, kind bitcoin.Kind, network bitcoin.Network, script []byte) error {
	data := key.PublicKey()
	if kind.RequiresScript() {
		data = script
	}
	address, err := bitcoin.New(kind, data, network).Encode()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "address:\t%s\n", address)
	fmt.Fprintf(w, "public key:\t%x\n", key.PublicKey())
	fmt.Fprintf(w, "private key:\t%s\n", key.String())
	return nil
}

func encodeAddressCmd(c *cli.Context) error {
	kind, network, err := parseKindAndNetwork(c.String("type"), c.String("network"))
	if err != nil {
		return err
	}
	data, err := readAddressData(kind, c.String("key"), c.String("script"))
	if err != nil {
		return err
	}
	return printEncoded(os.Stdout, bitcoin.New(kind, data, network), c.Bool("raw"))
}

func readAddressData(kind bitcoin.Kind, key, script string) ([]byte, error) {
	if kind.RequiresScript() {
		return rpc.ParseScript(script)
	}
	if key == "" {
		return nil, fmt.Errorf("missing public key for %s", kind)
	}
	return hex.DecodeString(key)
}

func printEncoded(w io.Writer, addr bitcoin.Address, raw bool) error {
	address, err := addr.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "address:\t%s\n", address)
	if raw {
		fmt.Fprintf(w, "raw:\t\t%x\n", bitcoin.MarshalAddress(addr))
	}
	return nil
}

func generateCmd(c *cli.Context) error {
	res, err := rpc.Generate(c.String("node"), &rpc.GenerateRequest{
		AddressType: c.String("type"),
		Network:     c.String("network"),
		Script:      c.String("script"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("address:\t%s\n", res.Address)
	fmt.Printf("public key:\t%s\n", res.PublicKey)
	return nil
}

func parseKindAndNetwork(kind, network string) (bitcoin.Kind, bitcoin.Network, error) {
	k, err := bitcoin.ParseKind(kind)
	if err != nil {
		return k, bitcoin.Mainnet, err
	}
	n, err := bitcoin.ParseNetwork(network)
	return k, n, err
}
