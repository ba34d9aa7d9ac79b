package main

import (
	"fmt"
	"os"

	"github.com/MixinNetwork/btcaddr/config"
	"github.com/urfave/cli/v2"
)

func main() {
	defaultRPC := os.Getenv("BTCADDR_RPC")
	if defaultRPC == "" {
		defaultRPC = "http://127.0.0.1:8080"
	}

	app := cli.NewApp()
	app.Name = "btcaddr"
	app.Usage = "Generate and encode bitcoin P2PKH, P2SH, P2WPKH and P2WSH addresses."
	app.Version = config.BuildVersion
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Start the address generation HTTP service",
			Action:  serverCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "config",
					Aliases: []string{"c"},
					Value:   "config.toml",
					Usage:   "the TOML configuration file",
				},
			},
		},
		{
			Name:   "createaddress",
			Usage:  "Create a new key pair and its address",
			Action: createAddressCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Value: "p2wpkh",
					Usage: "the address type, p2pkh, p2sh, p2wpkh or p2wsh",
				},
				&cli.StringFlag{
					Name:  "network",
					Value: "mainnet",
					Usage: "the network, mainnet or testnet",
				},
				&cli.StringFlag{
					Name:  "script",
					Usage: "the comma separated script `HEX` for p2sh and p2wsh",
				},
			},
		},
		{
			Name:   "encodeaddress",
			Usage:  "Encode the address of a public key or a script",
			Action: encodeAddressCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Value: "p2wpkh",
					Usage: "the address type, p2pkh, p2sh, p2wpkh or p2wsh",
				},
				&cli.StringFlag{
					Name:  "network",
					Value: "mainnet",
					Usage: "the network, mainnet or testnet",
				},
				&cli.StringFlag{
					Name:  "key",
					Usage: "the public key `HEX` for p2pkh and p2wpkh",
				},
				&cli.StringFlag{
					Name:  "script",
					Usage: "the comma separated script `HEX` for p2sh and p2wsh",
				},
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "also print the msgpack encoded address payload",
				},
			},
		},
		{
			Name:   "generate",
			Usage:  "Request a new address from a running service",
			Action: generateCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "node",
					Aliases: []string{"n"},
					Value:   defaultRPC,
					Usage:   "the service endpoint, and the default value is read from environment variable BTCADDR_RPC",
				},
				&cli.StringFlag{
					Name:  "type",
					Value: "p2wpkh",
					Usage: "the address type, p2pkh, p2sh, p2wpkh or p2wsh",
				},
				&cli.StringFlag{
					Name:  "network",
					Usage: "the network, mainnet or testnet, the service default if empty",
				},
				&cli.StringFlag{
					Name:  "script",
					Usage: "the comma separated script `HEX` for p2sh and p2wsh",
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
