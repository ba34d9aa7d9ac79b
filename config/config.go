package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
)

const (
	BuildVersion = "v0.1.0-BUILD_VERSION"

	DefaultNetwork  = "mainnet"
	DefaultRPCHost  = "127.0.0.1"
	DefaultRPCPort  = 8080
	DefaultLogLevel = 2
)

type Custom struct {
	Service struct {
		Network string `toml:"network"`
	} `toml:"service"`
	RPC struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	} `toml:"rpc"`
	Log struct {
		Level   int    `toml:"level"`
		Filter  string `toml:"filter"`
		Limiter int    `toml:"limiter"`
	} `toml:"log"`
}

func Initialize(file string) (*Custom, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

func Parse(data []byte) (*Custom, error) {
	var config Custom
	err := toml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.Service.Network = strings.ToLower(strings.TrimSpace(config.Service.Network))
	switch config.Service.Network {
	case "":
		config.Service.Network = DefaultNetwork
	case "mainnet", "testnet":
	default:
		return nil, fmt.Errorf("invalid service network %s", config.Service.Network)
	}
	if config.RPC.Host == "" {
		config.RPC.Host = DefaultRPCHost
	}
	if config.RPC.Port == 0 {
		config.RPC.Port = DefaultRPCPort
	}
	if config.RPC.Port < 0 || config.RPC.Port > 65535 {
		return nil, fmt.Errorf("invalid rpc port %d", config.RPC.Port)
	}
	if config.Log.Level == 0 {
		config.Log.Level = DefaultLogLevel
	}
	return &config, nil
}

func (c *Custom) Listen() string {
	return fmt.Sprintf("%s:%d", c.RPC.Host, c.RPC.Port)
}
