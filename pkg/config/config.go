// Package config defines the runtime configuration for the SDK, including
// Ethereum network settings, RPC endpoint, channel manager contract address,
// gas policy, and operation timeouts. It also provides validation and
// defaulting helpers plus a viper-based loader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all SDK settings required to initialize the chain client and
// the channel manager proxies. Use Validate to fill implicit defaults and to
// check for required fields.
type Config struct {
	// Network selects the target chain (chain ID and human-readable name).
	Network Network `json:"network" yaml:"network"`
	// RPCAddr is the Ethereum RPC/WS endpoint URL (required).
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// PrivateKey is the hex-encoded ECDSA private key used for transaction
	// signing and balance proofs (optional for read-only operations).
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// ChannelManagerAddr is the address of the channel manager contract (required).
	ChannelManagerAddr string `json:"channel_manager_addr" yaml:"channel_manager_addr"`
	// GasPriceWei is the fixed gas price attached to built transactions.
	// Default: 20 gwei. Gas price estimation is out of scope for this SDK.
	GasPriceWei int64 `json:"gas_price_wei" yaml:"gas_price_wei"`
	// GasLimit is the fixed gas limit attached to built transactions.
	// Default: 130000, enough for every channel manager entry point.
	GasLimit uint64 `json:"gas_limit" yaml:"gas_limit"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Network describes a blockchain network (chain ID and name). ChainID is used
// for EIP-155 signing; Name is informational.
type Network struct {
	ChainID string `json:"chain_id"`
	Name    string `json:"network_name"`
}

// Sepolia is a predefined Network for Ethereum Sepolia testnet.
var Sepolia = Network{
	ChainID: "11155111",
	Name:    "sepolia",
}

// Main is a predefined Network for Ethereum mainnet.
var Main = Network{
	ChainID: "1",
	Name:    "main",
}

const (
	defaultGasPriceWei = 20_000_000_000 // 20 gwei
	defaultGasLimit    = 130_000
)

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial          time.Duration // web3 dial/connect
	ChainRead     time.Duration // eth_call, nonce, logs
	ChainSubmit   time.Duration // send tx
	EventWait     time.Duration // total budget of a blocking event wait
	RetryInterval time.Duration // pause between event wait polls
}

// Validate normalizes the configuration by applying implicit defaults for
// Network (defaults to Sepolia), gas price and gas limit, and verifies that
// RPCAddr and ChannelManagerAddr are provided.
func (c *Config) Validate() error {

	if c.Network.ChainID == "" {
		c.Network = Sepolia
	}

	if c.GasPriceWei == 0 {
		c.GasPriceWei = defaultGasPriceWei
	}

	if c.GasLimit == 0 {
		c.GasLimit = defaultGasLimit
	}

	if c.RPCAddr == "" {
		return errors.New("RPC address is required")
	}

	if c.ChannelManagerAddr == "" {
		return errors.New("channel manager address is required")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:          5s
//	ChainRead:     12s
//	ChainSubmit:   25s
//	EventWait:     20s
//	RetryInterval: 3s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.EventWait == 0 {
		tt.EventWait = 20 * time.Second
	}
	if tt.RetryInterval == 0 {
		tt.RetryInterval = 3 * time.Second
	}
	return tt
}

// Load reads configuration from the given file (optional) merged with
// URAIDEN_-prefixed environment variables. Values from the environment take
// precedence over the file. The returned config is not validated; callers
// should run Validate (NewSDK does this).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("URAIDEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("gas_price_wei", int64(defaultGasPriceWei))
	v.SetDefault("gas_limit", uint64(defaultGasLimit))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Network: Network{
			ChainID: v.GetString("network.chain_id"),
			Name:    v.GetString("network.network_name"),
		},
		RPCAddr:            v.GetString("rpc_addr"),
		PrivateKey:         v.GetString("private_key"),
		ChannelManagerAddr: v.GetString("channel_manager_addr"),
		GasPriceWei:        v.GetInt64("gas_price_wei"),
		GasLimit:           v.GetUint64("gas_limit"),
		Debug:              v.GetBool("debug"),
		Timeouts: Timeouts{
			Dial:          v.GetDuration("timeouts.dial"),
			ChainRead:     v.GetDuration("timeouts.chain_read"),
			ChainSubmit:   v.GetDuration("timeouts.chain_submit"),
			EventWait:     v.GetDuration("timeouts.event_wait"),
			RetryInterval: v.GetDuration("timeouts.retry_interval"),
		},
	}

	return cfg, nil
}
