// Package config defines the runtime configuration for the µRaiden channel SDK.
//
// A Config carries everything needed to construct the chain client and the
// channel manager proxy: the target network, the RPC endpoint, the signing
// key, the channel manager contract address, the fixed gas policy, and the
// per-operation timeouts.
//
// # Loading
//
// Build a Config directly:
//
//	cfg := &config.Config{
//		RPCAddr:            "wss://sepolia.example/ws",
//		PrivateKey:         "YOUR_PRIVATE_KEY",
//		ChannelManagerAddr: "0x...",
//	}
//
// or load it from a file plus URAIDEN_* environment variables:
//
//	cfg, err := config.Load("config.yaml")
//
// # Defaults
//
// Validate defaults the network to Sepolia, the gas price to 20 gwei and the
// gas limit to 130000. Timeouts.WithDefaults fills the remaining zero values;
// the event-wait defaults (20s budget, 3s retry interval) match the polling
// cadence of the blocking event waiters in pkg/blockchain.
//
// Gas price and limit are deliberately static configuration: this SDK submits
// them as-is and implements no estimation policy.
package config
