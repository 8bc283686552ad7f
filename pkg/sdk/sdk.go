// Package sdk exposes the high-level entry point: it validates configuration,
// dials the chain and wires the channel manager proxy.
package sdk

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/microraiden/channel-sdk-go/pkg/blockchain"
	"github.com/microraiden/channel-sdk-go/pkg/config"
	"go.uber.org/zap"
)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation. It holds the dialed chain client,
// the channel manager proxy and the runtime configuration.
type Core struct {
	client *blockchain.ChainClient
	proxy  *blockchain.ChannelProxy
	*config.Config
	prvKey *ecdsa.PrivateKey
}

// NewSDK initializes the SDK with validated configuration and a connected
// chain client. It applies default timeout values, dials the endpoint and
// constructs the channel proxy over the configured channel manager address.
// A missing private key is tolerated: read-only operations keep working and
// transaction building reports the absence when attempted.
func NewSDK(ctx context.Context, cfg *config.Config) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		zap.L().Error("Invalid config", zap.Error(err))
		return nil, err
	}

	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Dial)
	defer cancel()

	client, err := blockchain.Dial(dialCtx, cfg.RPCAddr)
	if err != nil {
		zap.L().Error("Init ethereum client failed", zap.Error(err))
		return nil, err
	}

	var prvKey *ecdsa.PrivateKey
	if cfg.PrivateKey != "" {
		address, key, err := blockchain.ParsePrivateKeyECDSA(cfg.PrivateKey)
		if err != nil {
			zap.L().Warn("transaction building disabled: private key parsing failed", zap.Error(err))
		} else {
			prvKey = key
			if cfg.Debug {
				zap.L().Debug("signer address", zap.String("addr", address.Hex()))
			}
		}
	}

	proxy, err := blockchain.NewChannelProxy(
		client,
		client.ChainID(),
		prvKey,
		common.HexToAddress(cfg.ChannelManagerAddr),
		big.NewInt(cfg.GasPriceWei),
		cfg.GasLimit,
	)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &Core{
		client: client,
		proxy:  proxy,
		Config: cfg,
		prvKey: prvKey,
	}, nil
}

// Channels returns the channel manager proxy.
func (c *Core) Channels() *blockchain.ChannelProxy {
	return c.proxy
}

// Chain returns the underlying chain client for advanced operations.
func (c *Core) Chain() *blockchain.ChainClient {
	return c.client
}

// WaitOpts returns the polling cadence from the configured timeouts.
func (c *Core) WaitOpts() blockchain.WaitOpts {
	return blockchain.WaitOpts{
		Interval: c.Timeouts.RetryInterval,
		Timeout:  c.Timeouts.EventWait,
	}
}

// Close releases the chain connection.
func (c *Core) Close() {
	c.client.Close()
}
