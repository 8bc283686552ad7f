// Package blockchain provides the client-side proxy for the µRaiden channel
// manager contract: deterministic signed-transaction assembly, event log
// queries with decoded arguments, and bounded blocking waits for channel
// events.
package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ChainTransport captures the subset of ethclient.Client the proxies consume.
// It exists so tests and alternative transports can stand in for a real node.
type ChainTransport interface {
	// NonceAt returns the account nonce at the given block (nil = latest).
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	// FilterLogs executes one eth_getLogs request for the given query.
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	// CallContract executes an eth_call at the given block (nil = latest).
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	// BlockNumber returns the number of the most recent block.
	BlockNumber(ctx context.Context) (uint64, error)
}

// ChainClient holds a connected ethclient.Client together with the chain ID
// fetched at dial time. It satisfies ChainTransport through the embedded client.
type ChainClient struct {
	*ethclient.Client

	chainID *big.Int
}

// Dial connects to an Ethereum endpoint and fetches the chain ID used for
// EIP-155 signing. The context bounds both the dial and the chain ID read.
func Dial(ctx context.Context, endpoint string) (*ChainClient, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		zap.L().Error("Failed to dial Ethereum endpoint", zap.Error(err))
		return nil, err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		zap.L().Error("Failed to get chain ID", zap.Error(err))
		client.Close()
		return nil, err
	}

	return &ChainClient{Client: client, chainID: chainID}, nil
}

// ChainID returns the chain ID fetched at dial time.
func (c *ChainClient) ChainID() *big.Int {
	return c.chainID
}

// CurrentBlockNumber returns the latest block number.
func (c *ChainClient) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.Client.BlockNumber(ctx)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return 0, err
	}
	return n, nil
}

// Close releases the underlying RPC connection.
func (c *ChainClient) Close() {
	if c.Client != nil {
		c.Client.Close()
	}
}
