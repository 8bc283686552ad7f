package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Configuration errors surfaced before any network call is made.
var (
	// ErrUnknownEvent means the requested event name is not declared in the
	// contract ABI.
	ErrUnknownEvent = errors.New("event not found in contract ABI")
	// ErrAmbiguousEvent means the contract ABI declares the same event name
	// more than once; the proxy refuses to guess which entry is meant.
	ErrAmbiguousEvent = errors.New("event declared more than once in contract ABI")
	// ErrUnknownFunction means the requested function name is not declared in
	// the contract ABI.
	ErrUnknownFunction = errors.New("function not found in contract ABI")
)

const (
	// DefaultRetryInterval is the pause between poll cycles of AwaitEvent.
	DefaultRetryInterval = 3 * time.Second
	// DefaultTimeout is the total wait budget of AwaitEvent.
	DefaultTimeout = 20 * time.Second
)

// WaitOpts bounds one blocking event wait. A zero Timeout is meaningful: it
// yields exactly one poll. A non-positive Interval falls back to
// DefaultRetryInterval.
type WaitOpts struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultWaitOpts returns the stock polling cadence (3s interval, 20s budget).
func DefaultWaitOpts() WaitOpts {
	return WaitOpts{Interval: DefaultRetryInterval, Timeout: DefaultTimeout}
}

// ContractProxy mediates all interaction with one on-chain contract: it
// assembles and signs transactions, queries event logs with decoded
// arguments, and blocks on event appearance with a bounded poll loop.
//
// A proxy is immutable after construction and safe for concurrent use. It
// holds no state between calls; concurrent BuildTransaction callers must
// disambiguate nonces themselves via the nonce offset.
type ContractProxy struct {
	transport       ChainTransport
	key             *ecdsa.PrivateKey
	callerAddress   common.Address
	contractAddress common.Address
	abi             abi.ABI
	events          map[string]*eventDecoder
	signer          types.Signer
	gasPrice        *big.Int
	gasLimit        uint64
}

// NewContractProxy parses the contract ABI, resolves the event decoder table
// and derives the caller address from the private key. The key may be nil for
// read-only use; BuildTransaction then refuses to run. An ABI declaring the
// same event name twice is rejected here rather than at query time.
func NewContractProxy(transport ChainTransport, chainID *big.Int, key *ecdsa.PrivateKey,
	contractAddress common.Address, abiJSON string, gasPrice *big.Int, gasLimit uint64) (*ContractProxy, error) {

	if transport == nil {
		return nil, errors.New("chain transport is required")
	}
	if chainID == nil {
		return nil, errors.New("chain ID is required")
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse contract ABI: %w", err)
	}

	events, err := newEventTable(parsed)
	if err != nil {
		return nil, err
	}

	if gasPrice == nil {
		gasPrice = new(big.Int)
	}

	p := &ContractProxy{
		transport:       transport,
		key:             key,
		contractAddress: contractAddress,
		abi:             parsed,
		events:          events,
		signer:          types.NewEIP155Signer(chainID),
		gasPrice:        new(big.Int).Set(gasPrice),
		gasLimit:        gasLimit,
	}
	if key != nil {
		p.callerAddress = crypto.PubkeyToAddress(key.PublicKey)
	}
	return p, nil
}

// CallerAddress returns the address derived from the signing key, or the zero
// address when the proxy was constructed without a key.
func (p *ContractProxy) CallerAddress() common.Address {
	return p.callerAddress
}

// ContractAddress returns the address of the proxied contract.
func (p *ContractProxy) ContractAddress() common.Address {
	return p.contractAddress
}

// BuildTransaction assembles and signs a contract call, returning the
// hex-encoded RLP of the signed transaction ready for eth_sendRawTransaction.
// The nonce is the caller's current transaction count plus nonceOffset;
// offsets let callers pre-build transactions for future nonces without
// re-querying. The builder does not broadcast and does not retry; nonce
// lookup failures propagate unchanged.
func (p *ContractProxy) BuildTransaction(ctx context.Context, functionName string, args []any, nonceOffset uint64) (string, error) {
	if p.key == nil {
		return "", errors.New("private key is required for transactions")
	}
	if _, ok := p.abi.Methods[functionName]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFunction, functionName)
	}

	data, err := p.abi.Pack(functionName, args...)
	if err != nil {
		return "", fmt.Errorf("encode %s call: %w", functionName, err)
	}

	nonce, err := p.transport.NonceAt(ctx, p.callerAddress, nil)
	if err != nil {
		return "", err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce + nonceOffset,
		GasPrice: new(big.Int).Set(p.gasPrice),
		Gas:      p.gasLimit,
		To:       &p.contractAddress,
		Value:    new(big.Int),
		Data:     data,
	})

	signed, err := types.SignTx(tx, p.signer, p.key)
	if err != nil {
		return "", err
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return "", err
	}

	zap.L().Debug("Built transaction",
		zap.String("function", functionName),
		zap.Uint64("nonce", nonce+nonceOffset),
		zap.String("hash", signed.Hash().Hex()))

	return hexutil.Encode(raw), nil
}

// GetLogs returns all logs of the named event emitted by the contract within
// [from, to], decoded against the event ABI. filters constrains indexed
// arguments by name; absent arguments are wildcards and keys that do not name
// an indexed argument are ignored. The whole range is covered by a single
// eth_getLogs request and entries keep the transport's order.
func (p *ContractProxy) GetLogs(ctx context.Context, eventName string, from, to BlockNumber, filters map[string]any) ([]Log, error) {
	dec, ok := p.events[eventName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName)
	}

	topics, err := dec.topics(filters)
	if err != nil {
		return nil, err
	}

	raw, err := p.transport.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: from.arg(),
		ToBlock:   to.arg(),
		Addresses: []common.Address{p.contractAddress},
		Topics:    topics,
	})
	if err != nil {
		return nil, err
	}

	logs := make([]Log, 0, len(raw))
	for _, lg := range raw {
		decoded, err := dec.decode(p.abi, lg)
		if err != nil {
			return nil, err
		}
		logs = append(logs, decoded)
	}
	return logs, nil
}

// AwaitEvent polls GetLogs until an entry passes condition or the wait budget
// is exhausted. A nil condition accepts any entry; the first match in
// transport order is returned. On timeout it returns (nil, nil) — an expected
// outcome, not an error.
//
// Each cycle re-queries the full block range; no cursor is carried between
// polls, so a match is returned at most once and newly appeared entries are
// picked up on the next cycle. The loop runs while elapsed < timeout +
// interval and sleeps only while elapsed < timeout: even a zero timeout
// performs exactly one poll, and the final cycle still polls before giving
// up. The context bounds the sleep between cycles; cancellation surfaces as
// ctx.Err().
func (p *ContractProxy) AwaitEvent(ctx context.Context, eventName string, from, to BlockNumber,
	filters map[string]any, condition func(*Log) bool, opts WaitOpts) (*Log, error) {

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	timeout := opts.Timeout
	if timeout < 0 {
		timeout = 0
	}

	for elapsed := time.Duration(0); elapsed < timeout+interval; elapsed += interval {
		logs, err := p.GetLogs(ctx, eventName, from, to, filters)
		if err != nil {
			return nil, err
		}
		for i := range logs {
			if condition == nil || condition(&logs[i]) {
				zap.L().Debug("Matched event",
					zap.String("event", eventName),
					zap.Uint64("block", logs[i].Raw.BlockNumber))
				return &logs[i], nil
			}
		}
		if elapsed < timeout {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	zap.L().Debug("Event wait timed out", zap.String("event", eventName))
	return nil, nil
}
