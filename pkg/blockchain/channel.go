package blockchain

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ChannelInfo is a read-only snapshot of one channel's on-chain record as
// returned by getChannelInfo.
type ChannelInfo struct {
	Key            [32]byte
	Deposit        *big.Int
	ClosingBalance *big.Int
	SettleTimeout  uint32
}

// ChannelProxy is the channel manager flavored view of ContractProxy: every
// operation pre-binds an event name and its filter shape, so callers deal in
// senders, receivers and opening blocks rather than raw filter maps.
type ChannelProxy struct {
	*ContractProxy
}

// NewChannelProxy builds a ChannelProxy over the embedded channel manager ABI.
func NewChannelProxy(transport ChainTransport, chainID *big.Int, key *ecdsa.PrivateKey,
	contractAddress common.Address, gasPrice *big.Int, gasLimit uint64) (*ChannelProxy, error) {

	proxy, err := NewContractProxy(transport, chainID, key, contractAddress, ChannelManagerABI, gasPrice, gasLimit)
	if err != nil {
		return nil, err
	}
	return &ChannelProxy{ContractProxy: proxy}, nil
}

// ChannelCreatedLogs returns decoded ChannelCreated logs within [from, to].
func (p *ChannelProxy) ChannelCreatedLogs(ctx context.Context, from, to BlockNumber, filters map[string]any) ([]Log, error) {
	return p.GetLogs(ctx, EventChannelCreated, from, to, filters)
}

// ChannelToppedUpLogs returns decoded ChannelToppedUp logs within [from, to].
func (p *ChannelProxy) ChannelToppedUpLogs(ctx context.Context, from, to BlockNumber, filters map[string]any) ([]Log, error) {
	return p.GetLogs(ctx, EventChannelToppedUp, from, to, filters)
}

// ChannelCloseRequestedLogs returns decoded ChannelCloseRequested logs within [from, to].
func (p *ChannelProxy) ChannelCloseRequestedLogs(ctx context.Context, from, to BlockNumber, filters map[string]any) ([]Log, error) {
	return p.GetLogs(ctx, EventChannelCloseRequested, from, to, filters)
}

// ChannelSettledLogs returns decoded ChannelSettled logs within [from, to].
func (p *ChannelProxy) ChannelSettledLogs(ctx context.Context, from, to BlockNumber, filters map[string]any) ([]Log, error) {
	return p.GetLogs(ctx, EventChannelSettled, from, to, filters)
}

// AwaitChannelCreated blocks until a ChannelCreated event for the given
// sender/receiver pair appears, or the wait budget runs out (nil, nil).
func (p *ChannelProxy) AwaitChannelCreated(ctx context.Context, sender, receiver common.Address,
	from, to BlockNumber, opts WaitOpts) (*Log, error) {

	filters := map[string]any{
		"_sender":   sender,
		"_receiver": receiver,
	}
	return p.AwaitEvent(ctx, EventChannelCreated, from, to, filters, nil, opts)
}

// AwaitChannelToppedUp blocks until a ChannelToppedUp event for the channel
// (sender, receiver, openingBlock) records exactly the given total deposit
// and added amount. Both amounts must match the on-chain values; this is an
// equality check, not a threshold.
func (p *ChannelProxy) AwaitChannelToppedUp(ctx context.Context, sender, receiver common.Address,
	openingBlock uint32, deposit, topup *big.Int, from, to BlockNumber, opts WaitOpts) (*Log, error) {

	filters := map[string]any{
		"_sender":            sender,
		"_receiver":          receiver,
		"_open_block_number": openingBlock,
	}
	condition := func(lg *Log) bool {
		gotDeposit, ok := lg.Args["_deposit"].(*big.Int)
		if !ok {
			return false
		}
		gotAdded, ok := lg.Args["_added_deposit"].(*big.Int)
		if !ok {
			return false
		}
		return gotDeposit.Cmp(deposit) == 0 && gotAdded.Cmp(topup) == 0
	}
	return p.AwaitEvent(ctx, EventChannelToppedUp, from, to, filters, condition, opts)
}

// AwaitChannelCloseRequested blocks until a ChannelCloseRequested event for
// the channel (sender, receiver, openingBlock) appears.
func (p *ChannelProxy) AwaitChannelCloseRequested(ctx context.Context, sender, receiver common.Address,
	openingBlock uint32, from, to BlockNumber, opts WaitOpts) (*Log, error) {

	filters := map[string]any{
		"_sender":            sender,
		"_receiver":          receiver,
		"_open_block_number": openingBlock,
	}
	return p.AwaitEvent(ctx, EventChannelCloseRequested, from, to, filters, nil, opts)
}

// AwaitChannelSettled blocks until a ChannelSettled event for the channel
// (sender, receiver, openingBlock) appears.
func (p *ChannelProxy) AwaitChannelSettled(ctx context.Context, sender, receiver common.Address,
	openingBlock uint32, from, to BlockNumber, opts WaitOpts) (*Log, error) {

	filters := map[string]any{
		"_sender":            sender,
		"_receiver":          receiver,
		"_open_block_number": openingBlock,
	}
	return p.AwaitEvent(ctx, EventChannelSettled, from, to, filters, nil, opts)
}

// ChannelInfo reads the on-chain record for the channel (sender, receiver,
// openingBlock). It returns (nil, false, nil) when the channel does not
// exist — the contract answers such reads with empty output, which is a
// normal condition here, not an error. Every other call failure propagates.
func (p *ChannelProxy) ChannelInfo(ctx context.Context, sender, receiver common.Address, openingBlock uint32) (*ChannelInfo, bool, error) {
	data, err := p.abi.Pack("getChannelInfo", sender, receiver, openingBlock)
	if err != nil {
		return nil, false, err
	}

	output, err := p.transport.CallContract(ctx, ethereum.CallMsg{
		To:   &p.contractAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, false, err
	}
	if len(output) == 0 {
		// Read on a channel that was never created.
		return nil, false, nil
	}

	vals, err := p.abi.Unpack("getChannelInfo", output)
	if err != nil {
		return nil, false, err
	}

	info := &ChannelInfo{
		Key:            vals[0].([32]byte),
		Deposit:        vals[1].(*big.Int),
		ClosingBalance: vals[2].(*big.Int),
		SettleTimeout:  vals[3].(uint32),
	}
	zap.L().Debug("Channel info from blockchain", zap.Any("channel", info))
	return info, true, nil
}

// SettleTimeout returns the settle timeout of the channel (sender, receiver,
// openingBlock), or ok == false when the channel does not exist.
func (p *ChannelProxy) SettleTimeout(ctx context.Context, sender, receiver common.Address, openingBlock uint32) (uint32, bool, error) {
	info, ok, err := p.ChannelInfo(ctx, sender, receiver, openingBlock)
	if err != nil || !ok {
		return 0, false, err
	}
	return info.SettleTimeout, true, nil
}
