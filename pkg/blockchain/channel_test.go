package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

func fastWaitOpts() WaitOpts {
	return WaitOpts{Interval: time.Millisecond, Timeout: 5 * time.Millisecond}
}

func TestAwaitChannelCreatedFirstPoll(t *testing.T) {
	transport := &fakeTransport{
		logs: []types.Log{
			channelCreatedLog(t, testABI(t), testSender, testReceiver, big.NewInt(100), 10),
		},
	}
	proxy := newTestProxy(t, transport, nil)

	lg, err := proxy.AwaitChannelCreated(context.Background(), testSender, testReceiver,
		Block(0), Pending, WaitOpts{Interval: time.Second, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("AwaitChannelCreated: %v", err)
	}
	if lg == nil || lg.Raw.BlockNumber != 10 {
		t.Fatalf("got %+v, want the block 10 log", lg)
	}
	if transport.filterCalls != 1 {
		t.Fatalf("performed %d polls, want 1", transport.filterCalls)
	}

	// The pre-bound filters constrain sender and receiver topics.
	q := transport.lastQuery
	if len(q.Topics) != 3 {
		t.Fatalf("topics has %d positions, want 3", len(q.Topics))
	}
}

func TestAwaitChannelToppedUpExactMatch(t *testing.T) {
	transport := &fakeTransport{
		logs: []types.Log{
			channelToppedUpLog(t, testABI(t), testSender, testReceiver, 8, big.NewInt(50), big.NewInt(100), 12),
		},
	}
	proxy := newTestProxy(t, transport, nil)

	lg, err := proxy.AwaitChannelToppedUp(context.Background(), testSender, testReceiver, 8,
		big.NewInt(100), big.NewInt(50), Block(0), Pending, fastWaitOpts())
	if err != nil {
		t.Fatalf("AwaitChannelToppedUp: %v", err)
	}
	if lg == nil {
		t.Fatal("expected a match for deposit=100 topup=50")
	}
	if got := lg.Args["_open_block_number"].(uint32); got != 8 {
		t.Fatalf("_open_block_number = %d, want 8", got)
	}
}

func TestAwaitChannelToppedUpMismatchTimesOut(t *testing.T) {
	transport := &fakeTransport{
		logs: []types.Log{
			channelToppedUpLog(t, testABI(t), testSender, testReceiver, 8, big.NewInt(50), big.NewInt(100), 12),
		},
	}
	proxy := newTestProxy(t, transport, nil)

	lg, err := proxy.AwaitChannelToppedUp(context.Background(), testSender, testReceiver, 8,
		big.NewInt(100), big.NewInt(40), Block(0), Pending, fastWaitOpts())
	if err != nil {
		t.Fatalf("AwaitChannelToppedUp: %v", err)
	}
	if lg != nil {
		t.Fatalf("topup=40 must not match the recorded topup=50, got %+v", lg)
	}
	// floor(5/1) + 1 polls before giving up.
	if transport.filterCalls != 6 {
		t.Fatalf("performed %d polls, want 6", transport.filterCalls)
	}
}

func TestSettleTimeoutExistingChannel(t *testing.T) {
	contractABI := testABI(t)
	output, err := contractABI.Methods["getChannelInfo"].Outputs.Pack(
		[32]byte{0xde, 0xad}, big.NewInt(100), big.NewInt(0), uint32(500))
	if err != nil {
		t.Fatalf("pack getChannelInfo output: %v", err)
	}

	transport := &fakeTransport{callOutput: output}
	proxy := newTestProxy(t, transport, nil)

	settle, ok, err := proxy.SettleTimeout(context.Background(), testSender, testReceiver, 8)
	if err != nil {
		t.Fatalf("SettleTimeout: %v", err)
	}
	if !ok {
		t.Fatal("expected channel to be found")
	}
	if settle != 500 {
		t.Fatalf("settle timeout = %d, want 500", settle)
	}
}

func TestSettleTimeoutMissingChannelIsAbsentNotError(t *testing.T) {
	transport := &fakeTransport{callOutput: nil}
	proxy := newTestProxy(t, transport, nil)

	settle, ok, err := proxy.SettleTimeout(context.Background(), testSender, testReceiver, 8)
	if err != nil {
		t.Fatalf("missing channel must not be an error, got %v", err)
	}
	if ok {
		t.Fatal("expected ok == false for a channel that was never created")
	}
	if settle != 0 {
		t.Fatalf("settle timeout = %d, want zero value", settle)
	}
}

func TestSettleTimeoutCallErrorPropagates(t *testing.T) {
	want := errors.New("execution reverted")
	transport := &fakeTransport{callErr: want}
	proxy := newTestProxy(t, transport, nil)

	_, _, err := proxy.SettleTimeout(context.Background(), testSender, testReceiver, 8)
	if !errors.Is(err, want) {
		t.Fatalf("expected %v unchanged, got %v", want, err)
	}
}

func TestChannelInfoFields(t *testing.T) {
	contractABI := testABI(t)
	key := [32]byte{1, 2, 3}
	output, err := contractABI.Methods["getChannelInfo"].Outputs.Pack(
		key, big.NewInt(250), big.NewInt(70), uint32(1000))
	if err != nil {
		t.Fatalf("pack getChannelInfo output: %v", err)
	}

	proxy := newTestProxy(t, &fakeTransport{callOutput: output}, nil)

	info, ok, err := proxy.ChannelInfo(context.Background(), testSender, testReceiver, 8)
	if err != nil || !ok {
		t.Fatalf("ChannelInfo: ok=%v err=%v", ok, err)
	}
	if info.Key != key {
		t.Fatalf("key = %x, want %x", info.Key, key)
	}
	if info.Deposit.Cmp(big.NewInt(250)) != 0 {
		t.Fatalf("deposit = %s, want 250", info.Deposit)
	}
	if info.ClosingBalance.Cmp(big.NewInt(70)) != 0 {
		t.Fatalf("closing balance = %s, want 70", info.ClosingBalance)
	}
	if info.SettleTimeout != 1000 {
		t.Fatalf("settle timeout = %d, want 1000", info.SettleTimeout)
	}
}
