package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

func TestAwaitEventZeroTimeoutPollsOnce(t *testing.T) {
	transport := &fakeTransport{}
	proxy := newTestProxy(t, transport, nil)

	start := time.Now()
	lg, err := proxy.AwaitEvent(context.Background(), EventChannelCreated, Block(0), Pending, nil, nil,
		WaitOpts{Interval: 50 * time.Millisecond, Timeout: 0})
	if err != nil {
		t.Fatalf("AwaitEvent: %v", err)
	}
	if lg != nil {
		t.Fatalf("expected absent result, got %+v", lg)
	}
	if transport.filterCalls != 1 {
		t.Fatalf("performed %d polls, want exactly 1", transport.filterCalls)
	}
	if elapsed := time.Since(start); elapsed >= 50*time.Millisecond {
		t.Fatalf("zero timeout slept for %s", elapsed)
	}
}

func TestAwaitEventPollCountUpperBound(t *testing.T) {
	transport := &fakeTransport{}
	proxy := newTestProxy(t, transport, nil)

	lg, err := proxy.AwaitEvent(context.Background(), EventChannelCreated, Block(0), Pending, nil, nil,
		WaitOpts{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("AwaitEvent: %v", err)
	}
	if lg != nil {
		t.Fatalf("expected absent result, got %+v", lg)
	}
	// floor(20/5) + 1 polls.
	if transport.filterCalls != 5 {
		t.Fatalf("performed %d polls, want 5", transport.filterCalls)
	}
}

func TestAwaitEventReturnsFirstMatchImmediately(t *testing.T) {
	transport := &fakeTransport{
		logs: []types.Log{
			channelCreatedLog(t, testABI(t), testSender, testReceiver, big.NewInt(1), 10),
			channelCreatedLog(t, testABI(t), testSender, testReceiver, big.NewInt(2), 11),
		},
	}
	proxy := newTestProxy(t, transport, nil)

	lg, err := proxy.AwaitEvent(context.Background(), EventChannelCreated, Block(0), Pending, nil, nil,
		WaitOpts{Interval: time.Millisecond, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("AwaitEvent: %v", err)
	}
	if lg == nil {
		t.Fatal("expected a match")
	}
	if transport.filterCalls != 1 {
		t.Fatalf("performed %d polls, want 1", transport.filterCalls)
	}
	if lg.Raw.BlockNumber != 10 {
		t.Fatalf("returned entry at block %d, want the first entry (10)", lg.Raw.BlockNumber)
	}
}

func TestAwaitEventPredicateFilters(t *testing.T) {
	transport := &fakeTransport{
		logs: []types.Log{
			channelCreatedLog(t, testABI(t), testSender, testReceiver, big.NewInt(1), 10),
			channelCreatedLog(t, testABI(t), testSender, testReceiver, big.NewInt(2), 11),
		},
	}
	proxy := newTestProxy(t, transport, nil)

	wantTwo := func(lg *Log) bool {
		return lg.Args["_deposit"].(*big.Int).Cmp(big.NewInt(2)) == 0
	}
	lg, err := proxy.AwaitEvent(context.Background(), EventChannelCreated, Block(0), Pending, nil, wantTwo,
		WaitOpts{Interval: time.Millisecond, Timeout: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("AwaitEvent: %v", err)
	}
	if lg == nil || lg.Raw.BlockNumber != 11 {
		t.Fatalf("predicate selected %+v, want the block 11 entry", lg)
	}
}

func TestAwaitEventUnknownEventFailsBeforePolling(t *testing.T) {
	transport := &fakeTransport{}
	proxy := newTestProxy(t, transport, nil)

	_, err := proxy.AwaitEvent(context.Background(), "NoSuchEvent", Block(0), Pending, nil, nil, DefaultWaitOpts())
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if transport.filterCalls != 0 {
		t.Fatalf("log fetch performed for unknown event")
	}
}

func TestAwaitEventTransportErrorAbortsLoop(t *testing.T) {
	want := errors.New("node down")
	transport := &fakeTransport{logsErr: want}
	proxy := newTestProxy(t, transport, nil)

	_, err := proxy.AwaitEvent(context.Background(), EventChannelCreated, Block(0), Pending, nil, nil,
		WaitOpts{Interval: time.Millisecond, Timeout: time.Second})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v unchanged, got %v", want, err)
	}
	if transport.filterCalls != 1 {
		t.Fatalf("performed %d polls after failure, want 1", transport.filterCalls)
	}
}

func TestAwaitEventContextCancellation(t *testing.T) {
	transport := &fakeTransport{}
	proxy := newTestProxy(t, transport, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := proxy.AwaitEvent(ctx, EventChannelCreated, Block(0), Pending, nil, nil,
		WaitOpts{Interval: 100 * time.Millisecond, Timeout: time.Second})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}
