// Package blockchain implements the client-side proxy for the µRaiden
// channel manager contract.
//
// # Architecture
//
// Three layers, leaves first:
//
// ContractProxy:
//   - BuildTransaction: nonce lookup (+ caller-chosen offset), ABI call
//     encoding, EIP-155 signing, hex-encoded RLP output. No broadcasting.
//   - GetLogs: one eth_getLogs request per call, indexed-argument filters by
//     name, decoded Args attached to every returned entry.
//   - AwaitEvent: bounded poll loop over GetLogs with a per-entry predicate;
//     timeout is a normal (nil, nil) outcome.
//
// ChannelProxy:
//   - Pre-binds the four channel manager events (ChannelCreated,
//     ChannelToppedUp, ChannelCloseRequested, ChannelSettled) with their
//     sender/receiver/opening-block filter shapes.
//   - ChannelInfo / SettleTimeout direct reads; a channel that was never
//     created is reported as (ok == false), not as an error.
//
// ChainClient:
//   - Dialed ethclient.Client plus the chain ID fetched at dial time.
//     Satisfies ChainTransport, the interface every proxy consumes; tests
//     inject fakes through it.
//
// # Waiting for events
//
//	proxy, _ := blockchain.NewChannelProxy(client, client.ChainID(), key, managerAddr, gasPrice, gasLimit)
//	lg, err := proxy.AwaitChannelCreated(ctx, sender, receiver,
//		blockchain.Block(0), blockchain.Pending, blockchain.DefaultWaitOpts())
//	if err != nil {
//		// transport failure or context cancellation
//	}
//	if lg == nil {
//		// timed out, no matching event
//	}
//
// Every poll cycle re-queries the full block range; the waiter holds no
// cursor and no state beyond one call. Concurrent waits are independent.
//
// # Building transactions
//
//	rawTx, err := proxy.BuildTransaction(ctx, "createChannelERC20",
//		[]any{receiver, deposit}, 0)
//
// The returned hex string is ready for eth_sendRawTransaction. Submission,
// receipt tracking and gas estimation are the caller's concern; gas price and
// limit are fixed at construction.
//
// # Error handling
//
// Unknown event or function names fail with ErrUnknownEvent /
// ErrUnknownFunction before any network traffic; an ABI with a duplicated
// event name is rejected at construction (ErrAmbiguousEvent). Transport
// errors propagate unchanged — the only soft-converted condition is the
// channel-not-found read in ChannelInfo.
package blockchain
