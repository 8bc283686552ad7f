package blockchain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Log is a raw log entry together with its decoded event arguments. Args is
// keyed by the argument names declared in the event ABI, indexed and
// non-indexed alike. Returned entries are read-only snapshots.
type Log struct {
	Raw  types.Log
	Args map[string]any
}

// BlockNumber is a literal block number or one of the symbolic markers
// Latest and Pending accepted by log queries.
type BlockNumber int64

const (
	// Latest marks the most recent mined block.
	Latest = BlockNumber(rpc.LatestBlockNumber)
	// Pending marks the pending block.
	Pending = BlockNumber(rpc.PendingBlockNumber)
)

// Block converts a literal block number into a BlockNumber.
func Block(n uint64) BlockNumber {
	return BlockNumber(n)
}

// arg converts the marker into the *big.Int form ethclient encodes for
// eth_getLogs. Negative values map onto the rpc package's symbolic numbers.
func (b BlockNumber) arg() *big.Int {
	if b == Latest {
		return nil
	}
	return big.NewInt(int64(b))
}

// eventDecoder holds one event's ABI entry and its indexed arguments,
// resolved once at proxy construction. Filter topics and argument decoding
// for the event both go through it.
type eventDecoder struct {
	event   abi.Event
	indexed abi.Arguments
}

// newEventTable builds the name -> decoder table for every event in the ABI.
// A contract ABI carrying the same event name twice is a configuration error.
func newEventTable(contractABI abi.ABI) (map[string]*eventDecoder, error) {
	table := make(map[string]*eventDecoder, len(contractABI.Events))
	for _, ev := range contractABI.Events {
		if _, dup := table[ev.RawName]; dup {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousEvent, ev.RawName)
		}
		indexed := make(abi.Arguments, 0, len(ev.Inputs))
		for _, in := range ev.Inputs {
			if in.Indexed {
				indexed = append(indexed, in)
			}
		}
		table[ev.RawName] = &eventDecoder{event: ev, indexed: indexed}
	}
	return table, nil
}

// topics builds the topic filter for the event: topic 0 is the event
// signature, the following positions correspond to the indexed arguments in
// declaration order. Arguments without a filter value are wildcards; filter
// keys that do not name an indexed argument are ignored.
func (d *eventDecoder) topics(filters map[string]any) ([][]common.Hash, error) {
	query := make([][]interface{}, len(d.indexed))
	for i, in := range d.indexed {
		if v, ok := filters[in.Name]; ok {
			query[i] = []interface{}{v}
		}
	}

	argTopics, err := abi.MakeTopics(query...)
	if err != nil {
		return nil, fmt.Errorf("build %s filter: %w", d.event.RawName, err)
	}

	topics := make([][]common.Hash, 0, len(argTopics)+1)
	topics = append(topics, []common.Hash{d.event.ID})
	topics = append(topics, argTopics...)

	// Trailing wildcard positions carry no constraint.
	for len(topics) > 1 && len(topics[len(topics)-1]) == 0 {
		topics = topics[:len(topics)-1]
	}
	return topics, nil
}

// decode combines a raw log entry with the event ABI into a Log with a fully
// populated Args map.
func (d *eventDecoder) decode(contractABI abi.ABI, lg types.Log) (Log, error) {
	args := make(map[string]any, len(d.event.Inputs))

	if len(d.event.Inputs.NonIndexed()) > 0 {
		if err := contractABI.UnpackIntoMap(args, d.event.RawName, lg.Data); err != nil {
			return Log{}, fmt.Errorf("decode %s data: %w", d.event.RawName, err)
		}
	}

	if len(lg.Topics) > 1 {
		if err := abi.ParseTopicsIntoMap(args, d.indexed, lg.Topics[1:]); err != nil {
			return Log{}, fmt.Errorf("decode %s topics: %w", d.event.RawName, err)
		}
	}

	return Log{Raw: lg, Args: args}, nil
}
