package blockchain

// ChannelManagerABI is the JSON ABI of the µRaiden channel manager contract,
// restricted to the entry points and events this SDK uses. Argument names
// follow the contract source (leading underscores included); the decoded Args
// maps of returned logs are keyed by these names.
const ChannelManagerABI = `[
  {
    "type": "event",
    "name": "ChannelCreated",
    "anonymous": false,
    "inputs": [
      {"name": "_sender", "type": "address", "indexed": true},
      {"name": "_receiver", "type": "address", "indexed": true},
      {"name": "_deposit", "type": "uint192", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "ChannelToppedUp",
    "anonymous": false,
    "inputs": [
      {"name": "_sender", "type": "address", "indexed": true},
      {"name": "_receiver", "type": "address", "indexed": true},
      {"name": "_open_block_number", "type": "uint32", "indexed": true},
      {"name": "_added_deposit", "type": "uint192", "indexed": false},
      {"name": "_deposit", "type": "uint192", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "ChannelCloseRequested",
    "anonymous": false,
    "inputs": [
      {"name": "_sender", "type": "address", "indexed": true},
      {"name": "_receiver", "type": "address", "indexed": true},
      {"name": "_open_block_number", "type": "uint32", "indexed": true},
      {"name": "_balance", "type": "uint192", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "ChannelSettled",
    "anonymous": false,
    "inputs": [
      {"name": "_sender", "type": "address", "indexed": true},
      {"name": "_receiver", "type": "address", "indexed": true},
      {"name": "_open_block_number", "type": "uint32", "indexed": true},
      {"name": "_balance", "type": "uint192", "indexed": false}
    ]
  },
  {
    "type": "function",
    "name": "getChannelInfo",
    "constant": true,
    "stateMutability": "view",
    "inputs": [
      {"name": "_sender", "type": "address"},
      {"name": "_receiver", "type": "address"},
      {"name": "_open_block_number", "type": "uint32"}
    ],
    "outputs": [
      {"name": "_key", "type": "bytes32"},
      {"name": "_deposit", "type": "uint192"},
      {"name": "_closing_balance", "type": "uint192"},
      {"name": "_settle_timeout", "type": "uint32"}
    ]
  },
  {
    "type": "function",
    "name": "createChannelERC20",
    "constant": false,
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_receiver", "type": "address"},
      {"name": "_deposit", "type": "uint192"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "topUpERC20",
    "constant": false,
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_receiver", "type": "address"},
      {"name": "_open_block_number", "type": "uint32"},
      {"name": "_added_deposit", "type": "uint192"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "uncooperativeClose",
    "constant": false,
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_receiver", "type": "address"},
      {"name": "_open_block_number", "type": "uint32"},
      {"name": "_balance", "type": "uint192"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "cooperativeClose",
    "constant": false,
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_receiver", "type": "address"},
      {"name": "_open_block_number", "type": "uint32"},
      {"name": "_balance", "type": "uint192"},
      {"name": "_balance_msg_sig", "type": "bytes"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "settle",
    "constant": false,
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_receiver", "type": "address"},
      {"name": "_open_block_number", "type": "uint32"}
    ],
    "outputs": []
  }
]`

// Channel manager event names.
const (
	EventChannelCreated        = "ChannelCreated"
	EventChannelToppedUp       = "ChannelToppedUp"
	EventChannelCloseRequested = "ChannelCloseRequested"
	EventChannelSettled        = "ChannelSettled"
)
