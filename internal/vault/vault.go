package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"vault-cap-monitor/internal/units"
)

const vaultABIJSON = `[
    {
        "inputs": [],
        "name": "maxDepositAmount",
        "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "maxTokenSupply",
        "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "totalAssets",
        "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
        "stateMutability": "view",
        "type": "function"
    }
]`

const (
	methodDepositCap     = "maxDepositAmount"
	methodMaxTokenSupply = "maxTokenSupply"
	methodTotalAssets    = "totalAssets"
)

// ErrConnectivity marks an RPC endpoint that could not be reached at startup.
var ErrConnectivity = errors.New("rpc endpoint unreachable")

// ReadError reports a failed view call on the vault.
type ReadError struct {
	Method string
	Err    error
}

// Error formats the failed method and its cause.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error { return e.Err }

// ABI returns the parsed vault ABI.
func ABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(vaultABIJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse vault ABI: %w", err)
	}
	return parsed, nil
}

// ParseAddress validates and converts a hex contract address.
func ParseAddress(v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("address %q is not a valid hex string", v)
	}
	return common.HexToAddress(v), nil
}

// Connect dials the RPC endpoint and confirms it answers by fetching the chain id.
func Connect(ctx context.Context, rpcURL string, timeout time.Duration) (*ethclient.Client, *big.Int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial %s: %v", ErrConnectivity, rpcURL, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("%w: chain id from %s: %v", ErrConnectivity, rpcURL, err)
	}

	return client, chainID, nil
}

// Reader wraps the read-only view calls exposed by the vault contract.
type Reader struct {
	backend ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
}

// NewReader builds a reader bound to a single vault address.
func NewReader(backend ethereum.ContractCaller, address common.Address) (*Reader, error) {
	if backend == nil {
		return nil, errors.New("contract caller is required")
	}

	parsed, err := ABI()
	if err != nil {
		return nil, err
	}

	return &Reader{
		backend: backend,
		address: address,
		abi:     parsed,
	}, nil
}

// Address returns the vault address being read.
func (r *Reader) Address() common.Address { return r.address }

// DepositCap fetches maxDepositAmount() in base units. Failures are returned as *ReadError.
func (r *Reader) DepositCap(ctx context.Context) (*big.Int, error) {
	return r.callUint256(ctx, methodDepositCap)
}

// TotalAssets fetches totalAssets(); any failure yields an unavailable reading.
func (r *Reader) TotalAssets(ctx context.Context) units.Reading {
	return r.optional(ctx, methodTotalAssets)
}

// MaxTokenSupply fetches maxTokenSupply(); any failure yields an unavailable reading.
func (r *Reader) MaxTokenSupply(ctx context.Context) units.Reading {
	return r.optional(ctx, methodMaxTokenSupply)
}

func (r *Reader) optional(ctx context.Context, method string) units.Reading {
	raw, err := r.callUint256(ctx, method)
	if err != nil {
		return units.Unavailable(err)
	}
	return units.Available(units.FromBaseUnits(raw))
}

func (r *Reader) callUint256(ctx context.Context, method string) (*big.Int, error) {
	payload, err := r.abi.Pack(method)
	if err != nil {
		return nil, &ReadError{Method: method, Err: fmt.Errorf("pack call: %w", err)}
	}

	call := ethereum.CallMsg{To: &r.address, Data: payload}
	raw, err := r.backend.CallContract(ctx, call, nil)
	if err != nil {
		return nil, &ReadError{Method: method, Err: fmt.Errorf("call: %w", err)}
	}

	values, err := r.abi.Unpack(method, raw)
	if err != nil {
		return nil, &ReadError{Method: method, Err: fmt.Errorf("unpack: %w", err)}
	}

	if len(values) != 1 {
		return nil, &ReadError{Method: method, Err: fmt.Errorf("unexpected result length: %d", len(values))}
	}

	value, ok := values[0].(*big.Int)
	if !ok {
		return nil, &ReadError{Method: method, Err: fmt.Errorf("unexpected result type %T", values[0])}
	}

	return new(big.Int).Set(value), nil
}
