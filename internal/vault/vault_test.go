package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVault = common.HexToAddress("0x7E698EEa0709e4a0Dbbd790fC493D60691801157")

// fakeCaller answers view calls by method selector with ABI-encoded uint256 results.
type fakeCaller struct {
	t       *testing.T
	abi     abi.ABI
	results map[string]*big.Int
	errs    map[string]error
	raw     map[string][]byte
	calls   []ethereum.CallMsg
}

func newFakeCaller(t *testing.T) *fakeCaller {
	t.Helper()
	parsed, err := ABI()
	require.NoError(t, err)
	return &fakeCaller{
		t:       t,
		abi:     parsed,
		results: map[string]*big.Int{},
		errs:    map[string]error{},
		raw:     map[string][]byte{},
	}
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, call)
	method, err := f.abi.MethodById(call.Data[:4])
	require.NoError(f.t, err)

	if err := f.errs[method.Name]; err != nil {
		return nil, err
	}
	if raw, ok := f.raw[method.Name]; ok {
		return raw, nil
	}
	value, ok := f.results[method.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return method.Outputs.Pack(value)
}

func wei(t *testing.T, v string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(v, 10)
	require.True(t, ok)
	return n
}

func TestReaderDepositCap(t *testing.T) {
	caller := newFakeCaller(t)
	caller.results[methodDepositCap] = wei(t, "1000000000000000000000000")

	reader, err := NewReader(caller, testVault)
	require.NoError(t, err)

	got, err := reader.DepositCap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000", got.String())

	require.Len(t, caller.calls, 1)
	require.NotNil(t, caller.calls[0].To)
	assert.Equal(t, testVault, *caller.calls[0].To)
}

func TestReaderDepositCapFailureIsReadError(t *testing.T) {
	caller := newFakeCaller(t)
	caller.errs[methodDepositCap] = errors.New("connection refused")

	reader, err := NewReader(caller, testVault)
	require.NoError(t, err)

	_, err = reader.DepositCap(context.Background())
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, methodDepositCap, readErr.Method)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReaderDepositCapEmptyResult(t *testing.T) {
	caller := newFakeCaller(t)
	caller.raw[methodDepositCap] = []byte{}

	reader, err := NewReader(caller, testVault)
	require.NoError(t, err)

	_, err = reader.DepositCap(context.Background())
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, err.Error(), "unpack")
}

func TestReaderOptionalReadings(t *testing.T) {
	caller := newFakeCaller(t)
	caller.results[methodTotalAssets] = wei(t, "2500500000000000000000")
	caller.errs[methodMaxTokenSupply] = errors.New("execution reverted")

	reader, err := NewReader(caller, testVault)
	require.NoError(t, err)

	assets := reader.TotalAssets(context.Background())
	value, ok := assets.Value()
	require.True(t, ok)
	assert.Equal(t, "2500.5", value.String())

	supply := reader.MaxTokenSupply(context.Background())
	assert.False(t, supply.IsAvailable())
	assert.Equal(t, "N/A", supply.String())

	var readErr *ReadError
	require.ErrorAs(t, supply.Err(), &readErr)
	assert.Equal(t, methodMaxTokenSupply, readErr.Method)
}

func TestNewReaderRequiresBackend(t *testing.T) {
	_, err := NewReader(nil, testVault)
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7E698EEa0709e4a0Dbbd790fC493D60691801157")
	require.NoError(t, err)
	assert.Equal(t, testVault, addr)

	_, err = ParseAddress("not-an-address")
	require.Error(t, err)
}

func chainIDServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		if err := json.Unmarshal(body.Bytes(), &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		if req.Method != "eth_chainId" {
			http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":"0x3e7"}`))
	}))
}

func TestConnect(t *testing.T) {
	srv := chainIDServer(t, http.StatusOK)
	defer srv.Close()

	client, chainID, err := Connect(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, int64(999), chainID.Int64())
}

func TestConnectFailureIsConnectivityError(t *testing.T) {
	srv := chainIDServer(t, http.StatusInternalServerError)
	defer srv.Close()

	_, _, err := Connect(context.Background(), srv.URL, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestReaderAddress(t *testing.T) {
	reader, err := NewReader(newFakeCaller(t), testVault)
	require.NoError(t, err)
	assert.Equal(t, "0x7E698EEa0709e4a0Dbbd790fC493D60691801157", reader.Address().Hex())
}
