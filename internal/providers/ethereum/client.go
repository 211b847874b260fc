package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/block"
	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
)

// vaultABI covers the factory, manager and ERC-20 views read during materialization
// and the VaultCreated event emitted by factories
const vaultABI = `[
	{"type":"function","name":"vaultImplementation","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"vaultManager","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"event","name":"VaultCreated","anonymous":false,"inputs":[
		{"name":"asset","type":"address","indexed":true},
		{"name":"vault","type":"address","indexed":true},
		{"name":"vaultName","type":"string","indexed":false},
		{"name":"vaultSymbol","type":"string","indexed":false},
		{"name":"fee","type":"uint256","indexed":false}
	]}
]`

var (
	parsedVaultABI = mustParseABI(vaultABI)

	// VaultCreated(address indexed asset, address indexed vault, string vaultName, string vaultSymbol, uint256 fee)
	vaultCreatedEventSignature = parsedVaultABI.Events["VaultCreated"].ID
)

const (
	defaultLogPageSize = uint64(5000)
	defaultReadRetries = uint64(3)
	defaultReadBackoff = 500 * time.Millisecond
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// ContractReader performs read-only calls against factory, manager and ERC-20 contracts.
// Every failure is a *domain.ContractReadError.
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=ContractReader=MockContractReader,EthereumClient=MockEthereumClient
type ContractReader interface {
	// VaultImplementation reads vaultImplementation() of a factory
	VaultImplementation(ctx context.Context, factoryAddress string) (string, error)
	// VaultManager reads vaultManager() of a factory
	VaultManager(ctx context.Context, factoryAddress string) (string, error)
	// Owner reads owner() of a manager contract
	Owner(ctx context.Context, managerAddress string) (string, error)
	// ERC20Symbol reads symbol() of a token
	ERC20Symbol(ctx context.Context, tokenAddress string) (string, error)
	// ERC20Name reads name() of a token
	ERC20Name(ctx context.Context, tokenAddress string) (string, error)
	// ERC20Decimals reads decimals() of a token
	ERC20Decimals(ctx context.Context, tokenAddress string) (uint8, error)
}

// EthereumClient is the chain access used by the indexer
type EthereumClient interface {
	ContractReader

	// ParseVaultCreatedLog decodes a VaultCreated log and attaches its block timestamp.
	// Logs that are not well-formed VaultCreated logs fail with domain.ErrInvalidEvent.
	ParseVaultCreatedLog(ctx context.Context, vLog types.Log) (*domain.VaultCreatedEvent, error)

	// FilterLogs retrieves logs in pages, halving the page on "too many results" errors
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// SubscribeFilterLogs subscribes to live logs
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// GetLatestBlock returns the latest block number, possibly a cached or stale value
	GetLatestBlock(ctx context.Context) (uint64, error)

	// FetchLatestBlock reads the head directly from the node, bypassing the block cache
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// PrefetchBlockTimestamps warms the timestamp cache for the given blocks
	PrefetchBlockTimestamps(ctx context.Context, blockNumbers []uint64) error

	// Close closes the connection
	Close()
}

// ClientConfig holds configuration for the Ethereum client
type ClientConfig struct {
	ChainID domain.Chain
	// ReadMaxRetries bounds the retries of a failed contract call; 0 disables retries
	ReadMaxRetries uint64
	// ReadInitialInterval is the first backoff interval between retries
	ReadInitialInterval time.Duration
	// LogPageSize is the initial block span of each FilterLogs page
	LogPageSize uint64
}

type ethereumClient struct {
	config        ClientConfig
	client        adapter.EthClient
	blockProvider block.BlockProvider
}

// NewClient creates a new Ethereum client
func NewClient(cfg ClientConfig, client adapter.EthClient, blockProvider block.BlockProvider) EthereumClient {
	if cfg.LogPageSize == 0 {
		cfg.LogPageSize = defaultLogPageSize
	}
	if cfg.ReadInitialInterval == 0 {
		cfg.ReadInitialInterval = defaultReadBackoff
	}
	return &ethereumClient{config: cfg, client: client, blockProvider: blockProvider}
}

// DefaultClientConfig returns a config with the default retry and paging settings
func DefaultClientConfig(chainID domain.Chain) ClientConfig {
	return ClientConfig{
		ChainID:             chainID,
		ReadMaxRetries:      defaultReadRetries,
		ReadInitialInterval: defaultReadBackoff,
		LogPageSize:         defaultLogPageSize,
	}
}

// VaultImplementation reads vaultImplementation() of a factory
func (c *ethereumClient) VaultImplementation(ctx context.Context, factoryAddress string) (string, error) {
	return c.readAddress(ctx, factoryAddress, "vaultImplementation")
}

// VaultManager reads vaultManager() of a factory
func (c *ethereumClient) VaultManager(ctx context.Context, factoryAddress string) (string, error) {
	return c.readAddress(ctx, factoryAddress, "vaultManager")
}

// Owner reads owner() of a manager contract
func (c *ethereumClient) Owner(ctx context.Context, managerAddress string) (string, error) {
	return c.readAddress(ctx, managerAddress, "owner")
}

// ERC20Symbol reads symbol() of a token
func (c *ethereumClient) ERC20Symbol(ctx context.Context, tokenAddress string) (string, error) {
	var symbol string
	if err := c.call(ctx, tokenAddress, "symbol", &symbol); err != nil {
		return "", err
	}
	return symbol, nil
}

// ERC20Name reads name() of a token
func (c *ethereumClient) ERC20Name(ctx context.Context, tokenAddress string) (string, error) {
	var name string
	if err := c.call(ctx, tokenAddress, "name", &name); err != nil {
		return "", err
	}
	return name, nil
}

// ERC20Decimals reads decimals() of a token
func (c *ethereumClient) ERC20Decimals(ctx context.Context, tokenAddress string) (uint8, error) {
	var decimals uint8
	if err := c.call(ctx, tokenAddress, "decimals", &decimals); err != nil {
		return 0, err
	}
	return decimals, nil
}

func (c *ethereumClient) readAddress(ctx context.Context, contractAddress, method string) (string, error) {
	var addr common.Address
	if err := c.call(ctx, contractAddress, method, &addr); err != nil {
		return "", err
	}
	return domain.AddressID(addr), nil
}

// call executes a parameterless view function at the latest block and unpacks its single output
func (c *ethereumClient) call(ctx context.Context, contractAddress, method string, out interface{}) error {
	readErr := func(err error) error {
		return &domain.ContractReadError{Address: contractAddress, Method: method, Err: err}
	}

	if !domain.IsValidAddress(contractAddress) {
		return readErr(fmt.Errorf("invalid contract address"))
	}

	data, err := parsedVaultABI.Pack(method)
	if err != nil {
		return readErr(fmt.Errorf("failed to pack data: %w", err))
	}

	contractAddr := common.HexToAddress(contractAddress)
	msg := ethereum.CallMsg{To: &contractAddr, Data: data}

	operation := func() ([]byte, error) {
		result, err := c.client.CallContract(ctx, msg, nil)
		if err != nil {
			if isPermanentCallError(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return result, nil
	}
	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "Contract call failed, retrying",
			zap.String("address", contractAddress),
			zap.String("method", method),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	result, err := backoff.RetryNotifyWithData(operation, c.readBackOff(ctx), notify)
	if err != nil {
		return readErr(fmt.Errorf("failed to call contract: %w", err))
	}

	// a call to an address without code returns no data
	if len(result) == 0 {
		return readErr(errors.New("empty result"))
	}

	if err := parsedVaultABI.UnpackIntoInterface(out, method, result); err != nil {
		return readErr(fmt.Errorf("failed to unpack result: %w", err))
	}

	return nil
}

func (c *ethereumClient) readBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.ReadInitialInterval
	b.MaxElapsedTime = 0 // bounded by retry count
	return backoff.WithContext(backoff.WithMaxRetries(b, c.config.ReadMaxRetries), ctx)
}

// isPermanentCallError reports whether retrying a failed call cannot succeed
func isPermanentCallError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "execution reverted") ||
		strings.Contains(errStr, "invalid opcode")
}

// vaultCreatedData holds the non-indexed arguments of VaultCreated
type vaultCreatedData struct {
	VaultName   string
	VaultSymbol string
	Fee         *big.Int
}

// ParseVaultCreatedLog decodes a VaultCreated log and attaches its block timestamp
func (c *ethereumClient) ParseVaultCreatedLog(ctx context.Context, vLog types.Log) (*domain.VaultCreatedEvent, error) {
	if len(vLog.Topics) == 0 || vLog.Topics[0] != vaultCreatedEventSignature {
		return nil, fmt.Errorf("%w: not a VaultCreated log", domain.ErrInvalidEvent)
	}
	if len(vLog.Topics) != 3 {
		return nil, fmt.Errorf("%w: VaultCreated expects 3 topics, got %d", domain.ErrInvalidEvent, len(vLog.Topics))
	}

	var data vaultCreatedData
	if err := parsedVaultABI.UnpackIntoInterface(&data, "VaultCreated", vLog.Data); err != nil {
		return nil, fmt.Errorf("%w: failed to unpack VaultCreated data: %v", domain.ErrInvalidEvent, err)
	}

	timestamp, err := c.blockProvider.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get block timestamp: %w", err)
	}

	blockHash := vLog.BlockHash.Hex()
	return &domain.VaultCreatedEvent{
		Chain:          c.config.ChainID,
		EmitterAddress: domain.AddressID(vLog.Address),
		Params: domain.VaultCreatedParams{
			AssetAddress: domain.AddressID(common.BytesToAddress(vLog.Topics[1].Bytes())),
			VaultAddress: domain.AddressID(common.BytesToAddress(vLog.Topics[2].Bytes())),
			VaultName:    data.VaultName,
			VaultSymbol:  data.VaultSymbol,
			Fee:          data.Fee,
		},
		BlockTimestamp: uint64(timestamp.Unix()), //nolint:gosec,G115 // block timestamps are positive
		BlockNumber:    vLog.BlockNumber,
		BlockHash:      &blockHash,
		TxHash:         vLog.TxHash.Hex(),
		LogIndex:       uint64(vLog.Index),
	}, nil
}

// FilterLogs retrieves logs for the query range in pages to work around provider result limits
func (c *ethereumClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	// A block hash query targets a single block
	if query.BlockHash != nil {
		return c.client.FilterLogs(ctx, query)
	}

	var fromBlock, toBlock uint64
	if query.FromBlock != nil {
		fromBlock = query.FromBlock.Uint64()
	}
	if query.ToBlock != nil {
		toBlock = query.ToBlock.Uint64()
	} else {
		latest, err := c.GetLatestBlock(ctx)
		if err != nil {
			return nil, err
		}
		toBlock = latest
	}

	var allLogs []types.Log
	stepSize := c.config.LogPageSize
	currentFrom := fromBlock

	for currentFrom <= toBlock {
		currentTo := min(currentFrom+stepSize-1, toBlock)

		pageQuery := query
		pageQuery.FromBlock = new(big.Int).SetUint64(currentFrom)
		pageQuery.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.client.FilterLogs(ctx, pageQuery)
		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize = max(stepSize/2, 1)
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}

// SubscribeFilterLogs subscribes to filter logs
func (c *ethereumClient) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.client.SubscribeFilterLogs(ctx, query, ch)
}

// GetLatestBlock returns the latest block number
func (c *ethereumClient) GetLatestBlock(ctx context.Context) (uint64, error) {
	latest, err := c.blockProvider.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return latest, nil
}

// FetchLatestBlock reads the head directly from the node
func (c *ethereumClient) FetchLatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// PrefetchBlockTimestamps warms the timestamp cache for the given blocks
func (c *ethereumClient) PrefetchBlockTimestamps(ctx context.Context, blockNumbers []uint64) error {
	return c.blockProvider.PrefetchTimestamps(ctx, blockNumbers)
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
