// Package envmap translates the external node configuration to and from the
// flat environment variable namespace read by the node services.
package envmap

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/0xPolygon/cdk-enconfig/address"
	"github.com/0xPolygon/cdk-enconfig/contracts"
	"github.com/0xPolygon/cdk-enconfig/db"
	"github.com/spf13/cast"
)

// Entry is a single environment variable
type Entry struct {
	Key   string
	Value string
}

func (e Entry) String() string {
	return e.Key + "=" + e.Value
}

// Mapping is an environment namespace. A missing key and an empty value are
// both treated as absent.
type Mapping map[string]string

// Lookup returns the value of key, reporting empty values as absent
func (m Mapping) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (m Mapping) ptr(key string) *string {
	v, ok := m.Lookup(key)
	if !ok {
		return nil
	}
	return &v
}

// ToMapping indexes entries by key, later entries win
func ToMapping(entries []Entry) Mapping {
	m := make(Mapping, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

// Environ renders entries in the KEY=VALUE form used by os/exec and docker
func Environ(entries []Entry) []string {
	res := make([]string, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.String())
	}
	return res
}

// MappingFromEnviron parses KEY=VALUE pairs such as the ones returned by os.Environ
func MappingFromEnviron(environ []string) Mapping {
	m := make(Mapping, len(environ))
	for _, kv := range environ {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		m[k] = v
	}
	return m
}

// Export renders c and p as environment variables. The order is fixed:
// infrastructure variables, node runtime variables and contract addresses in
// schema order. Absent optional values are not emitted.
func Export(c contracts.Contracts, p RuntimeParams) []Entry {
	entries := make([]Entry, 0, len(RuntimeKeys)+len(ContractKeys))
	entries = append(entries, ExportRuntime(p)...)
	entries = append(entries, ExportContracts(c)...)
	return entries
}

// ExportRuntime renders the runtime parameters, skipping empty strings
func ExportRuntime(p RuntimeParams) []Entry {
	values := map[string]string{
		KeyDatabaseURL:                       p.DatabaseURL,
		KeyDatabasePoolSize:                  strconv.FormatUint(uint64(p.DatabasePoolSize), 10),
		KeyHTTPPort:                          strconv.FormatUint(uint64(p.HTTPPort), 10),
		KeyWSPort:                            strconv.FormatUint(uint64(p.WSPort), 10),
		KeyHealthcheckPort:                   strconv.FormatUint(uint64(p.HealthcheckPort), 10),
		KeyEthClientURL:                      p.EthClientURL,
		KeyMainNodeURL:                       p.MainNodeURL,
		KeyL1ChainID:                         strconv.FormatUint(p.L1ChainID, 10),
		KeyL2ChainID:                         strconv.FormatUint(p.L2ChainID, 10),
		KeyStateCachePath:                    p.StateCachePath,
		KeyMerkleTreePath:                    p.MerkleTreePath,
		KeySnapshotsObjectStoreBucketBaseURL: p.SnapshotsObjectStoreBucketBaseURL,
		KeySnapshotsObjectStoreMode:          string(p.SnapshotsObjectStoreMode),
		KeySnapshotsRecoveryEnabled:          strconv.FormatBool(p.SnapshotsRecoveryEnabled),
		KeyLogLevel:                          p.LogLevel,
	}
	entries := make([]Entry, 0, len(RuntimeKeys))
	for _, key := range RuntimeKeys {
		if v := values[key]; v != "" {
			entries = append(entries, Entry{Key: key, Value: v})
		}
	}
	return entries
}

// ExportContracts renders the contract addresses in their canonical form
func ExportContracts(c contracts.Contracts) []Entry {
	erc20, _ := c.Bridges.ERC20.Get()
	weth, _ := c.Bridges.WETH.Get()
	values := map[string]address.Optional{
		KeyGovernanceAddr:        address.Some(c.L1.GovernanceAddr),
		KeyVerifierAddr:          address.Some(c.L1.VerifierAddr),
		KeyDiamondProxyAddr:      address.Some(c.L1.DiamondProxyAddr),
		KeyValidatorTimelockAddr: address.Some(c.L1.ValidatorTimelockAddr),
		KeyDefaultUpgradeAddr:    address.Some(c.L1.DefaultUpgradeAddr),
		KeyMulticall3Addr:        address.Some(c.L1.Multicall3Addr),
		KeyTestnetPaymasterAddr:  c.L2.TestnetPaymasterAddr,
		KeyL1ERC20BridgeAddr:     erc20.L1Address,
		KeyL2ERC20BridgeAddr:     erc20.L2Address,
		KeyL1WETHBridgeAddr:      weth.L1Address,
		KeyL2WETHBridgeAddr:      weth.L2Address,
	}
	entries := make([]Entry, 0, len(ContractKeys))
	for _, key := range ContractKeys {
		if addr, ok := values[key].Get(); ok {
			entries = append(entries, Entry{Key: key, Value: addr.Hex()})
		}
	}
	return entries
}

// ContractsSource maps the contract variables of m to a contracts.Source
func ContractsSource(m Mapping) contracts.Source {
	src := contracts.Source{
		L1: &contracts.L1Source{
			GovernanceAddr:        m.ptr(KeyGovernanceAddr),
			VerifierAddr:          m.ptr(KeyVerifierAddr),
			DiamondProxyAddr:      m.ptr(KeyDiamondProxyAddr),
			ValidatorTimelockAddr: m.ptr(KeyValidatorTimelockAddr),
			DefaultUpgradeAddr:    m.ptr(KeyDefaultUpgradeAddr),
			Multicall3Addr:        m.ptr(KeyMulticall3Addr),
		},
	}
	if paymaster := m.ptr(KeyTestnetPaymasterAddr); paymaster != nil {
		src.L2 = &contracts.L2Source{TestnetPaymasterAddr: paymaster}
	}
	erc20 := bridgeSource(m, KeyL1ERC20BridgeAddr, KeyL2ERC20BridgeAddr)
	weth := bridgeSource(m, KeyL1WETHBridgeAddr, KeyL2WETHBridgeAddr)
	if erc20 != nil || weth != nil {
		src.Bridges = &contracts.BridgesSource{ERC20: erc20, WETH: weth}
	}
	return src
}

func bridgeSource(m Mapping, l1Key, l2Key string) *contracts.BridgeSource {
	l1, l2 := m.ptr(l1Key), m.ptr(l2Key)
	if l1 == nil && l2 == nil {
		return nil
	}
	return &contracts.BridgeSource{L1Address: l1, L2Address: l2}
}

// Import reads the contract addresses of m, applying the same validation as
// contracts.Parse.
func Import(m Mapping) (contracts.Contracts, error) {
	return contracts.Parse(ContractsSource(m))
}

// ImportRuntime reads the runtime parameters of m. It stops at the first
// malformed or missing required variable, checked in export order.
func ImportRuntime(m Mapping) (RuntimeParams, error) {
	p := DefaultRuntimeParams()
	r := runtimeReader{m: m}

	p.DatabaseURL = r.requiredString(KeyDatabaseURL)
	p.DatabasePoolSize = uint32(r.uint(KeyDatabasePoolSize, math.MaxInt32, uint64(p.DatabasePoolSize)))
	p.HTTPPort = r.port(KeyHTTPPort, p.HTTPPort)
	p.WSPort = r.port(KeyWSPort, p.WSPort)
	p.HealthcheckPort = r.port(KeyHealthcheckPort, p.HealthcheckPort)
	p.EthClientURL = r.requiredURL(KeyEthClientURL)
	p.MainNodeURL = r.requiredURL(KeyMainNodeURL)
	p.L1ChainID = r.chainID(KeyL1ChainID)
	p.L2ChainID = r.chainID(KeyL2ChainID)
	p.StateCachePath = r.string(KeyStateCachePath, p.StateCachePath)
	p.MerkleTreePath = r.string(KeyMerkleTreePath, p.MerkleTreePath)
	p.SnapshotsObjectStoreBucketBaseURL = r.string(KeySnapshotsObjectStoreBucketBaseURL, "")
	p.SnapshotsObjectStoreMode = r.objectStoreMode(KeySnapshotsObjectStoreMode, p.SnapshotsObjectStoreMode)
	p.SnapshotsRecoveryEnabled = r.bool(KeySnapshotsRecoveryEnabled, false)
	p.LogLevel = r.logLevel(KeyLogLevel, p.LogLevel)
	if r.err != nil {
		return RuntimeParams{}, r.err
	}

	if _, err := db.ParseURL(p.DatabaseURL, int(p.DatabasePoolSize)); err != nil {
		return RuntimeParams{}, newParseError(KeyDatabaseURL, err)
	}
	return p, nil
}

// runtimeReader keeps the first error and ignores every call after it
type runtimeReader struct {
	m   Mapping
	err error
}

func (r *runtimeReader) fail(key string, err error) {
	r.err = newParseError(key, err)
}

func (r *runtimeReader) string(key, def string) string {
	if r.err != nil {
		return def
	}
	if v, ok := r.m.Lookup(key); ok {
		return v
	}
	return def
}

func (r *runtimeReader) requiredString(key string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.m.Lookup(key)
	if !ok {
		r.fail(key, errors.New("required variable is not set"))
		return ""
	}
	return v
}

func (r *runtimeReader) requiredURL(key string) string {
	v := r.requiredString(key)
	if r.err != nil {
		return ""
	}
	if err := checkURL(v); err != nil {
		r.fail(key, err)
		return ""
	}
	return v
}

func (r *runtimeReader) uint(key string, maxValue, def uint64) uint64 {
	if r.err != nil {
		return def
	}
	v, ok := r.m.Lookup(key)
	if !ok {
		return def
	}
	// decimal only, mirroring FormatUint on export
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.fail(key, fmt.Errorf("expected a decimal unsigned integer: %w", err))
		return def
	}
	if n > maxValue {
		r.fail(key, fmt.Errorf("value %d is greater than %d", n, maxValue))
		return def
	}
	return n
}

func (r *runtimeReader) port(key string, def uint16) uint16 {
	n := r.uint(key, math.MaxUint16, uint64(def))
	if r.err == nil && n == 0 {
		r.fail(key, errors.New("port must be greater than 0"))
		return def
	}
	return uint16(n)
}

func (r *runtimeReader) chainID(key string) uint64 {
	if r.err != nil {
		return 0
	}
	if _, ok := r.m.Lookup(key); !ok {
		r.fail(key, errors.New("required variable is not set"))
		return 0
	}
	n := r.uint(key, math.MaxUint64, 0)
	if r.err == nil && n == 0 {
		r.fail(key, errors.New("chain id must be greater than 0"))
	}
	return n
}

func (r *runtimeReader) bool(key string, def bool) bool {
	if r.err != nil {
		return def
	}
	v, ok := r.m.Lookup(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		r.fail(key, fmt.Errorf("expected a boolean: %w", err))
		return def
	}
	return b
}

func (r *runtimeReader) objectStoreMode(key string, def ObjectStoreMode) ObjectStoreMode {
	v := r.string(key, string(def))
	if r.err != nil {
		return def
	}
	mode, err := parseObjectStoreMode(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return mode
}

func (r *runtimeReader) logLevel(key, def string) string {
	v := r.string(key, def)
	if r.err != nil {
		return def
	}
	if err := checkLogLevel(v); err != nil {
		r.fail(key, err)
		return def
	}
	return v
}
