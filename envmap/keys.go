package envmap

// Infrastructure variables are shared with other services and are not prefixed
const (
	KeyDatabaseURL      = "DATABASE_URL"
	KeyDatabasePoolSize = "DATABASE_POOL_SIZE"
)

// NodePrefix is the prefix of every external node variable
const NodePrefix = "EN_"

// External node runtime variables
const (
	KeyHTTPPort                          = NodePrefix + "HTTP_PORT"
	KeyWSPort                            = NodePrefix + "WS_PORT"
	KeyHealthcheckPort                   = NodePrefix + "HEALTHCHECK_PORT"
	KeyEthClientURL                      = NodePrefix + "ETH_CLIENT_URL"
	KeyMainNodeURL                       = NodePrefix + "MAIN_NODE_URL"
	KeyL1ChainID                         = NodePrefix + "L1_CHAIN_ID"
	KeyL2ChainID                         = NodePrefix + "L2_CHAIN_ID"
	KeyStateCachePath                    = NodePrefix + "STATE_CACHE_PATH"
	KeyMerkleTreePath                    = NodePrefix + "MERKLE_TREE_PATH"
	KeySnapshotsObjectStoreBucketBaseURL = NodePrefix + "SNAPSHOTS_OBJECT_STORE_BUCKET_BASE_URL"
	KeySnapshotsObjectStoreMode          = NodePrefix + "SNAPSHOTS_OBJECT_STORE_MODE"
	KeySnapshotsRecoveryEnabled          = NodePrefix + "SNAPSHOTS_RECOVERY_ENABLED"
	KeyLogLevel                          = NodePrefix + "LOG_LEVEL"
)

// Contract address variables
const (
	KeyGovernanceAddr        = NodePrefix + "GOVERNANCE_ADDR"
	KeyVerifierAddr          = NodePrefix + "VERIFIER_ADDR"
	KeyDiamondProxyAddr      = NodePrefix + "DIAMOND_PROXY_ADDR"
	KeyValidatorTimelockAddr = NodePrefix + "VALIDATOR_TIMELOCK_ADDR"
	KeyDefaultUpgradeAddr    = NodePrefix + "DEFAULT_UPGRADE_ADDR"
	KeyMulticall3Addr        = NodePrefix + "MULTICALL3_ADDR"
	KeyTestnetPaymasterAddr  = NodePrefix + "TESTNET_PAYMASTER_ADDR"
	KeyL1ERC20BridgeAddr     = NodePrefix + "L1_ERC20_BRIDGE_ADDR"
	KeyL2ERC20BridgeAddr     = NodePrefix + "L2_ERC20_BRIDGE_ADDR"
	KeyL1WETHBridgeAddr      = NodePrefix + "L1_WETH_BRIDGE_ADDR"
	KeyL2WETHBridgeAddr      = NodePrefix + "L2_WETH_BRIDGE_ADDR"
)

// RuntimeKeys lists the runtime variables in export order
var RuntimeKeys = []string{
	KeyDatabaseURL,
	KeyDatabasePoolSize,
	KeyHTTPPort,
	KeyWSPort,
	KeyHealthcheckPort,
	KeyEthClientURL,
	KeyMainNodeURL,
	KeyL1ChainID,
	KeyL2ChainID,
	KeyStateCachePath,
	KeyMerkleTreePath,
	KeySnapshotsObjectStoreBucketBaseURL,
	KeySnapshotsObjectStoreMode,
	KeySnapshotsRecoveryEnabled,
	KeyLogLevel,
}

// ContractKeys lists the contract variables in export order, which follows the schema
var ContractKeys = []string{
	KeyGovernanceAddr,
	KeyVerifierAddr,
	KeyDiamondProxyAddr,
	KeyValidatorTimelockAddr,
	KeyDefaultUpgradeAddr,
	KeyMulticall3Addr,
	KeyTestnetPaymasterAddr,
	KeyL1ERC20BridgeAddr,
	KeyL2ERC20BridgeAddr,
	KeyL1WETHBridgeAddr,
	KeyL2WETHBridgeAddr,
}
