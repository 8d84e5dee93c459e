package config

// DefaultMandatoryVars has no real default, they depend on the network the
// node follows. These values only allow a local setup to start.
const DefaultMandatoryVars = `
# L1URL is the Layer 1 (Ethereum) RPC provider URL
L1URL = "http://localhost:8545"
# MainNodeURL is the URL of the main node the external node replicates
MainNodeURL = "http://localhost:3050"
# L1ChainID is the chain id of the L1 network
L1ChainID = 9
# L2ChainID is the chain id of the rollup
L2ChainID = 270
`

// DefaultVars doesn't belong to the config, they are used
// to avoid repetition in config-files
const DefaultVars = `
PathRWData = "./volumes"
PostgresPassword = "notsecurepassword"
`

// DefaultValues is the default configuration
const DefaultValues = `
# This is the default configuration for the external node

# Log configuration
[Log]
  # Environment is the environment where the tool is running
  Environment = "development" # "production" or "development"
  # Level is the log level
  Level = "info"
  # Outputs are the outputs where the logs will be written
  Outputs = ["stderr"]

# Database is the postgres database of the node, used when Node.DatabaseURL is empty
[Database]
  Name = "zksync_local_ext_node"
  User = "postgres"
  Password = "{{PostgresPassword}}"
  # Host is the name of the database service of the deployment
  Host = "postgres"
  Port = "5432"
  MaxConns = 50

# Node runtime parameters, exported as environment variables of the node
[Node]
  # DatabaseURL is the connection string of the postgres database, it overrides [Database]
  DatabaseURL = ""
  # DatabasePoolSize is the max number of connections of the node to the database
  DatabasePoolSize = 50
  # HTTPPort is the port of the HTTP JSON-RPC API
  HTTPPort = 3060
  # WSPort is the port of the WebSocket JSON-RPC API
  WSPort = 3061
  # HealthcheckPort is the port of the healthcheck endpoint
  HealthcheckPort = 3081
  EthClientURL = "{{L1URL}}"
  MainNodeURL = "{{MainNodeURL}}"
  L1ChainID = {{L1ChainID}}
  L2ChainID = {{L2ChainID}}
  StateCachePath = "/db/state_keeper"
  MerkleTreePath = "/db/tree"
  # SnapshotsObjectStoreBucketBaseURL is the bucket the snapshots are fetched from
  SnapshotsObjectStoreBucketBaseURL = ""
  # SnapshotsObjectStoreMode is one of GCS, GCSWithCredentialFile, GCSAnonymousReadOnly, FileBacked
  SnapshotsObjectStoreMode = "GCSAnonymousReadOnly"
  # SnapshotsRecoveryEnabled restores the state from a snapshot on the first start
  SnapshotsRecoveryEnabled = false
  # LogLevel is the log level of the node
  LogLevel = "{{Log.Level}}"

# Deployment describes the services running the node
[Deployment]
  # Name is the compose project name
  Name = "external-node"
  PostgresImage = "postgres:14"
  NodeImage = "matterlabs/external-node:latest"
  # VolumesDir is the host directory of the bind mounted state
  VolumesDir = "{{PathRWData}}"
  PostgresPassword = "{{PostgresPassword}}"
  PostgresMaxConnections = 200
  # HostIP is the interface the node ports are published on
  HostIP = "127.0.0.1"
  HealthcheckInterval = "1s"
  HealthcheckTimeout = "3s"
  HealthcheckRetries = 10
  # NodeFlags are extra command line flags of the node
  NodeFlags = []
`
