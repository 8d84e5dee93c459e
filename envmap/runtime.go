package envmap

import (
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// Defaults applied by ImportRuntime to missing optional variables
const (
	DefaultDatabasePoolSize         = 50
	DefaultHTTPPort                 = 3060
	DefaultWSPort                   = 3061
	DefaultHealthcheckPort          = 3081
	DefaultStateCachePath           = "/db/state_keeper"
	DefaultMerkleTreePath           = "/db/tree"
	DefaultSnapshotsObjectStoreMode = ObjectStoreModeGCSAnonymousReadOnly
	DefaultLogLevel                 = "info"
)

// ObjectStoreMode selects how snapshots are fetched from the object store
type ObjectStoreMode string

const (
	ObjectStoreModeGCS                   ObjectStoreMode = "GCS"
	ObjectStoreModeGCSWithCredentialFile ObjectStoreMode = "GCSWithCredentialFile"
	ObjectStoreModeGCSAnonymousReadOnly  ObjectStoreMode = "GCSAnonymousReadOnly"
	ObjectStoreModeFileBacked            ObjectStoreMode = "FileBacked"
)

var objectStoreModes = []ObjectStoreMode{
	ObjectStoreModeGCS,
	ObjectStoreModeGCSWithCredentialFile,
	ObjectStoreModeGCSAnonymousReadOnly,
	ObjectStoreModeFileBacked,
}

// RuntimeParams are the non contract parameters of an external node
type RuntimeParams struct {
	// DatabaseURL is the postgres connection string
	DatabaseURL string `mapstructure:"DatabaseURL"`
	// DatabasePoolSize is the maximum number of connections to the database
	DatabasePoolSize uint32 `mapstructure:"DatabasePoolSize"`
	// HTTPPort is the port of the HTTP JSON-RPC API
	HTTPPort uint16 `mapstructure:"HTTPPort"`
	// WSPort is the port of the WebSocket JSON-RPC API
	WSPort uint16 `mapstructure:"WSPort"`
	// HealthcheckPort is the port of the healthcheck endpoint
	HealthcheckPort uint16 `mapstructure:"HealthcheckPort"`
	// EthClientURL is the L1 RPC URL
	EthClientURL string `mapstructure:"EthClientURL"`
	// MainNodeURL is the URL of the main node the state is replicated from
	MainNodeURL string `mapstructure:"MainNodeURL"`
	L1ChainID   uint64 `mapstructure:"L1ChainID"`
	L2ChainID   uint64 `mapstructure:"L2ChainID"`
	// StateCachePath is where the state keeper cache is stored
	StateCachePath string `mapstructure:"StateCachePath"`
	// MerkleTreePath is where the merkle tree is stored
	MerkleTreePath string `mapstructure:"MerkleTreePath"`
	// SnapshotsObjectStoreBucketBaseURL is the bucket snapshots are recovered from
	SnapshotsObjectStoreBucketBaseURL string          `mapstructure:"SnapshotsObjectStoreBucketBaseURL"`
	SnapshotsObjectStoreMode          ObjectStoreMode `mapstructure:"SnapshotsObjectStoreMode" jsonschema:"enum=GCS,enum=GCSWithCredentialFile,enum=GCSAnonymousReadOnly,enum=FileBacked"` //nolint:lll
	// SnapshotsRecoveryEnabled makes the node recover its state from a snapshot on first start
	SnapshotsRecoveryEnabled bool `mapstructure:"SnapshotsRecoveryEnabled"`
	// LogLevel is the log level specification of the node
	LogLevel string `mapstructure:"LogLevel"`
}

// DefaultRuntimeParams returns the params with every optional value set to its default
func DefaultRuntimeParams() RuntimeParams {
	return RuntimeParams{
		DatabasePoolSize:         DefaultDatabasePoolSize,
		HTTPPort:                 DefaultHTTPPort,
		WSPort:                   DefaultWSPort,
		HealthcheckPort:          DefaultHealthcheckPort,
		StateCachePath:           DefaultStateCachePath,
		MerkleTreePath:           DefaultMerkleTreePath,
		SnapshotsObjectStoreMode: DefaultSnapshotsObjectStoreMode,
		LogLevel:                 DefaultLogLevel,
	}
}

func parseObjectStoreMode(v string) (ObjectStoreMode, error) {
	for _, mode := range objectStoreModes {
		if v == string(mode) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown object store mode, expected one of %v", objectStoreModes)
}

func checkURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", v)
	}
	return nil
}

func checkLogLevel(v string) error {
	_, err := zapcore.ParseLevel(v)
	return err
}

// Validate applies to p the checks ImportRuntime applies to the environment
func (p RuntimeParams) Validate() error {
	_, err := ImportRuntime(ToMapping(ExportRuntime(p)))
	return err
}
