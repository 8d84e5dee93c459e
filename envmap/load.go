package envmap

import (
	"os"

	"github.com/0xPolygon/cdk-enconfig/contracts"
	"github.com/0xPolygon/cdk-enconfig/db"
	"github.com/0xPolygon/cdk-enconfig/log"
)

// Env is the complete external node configuration read from the environment
type Env struct {
	Contracts contracts.Contracts
	Runtime   RuntimeParams
}

// Entries exports e
func (e Env) Entries() []Entry {
	return Export(e.Contracts, e.Runtime)
}

// ImportEnv reads the runtime parameters and the contract addresses of m
func ImportEnv(m Mapping) (Env, error) {
	runtime, err := ImportRuntime(m)
	if err != nil {
		return Env{}, err
	}
	c, err := Import(m)
	if err != nil {
		return Env{}, err
	}
	return Env{Contracts: c, Runtime: runtime}, nil
}

// Load imports the configuration from KEY=VALUE pairs
func Load(environ []string) (Env, error) {
	return load(MappingFromEnviron(environ))
}

func load(m Mapping) (Env, error) {
	env, err := ImportEnv(m)
	if err != nil {
		return Env{}, err
	}
	log.Infow("external node environment loaded",
		"database", db.Redact(env.Runtime.DatabaseURL),
		"l1ChainID", env.Runtime.L1ChainID,
		"l2ChainID", env.Runtime.L2ChainID,
		"mainNode", env.Runtime.MainNodeURL,
	)
	return env, nil
}

// Snapshot reads the process environment once. It's the only place of the
// module allowed to read environment variables: the config loader and
// LoadFromEnviron receive the returned Mapping instead of calling os.Getenv.
func Snapshot() Mapping {
	return MappingFromEnviron(os.Environ())
}

// LoadFromEnviron imports a Snapshot of the process environment
func LoadFromEnviron() (Env, error) {
	return load(Snapshot())
}
