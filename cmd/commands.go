package main

import (
	"fmt"
	"strings"

	enconfig "github.com/0xPolygon/cdk-enconfig"
	"github.com/0xPolygon/cdk-enconfig/config"
	"github.com/0xPolygon/cdk-enconfig/contracts"
	"github.com/0xPolygon/cdk-enconfig/db"
	"github.com/0xPolygon/cdk-enconfig/envmap"
	"github.com/0xPolygon/cdk-enconfig/log"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hermeznetwork/tracerr"
	"github.com/urfave/cli/v2"
)

func loadConfig(cliCtx *cli.Context) (*config.Config, error) {
	c, err := config.Load(cliCtx, envmap.Snapshot())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	log.Init(c.Log)

	if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}
	return c, nil
}

func logVersion() {
	log.Infow("Starting application", enconfig.GetVersion().LogFields()...)
}

// writeOutput writes data to the output file if the flag is set, to the app writer otherwise
func writeOutput(cliCtx *cli.Context, reason string, data []byte) error {
	if fullPath := cliCtx.String(config.FlagOutputFile); fullPath != "" {
		return config.SaveDataToFile(fullPath, reason, data)
	}
	_, err := cliCtx.App.Writer.Write(data)
	return err
}

func validateCmd(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	env, err := c.Env()
	if err != nil {
		return tracerr.Wrap(err)
	}
	log.Infow("configuration is valid",
		"database", db.Redact(env.Runtime.DatabaseURL),
		"l1ChainID", env.Runtime.L1ChainID,
		"l2ChainID", env.Runtime.L2ChainID,
		"governance", env.Contracts.L1.GovernanceAddr,
		"testnetPaymaster", env.Contracts.L2.TestnetPaymasterAddr,
	)
	return nil
}

func envCmd(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	env, err := c.Env()
	if err != nil {
		return err
	}
	lines := envmap.Environ(env.Entries())
	return writeOutput(cliCtx, "environment file", []byte(strings.Join(lines, "\n")+"\n"))
}

func checkEnvCmd(cliCtx *cli.Context) error {
	env, err := envmap.LoadFromEnviron()
	if err != nil {
		return tracerr.Wrap(err)
	}
	_, err = fmt.Fprintf(cliCtx.App.Writer, "environment is valid: %d variables\n", len(env.Entries()))
	return err
}

func composeCmd(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	profile, err := c.Profile()
	if err != nil {
		return err
	}
	if fullPath := cliCtx.String(config.FlagOutputFile); fullPath != "" {
		log.Infof("Writing compose file to: %s", fullPath)
		return profile.SaveCompose(fullPath)
	}
	return profile.WriteCompose(cliCtx.App.Writer)
}

func protoCmd(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	parsed, err := contracts.Parse(c.Contracts)
	if err != nil {
		return err
	}
	encoded := contracts.MarshalProto(parsed)
	if fullPath := cliCtx.String(config.FlagOutputFile); fullPath != "" {
		return config.SaveDataToFile(fullPath, "contracts message", encoded)
	}
	_, err = fmt.Fprintln(cliCtx.App.Writer, hexutil.Encode(encoded))
	return err
}

func schemaCmd(cliCtx *cli.Context) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	return writeOutput(cliCtx, "config schema", append(data, '\n'))
}
