package main

import (
	"strings"

	"github.com/0xPolygon/cdk-enconfig/config"
	"github.com/urfave/cli/v2"
)

func configCmd(cliCtx *cli.Context) error {
	// String buffer to concatenate all the default config vars
	defaultConfig := strings.Builder{}
	defaultConfig.WriteString(config.DefaultMandatoryVars)
	if !cliCtx.Bool(config.FlagMinConfig) {
		defaultConfig.WriteString(config.DefaultVars)
		defaultConfig.WriteString(config.DefaultValues)
	}

	_, err := cliCtx.App.Writer.Write([]byte(defaultConfig.String()))
	return err
}
