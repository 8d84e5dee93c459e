package main

import (
	enconfig "github.com/0xPolygon/cdk-enconfig"
	"github.com/urfave/cli/v2"
)

func versionCmd(cliCtx *cli.Context) error {
	return enconfig.PrintVersion(cliCtx.App.Writer)
}
