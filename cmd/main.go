package main

import (
	"os"

	enconfig "github.com/0xPolygon/cdk-enconfig"
	"github.com/0xPolygon/cdk-enconfig/config"
	"github.com/0xPolygon/cdk-enconfig/log"
	"github.com/urfave/cli/v2"
)

const appName = "cdk-enconfig"

var (
	configFileFlag = cli.StringSliceFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration file(s)",
		Required: true,
	}
	saveConfigFlag = cli.StringFlag{
		Name:     config.FlagSaveConfigPath,
		Aliases:  []string{"s"},
		Usage:    "Save final configuration into to the indicated path (name: en_config.toml)",
		Required: false,
	}
	disableDefaultConfigVars = cli.BoolFlag{
		Name:     config.FlagDisableDefaultConfigVars,
		Aliases:  []string{"d"},
		Usage:    "Disable default configuration variables, all of them must be defined on config files",
		Required: false,
	}
	allowDeprecatedFields = cli.BoolFlag{
		Name:     config.FlagAllowDeprecatedFields,
		Usage:    "Allow that config-files contains deprecated fields",
		Required: false,
	}
	outputFileFlag = cli.StringFlag{
		Name:     config.FlagOutputFile,
		Aliases:  []string{"o"},
		Usage:    "Write the result to `FILE` instead of the standard output",
		Required: false,
	}
	minConfigFlag = cli.BoolFlag{
		Name:     config.FlagMinConfig,
		Usage:    "Print only the variables without a default value",
		Required: false,
	}
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Configuration and deployment descriptor of a rollup external node"
	app.Version = enconfig.Version
	configFlags := []cli.Flag{
		&configFileFlag,
		&saveConfigFlag,
		&disableDefaultConfigVars,
		&allowDeprecatedFields,
	}
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:   "validate",
			Usage:  "Load the configuration files and check the contracts and node parameters",
			Action: validateCmd,
			Flags:  configFlags,
		},
		{
			Name:   "env",
			Usage:  "Print the environment variables of the external node",
			Action: envCmd,
			Flags:  append(configFlags, &outputFileFlag),
		},
		{
			Name:   "check-env",
			Usage:  "Check that the process environment is a valid external node environment",
			Action: checkEnvCmd,
		},
		{
			Name:   "compose",
			Usage:  "Render the docker compose file running the external node and its database",
			Action: composeCmd,
			Flags:  append(configFlags, &outputFileFlag),
		},
		{
			Name:   "proto",
			Usage:  "Encode the contract addresses with the protobuf schema",
			Action: protoCmd,
			Flags:  append(configFlags, &outputFileFlag),
		},
		{
			Name:   "schema",
			Usage:  "Print the JSON schema of the configuration file",
			Action: schemaCmd,
			Flags:  []cli.Flag{&outputFileFlag},
		},
		{
			Name:   "config",
			Usage:  "Print the default configuration",
			Action: configCmd,
			Flags:  []cli.Flag{&minConfigFlag},
		},
	}
	return app
}
