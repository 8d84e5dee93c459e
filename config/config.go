package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xPolygon/cdk-enconfig/contracts"
	"github.com/0xPolygon/cdk-enconfig/db"
	"github.com/0xPolygon/cdk-enconfig/deployment"
	"github.com/0xPolygon/cdk-enconfig/envmap"
	"github.com/0xPolygon/cdk-enconfig/log"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagSaveConfigPath is the flag to save the final configuration file
	FlagSaveConfigPath = "save-config-path"
	// FlagDisableDefaultConfigVars is the flag to force all variables to be set on config-files
	FlagDisableDefaultConfigVars = "disable-default-config-vars"
	// FlagAllowDeprecatedFields is the flag to allow deprecated fields
	FlagAllowDeprecatedFields = "allow-deprecated-fields"
	// FlagMinConfig is the flag to print only the mandatory vars
	FlagMinConfig = "min"
	// FlagOutputFile is the flag for the output file
	FlagOutputFile = "output"

	EnvVarPrefix       = "CDK_EN"
	ConfigType         = "toml"
	SaveConfigFileName = "en_config.toml"

	DefaultCreationFilePermissions = os.FileMode(0600)

	bridgeAddrMovedToBridges = "Bridge addresses must be set in the Contracts.Bridges section"
	snapshotsFlagDeprecated  = "Node.EnableSnapshotsRecovery is deprecated, " +
		"use Node.SnapshotsRecoveryEnabled instead"
)

// DeprecatedField is a config key that is not read anymore
type DeprecatedField struct {
	// If the field name ends with a dot means that match a section
	FieldNamePattern string
	Reason           string
}

var deprecatedFieldsOnConfig = []DeprecatedField{
	{
		FieldNamePattern: "Contracts.L1.L1Erc20BridgeAddr",
		Reason:           bridgeAddrMovedToBridges,
	},
	{
		FieldNamePattern: "Contracts.L1.L1WethBridgeAddr",
		Reason:           bridgeAddrMovedToBridges,
	},
	{
		FieldNamePattern: "Contracts.L2.L2Erc20BridgeAddr",
		Reason:           bridgeAddrMovedToBridges,
	},
	{
		FieldNamePattern: "Contracts.L2.L2WethBridgeAddr",
		Reason:           bridgeAddrMovedToBridges,
	},
	{
		FieldNamePattern: "Node.EnableSnapshotsRecovery",
		Reason:           snapshotsFlagDeprecated,
	},
}

// DeprecatedFieldsError lists the deprecated keys found on the config files
type DeprecatedFieldsError struct {
	// key is the rule and the value is the field's name that matches the rule
	Fields map[DeprecatedField][]string
}

func NewErrDeprecatedFields() *DeprecatedFieldsError {
	return &DeprecatedFieldsError{
		Fields: make(map[DeprecatedField][]string),
	}
}

func (e *DeprecatedFieldsError) AddDeprecatedField(fieldName string, rule DeprecatedField) {
	e.Fields[rule] = append(e.Fields[rule], fieldName)
}

func (e *DeprecatedFieldsError) Error() string {
	res := "found deprecated fields:"
	for _, rule := range deprecatedFieldsOnConfig {
		if fieldsMatches, ok := e.Fields[rule]; ok {
			res += fmt.Sprintf("\n\t- %s: %s", rule.Reason, strings.Join(fieldsMatches, ", "))
		}
	}
	return res
}

/*
Config represents the configuration of an external node deployment
The file is [TOML format]

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// Configure Log level of this tool
	Log log.Config `mapstructure:"Log"`

	// Contracts are the addresses of the rollup contracts, they are validated by Validate
	Contracts contracts.Source `mapstructure:"Contracts"`

	// Database composes the connection string of the node when Node.DatabaseURL is empty
	Database db.Config `mapstructure:"Database"`

	// Node are the runtime parameters of the external node
	Node envmap.RuntimeParams `mapstructure:"Node"`

	// Deployment describes the services running the node
	Deployment DeploymentConfig `mapstructure:"Deployment"`
}

// Load loads the configuration files named by the cli flags. env provides the
// CDK_EN_* overrides, usually an envmap.Snapshot.
func Load(ctx *cli.Context, env envmap.Mapping) (*Config, error) {
	configFilePath := ctx.StringSlice(FlagCfg)
	filesData, err := readFiles(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading files:  Err:%w", err)
	}
	saveConfigPath := ctx.String(FlagSaveConfigPath)
	defaultConfigVars := !ctx.Bool(FlagDisableDefaultConfigVars)
	allowDeprecatedFields := ctx.Bool(FlagAllowDeprecatedFields)
	return LoadFile(filesData, env, saveConfigPath, defaultConfigVars, allowDeprecatedFields)
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		fileContent, err := readFileToString(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %s. Err:%w", file, err)
		}
		fileExtension := getFileExtension(file)
		if fileExtension != ConfigType {
			fileContent, err = convertFileToToml(fileContent, fileExtension)
			if err != nil {
				return nil, fmt.Errorf("error converting file: %s from %s to TOML. Err:%w", file, fileExtension, err)
			}
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}

func getFileExtension(fileName string) string {
	return fileName[strings.LastIndex(fileName, ".")+1:]
}

// LoadFileFromString decodes an already rendered configuration, the values of
// env named <EnvVarPrefix>_<SECTION>_<KEY> override the ones of the document
func LoadFileFromString(configFileData string, configType string, env envmap.Mapping) (*Config, error) {
	cfg := &Config{}
	err := loadString(cfg, configFileData, configType, env, EnvVarPrefix)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfigToFile writes cfg as TOML to fullPath
func SaveConfigToFile(cfg *Config, fullPath string) error {
	marshaled, err := toml.Marshal(cfg)
	if err != nil {
		log.Errorf("Can't marshal config to toml. Err: %v", err)
		return err
	}
	return SaveDataToFile(fullPath, "final config file", marshaled)
}

// SaveDataToFile writes data to fullPath, reason is only used for logging
func SaveDataToFile(fullPath, reason string, data []byte) error {
	log.Infof("Writing %s to: %s", reason, fullPath)
	err := os.WriteFile(fullPath, data, DefaultCreationFilePermissions)
	if err != nil {
		err = fmt.Errorf("error writing %s to file %s. Err: %w", reason, fullPath, err)
		log.Error(err)
		return err
	}
	return nil
}

// LoadFile renders the default values and files, in that order, and decodes the result
func LoadFile(files []FileData, env envmap.Mapping, saveConfigPath string,
	setDefaultVars bool, allowDeprecatedFields bool) (*Config, error) {
	log.Infof("Loading configuration: saveConfigPath: %s, setDefaultVars: %t, allowDeprecatedFields: %t",
		saveConfigPath, setDefaultVars, allowDeprecatedFields)
	fileData := make([]FileData, 0, len(files)+3) //nolint:mnd
	if setDefaultVars {
		log.Info("Setting default vars")
		fileData = append(fileData, FileData{Name: "default_mandatory_vars", Content: DefaultMandatoryVars})
	}
	fileData = append(fileData, FileData{Name: "default_vars", Content: DefaultVars})
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	renderer := NewRenderer(fileData, EnvVarPrefix, env)

	renderedCfg, err := renderer.Render()
	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, fmt.Sprintf("%s.merged", SaveConfigFileName))
		err = SaveDataToFile(fullPath, "merged config file", []byte(renderedCfg))
		if err != nil {
			return nil, err
		}
	}
	cfg, err := LoadFileFromString(renderedCfg, ConfigType, env)
	// If allowDeprecatedFields is true, we ignore the deprecated fields
	if err != nil && allowDeprecatedFields {
		var customErr *DeprecatedFieldsError
		if errors.As(err, &customErr) {
			log.Warnf("detected deprecated fields: %s", err.Error())
			err = nil
		}
	}

	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, SaveConfigFileName)
		err = SaveConfigToFile(cfg, fullPath)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func loadString(cfg *Config, configData string, configType string,
	env envmap.Mapping, envPrefix string) error {
	v := viper.New()
	v.SetConfigType(configType)
	err := v.ReadConfig(bytes.NewBuffer([]byte(configData)))
	if err != nil {
		return err
	}
	overrideFromEnv(v, env, envPrefix)
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
	}

	err = v.Unmarshal(&cfg, decodeHooks...)
	if err != nil {
		return err
	}
	return checkDeprecatedFields(v.AllKeys())
}

// overrideFromEnv sets every key of v that has a <envPrefix>_<KEY> entry in env,
// dots replaced by '_'. Only keys present on the document can be overridden.
func overrideFromEnv(v *viper.Viper, env envmap.Mapping, envPrefix string) {
	replacer := strings.NewReplacer(".", "_")
	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(envPrefix + "_" + replacer.Replace(key))
		if value, ok := env.Lookup(envKey); ok {
			v.Set(key, value)
		}
	}
}

func checkDeprecatedFields(keysOnConfig []string) error {
	err := NewErrDeprecatedFields()
	for _, key := range keysOnConfig {
		forbiddenInfo := getDeprecatedField(key)
		if forbiddenInfo != nil {
			err.AddDeprecatedField(key, *forbiddenInfo)
		}
	}
	if len(err.Fields) > 0 {
		return err
	}
	return nil
}

func getDeprecatedField(fieldName string) *DeprecatedField {
	fieldName = strings.ToLower(fieldName)
	for _, deprecatedField := range deprecatedFieldsOnConfig {
		pattern := strings.ToLower(deprecatedField.FieldNamePattern)
		if pattern == fieldName {
			return &deprecatedField
		}
		// If the field name ends with a dot, it means FieldNamePattern*
		if strings.HasSuffix(pattern, ".") && strings.HasPrefix(fieldName, pattern) {
			return &deprecatedField
		}
	}
	return nil
}

// Validate checks the contract addresses and the node runtime parameters
func (c *Config) Validate() error {
	_, err := c.Env()
	return err
}

// Runtime returns the node parameters, with the database connection string
// taken from the Database section when Node.DatabaseURL is empty
func (c *Config) Runtime() (envmap.RuntimeParams, error) {
	p := c.Node
	if p.DatabaseURL == "" && c.Database.Host != "" {
		p.DatabaseURL = c.Database.URL()
		if c.Database.MaxConns < 0 || c.Database.MaxConns > math.MaxInt32 {
			return envmap.RuntimeParams{}, fmt.Errorf("section Database, MaxConns %w: %d",
				db.ErrInvalidPoolSize, c.Database.MaxConns)
		}
		if c.Database.MaxConns > 0 {
			p.DatabasePoolSize = uint32(c.Database.MaxConns)
		}
	}
	return p, nil
}

// Env returns the validated configuration of the node
func (c *Config) Env() (envmap.Env, error) {
	parsed, err := contracts.Parse(c.Contracts)
	if err != nil {
		return envmap.Env{}, err
	}
	runtime, err := c.Runtime()
	if err != nil {
		return envmap.Env{}, fmt.Errorf("invalid node configuration: %w", err)
	}
	if err := runtime.Validate(); err != nil {
		return envmap.Env{}, fmt.Errorf("invalid node configuration: %w", err)
	}
	return envmap.Env{Contracts: parsed, Runtime: runtime}, nil
}

// Profile returns the deployment running the node described by c
func (c *Config) Profile() (*deployment.Profile, error) {
	env, err := c.Env()
	if err != nil {
		return nil, err
	}
	return deployment.Default(env, c.Deployment.Options())
}
