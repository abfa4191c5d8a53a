package deploy

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag bound to a viper configuration key.
type (
	flagType interface {
		string | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var (
	stringFlags = []flagDef[string]{
		// Artifacts
		{"artifacts-path", "migration.artifacts-path", "", "Path to contracts.json or a directory of truffle artifacts"},

		// Constructor arguments (empty means built-in)
		{"gateway-address", "migration.gateway-address", "", "Override the gateway address passed to the constructor"},
		{"gas-service-address", "migration.gas-service-address", "", "Override the gas service address passed to the constructor"},

		// Wallet
		{"wallet-private-key", "wallet.private-key", "", "Deployer wallet private key"},

		{"output-dir", "output-dir", "", "Directory for deployments.json and output.yaml"},
	}

	boolFlags = []flagDef[bool]{
		{"wait-for-confirmation", "migration.wait-for-confirmation", true, "Wait for the deployment receipt"},
	}

	networkNames []string
)

func init() {
	if err := declareFlags(CMD.Flags(), stringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(CMD.Flags(), boolFlags); err != nil {
		panic(err)
	}
	CMD.Flags().StringSliceVar(&networkNames, "network", nil, "Network to deploy to, repeatable (default: migration.networks)")

	CMD.AddCommand(addressesCmd)
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](fs *pflag.FlagSet, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(fs, flag); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag and binds it to a viper configuration key.
// The type parameter T determines the flag type (string or bool).
func declareFlag[T flagType](fs *pflag.FlagSet, flag flagDef[T]) error {
	switch v := any(flag.defaultValue).(type) {
	case string:
		fs.String(flag.name, v, flag.description)
	case bool:
		fs.Bool(flag.name, v, flag.description)
	}
	return viper.BindPFlag(flag.viperKey, fs.Lookup(flag.name))
}
