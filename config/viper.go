// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/nftbridge/registry"
	"github.com/luxfi/nftbridge/warp"
)

// AddFlags registers every configuration key on fs
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Path to a JSON configuration file")
	fs.Uint16(ChainIDKey, 0, "Chain id of the local chain")
	fs.Uint32(NetworkIDKey, defaultNetworkID, "Network id carried by every warp message")
	fs.String(BridgeAddressKey, "", "32-byte hex address of the local bridge")
	fs.String(AdminKey, "", "Hex address allowed to register emitters")
	fs.Uint8(FinalityKey, defaultFinality, "Finality level requested for outbound messages")
	fs.Uint64(QuorumNumeratorKey, warp.DefaultQuorumNumerator, "Quorum numerator for envelope verification")
	fs.Uint64(QuorumDenominatorKey, warp.DefaultQuorumDenominator, "Quorum denominator for envelope verification")
	fs.String(DataDirKey, defaultDataDir, "Directory of the bridge database")
	fs.Int(EmitterCacheSizeKey, registry.DefaultCacheSize, "Number of emitter registrations kept in memory")
	fs.String(MetricsNamespaceKey, defaultMetricsNamespace, "Prometheus metrics namespace")
}

// BuildViper builds the viper instance. All config keys may be provided via
// flag, environment variable or config file.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	// Map flag names to env var names. Flags are capitalized, and hyphens are replaced with underscores.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for key := range defaultValues() {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	for _, key := range []string{ChainIDKey, BridgeAddressKey, AdminKey} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	if err := bindChangedFlags(v, fs); err != nil {
		return nil, err
	}

	if filename := v.GetString(ConfigFileKey); filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}
	}
	return v, nil
}

// bindChangedFlags binds only the flags set on the command line so that
// unset flags do not shadow the config file.
func bindChangedFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || !f.Changed {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	return err
}

func SetDefaultConfigValues(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}

// BuildConfig constructs the bridge config using Viper.
// The following precedence order is used. Each item takes precedence over the item below it:
//  1. Flags
//  2. Environment variables
//  3. Config file
//  4. Defaults
func BuildConfig(v *viper.Viper) (Config, error) {
	SetDefaultConfigValues(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal viper config: %w", err)
	}
	return cfg, nil
}

func NewConfig(v *viper.Viper) (Config, error) {
	cfg, err := BuildConfig(v)
	if err != nil {
		return cfg, err
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}
