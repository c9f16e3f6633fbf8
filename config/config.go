// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads bridge node settings from flags, environment
// variables and an optional JSON file.
package config

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/nftbridge/registry"
	"github.com/luxfi/nftbridge/warp"
)

const (
	defaultNetworkID        = 1
	defaultFinality         = 1
	defaultDataDir          = ".nftbridge"
	defaultMetricsNamespace = "nftbridge"
)

var (
	errInvalidAdmin         = errors.New("invalid admin address")
	errInvalidBridgeAddress = errors.New("invalid bridge address")
	errInvalidQuorum        = errors.New("invalid quorum")
	errMissingDataDir       = errors.New("data directory not set")
)

// Config is the settings of one bridge node
type Config struct {
	ChainID           uint16 `mapstructure:"chain-id" json:"chain-id"`
	NetworkID         uint32 `mapstructure:"network-id" json:"network-id"`
	BridgeAddress     string `mapstructure:"bridge-address" json:"bridge-address"`
	Admin             string `mapstructure:"admin" json:"admin"`
	Finality          uint8  `mapstructure:"finality" json:"finality"`
	QuorumNumerator   uint64 `mapstructure:"quorum-numerator" json:"quorum-numerator"`
	QuorumDenominator uint64 `mapstructure:"quorum-denominator" json:"quorum-denominator"`
	DataDir           string `mapstructure:"data-dir" json:"data-dir"`
	EmitterCacheSize  int    `mapstructure:"emitter-cache-size" json:"emitter-cache-size"`
	MetricsNamespace  string `mapstructure:"metrics-namespace" json:"metrics-namespace"`
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.Admin) {
		return fmt.Errorf("%w: %q", errInvalidAdmin, c.Admin)
	}
	if c.BridgeAddress != "" && len(common.FromHex(c.BridgeAddress)) != common.HashLength {
		return fmt.Errorf("%w: %q", errInvalidBridgeAddress, c.BridgeAddress)
	}
	if c.QuorumDenominator == 0 || c.QuorumNumerator == 0 || c.QuorumNumerator > c.QuorumDenominator {
		return fmt.Errorf("%w: %d/%d", errInvalidQuorum, c.QuorumNumerator, c.QuorumDenominator)
	}
	if c.DataDir == "" {
		return errMissingDataDir
	}
	return nil
}

// AdminAddress returns the administrative principal
func (c *Config) AdminAddress() common.Address {
	return common.HexToAddress(c.Admin)
}

// EmitterAddress returns the 32-byte address of the local bridge
func (c *Config) EmitterAddress() common.Hash {
	return common.BytesToHash(common.FromHex(c.BridgeAddress))
}

// TransportConfig returns the warp transport settings
func (c *Config) TransportConfig() warp.Config {
	return warp.Config{
		NetworkID:         c.NetworkID,
		ChainID:           c.ChainID,
		Emitter:           c.EmitterAddress(),
		QuorumNumerator:   c.QuorumNumerator,
		QuorumDenominator: c.QuorumDenominator,
	}
}

func defaultValues() map[string]any {
	return map[string]any{
		NetworkIDKey:         defaultNetworkID,
		FinalityKey:          defaultFinality,
		QuorumNumeratorKey:   warp.DefaultQuorumNumerator,
		QuorumDenominatorKey: warp.DefaultQuorumDenominator,
		DataDirKey:           defaultDataDir,
		EmitterCacheSizeKey:  registry.DefaultCacheSize,
		MetricsNamespaceKey:  defaultMetricsNamespace,
	}
}
