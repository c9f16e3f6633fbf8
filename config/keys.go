// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"

	// Top-level configuration keys
	ChainIDKey           = "chain-id"
	NetworkIDKey         = "network-id"
	BridgeAddressKey     = "bridge-address"
	AdminKey             = "admin"
	FinalityKey          = "finality"
	QuorumNumeratorKey   = "quorum-numerator"
	QuorumDenominatorKey = "quorum-denominator"
	DataDirKey           = "data-dir"
	EmitterCacheSizeKey  = "emitter-cache-size"
	MetricsNamespaceKey  = "metrics-namespace"
)
