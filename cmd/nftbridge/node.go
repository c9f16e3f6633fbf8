// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/log"

	"github.com/luxfi/nftbridge/admin"
	"github.com/luxfi/nftbridge/bridge"
	"github.com/luxfi/nftbridge/config"
	"github.com/luxfi/nftbridge/nft"
	"github.com/luxfi/nftbridge/registry"
	"github.com/luxfi/nftbridge/replay"
	"github.com/luxfi/nftbridge/warp"
)

// node is a bridge engine over the durable state in the data directory
type node struct {
	db       database.Database
	emitters *registry.Registry
	guard    *replay.Guard
	bridge   *bridge.Bridge
}

func openNode(cmd *cobra.Command) (*node, error) {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return nil, err
	}

	db, err := badgerdb.New(cfg.DataDir, nil, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.DataDir, err)
	}

	logger := log.NewLogger("nftbridge")
	transport, err := warp.NewTransport(
		cfg.TransportConfig(),
		nil,
		warp.NewStaticValidatorState(),
		warp.NewDBBackend(db),
		logger,
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	n := &node{
		db:       db,
		emitters: registry.New(db, cfg.EmitterCacheSize),
		guard:    replay.New(db),
	}
	n.bridge, err = bridge.New(bridge.Config{
		ChainID:   cfg.ChainID,
		Finality:  cfg.Finality,
		Transport: transport,
		Assets:    nft.NewRegistry(),
		Emitters:  n.emitters,
		Guard:     n.guard,
		Admin:     admin.New(cfg.AdminAddress()),
		Metrics:   bridge.NewMetrics(cfg.MetricsNamespace, prometheus.NewRegistry()),
		Log:       logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return n, nil
}

func (n *node) Close() error {
	return n.db.Close()
}
