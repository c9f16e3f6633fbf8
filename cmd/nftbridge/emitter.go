// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/luxfi/geth/common"
)

var errInvalidAddress = errors.New("invalid address")

func newEmitterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emitter",
		Short: "Manage trusted emitters",
	}
	cmd.AddCommand(newEmitterRegisterCmd())
	cmd.AddCommand(newEmitterListCmd())
	return cmd
}

func newEmitterRegisterCmd() *cobra.Command {
	var (
		caller  string
		chainID uint16
		emitter string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Trust an emitter for a source chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if !common.IsHexAddress(caller) {
				return fmt.Errorf("%w: caller %q", errInvalidAddress, caller)
			}
			emitterAddr, err := parseRecipient(emitter)
			if err != nil {
				return fmt.Errorf("%w: emitter %q", errInvalidAddress, emitter)
			}

			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, n.Close())
			}()

			if err := n.bridge.RegisterEmitter(common.HexToAddress(caller), chainID, emitterAddr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chain %d -> %s\n", chainID, emitterAddr.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "", "Address of the administrator")
	cmd.Flags().Uint16Var(&chainID, "chain", 0, "Source chain id")
	cmd.Flags().StringVar(&emitter, "emitter", "", "Emitter address on the source chain")
	_ = cmd.MarkFlagRequired("caller")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("emitter")
	return cmd
}

func newEmitterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trusted emitters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, n.Close())
			}()

			emitters, err := n.emitters.Emitters()
			if err != nil {
				return err
			}
			for _, chainID := range slices.Sorted(maps.Keys(emitters)) {
				fmt.Fprintf(cmd.OutOrStdout(), "chain %d -> %s\n", chainID, emitters[chainID].Hex())
			}
			return nil
		},
	}
}
