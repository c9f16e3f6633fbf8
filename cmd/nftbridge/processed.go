// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/ids"
)

func newProcessedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "processed <message-id>",
		Short: "Report whether an inbound message was completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := ids.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid message id %q: %w", args[0], err)
			}

			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, n.Close())
			}()

			processed, err := n.guard.IsProcessed(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s processed: %t\n", id, processed)
			return nil
		},
	}
}
