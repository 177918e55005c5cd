package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Phase-Platform/phase/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for a user",
		Long:  "Signs a token with PHASE_AUTH_SECRET that authenticates RPC mutations as the given user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, args[0], ttl)
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func runToken(cmd *cobra.Command, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("--ttl must be positive")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.AuthSecret == "" {
		return errors.New("PHASE_AUTH_SECRET is not set")
	}
	token, err := auth.NewJWT(cfg.AuthSecret).Issue(userID, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
