package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Phase-Platform/phase/internal/crud"
	"github.com/Phase-Platform/phase/internal/db"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "Print every row of an entity as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}
}

func runList(cmd *cobra.Command, entity string) error {
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	res, err := crud.NewRegistry(gdb).Resource(entity)
	if err != nil {
		return err
	}
	rows, err := res.List(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, rows)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity> <id>",
		Short: "Print one row as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1])
		},
	}
}

func runShow(cmd *cobra.Command, entity, id string) error {
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	res, err := crud.NewRegistry(gdb).Resource(entity)
	if err != nil {
		return err
	}
	row, err := res.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printJSON(cmd, row)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
