package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/still-asking/sapn-generator/internal/allocation"
	"github.com/still-asking/sapn-generator/internal/core/identifier"
)

type parsedIdentifier struct {
	Identifier  string `json:"identifier" yaml:"identifier"`
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`
	Sequence    int    `json:"sequence" yaml:"sequence"`
}

func newNextCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "next <CCC> <SS>",
		Short: "Show the next identifier of a partition without assigning it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(c.cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer store.Close()

			svc := allocation.NewService(allocation.NewAllocator(store, nil), nil)
			status, err := svc.Inspect(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.format, status, func(w io.Writer) error {
				next := status.Next
				if next == "" {
					next = "none (partition full)"
				}
				_, err := fmt.Fprintf(w, "partition %s/%s: %d assigned, highest %d, next %s, %d remaining\n",
					status.Category, status.Subcategory, status.Assigned, status.Highest, next, status.Remaining)
				return err
			})
		},
	}
}

func newParseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <identifier>",
		Short: "Validate an identifier and print its parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, seq, err := identifier.Parse(args[0])
			if err != nil {
				return err
			}
			out := parsedIdentifier{
				Identifier:  args[0],
				Category:    key.Category,
				Subcategory: key.Subcategory,
				Sequence:    seq,
			}
			return render(cmd.OutOrStdout(), c.format, out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "category %s, subcategory %s, sequence %d\n", out.Category, out.Subcategory, out.Sequence)
				return err
			})
		},
	}
}
