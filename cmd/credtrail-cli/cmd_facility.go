package main

import (
	"context"
	"fmt"
	"os"

	"github.com/credtrailhq/credtrail/client"
	"github.com/spf13/cobra"
)

func newFacilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "facility",
		Aliases: []string{"facilities"},
		Short:   "Browse facilities",
	}
	cmd.AddCommand(facilityListCmd())
	cmd.AddCommand(facilityGetCmd())
	return cmd
}

func facilityListCmd() *cobra.Command {
	var state, status, query string
	var tier, limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facilities",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			if offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --offset must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.FacilityListOptions{
				State:  state,
				Status: status,
				Tier:   tier,
				Query:  query,
				Limit:  limit,
				Offset: offset,
			}
			facilities, _, err := apiClient.Facilities.List(context.Background(), opts)
			if err != nil {
				fatal("list facilities", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "NAME", "STATE", "TIER", "STATUS"}
				var rows [][]string
				for _, f := range facilities {
					rows = append(rows, []string{f.ID, f.Name, f.State, fmt.Sprintf("%d", f.Tier), f.Status})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, f := range facilities {
					fmt.Println(f.ID)
				}
				return
			}
			output(facilities, "")
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Filter by state code")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&tier, "tier", 0, "Filter by tier")
	cmd.Flags().StringVar(&query, "query", "", "Substring match on name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func facilityGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a facility by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			f, err := apiClient.Facilities.Get(context.Background(), args[0])
			if err != nil {
				fatal("get facility", err)
			}
			output(f, f.ID)
		},
	}
}
