package main

import (
	"context"
	"fmt"
	"os"

	"github.com/credtrailhq/credtrail/client"
	"github.com/spf13/cobra"
)

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "provider",
		Aliases: []string{"providers"},
		Short:   "Manage providers",
	}
	cmd.AddCommand(providerListCmd())
	cmd.AddCommand(providerGetCmd())
	cmd.AddCommand(providerCreateCmd())
	cmd.AddCommand(providerUpdateCmd())
	cmd.AddCommand(providerDeleteCmd())
	cmd.AddCommand(providerHistoryCmd())
	return cmd
}

func providerListCmd() *cobra.Command {
	var status, specialty, query string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List providers",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			if offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --offset must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.ProviderListOptions{
				Status:    status,
				Specialty: specialty,
				Query:     query,
				Limit:     limit,
				Offset:    offset,
			}
			providers, _, err := apiClient.Providers.List(context.Background(), opts)
			if err != nil {
				fatal("list providers", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "NAME", "NPI", "SPECIALTY", "STATUS"}
				var rows [][]string
				for _, p := range providers {
					rows = append(rows, []string{p.ID, p.Name, p.NPINumber, p.Specialty, p.Status})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, p := range providers {
					fmt.Println(p.ID)
				}
				return
			}
			output(providers, "")
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&specialty, "specialty", "", "Filter by specialty")
	cmd.Flags().StringVar(&query, "query", "", "Substring match on name or NPI")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func providerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a provider by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p, err := apiClient.Providers.Get(context.Background(), args[0])
			if err != nil {
				fatal("get provider", err)
			}
			output(p, p.ID)
		},
	}
}

func providerCreateCmd() *cobra.Command {
	var npi, specialty, email, phone, status, dea, notes string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a provider",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreateProviderRequest{
				Name:      args[0],
				NPINumber: npi,
				Specialty: specialty,
				Email:     email,
				Phone:     phone,
				Status:    status,
				DEANumber: dea,
				Notes:     notes,
			}
			p, err := apiClient.Providers.Create(context.Background(), req)
			if err != nil {
				fatal("create provider", err)
			}
			output(p, p.ID)
		},
	}
	cmd.Flags().StringVar(&npi, "npi", "", "NPI number (10 digits)")
	cmd.Flags().StringVar(&specialty, "specialty", "", "Specialty")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&status, "status", "", "Initial status")
	cmd.Flags().StringVar(&dea, "dea", "", "DEA number")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("npi")
	return cmd
}

func providerUpdateCmd() *cobra.Command {
	var name, npi, specialty, email, phone, status, dea, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a provider",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.UpdateProviderRequest{}
			if name != "" {
				req.Name = &name
			}
			if npi != "" {
				req.NPINumber = &npi
			}
			if specialty != "" {
				req.Specialty = &specialty
			}
			if email != "" {
				req.Email = &email
			}
			if phone != "" {
				req.Phone = &phone
			}
			if status != "" {
				req.Status = &status
			}
			if dea != "" {
				req.DEANumber = &dea
			}
			if notes != "" {
				req.Notes = &notes
			}
			p, err := apiClient.Providers.Update(context.Background(), args[0], req)
			if err != nil {
				fatal("update provider", err)
			}
			output(p, p.ID)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Provider name")
	cmd.Flags().StringVar(&npi, "npi", "", "NPI number")
	cmd.Flags().StringVar(&specialty, "specialty", "", "Specialty")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&dea, "dea", "", "DEA number")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func providerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a provider and its dependent records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Providers.Delete(context.Background(), args[0]); err != nil {
				fatal("delete provider", err)
			}
			fmt.Println("deleted")
		},
	}
}

func providerHistoryCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show the change timeline for a provider",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, _, err := apiClient.Providers.History(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("get history", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "SUMMARY", "ACTOR", "CREATED_AT"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{
						fmt.Sprintf("%d", e.ID),
						e.Action,
						e.Summary,
						e.ActorEmail,
						e.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}
