package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/credtrailhq/credtrail/client"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}
	cmd.AddCommand(adminStatsCmd())
	cmd.AddCommand(adminUserListCmd())
	cmd.AddCommand(adminUserCreateCmd())
	cmd.AddCommand(adminPurgeCmd())
	cmd.AddCommand(adminExportCmd())
	return cmd
}

func adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show credentialing pipeline statistics",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			if flagFmt == "table" {
				rows := [][]string{
					{"Providers", fmt.Sprintf("%d", resp.ProvidersTotal)},
					{"Facilities", fmt.Sprintf("%d", resp.FacilitiesTotal)},
					{"Licenses", fmt.Sprintf("%d", resp.LicensesTotal)},
					{"Open Documents", fmt.Sprintf("%d", resp.OpenDocuments)},
					{"Upcoming Follow-ups", fmt.Sprintf("%d", resp.UpcomingFollowUps)},
					{"Audit Entries (24h)", fmt.Sprintf("%d", resp.AuditLast24h)},
				}
				for status, n := range resp.ProvidersByStatus {
					rows = append(rows, []string{"Providers: " + status, fmt.Sprintf("%d", n)})
				}
				formatTable([]string{"METRIC", "VALUE"}, rows)
				return
			}
			output(resp, "")
		},
	}
}

func adminUserListCmd() *cobra.Command {
	var role, active string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "user-list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.UserListOptions{
				Role:   role,
				Limit:  limit,
				Offset: offset,
			}
			if active != "" {
				b, err := strconv.ParseBool(active)
				if err != nil {
					fatal("parse --active", err)
				}
				opts.Active = &b
			}
			users, _, err := apiClient.Admin.ListUsers(context.Background(), opts)
			if err != nil {
				fatal("list users", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "EMAIL", "NAME", "ROLE", "ACTIVE", "LAST_LOGIN"}
				var rows [][]string
				for _, u := range users {
					rows = append(rows, []string{
						u.ID,
						u.Email,
						u.FullName,
						u.Role,
						strconv.FormatBool(u.Active),
						timeOrDash(u.LastLoginAt),
					})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, u := range users {
					fmt.Println(u.ID)
				}
				return
			}
			output(users, "")
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (viewer|coordinator|admin)")
	cmd.Flags().StringVar(&active, "active", "", "Filter by active state (true|false)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func adminUserCreateCmd() *cobra.Command {
	var password, fullName, role string
	cmd := &cobra.Command{
		Use:   "user-create <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreateUserRequest{
				Email:    args[0],
				Password: password,
				FullName: fullName,
				Role:     role,
			}
			u, err := apiClient.Admin.CreateUser(context.Background(), req)
			if err != nil {
				fatal("create user", err)
			}
			output(u, u.ID)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Initial password")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&role, "role", "viewer", "Role: viewer|coordinator|admin")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func adminPurgeCmd() *cobra.Command {
	var retentionDays int
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge audit entries older than the retention window",
		Run: func(cmd *cobra.Command, args []string) {
			purged, err := apiClient.Admin.PurgeAudit(context.Background(), retentionDays)
			if err != nil {
				fatal("purge audit", err)
			}
			output(map[string]int{"purged": purged}, fmt.Sprintf("%d", purged))
		},
	}
	cmd.Flags().IntVar(&retentionDays, "retention-days", 365, "Delete entries older than N days")
	return cmd
}

func adminExportCmd() *cobra.Command {
	var format, out, table, action, since, until string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the audit log as JSONL or CSV",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.AuditQueryOptions{Table: table, Action: action}
			if since != "" {
				t, err := parseTimeFlag(since)
				if err != nil {
					fatal("parse --since", err)
				}
				opts.Since = &t
			}
			if until != "" {
				t, err := parseTimeFlag(until)
				if err != nil {
					fatal("parse --until", err)
				}
				opts.Until = &t
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					fatal("create output file", err)
				}
				defer f.Close()
				w = f
			}
			n, err := apiClient.Admin.ExportAudit(context.Background(), opts, format, w)
			if err != nil {
				fatal("export audit", err)
			}
			if out != "" {
				fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", n, out)
			}
		},
	}
	cmd.Flags().StringVar(&format, "export-format", client.ExportFormatJSONL, "Export format: jsonl|csv")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&table, "table", "", "Filter by table name")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action")
	cmd.Flags().StringVar(&since, "since", "", "Entries at or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Entries before this time (RFC3339 or YYYY-MM-DD)")
	return cmd
}
