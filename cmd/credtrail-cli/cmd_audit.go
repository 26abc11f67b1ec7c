package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/credtrailhq/credtrail/client"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}
	cmd.AddCommand(auditListCmd())
	cmd.AddCommand(auditShowCmd())
	return cmd
}

func auditListCmd() *cobra.Command {
	var table, record, action, actor, since, until string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries with rendered summaries",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			if offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --offset must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.AuditQueryOptions{
				Table:    table,
				RecordID: record,
				Action:   action,
				Actor:    actor,
				Limit:    limit,
				Offset:   offset,
			}
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
			entries, _, err := apiClient.Audit.Query(context.Background(), opts)
			if err != nil {
				fatal("query audit", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "TABLE", "ACTOR", "CREATED_AT", "SUMMARY"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{
						fmt.Sprintf("%d", e.ID),
						e.Action,
						e.TableName,
						e.ActorEmail,
						e.CreatedAt.Format("2006-01-02 15:04:05"),
						e.Summary,
					})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, e := range entries {
					fmt.Println(e.ID)
				}
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Filter by table name")
	cmd.Flags().StringVar(&record, "record", "", "Filter by record ID")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action (INSERT|UPDATE|DELETE)")
	cmd.Flags().StringVar(&actor, "actor", "", "Filter by actor email")
	cmd.Flags().StringVar(&since, "since", "", "Entries at or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Entries before this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func auditShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one audit entry with its field-level diff",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fatal("parse id", err)
			}
			detail, err := apiClient.Audit.Detail(context.Background(), id)
			if err != nil {
				fatal("get audit entry", err)
			}
			if flagFmt == "table" {
				fmt.Printf("%s\n\n", detail.Summary)
				headers := []string{"FIELD", "OLD", "NEW"}
				var rows [][]string
				for _, f := range detail.Fields {
					if !f.Changed {
						continue
					}
					rows = append(rows, []string{f.Field, diffValue(f.Old), diffValue(f.New)})
				}
				formatTable(headers, rows)
				return
			}
			output(detail, fmt.Sprintf("%d", detail.ID))
		},
	}
}

// diffValue renders a diff side for table cells. Absent sides (INSERT has
// no old values, DELETE no new ones) print as a dash.
func diffValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}

// parseTimeFlag accepts RFC3339 or a bare date. Bare dates mean midnight UTC.
func parseTimeFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not RFC3339 or YYYY-MM-DD", s)
	}

	return t, nil
}
