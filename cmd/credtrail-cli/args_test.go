package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds a root command tree identical to main() but with
// PersistentPreRun stubbed out so the API client is never initialised.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "credtrail",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Skip client initialisation in tests.
		},
	}
	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "")

	root.AddCommand(newLoginCmd())
	root.AddCommand(newProviderCmd())
	root.AddCommand(newFacilityCmd())
	root.AddCommand(newAuditCmd())
	root.AddCommand(newAdminCmd())
	return root
}

// --- provider ---

func TestProviderCreateArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing name", []string{"provider", "create", "--npi", "1234567893"}},
		{"two names", []string{"provider", "create", "Dr. A", "Dr. B", "--npi", "1234567893"}},
		{"missing required npi flag", []string{"provider", "create", "Dr. A"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestProviderExactArgs1Commands(t *testing.T) {
	subcommands := []string{"get", "update", "delete", "history"}
	for _, sub := range subcommands {
		t.Run(sub, func(t *testing.T) {
			argsValidator := cobra.ExactArgs(1)
			if err := argsValidator(nil, []string{"provider-id"}); err != nil {
				t.Errorf("%s: one arg should be accepted: %v", sub, err)
			}
			if err := argsValidator(nil, []string{}); err == nil {
				t.Errorf("%s: zero args should be rejected", sub)
			}
			if err := argsValidator(nil, []string{"a", "b"}); err == nil {
				t.Errorf("%s: two args should be rejected", sub)
			}
		})
	}
}

func TestProviderListFlagDefaults(t *testing.T) {
	cmd := providerListCmd()

	cases := []struct {
		flag string
		want string
	}{
		{"status", ""},
		{"specialty", ""},
		{"query", ""},
		{"limit", "0"},
		{"offset", "0"},
	}
	for _, tc := range cases {
		f := cmd.Flags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("--%s flag not found", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("--%s default: got %q, want %q", tc.flag, f.DefValue, tc.want)
		}
	}
}

func TestProviderCreateFlagRegistration(t *testing.T) {
	cmd := providerCreateCmd()
	for _, name := range []string{"npi", "specialty", "email", "phone", "status", "dea", "notes"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on provider create", name)
		}
	}
}

func TestProviderHistoryLimitDefault(t *testing.T) {
	cmd := providerHistoryCmd()
	f := cmd.Flags().Lookup("limit")
	if f == nil {
		t.Fatal("--limit flag not found on provider history")
	}
	if f.DefValue != "50" {
		t.Errorf("default limit: got %q, want %q", f.DefValue, "50")
	}
}

// --- facility ---

func TestFacilityGetArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing id", []string{"facility", "get"}},
		{"two ids", []string{"facility", "get", "a", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestFacilityListFlagDefaults(t *testing.T) {
	cmd := facilityListCmd()

	flags := []string{"state", "status", "tier", "query", "limit", "offset"}
	for _, name := range flags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on facility list", name)
		}
	}
}

func TestFacilityAlias(t *testing.T) {
	cmd := newFacilityCmd()
	found := false
	for _, a := range cmd.Aliases {
		if a == "facilities" {
			found = true
		}
	}
	if !found {
		t.Error("facility command should accept the plural alias")
	}
}

// --- audit ---

func TestAuditShowArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing id", []string{"audit", "show"}},
		{"two ids", []string{"audit", "show", "1", "2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestAuditListFlagRegistration(t *testing.T) {
	cmd := auditListCmd()
	for _, name := range []string{"table", "record", "action", "actor", "since", "until", "limit", "offset"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on audit list", name)
		}
	}
}

// --- admin ---

func TestAdminPurgeRetentionDefault(t *testing.T) {
	cmd := adminPurgeCmd()
	f := cmd.Flags().Lookup("retention-days")
	if f == nil {
		t.Fatal("--retention-days flag not found on admin purge")
	}
	if f.DefValue != "365" {
		t.Errorf("default retention: got %q, want %q", f.DefValue, "365")
	}
}

func TestAdminUserCreateRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing email", []string{"admin", "user-create", "--password", "pw", "--name", "A"}},
		{"missing password", []string{"admin", "user-create", "a@b.com", "--name", "A"}},
		{"missing name", []string{"admin", "user-create", "a@b.com", "--password", "pw"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestAdminUserCreateRoleDefault(t *testing.T) {
	cmd := adminUserCreateCmd()
	f := cmd.Flags().Lookup("role")
	if f == nil {
		t.Fatal("--role flag not found on admin user-create")
	}
	if f.DefValue != "viewer" {
		t.Errorf("default role: got %q, want %q", f.DefValue, "viewer")
	}
}

func TestAdminExportFormatDefault(t *testing.T) {
	cmd := adminExportCmd()
	f := cmd.Flags().Lookup("export-format")
	if f == nil {
		t.Fatal("--export-format flag not found on admin export")
	}
	if f.DefValue != "jsonl" {
		t.Errorf("default export format: got %q, want %q", f.DefValue, "jsonl")
	}
}

// --- login ---

func TestLoginArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing email", []string{"login"}},
		{"two emails", []string{"login", "a@b.com", "c@d.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

// --- global format flag ---

func TestFormatFlagDefault(t *testing.T) {
	root := newTestRoot()
	f := root.PersistentFlags().Lookup("format")
	if f == nil {
		t.Fatal("--format flag not found")
	}
	if f.DefValue != "json" {
		t.Errorf("default format: got %q, want %q", f.DefValue, "json")
	}
}

// TestFormatFlagValues verifies that accepted format values are "json",
// "table", and "quiet" — the only strings the output functions branch on.
func TestFormatFlagValues(t *testing.T) {
	resetFlags(t)
	for _, f := range []string{"json", "table", "quiet"} {
		flagFmt = f
		// output() must not panic for any of these values.
		captureStdout(t, func() { output(map[string]string{"k": "v"}, "id") })
	}
}

func TestURLFlagDefault(t *testing.T) {
	root := newTestRoot()
	f := root.PersistentFlags().Lookup("url")
	if f == nil {
		t.Fatal("--url flag not found")
	}
	if f.DefValue != defaultURL {
		t.Errorf("default url: got %q, want %q", f.DefValue, defaultURL)
	}
}
