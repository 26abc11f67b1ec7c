package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/credtrailhq/credtrail/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagToken string
	flagFmt   string
)

const defaultURL = "http://localhost:4400"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("credtrail version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("credtrail version %s-dev", version)
}

type configFile struct {
	// Flat format (legacy)
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "credtrail",
		Short:   "CredTrail CLI — provider credentialing from the terminal",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagToken != "" {
				opts = append(opts, client.WithToken(flagToken))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "CredTrail server URL (env: CREDTRAIL_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Access token (env: CREDTRAIL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newProviderCmd())
	rootCmd.AddCommand(newFacilityCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("CREDTRAIL_URL"); v != "" {
			flagURL = v
		}
	}
	if flagToken == "" {
		flagToken = os.Getenv("CREDTRAIL_TOKEN")
	}

	// Try config file for any remaining defaults.
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".credtrail", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	// Resolve from profiles if available, fall back to flat format
	resolvedURL := cfg.URL
	resolvedToken := cfg.Token
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok {
			if p.URL != "" {
				resolvedURL = p.URL
			}
			if p.Token != "" {
				resolvedToken = p.Token
			}
		}
	}
	if flagURL == defaultURL && resolvedURL != "" {
		flagURL = resolvedURL
	}
	if flagToken == "" && resolvedToken != "" {
		flagToken = resolvedToken
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
