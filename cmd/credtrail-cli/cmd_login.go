package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLoginCmd() *cobra.Command {
	var password string
	var noSave bool
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the access token",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					fatal("read password", err)
				}
				password = strings.TrimSpace(line)
			}
			pair, err := apiClient.Auth.Login(context.Background(), args[0], password)
			if err != nil {
				fatal("login", err)
			}
			if !noSave {
				cfgPath, err := saveToken(flagURL, pair.AccessToken)
				if err != nil {
					fatal("save token", err)
				}
				fmt.Fprintf(os.Stderr, "Token saved to %s\n", cfgPath)
			}
			output(pair, pair.AccessToken)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print the token without updating the config file")
	return cmd
}

// saveToken upserts the access token into the active profile of
// ~/.credtrail/config.yaml, creating the file when missing. The profile's
// URL is set from the current resolved URL only if the profile has none,
// so logging in against --url does not clobber a configured server.
func saveToken(url, token string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".credtrail")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	cfgPath := filepath.Join(dir, "config.yaml")

	var cfg profilesFile
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &cfg) // a corrupt file is rebuilt below
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profileConfig{}
	}
	name := cfg.ActiveProfile
	if name == "" {
		name = "default"
	}
	p := cfg.Profiles[name]
	if p.URL == "" {
		p.URL = url
	}
	p.Token = token
	cfg.Profiles[name] = p
	cfg.ActiveProfile = name

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
