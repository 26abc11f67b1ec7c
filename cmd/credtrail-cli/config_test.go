package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, token, fmt string }{flagURL, flagToken, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagToken = orig.token
		flagFmt = orig.fmt
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// TestResolveConfigEnvURL verifies that CREDTRAIL_URL overrides the default URL.
func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_TOKEN")
	setEnv(t, "CREDTRAIL_URL", "http://env-server:9090")

	// Point HOME at a temp dir so there's no config file to interfere.
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://env-server:9090")
	}
}

// TestResolveConfigEnvToken verifies that CREDTRAIL_TOKEN sets the token.
func TestResolveConfigEnvToken(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	setEnv(t, "CREDTRAIL_TOKEN", "token-from-env")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	if flagToken != "token-from-env" {
		t.Errorf("flagToken: got %q, want %q", flagToken, "token-from-env")
	}
}

// TestResolveConfigFlagTakesPrecedenceOverEnv verifies that an explicit flag
// value is not overridden by the environment variable.
func TestResolveConfigFlagTakesPrecedenceOverEnv(t *testing.T) {
	resetFlags(t)
	setEnv(t, "CREDTRAIL_URL", "http://env-server:9090")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	// Simulate flag being explicitly set to a non-default value.
	flagURL = "http://explicit-flag:1234"
	resolveConfig()

	if flagURL != "http://explicit-flag:1234" {
		t.Errorf("explicit flag should win; got %q", flagURL)
	}
}

// TestResolveConfigFlatYAML verifies that a flat-format config file (url/token
// at the top level) is read correctly.
func TestResolveConfigFlatYAML(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	unsetEnv(t, "CREDTRAIL_TOKEN")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgContent := "url: http://from-file:8080\ntoken: file-token\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://from-file:8080" {
		t.Errorf("flagURL from flat config: got %q, want %q", flagURL, "http://from-file:8080")
	}
	if flagToken != "file-token" {
		t.Errorf("flagToken from flat config: got %q, want %q", flagToken, "file-token")
	}
}

// TestResolveConfigProfileYAML verifies that profile-based config is resolved
// using the active_profile key.
func TestResolveConfigProfileYAML(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	unsetEnv(t, "CREDTRAIL_TOKEN")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgContent := `
active_profile: staging
profiles:
  default:
    url: http://default:4400
    token: default-token
  staging:
    url: http://staging:5500
    token: staging-token
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://staging:5500" {
		t.Errorf("flagURL from profile: got %q, want %q", flagURL, "http://staging:5500")
	}
	if flagToken != "staging-token" {
		t.Errorf("flagToken from profile: got %q, want %q", flagToken, "staging-token")
	}
}

// TestResolveConfigDefaultProfile verifies that when active_profile is empty
// the "default" profile is used.
func TestResolveConfigDefaultProfile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	unsetEnv(t, "CREDTRAIL_TOKEN")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgContent := `
profiles:
  default:
    url: http://default-profile:5050
    token: default-profile-token
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://default-profile:5050" {
		t.Errorf("flagURL from default profile: got %q, want %q", flagURL, "http://default-profile:5050")
	}
}

// TestResolveConfigMissingFile verifies that a missing config file is silently
// ignored and flag defaults are unchanged.
func TestResolveConfigMissingFile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	unsetEnv(t, "CREDTRAIL_TOKEN")

	// HOME has no .credtrail directory.
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultURL
	flagToken = ""
	resolveConfig() // must not panic

	if flagURL != defaultURL {
		t.Errorf("flagURL should stay default; got %q", flagURL)
	}
	if flagToken != "" {
		t.Errorf("flagToken should stay empty; got %q", flagToken)
	}
}

// TestResolveConfigInvalidYAML verifies that a malformed config file is
// silently ignored.
func TestResolveConfigInvalidYAML(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "CREDTRAIL_URL")
	unsetEnv(t, "CREDTRAIL_TOKEN")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(":::not-yaml:::"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	flagToken = ""
	resolveConfig() // must not panic

	if flagURL != defaultURL {
		t.Errorf("flagURL should stay default on bad YAML; got %q", flagURL)
	}
}

// TestResolveConfigEnvNotOverriddenByFile verifies that env vars take
// precedence over config file values.
func TestResolveConfigEnvNotOverriddenByFile(t *testing.T) {
	resetFlags(t)
	setEnv(t, "CREDTRAIL_TOKEN", "env-wins-token")
	unsetEnv(t, "CREDTRAIL_URL")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgContent := "url: http://file:9000\ntoken: file-token\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	flagToken = ""
	resolveConfig()

	// Env token should win over file token.
	if flagToken != "env-wins-token" {
		t.Errorf("flagToken should be env value; got %q", flagToken)
	}
}

// TestSaveTokenCreatesConfig verifies that saveToken writes a fresh profile
// file when none exists.
func TestSaveTokenCreatesConfig(t *testing.T) {
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	path, err := saveToken("http://localhost:4400", "new-token")
	if err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".credtrail", "config.yaml")) {
		t.Errorf("unexpected config path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg profilesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ActiveProfile != "default" {
		t.Errorf("active_profile: got %q, want %q", cfg.ActiveProfile, "default")
	}
	p := cfg.Profiles["default"]
	if p.Token != "new-token" {
		t.Errorf("token: got %q, want %q", p.Token, "new-token")
	}
	if p.URL != "http://localhost:4400" {
		t.Errorf("url: got %q, want %q", p.URL, "http://localhost:4400")
	}
}

// TestSaveTokenPreservesProfile verifies that saveToken updates the active
// profile's token without clobbering its URL or the other profiles.
func TestSaveTokenPreservesProfile(t *testing.T) {
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".credtrail")
	if err := os.MkdirAll(cfgDir, 0o700); err != nil {
		t.Fatal(err)
	}
	existing := `
active_profile: staging
profiles:
  default:
    url: http://default:4400
    token: default-token
  staging:
    url: http://staging:5500
    token: stale-token
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(existing), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := saveToken("http://cli-flag:9999", "fresh-token"); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfgDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var cfg profilesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}

	staging := cfg.Profiles["staging"]
	if staging.Token != "fresh-token" {
		t.Errorf("staging token: got %q, want %q", staging.Token, "fresh-token")
	}
	if staging.URL != "http://staging:5500" {
		t.Errorf("staging URL should be preserved; got %q", staging.URL)
	}
	def := cfg.Profiles["default"]
	if def.Token != "default-token" {
		t.Errorf("default profile should be untouched; got token %q", def.Token)
	}
}
