package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/crypto"
	"github.com/credtrailhq/credtrail/internal/dbpool"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/store"
)

// testHexKey is a valid 64-char hex string (32 bytes) for test encryption.
const testHexKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testActor stands in for the acting user on store mutations.
var testActor = models.Actor{Email: "tester@credtrail.test", RequestID: "test-req"}

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := dbpool.NewPool(context.Background(), dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

func newCryptoService(t *testing.T) *crypto.Service {
	t.Helper()

	provider, err := crypto.NewStaticProvider(testHexKey)
	if err != nil {
		t.Fatalf("creating static provider: %v", err)
	}

	return crypto.NewService(provider)
}

// setupTestBase creates a Base against the shared pool and registers a
// cleanup that empties every domain table. Tests run sequentially, so the
// wipe gives each test a blank slate.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	t.Cleanup(func() {
		ctx := context.Background()
		// Delete in dependency order; children cascade off providers anyway.
		for _, table := range []string{
			"audit_logs", "communication_logs", "missing_documents",
			"credentialing_phases", "state_licenses", "providers",
			"facilities", "users",
		} {
			env.pool.Exec(ctx, "DELETE FROM "+table) //nolint:errcheck // best-effort cleanup
		}
	})

	return store.Base{Pool: env.pool, Log: env.log, Crypto: newCryptoService(t)}
}

// mustCreateProvider seeds one provider for tests that need a parent row.
func mustCreateProvider(t *testing.T, base store.Base, name, npi string) *models.Provider {
	t.Helper()

	req := models.CreateProviderRequest{Name: name, NPINumber: npi}
	if err := req.Validate(); err != nil {
		t.Fatalf("validating provider request: %v", err)
	}

	p, err := store.NewProviderStore(base).CreateProvider(context.Background(), req, testActor)
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	return p
}
