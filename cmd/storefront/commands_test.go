package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEnv points the CLI at a private token file with a fast mock.
func newTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN_DB_PATH", filepath.Join(t.TempDir(), "session.db"))
	t.Setenv("JWT_SECRET", "test-secret-key-for-cli-tests-0123456789")
	t.Setenv("LOG_LEVEL", "error")
	for _, key := range []string{"LATENCY_READ_MS", "LATENCY_SEARCH_MS", "LATENCY_AUTH_MS", "LATENCY_WRITE_MS"} {
		t.Setenv(key, "1")
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestCLI_Categories(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "Electronics")
	assert.Contains(t, out, "Home & Garden")
}

func TestCLI_ShopsJSON(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "--json", "shops", "--lat", "40.7128", "--lng", "-74.0060")
	require.NoError(t, err)

	var shops []catalog.Shop
	require.NoError(t, json.Unmarshal([]byte(out), &shops))
	require.Len(t, shops, 4)
	assert.Equal(t, "1", shops[0].ID)
	assert.Equal(t, "0.0 km", shops[0].DistanceFormatted)
}

func TestCLI_ShopsRejectsNaNLocation(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "--mock", "shops", "--lat", "NaN", "--lng", "0")

	assert.ErrorIs(t, err, gateway.ErrValidation)
	assert.ErrorContains(t, err, "valid coordinates")
}

func TestCLI_ShopsQuery(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "--json", "shops", "--query", "fresh", "--lat", "40.7831", "--lng", "-73.9712")
	require.NoError(t, err)

	var shops []catalog.Shop
	require.NoError(t, json.Unmarshal([]byte(out), &shops))
	require.Len(t, shops, 3)
	assert.Equal(t, "6", shops[0].ID)
}

func TestCLI_Register(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "register", "--phone", "2222222222", "--name", "Ann Buyer")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ann Buyer")

	_, _, err = run(t, "--mock", "register", "--phone", "1234567890", "--name", "Someone")
	assert.ErrorIs(t, err, gateway.ErrValidation)
}

func TestCLI_SearchNoResults(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "search", "zzz-nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No results")
}

func TestCLI_NotFoundIsError(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "--mock", "shop", "3")

	assert.ErrorContains(t, err, "shop not found")
}

func TestCLI_ProductDetail(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "product", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "iPhone 15 Pro")
	assert.Contains(t, out, "Sold by TechWorld Electronics")
	assert.Contains(t, out, "Related:")
}

func TestCLI_SessionRequiresLogin(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "--mock", "me")

	assert.ErrorContains(t, err, "unauthorized")
}

func TestCLI_LoginPersistsAcrossRuns(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "--mock", "login", "--phone", "5555555555")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Admin User (admin)")

	out, _, err = run(t, "--mock", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "admin")

	out, _, err = run(t, "--mock", "admin", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending approvals")

	_, _, err = run(t, "--mock", "logout")
	require.NoError(t, err)

	_, _, err = run(t, "--mock", "me")
	assert.Error(t, err)
}

func TestCLI_LoginRequiresCredential(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "--mock", "login")

	assert.ErrorContains(t, err, "--phone or --firebase-token is required")
}

func TestCLI_ExpiredSessionPrompts(t *testing.T) {
	newTestEnv(t)
	_, _, err := run(t, "--mock", "login", "--phone", "9876543210")
	require.NoError(t, err)

	// a different secret makes the stored token unreadable
	t.Setenv("JWT_SECRET", "another-secret-key-for-cli-tests-0123456")
	_, errOut, err := run(t, "--mock", "seller", "shop")

	assert.Error(t, err)
	assert.Contains(t, errOut, "session expired")
}
