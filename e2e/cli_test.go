package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masego-dev/clubctl/internal/api"
	"github.com/masego-dev/clubctl/internal/factory"
)

var pngBytes = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// cliRunner manages CLI binary execution. Each runner holds its own session
// file, so separate runners act as separate logged-in users.
type cliRunner struct {
	binaryPath  string
	serverURL   string
	sessionFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "clubctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/clubctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:  binaryPath,
		serverURL:   serverURL,
		sessionFile: filepath.Join(t.TempDir(), "session"),
	}
}

// asUser derives a runner sharing the binary but holding a fresh session
func (r *cliRunner) asUser(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{
		binaryPath:  r.binaryPath,
		serverURL:   r.serverURL,
		sessionFile: filepath.Join(t.TempDir(), "session"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--session-file", r.sessionFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		ReceiptService: app.ReceiptService,
		TokenService:   app.TokenService,
		Storage:        app.Storage,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    struct {
		Email     string `json:"email"`
		FirstName string `json:"fname"`
		Surname   string `json:"sname"`
		Role      string `json:"role"`
	} `json:"user"`
}

type rosterEntry struct {
	ID          string `json:"id"`
	FirstName   string `json:"fname"`
	Surname     string `json:"sname"`
	TeamName    string `json:"team_name"`
	IsTeamAdmin bool   `json:"is_team_admin"`
}

type receiptResponse struct {
	ID       string `json:"id"`
	PlayerID string `json:"player"`
	Note     string `json:"note"`
	Verified bool   `json:"is_verified"`
}

type userEntry struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type scanResponse struct {
	FirstName     string `json:"fname"`
	Surname       string `json:"sname"`
	TeamName      string `json:"team_name"`
	PaymentStatus string `json:"payment_status"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Helpers

func writePhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))
	return path
}

func personArgs(email, idNum string) []string {
	return []string{
		"--email", email,
		"--password", "secret123",
		"--fname", "Alice",
		"--sname", "Smith",
		"--id-num", idNum,
		"--contact", "71234567",
		"--dob", "1990-06-15",
		"--nationality", "Botswana",
	}
}

func (r *cliRunner) register(t *testing.T, role string, extra []string, email, idNum string) {
	t.Helper()

	args := append([]string{"register", role}, personArgs(email, idNum)...)
	args = append(args, extra...)
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	require.Equal(t, "Registration successful", msg.Message)
}

func (r *cliRunner) login(t *testing.T, email string) loginResponse {
	t.Helper()

	output, err := r.run("login", "--email", email, "--password", "secret123")
	require.NoError(t, err, "output: %s", output)

	var resp loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_RegisterLoginWhoami(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	cli.register(t, "member", nil, "alice@example.com", "900101")

	login := cli.login(t, "alice@example.com")
	assert.Equal(t, "member", login.User.Role)
	assert.NotEmpty(t, login.Access)
	assert.NotEmpty(t, login.Refresh)

	// The session survives into the next invocation
	output, err := cli.run("whoami")
	require.NoError(t, err, "output: %s", output)

	var who struct {
		Role      string `json:"role"`
		Dashboard string `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &who))
	assert.Equal(t, "member", who.Role)
	assert.NotEmpty(t, who.Dashboard)

	// Logout clears it
	output, err = cli.run("logout")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("whoami")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Not logged in")
}

func TestCLI_FullClubFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	admin := newCLIRunner(t, ts.addr)
	captain := admin.asUser(t)
	player := admin.asUser(t)
	umpire := admin.asUser(t)

	photo := writePhoto(t)
	teamFlags := []string{"--team", "Thunder Cats", "--group", "A", "--photo", photo}

	admin.register(t, "club-admin", nil, "admin@example.com", "900100")
	captain.register(t, "team-admin", teamFlags, "captain@example.com", "900101")
	player.register(t, "player", teamFlags, "player@example.com", "900102")
	umpire.register(t, "umpire", []string{"--certification-id", "CERT-1"}, "ump@example.com", "900103")

	admin.login(t, "admin@example.com")
	captain.login(t, "captain@example.com")
	playerLogin := player.login(t, "player@example.com")
	umpire.login(t, "ump@example.com")
	assert.Equal(t, "player", playerLogin.User.Role)

	// The captain reads the player's id off the roster
	output, err := captain.run("roster")
	require.NoError(t, err, "output: %s", output)

	var roster []rosterEntry
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	require.Len(t, roster, 2)

	var playerID string
	for _, entry := range roster {
		if !entry.IsTeamAdmin {
			playerID = entry.ID
		}
	}
	require.NotEmpty(t, playerID)

	// Upload a receipt for the player
	receiptFile := filepath.Join(t.TempDir(), "receipt.png")
	require.NoError(t, os.WriteFile(receiptFile, pngBytes, 0o600))

	output, err = captain.run("receipts", "upload",
		"--player", playerID, "--file", receiptFile, "--note", "march fees")
	require.NoError(t, err, "output: %s", output)

	var uploaded receiptResponse
	require.NoError(t, json.Unmarshal([]byte(output), &uploaded))
	assert.False(t, uploaded.Verified)
	assert.Equal(t, "march fees", uploaded.Note)

	// Club admin verifies it
	output, err = admin.run("receipts", "verify", uploaded.ID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Receipt verified")

	// The player's QR pass now resolves to a media URL
	output, err = player.run("qr")
	require.NoError(t, err, "output: %s", output)

	var qr messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &qr))
	require.True(t, strings.HasPrefix(qr.Message, "/media/"), "got %q", qr.Message)

	// Download the pass and hand it to the umpire's scanner
	resp, err := http.Get(ts.addr + qr.Message)
	require.NoError(t, err)
	passData, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)

	passFile := filepath.Join(t.TempDir(), "pass.json")
	require.NoError(t, os.WriteFile(passFile, passData, 0o600))

	output, err = umpire.run("scan", "--image", passFile)
	require.NoError(t, err, "output: %s", output)

	var scan scanResponse
	require.NoError(t, json.Unmarshal([]byte(output), &scan))
	assert.Equal(t, "Paid", scan.PaymentStatus)
	assert.Equal(t, "Thunder Cats", scan.TeamName)

	// The admin's listing shows everyone but the admin
	output, err = admin.run("users")
	require.NoError(t, err, "output: %s", output)

	var users []userEntry
	require.NoError(t, json.Unmarshal([]byte(output), &users))
	assert.Len(t, users, 3)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Authenticated command without a session
	output, err := cli.run("roster")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "log in")

	// Wrong password surfaces the backend message
	cli.register(t, "member", nil, "alice@example.com", "900101")
	output, err = cli.run("login", "--email", "alice@example.com", "--password", "wrong")
	assert.Error(t, err)
	assert.Contains(t, output, "No active account found with the given credentials")

	// A member has no dashboard permissions for listings
	cli.login(t, "alice@example.com")
	output, err = cli.run("users")
	assert.Error(t, err)
	assert.Contains(t, output, "You do not have permission to perform this action.")
}
