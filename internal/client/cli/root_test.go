package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2024-01-19 at 18:00.
var testNow = time.Date(2024, 1, 19, 18, 0, 0, 0, time.Local)

type run struct {
	code   int
	stdout string
	stderr string
}

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, db: filepath.Join(t.TempDir(), "meuponto.db")}
}

func (h *harness) run(stdin string, args ...string) run {
	h.t.Helper()
	var out, errOut bytes.Buffer
	opts := Options{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
		Now: func() time.Time { return testNow },
	}
	code := Execute(context.Background(), append([]string{"-d", h.db}, args...), opts)
	return run{code: code, stdout: out.String(), stderr: errOut.String()}
}

const onboarding = "Ana\nAna Silva\nana@example.com\nsecret1\n01:30\n"

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	code := Execute(context.Background(), []string{"version"}, Options{Out: &out, Err: &out})

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Build version:")
}

func TestExecute_NoProfile(t *testing.T) {
	h := newHarness(t)

	r := h.run("", "status")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "No profile configured")

	r = h.run("", "clock")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "run 'init' first")
}

func TestExecute_InitClockStatusHistory(t *testing.T) {
	h := newHarness(t)

	r := h.run(onboarding, "init")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Profile created. Welcome, Ana!")

	r = h.run(onboarding, "init")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "A profile already exists")

	for _, at := range []string{"08:00", "12:00", "13:00", "17:00"} {
		r = h.run("", "clock", "--at", at)
		require.Equal(t, 0, r.code, r.stderr)
	}
	assert.Contains(t, r.stdout, "exit 17:00 recorded on 2024-01-19 (4/8), worked 08:00")

	r = h.run("", "status")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Hello, Ana!")
	assert.Contains(t, r.stdout, "100.0% of 8h goal")
	assert.Contains(t, r.stdout, "worked 08:00 / 08:00")
	assert.Contains(t, r.stdout, "Hour bank: +01:30")

	r = h.run("", "clock", "--at", "09:00", "--date", "2024-01-18")
	require.Equal(t, 0, r.code, r.stderr)

	r = h.run("", "history", "-n", "1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "2024-01-19 Friday")
	assert.NotContains(t, r.stdout, "2024-01-18")
	assert.Contains(t, r.stdout, "goal reached")
	assert.Contains(t, r.stdout, "events (4/8): 08:00 12:00 13:00 17:00")
}

func TestExecute_EditAndDelete(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("", "demo", "-y").code)

	r := h.run("", "edit", "2024-01-15", "08:00", "12:00", "13:00", "18:00")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "2024-01-15 updated: 08:00 12:00 13:00 18:00, worked 09:00")

	r = h.run("", "edit", "2024-02-01", "08:00")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "not found")

	r = h.run("", "edit", "2024-01-15", "8:00")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "use HH:MM")

	nine := strings.Fields("08:00 09:00 10:00 11:00 12:00 13:00 14:00 15:00 16:00")
	r = h.run("", append([]string{"edit", "2024-01-15"}, nine...)...)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "at most 8 events")

	r = h.run("n\n", "delete", "2024-01-16")
	assert.Equal(t, 2, r.code)

	r = h.run("y\n", "delete", "2024-01-16")
	require.Equal(t, 0, r.code, r.stderr)

	r = h.run("", "history")
	require.Equal(t, 0, r.code, r.stderr)
	assert.NotContains(t, r.stdout, "2024-01-16")
	assert.Contains(t, r.stdout, "2024-01-15")
}

func TestExecute_DemoBalance(t *testing.T) {
	h := newHarness(t)

	r := h.run("", "demo")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Demo data loaded.")

	r = h.run("", "status")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Hello, João!")
	// 2.5 + 40.5 worked - 44 expected
	assert.Contains(t, r.stdout, "Hour bank: -01:00")
	assert.Contains(t, r.stdout, "expected 44h")
	assert.Contains(t, r.stdout, "worked   40h 30min")
}

func TestExecute_ProfileAndReset(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run(onboarding, "init").code)

	// name, email kept; password kept; balance changed.
	r := h.run("Ana Maria\n\n\n-02:15\n", "profile")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Username: ana (cannot be changed)")
	assert.Contains(t, r.stdout, "Profile updated.")

	r = h.run("", "status")
	assert.Contains(t, r.stdout, "Hello, Ana!")
	assert.Contains(t, r.stdout, "Hour bank: -02:15")

	r = h.run("\nbad-email\n\n\n", "profile")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "validation")

	r = h.run("", "reset", "--yes")
	require.Equal(t, 0, r.code, r.stderr)

	r = h.run("", "status")
	assert.Contains(t, r.stdout, "No profile configured")
}

func TestExecute_Shell(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("", "demo", "-y").code)

	input := strings.Join([]string{
		"help",
		"clock 18:30",
		"status",
		"delete 2024-01-19",
		"n",
		"exit",
	}, "\n") + "\n"

	r := h.run(input, "shell")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "meuponto (joao.silva)> ")
	assert.Contains(t, r.stdout, "entry 18:30 recorded on 2024-01-19 (5/8)")
	assert.Contains(t, r.stdout, "Error: cancelled")
	assert.Contains(t, r.stdout, "Bye!")

	r = h.run("", "history", "-n", "1")
	assert.Contains(t, r.stdout, "events (5/8)")
}

func TestExecute_BadConfig(t *testing.T) {
	h := newHarness(t)

	r := h.run("", "--log-level", "loud", "status")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, config.ErrInvalidConfig.Error())
}

func TestExecute_LogFile(t *testing.T) {
	h := newHarness(t)
	logFile := filepath.Join(t.TempDir(), "mp.log")

	r := h.run("", "--log-file", logFile, "--log-level", "debug", "demo", "-y")
	require.Equal(t, 0, r.code, r.stderr)

	assert.FileExists(t, logFile)
}
