package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func stubTerminal(t *testing.T, tty bool, password string, err error) {
	t.Helper()
	origRead, origTTY := readPassword, isTerminal
	readPassword = func(int) ([]byte, error) { return []byte(password), err }
	isTerminal = func(int) bool { return tty }
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTTY })
}

func hashes(out *bytes.Buffer) []string {
	return strings.Fields(out.String())
}

func TestRun_Arguments(t *testing.T) {
	var out, errOut bytes.Buffer

	code := run([]string{"secret", "other"}, bcrypt.MinCost, 0, &out, &errOut)

	require.Equal(t, 0, code, errOut.String())
	got := hashes(&out)
	require.Len(t, got, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got[0]), []byte("secret")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got[1]), []byte("other")))
}

func TestRun_InvalidPasswordIsSkipped(t *testing.T) {
	var out, errOut bytes.Buffer

	code := run([]string{strings.Repeat("x", 73), "secret"}, bcrypt.MinCost, 0, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Len(t, hashes(&out), 1)
	assert.Contains(t, errOut.String(), "skipping password")
}

func TestRun_TerminalPrompt(t *testing.T) {
	stubTerminal(t, true, "secret", nil)
	var out, errOut bytes.Buffer

	code := run(nil, bcrypt.MinCost, 0, &out, &errOut)

	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, errOut.String(), "Password: ")
	got := hashes(&out)
	require.Len(t, got, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got[0]), []byte("secret")))
}

func TestRun_TerminalReadError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("inappropriate ioctl"))
	var out, errOut bytes.Buffer

	assert.Equal(t, 1, run(nil, bcrypt.MinCost, 0, &out, &errOut))
	assert.Empty(t, out.String())
}

func TestRun_NoArgumentsWithoutTerminal(t *testing.T) {
	stubTerminal(t, false, "", nil)
	var out, errOut bytes.Buffer

	assert.Equal(t, 2, run(nil, bcrypt.MinCost, 0, &out, &errOut))
	assert.Contains(t, errOut.String(), "usage")
}
