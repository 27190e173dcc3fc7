package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSum(t *testing.T) {
	out, err := run(t, "sum", "1", "2", "3.5")
	require.NoError(t, err)
	assert.Equal(t, "6.5\n", out)
}

func TestSort(t *testing.T) {
	out, err := run(t, "sort", "3", "∞", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n+Inf\n", out)

	out, err = run(t, "sort", "-d", "3", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestPow(t *testing.T) {
	out, err := run(t, "--fmt", "%.6g", "pow", "2", "3", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "8\n1.41421\n", out)

	_, err = run(t, "pow", "--", "-2", "0.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside domain of pow")
}

func TestPrecision(t *testing.T) {
	out, err := run(t, "--prec", "200", "--fmt", "%.40f", "sum", "0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.3000000000000000000000000000000000000000\n", out)
}

func TestParseError(t *testing.T) {
	_, err := run(t, "sum", "1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parsing "x"`)

	_, err = run(t, "sum")
	assert.Error(t, err)
}
