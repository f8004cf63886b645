// SPDX-License-Identifier: MIT
package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shizuo-kaji/DeterminantalPointProcess/internal/cli"
)

// capture records exit codes instead of terminating the test binary.
func capture(t *testing.T) *[]int {
	t.Helper()
	var codes []int
	t.Cleanup(cli.SetExit(func(code int) { codes = append(codes, code) }))
	return &codes
}

func TestParseNumbers(t *testing.T) {
	codes := capture(t)
	assert.Equal(t, 42, cli.ParseInt(" 42"))
	assert.Equal(t, 0.01, cli.ParseFloat("1e-2"))
	assert.Equal(t, []int{4, 8, 2}, cli.ParseInts([]int{4}, "8, 2,"))
	assert.Empty(t, *codes)

	cli.ParseInt("x")
	cli.ParseFloat("1.2.3")
	cli.ParseNonNegInt("-1")
	assert.Equal(t, []int{cli.ErrorCodes["badint"], cli.ErrorCodes["badfloat"], cli.ErrorCodes["badint"]}, *codes)
}

func TestUsageAndFatal(t *testing.T) {
	codes := capture(t)
	cli.Usage(0)
	cli.UnknownFlag("--nope")
	cli.Fatal("badfile", os.ErrNotExist)
	cli.Fatal("no-such-kind", os.ErrNotExist)
	assert.Equal(t, []int{0, cli.ErrorCodes["opts"], cli.ErrorCodes["badfile"], cli.ErrorCodes["error"]}, *codes)
}

func TestAssertDirAndFile(t *testing.T) {
	codes := capture(t)
	root := t.TempDir()

	dir := cli.AssertDir(filepath.Join(root, "a", "b"))
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	fname := filepath.Join(root, "train.dat")
	require.NoError(t, os.WriteFile(fname, []byte("0,1\n"), 0o644))
	assert.Equal(t, fname, cli.AssertFileExists(fname))
	assert.Empty(t, *codes)

	cli.AssertDir(fname)
	cli.AssertFileExists(filepath.Join(root, "missing.dat"))
	cli.AssertFileExists(root)
	assert.Equal(t, []int{cli.ErrorCodes["baddir"], cli.ErrorCodes["badfile"], cli.ErrorCodes["badfile"]}, *codes)
}
