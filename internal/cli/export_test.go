// SPDX-License-Identifier: MIT

package cli

// SetExit swaps the process exit hook and returns a restore func.
func SetExit(f func(int)) (restore func()) {
	old := exit
	exit = f
	return func() { exit = old }
}
