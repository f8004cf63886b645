// SPDX-License-Identifier: MIT

// Package cli holds the helpers shared by the dppfit and dppgen commands:
// exit codes, usage printing and argument parsing that exits on bad input.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/timtadh/data-structures/errors"
)

// ErrorCodes maps failure kinds to process exit codes.
var ErrorCodes = map[string]int{
	"usage":    0,
	"error":    1,
	"version":  2,
	"opts":     3,
	"badint":   5,
	"badfloat": 6,
	"baddir":   6,
	"badfile":  7,
}

// UsageMessage is printed on every usage error; ExtendedMessage on --help.
var (
	UsageMessage    string
	ExtendedMessage string
)

// exit is replaced in tests.
var exit = os.Exit

// Usage prints the usage text and exits with code. Code 0 prints the
// extended help to stdout.
func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	exit(code)
}

// Fatal logs err at ERROR level and exits with ErrorCodes[kind].
func Fatal(kind string, err error) {
	errors.Logf("ERROR", "%v", err)
	code, ok := ErrorCodes[kind]
	if !ok {
		code = ErrorCodes["error"]
	}
	exit(code)
}

// UnknownFlag reports an unhandled option and exits.
func UnknownFlag(opt string) {
	fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", opt)
	Usage(ErrorCodes["opts"])
}

// ParseInt parses str or exits with "badint".
func ParseInt(str string) int {
	i, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

// ParseNonNegInt parses str and rejects negative values.
func ParseNonNegInt(str string) int {
	i := ParseInt(str)
	if i < 0 {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a non-negative int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

// ParseInts parses a comma separated list, appending to dst.
func ParseInts(dst []int, str string) []int {
	for _, tok := range strings.Split(str, ",") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		dst = append(dst, ParseInt(tok))
	}
	return dst
}

// ParseFloat parses str or exits with "badfloat".
func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

// AssertDir creates dir if needed and exits with "baddir" if it is not a
// directory.
func AssertDir(dir string) string {
	dir = filepath.Clean(dir)
	fi, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o775); err != nil {
			fmt.Fprintln(os.Stderr, err)
			Usage(ErrorCodes["baddir"])
		}
		return dir
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["baddir"])
		return dir
	}
	if !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was not a directory, %s\n", dir)
		Usage(ErrorCodes["baddir"])
	}
	return dir
}

// AssertFileExists exits with "badfile" unless fname is an existing
// regular file.
func AssertFileExists(fname string) string {
	fname = filepath.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
		return fname
	}
	if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// SkipLog silences a log level of errors.Logf.
func SkipLog(level string) {
	errors.Logf("INFO", "not logging level %v", level)
	errors.SkipLogging[level] = true
}
