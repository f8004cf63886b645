// SPDX-License-Identifier: MIT

// Command dppgen writes synthetic subset datasets.
package main

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/timtadh/getopt"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/internal/cli"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
	"github.com/shizuo-kaji/DeterminantalPointProcess/sampler"
)

func init() {
	cli.UsageMessage = "dppgen --help"
	cli.ExtendedMessage = `
dppgen - generate subsets of {0, ..., dim-1}

$ dppgen [Options]

Modes
    exact (default)   draw V, B, C uniformly on [-2, 2), build
                      L = V V^T + (B C^T - C B^T) and emit every subset of
                      size <= max(rankV, rankB) round(n P(S)) times,
                      empty subset first, then by size in lexicographic order
    random (-r)       n subsets, each the first m items of a uniform
                      permutation, m uniform in 1..rankV
    kernel (--kernel) exact mode on a stored kernel table (e.g. L.csv)

Options
    -h, --help              view this message
    --rankV=<int>           rank of V (default 2)
    --rankB=<int>           rank of B and C (default 0)
    -n, --n=<int>           number of samples (default 100)
    -d, --dim=<int>         number of items (default 5)
    -r, --random            random mode
    --kernel=<path>         sample exactly from a stored kernel
    --max_size=<int>        largest subset size in kernel mode
                            (default max(rankV, rankB))
    --seed=<int>            random seed (default 0: fixed default)
    -o, --output=<path>     output file (default stdout)
    --skip-log=<level>      don't output the given log level
`
}

// genArgs is the resolved generator configuration.
type genArgs struct {
	RankV   int
	RankB   int
	N       int
	Dim     int
	Random  bool
	Kernel  string
	MaxSize int
	Seed    int64
	Output  string
}

func defaultArgs() *genArgs {
	return &genArgs{RankV: 2, N: 100, Dim: 5, MaxSize: -1}
}

func main() {
	_, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hn:d:ro:",
		[]string{
			"help",
			"rankV=",
			"rankB=",
			"n=",
			"dim=",
			"random",
			"kernel=",
			"max_size=",
			"seed=",
			"output=",
			"skip-log=",
		},
	)
	if err != nil {
		cli.Fatal("opts", err)
	}

	a := defaultArgs()
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cli.Usage(0)
		case "--rankV":
			a.RankV = cli.ParseNonNegInt(oa.Arg())
		case "--rankB":
			a.RankB = cli.ParseNonNegInt(oa.Arg())
		case "-n", "--n":
			a.N = cli.ParseNonNegInt(oa.Arg())
		case "-d", "--dim":
			a.Dim = cli.ParseNonNegInt(oa.Arg())
		case "-r", "--random":
			a.Random = true
		case "--kernel":
			a.Kernel = cli.AssertFileExists(oa.Arg())
		case "--max_size":
			a.MaxSize = cli.ParseNonNegInt(oa.Arg())
		case "--seed":
			a.Seed = int64(cli.ParseInt(oa.Arg()))
		case "-o", "--output":
			a.Output = oa.Arg()
		case "--skip-log":
			cli.SkipLog(oa.Arg())
		default:
			cli.UnknownFlag(oa.Opt())
		}
	}

	var out io.Writer = os.Stdout
	if a.Output != "" {
		f, err := os.Create(a.Output)
		if err != nil {
			cli.Fatal("badfile", err)
		}
		defer f.Close()
		out = f
	}
	if err := generate(a, out); err != nil {
		cli.Fatal(exitKind(err), err)
	}
}

// exitKind maps err to an ErrorCodes key.
func exitKind(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, persist.ErrBadValue),
		errors.Is(err, persist.ErrRaggedTable),
		errors.Is(err, persist.ErrEmptyTable),
		errors.Is(err, dpp.ErrNonSquare):
		return "badfile"
	case errors.Is(err, sampler.ErrRank),
		errors.Is(err, sampler.ErrDim),
		errors.Is(err, sampler.ErrCount),
		errors.Is(err, kernel.ErrBadDim),
		errors.Is(err, kernel.ErrRank):
		return "opts"
	}
	return "error"
}
