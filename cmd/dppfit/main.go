// SPDX-License-Identifier: MIT

// Command dppfit fits a DPP kernel to a dataset of subsets.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/timtadh/getopt"

	"github.com/shizuo-kaji/DeterminantalPointProcess/backend"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/fit"
	"github.com/shizuo-kaji/DeterminantalPointProcess/internal/cli"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/likelihood"
	"github.com/shizuo-kaji/DeterminantalPointProcess/optim"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
)

func init() {
	cli.UsageMessage = "dppfit --help"
	cli.ExtendedMessage = `
dppfit - fit a determinantal point process kernel to subset data

$ dppfit -t <path> [Options]

The kernel is L = V diag(exp(h)) V^T + (B C^T - C B^T), where h is the
output of an optional hidden tanh stack fed with a constant input.

Data format
    one subset per line, comma separated item indices (0-based);
    an empty line is the empty subset.

        0,3
        2
        1,2,4

Options
    -h, --help                   view this message
    -t, --train=<path>           training data (required)
    --val=<path>                 validation data (default: training data)
    -o, --outdir=<dir>           output root (default result); results go
                                 to <dir>/MMDD_HHMM
    -e, --epoch=<int>            training epochs (default 200)
    --rankV=<int>                rank of the symmetric part (default 2)
    --rankB=<int>                rank of the antisymmetric part (default 0)
    -d, --dim=<int>              number of items (default max id + 1)
    --n_hidden_channels=<ints>   hidden layer widths, comma separated or
                                 repeated; the last must be rankV or 1
    -b, --batchsize=<int>        minibatch size (default 20)
    --optimizer=<name>           SGD, MomentumSGD, Momentum, AdaGrad,
                                 RMSprop or Adam (default Adam)
    --learning_rate=<float>      learning rate / Adam alpha (default 1e-2)
    --weight_decay_l1=<float>    Lasso rate (default 0)
    --weight_decay_l2=<float>    L2 rate (default 0)
    --dtype=<fp64|fp32>          parameter precision (default fp32)
    --early_stopping=<int>       check the validation loss every n epochs
                                 (default 0: off)
    --patience=<int>             checks without improvement before stopping
                                 (default 3)
    -m, --models=<path>          start from a model.json snapshot
    -p, --predict                skip fitting; only report
    --vis_freq=<int>             validate every n iterations (default 200)
    --lr_shift=<int>             halve the learning rate every n epochs
                                 (default: once, after the last epoch)
    --parity=<auto|even|all>     which subsets are scored (default auto:
                                 even-sized only when rankB = 0); with
                                 rankV = 0 odd-sized minors vanish, so
                                 use --parity=even there
    --device=<name>              numeric backend (default auto: cpu)
    --pivot=<int>                item used for the inclusion report
                                 (default 0)
    --seed=<int>                 random seed (default 0: fixed default)
    --skip-log=<level>           don't output the given log level

Outputs (in the run directory)
    args.json, log.json, model.json, L.csv, V.csv (rankV > 0),
    B.csv and C.csv (rankB > 0)
`
}

// args is the resolved run configuration; it is saved as args.json.
type args struct {
	RunID         string  `json:"run_id"`
	Train         string  `json:"train"`
	Val           string  `json:"val,omitempty"`
	Outdir        string  `json:"outdir"`
	Epoch         int     `json:"epoch"`
	RankV         int     `json:"rankV"`
	RankB         int     `json:"rankB"`
	Dim           int     `json:"dim"`
	Hidden        []int   `json:"n_hidden_channels"`
	BatchSize     int     `json:"batchsize"`
	Optimizer     string  `json:"optimizer"`
	LearningRate  float64 `json:"learning_rate"`
	WeightDecayL1 float64 `json:"weight_decay_l1"`
	WeightDecayL2 float64 `json:"weight_decay_l2"`
	DType         string  `json:"dtype"`
	EarlyStopping int     `json:"early_stopping"`
	Patience      int     `json:"patience"`
	Models        string  `json:"models,omitempty"`
	Predict       bool    `json:"predict"`
	VisFreq       int     `json:"vis_freq"`
	LRShift       int     `json:"lr_shift"`
	Parity        string  `json:"parity"`
	Device        string  `json:"device"`
	Pivot         int     `json:"pivot"`
	Seed          int64   `json:"seed"`
	Backend       string  `json:"backend,omitempty"`
}

func defaultArgs() *args {
	return &args{
		Outdir:       "result",
		Epoch:        200,
		RankV:        2,
		BatchSize:    20,
		Optimizer:    optim.NameAdam,
		LearningRate: 1e-2,
		DType:        string(backend.FP32),
		Patience:     3,
		VisFreq:      200,
		Parity:       likelihood.PolicyAuto,
		Device:       backend.DeviceAuto,
	}
}

func main() {
	_, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ht:o:e:d:b:m:p",
		[]string{
			"help",
			"train=",
			"val=",
			"outdir=",
			"epoch=",
			"rankV=",
			"rankB=",
			"dim=",
			"n_hidden_channels=",
			"batchsize=",
			"optimizer=",
			"learning_rate=",
			"weight_decay_l1=",
			"weight_decay_l2=",
			"dtype=",
			"early_stopping=",
			"patience=",
			"models=",
			"predict",
			"vis_freq=",
			"lr_shift=",
			"parity=",
			"device=",
			"pivot=",
			"seed=",
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
		case "-t", "--train":
			a.Train = cli.AssertFileExists(oa.Arg())
		case "--val":
			a.Val = cli.AssertFileExists(oa.Arg())
		case "-o", "--outdir":
			a.Outdir = cli.AssertDir(oa.Arg())
		case "-e", "--epoch":
			a.Epoch = cli.ParseNonNegInt(oa.Arg())
		case "--rankV":
			a.RankV = cli.ParseNonNegInt(oa.Arg())
		case "--rankB":
			a.RankB = cli.ParseNonNegInt(oa.Arg())
		case "-d", "--dim":
			a.Dim = cli.ParseNonNegInt(oa.Arg())
		case "--n_hidden_channels":
			a.Hidden = cli.ParseInts(a.Hidden, oa.Arg())
		case "-b", "--batchsize":
			a.BatchSize = cli.ParseNonNegInt(oa.Arg())
		case "--optimizer":
			a.Optimizer = oa.Arg()
		case "--learning_rate":
			a.LearningRate = cli.ParseFloat(oa.Arg())
		case "--weight_decay_l1":
			a.WeightDecayL1 = cli.ParseFloat(oa.Arg())
		case "--weight_decay_l2":
			a.WeightDecayL2 = cli.ParseFloat(oa.Arg())
		case "--dtype":
			a.DType = oa.Arg()
		case "--early_stopping":
			a.EarlyStopping = cli.ParseNonNegInt(oa.Arg())
		case "--patience":
			a.Patience = cli.ParseNonNegInt(oa.Arg())
		case "-m", "--models":
			a.Models = cli.AssertFileExists(oa.Arg())
		case "-p", "--predict":
			a.Predict = true
		case "--vis_freq":
			a.VisFreq = cli.ParseNonNegInt(oa.Arg())
		case "--lr_shift":
			a.LRShift = cli.ParseNonNegInt(oa.Arg())
		case "--parity":
			a.Parity = oa.Arg()
		case "--device":
			a.Device = oa.Arg()
		case "--pivot":
			a.Pivot = cli.ParseNonNegInt(oa.Arg())
		case "--seed":
			a.Seed = int64(cli.ParseInt(oa.Arg()))
		case "--skip-log":
			cli.SkipLog(oa.Arg())
		default:
			cli.UnknownFlag(oa.Opt())
		}
	}
	if a.Train == "" {
		cli.Fatal("opts", errors.New("dppfit: --train is required"))
	}

	if err := run(a, os.Stdout); err != nil {
		cli.Fatal(exitKind(err), err)
	}
}

// exitKind maps err to an ErrorCodes key.
func exitKind(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, dataset.ErrBadToken),
		errors.Is(err, dataset.ErrNegativeItem),
		errors.Is(err, dataset.ErrDuplicateItem),
		errors.Is(err, persist.ErrBadValue),
		errors.Is(err, persist.ErrRaggedTable):
		return "badfile"
	case errors.Is(err, dataset.ErrDimensionTooSmall),
		errors.Is(err, dataset.ErrItemOutOfRange),
		errors.Is(err, persist.ErrSnapshotShape),
		errors.Is(err, kernel.ErrFactorPair),
		errors.Is(err, kernel.ErrHiddenShape),
		errors.Is(err, kernel.ErrHiddenWidth),
		errors.Is(err, optim.ErrUnknownOptimizer),
		errors.Is(err, backend.ErrUnknownBackend),
		errors.Is(err, backend.ErrUnavailable),
		errors.Is(err, backend.ErrUnknownDType),
		errors.Is(err, likelihood.ErrUnknownPolicy),
		errors.Is(err, fit.ErrBadOptions),
		errors.Is(err, kernel.ErrRank),
		errors.Is(err, dpp.ErrOutOfRange):
		return "opts"
	}
	return "error"
}
