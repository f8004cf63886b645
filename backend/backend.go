// SPDX-License-Identifier: MIT

// Package backend selects where and at which precision the numeric work
// runs. Only the host CPU is available; selecting it never changes a
// numeric result except through the DType policy:
//
//   - FP64: parameters keep full float64 precision.
//   - FP32: parameters are rounded to the nearest float32 after every
//     optimizer step, emulating single-precision storage.
//
// The CPU feature report is informational and is logged at start-up.
package backend

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/samber/lo"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// DType is a storage precision for parameters.
type DType string

// Supported and recognized precisions.
const (
	FP64 DType = "fp64"
	FP32 DType = "fp32"
	FP16 DType = "fp16"
)

// Device names.
const (
	DeviceAuto = "auto"
	DeviceCPU  = "cpu"
)

// accelerators are recognized but never available in this build.
var accelerators = []string{"gpu", "cuda"}

// ParseDType resolves a precision name.
//
// Errors: ErrUnknownDType, ErrUnavailable (fp16).
func ParseDType(name string) (DType, error) {
	switch d := DType(strings.ToLower(name)); d {
	case FP64, FP32:
		return d, nil
	case FP16:
		return "", fmt.Errorf("%s: %w", name, ErrUnavailable)
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownDType)
	}
}

// Backend is the resolved device and precision.
type Backend struct {
	Device   string
	DType    DType
	Brand    string
	Cores    int
	Features []string
}

// Select resolves device ("", "auto" or "cpu") and dtype.
//
// Errors: ErrUnavailable for accelerators, ErrUnknownBackend otherwise.
func Select(device string, dtype DType) (*Backend, error) {
	dev := strings.ToLower(device)
	switch {
	case dev == "" || dev == DeviceAuto || dev == DeviceCPU:
	case lo.Contains(accelerators, dev):
		return nil, fmt.Errorf("%s: %w", device, ErrUnavailable)
	default:
		return nil, fmt.Errorf("%q: %w", device, ErrUnknownBackend)
	}
	if dtype == "" {
		dtype = FP64
	}
	if _, err := ParseDType(string(dtype)); err != nil {
		return nil, err
	}

	return &Backend{
		Device:   DeviceCPU,
		DType:    dtype,
		Brand:    cpuid.CPU.BrandName,
		Cores:    cpuid.CPU.LogicalCores,
		Features: cpuFeatures(),
	}, nil
}

type feature struct {
	name string
	id   cpuid.FeatureID
}

var simd = []feature{
	{"SSE4.2", cpuid.SSE42},
	{"AVX", cpuid.AVX},
	{"AVX2", cpuid.AVX2},
	{"FMA3", cpuid.FMA3},
	{"AVX512F", cpuid.AVX512F},
	{"ASIMD", cpuid.ASIMD},
}

// cpuFeatures lists the SIMD extensions relevant to dense linear algebra.
func cpuFeatures() []string {
	have := lo.Filter(simd, func(f feature, _ int) bool {
		return cpuid.CPU.Supports(f.id)
	})
	return lo.Map(have, func(f feature, _ int) string { return f.name })
}

// Round applies the precision policy to every tensor in place.
func (b *Backend) Round(ts []kernel.Tensor) {
	if b.DType != FP32 {
		return
	}
	for _, t := range ts {
		for i, v := range t.Data {
			t.Data[i] = float64(float32(v))
		}
	}
}

// String describes the backend for logs.
func (b *Backend) String() string {
	brand := b.Brand
	if brand == "" {
		brand = "unknown cpu"
	}
	return fmt.Sprintf("%s/%s (%s, %d threads, features: %s)",
		b.Device, b.DType, brand, b.Cores, strings.Join(b.Features, " "))
}
