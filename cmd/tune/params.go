// Package main provides CMA-ES search for solver parameters that stay
// numerically stable while keeping injected smoke lively on screen.
package main

import (
	"github.com/yjkh17/Fluid-Simulator/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Time step and grid size stay fixed; they define the problem, not the
// solution.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "viscosity", Min: 0, Max: 0.002, Default: 0.0001},
			{Name: "diffusion_rate", Min: 0, Max: 0.002, Default: 0.0001},
			{Name: "fade_rate", Min: 0.92, Max: 0.999, Default: 0.99},
			{Name: "force_multiplier", Min: 10, Max: 150, Default: 60},
			{Name: "iterations", Min: 8, Max: 50, Default: 20},
			{Name: "turbulence_strength", Min: 0, Max: 1.0, Default: 0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds raw values to their spec ranges. CMA-ES proposes points
// outside [0,1]; the simulation only ever sees clamped values.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		clamped[i] = v
	}
	return clamped
}

// ApplyToConfig writes raw parameter values into a config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	cfg.Simulation.Viscosity = raw[0]
	cfg.Simulation.DiffusionRate = raw[1]
	cfg.Simulation.FadeRate = raw[2]
	cfg.Simulation.ForceMultiplier = raw[3]
	cfg.Simulation.Iterations = int(raw[4])
	cfg.Turbulence.Strength = raw[5]
}
