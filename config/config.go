// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the solver's enumerated options (§6). Grounded on
// inp/sim.go's SolverData: JSON-tagged fields, a SetDefault that fills in
// sane values, and a PostProcess that fills in the derived fields.
package config

import "github.com/cpmech/gosl/fun"

// ConvexificationType selects how the convexifier samples non-convex
// operators when more than one linear piece is requested (§4.G).
type ConvexificationType string

const (
	CurrentPointOnly   ConvexificationType = "current-point-only"
	UniformGrid        ConvexificationType = "uniform-grid"
	AroundCurrentPoint ConvexificationType = "around-current-point"
)

// BranchPointSelect selects the branch-point strategy (§4.H).
type BranchPointSelect string

const (
	MidPoint  BranchPointSelect = "mid-point"
	MinArea   BranchPointSelect = "min-area"
	Balanced  BranchPointSelect = "balanced"
	LPClamped BranchPointSelect = "lp-clamped"
	LPCentral BranchPointSelect = "lp-central"
)

// Config collects every option of spec.md §6's table.
type Config struct {

	// convexification
	ConvexificationType   ConvexificationType `json:"convexification_type"`
	ConvexificationPoints int                 `json:"convexification_points"`
	ViolatedCutsOnly      bool                `json:"violated_cuts_only"`

	// bound tightening
	FeasibilityBT  bool `json:"feasibility_bt"`
	OptimalityBT   bool `json:"optimality_bt"`
	AggressiveFBBT bool `json:"aggressive_fbbt"`

	LogNumOBBTPerLevel int `json:"log_num_obbt_per_level"`

	// branching
	BranchPtSelect BranchPointSelect `json:"branch_pt_select"`

	// tolerances
	IntegerTolerance float64 `json:"integer_tolerance"`
	FeasTolerance    float64 `json:"feas_tolerance"`
	CutoffDecr       float64 `json:"cutoff_decr"`

	// derived (PostProcess)
	MaxBTIter int `json:"-"`
}

// SetDefault fills every option with the value the bound engine and
// convexifier assume when a caller supplies none (§4.E, §4.G).
func (c *Config) SetDefault() {
	c.ConvexificationType = CurrentPointOnly
	c.ConvexificationPoints = 1
	c.ViolatedCutsOnly = true

	c.FeasibilityBT = true
	c.OptimalityBT = true
	c.AggressiveFBBT = false

	c.LogNumOBBTPerLevel = 2

	c.BranchPtSelect = LPCentral

	c.IntegerTolerance = 1e-6
	c.FeasTolerance = 1e-7
	c.CutoffDecr = 1e-5
}

// PostProcess derives MaxBTIter from AggressiveFBBT.
func (c *Config) PostProcess() {
	c.MaxBTIter = 20
	if c.AggressiveFBBT {
		c.MaxBTIter = 40
	}
}

// Params returns the tolerance-like options as an introspectable
// fun.Prms list, for callers (e.g. a CLI front-end, out of scope here)
// that want to list or override options generically.
func (c *Config) Params() fun.Prms {
	return fun.Prms{
		{N: "integer_tolerance", V: c.IntegerTolerance},
		{N: "feas_tolerance", V: c.FeasTolerance},
		{N: "cutoff_decr", V: c.CutoffDecr},
	}
}
