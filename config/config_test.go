// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01: defaults and post-processing")

	var c Config
	c.SetDefault()
	c.PostProcess()

	if c.ConvexificationType != CurrentPointOnly {
		tst.Errorf("default convexification type should be current-point-only, got %v", c.ConvexificationType)
	}
	if c.BranchPtSelect != LPCentral {
		tst.Errorf("default branch point select should be lp-central, got %v", c.BranchPtSelect)
	}
	if c.MaxBTIter != 20 {
		tst.Errorf("default MaxBTIter should be 20, got %d", c.MaxBTIter)
	}

	c.AggressiveFBBT = true
	c.PostProcess()
	if c.MaxBTIter != 40 {
		tst.Errorf("aggressive FBBT should double MaxBTIter to 40, got %d", c.MaxBTIter)
	}
}
