package app

import (
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/modules/arith"
	"github.com/spectramap/cubegraph/modules/bandmath"
	"github.com/spectramap/cubegraph/modules/bandselect"
	"github.com/spectramap/cubegraph/modules/bandstack"
	"github.com/spectramap/cubegraph/modules/constant"
	"github.com/spectramap/cubegraph/modules/roi"
	"github.com/spectramap/cubegraph/modules/stats"
)

// coreModules is the definitive list of all behaviour modules compiled
// into the cubegraph binary.
var coreModules = []nodetype.Module{
	&constant.Module{},
	&arith.Module{},
	&bandmath.Module{},
	&bandselect.Module{},
	&bandstack.Module{},
	&roi.Module{},
	&stats.Module{},
}
