package app

import (
	"github.com/specialistvlad/serialbench/internal/registry"
	"github.com/specialistvlad/serialbench/modules/busywait"
	"github.com/specialistvlad/serialbench/modules/computebound"
	"github.com/specialistvlad/serialbench/modules/empty"
	"github.com/specialistvlad/serialbench/modules/memorybound"
)

// coreModules is the definitive list of all kernel modules that are compiled
// into the serialbench binary.
var coreModules = []registry.Module{
	&empty.Module{},
	&busywait.Module{},
	&computebound.Module{},
	&memorybound.Module{},
}
