package catalog

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/debugs"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs tmconfigs.Module
	Debugs  debugs.Module
}
