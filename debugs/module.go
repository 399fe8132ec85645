package debugs

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
