package store

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs tmconfigs.Module
}

type OpenStore func() (*Store, error)

func (Module) OpenStore(
	dir tmconfigs.StoreDir,
	logger logs.Logger,
) OpenStore {
	return func() (*Store, error) {
		logger.Debug("open store", "dir", dir)
		return Open(string(dir), nil)
	}
}
