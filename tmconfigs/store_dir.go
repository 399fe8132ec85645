package tmconfigs

import (
	"os"
	"path/filepath"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
)

// StoreDir is where saved programs and tapes live.
type StoreDir string

var _ configs.Configurable = StoreDir("")

func (StoreDir) ConfigKey() string {
	return "store_dir"
}

var storeDirFlag = cmds.Var[string]("-db", "program store directory")

func (Module) StoreDir(
	loader configs.Loader,
) StoreDir {
	return StoreDir(vars.FirstNonZero(
		*storeDirFlag,
		configs.First[string](loader, "store_dir"),
		defaultStoreDir(),
	))
}

func defaultStoreDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "simple-turing-machine", "store")
}
