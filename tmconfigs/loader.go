package tmconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/modes"
)

//go:embed schema.cue
var schema string

var configFile = cmds.Var[string]("-config", "load this CUE file before the searched ones")

// ConfigsLoader searches tm.cue and .tm.cue in the working directory, the
// user config directory and /etc, in that order of precedence.
func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	if *configFile != "" {
		paths = append(paths, *configFile)
	}

	if mode != modes.ModeProduction {
		return configs.NewLoader(paths, schema)
	}

	filenames := []string{
		"tm.cue",
		".tm.cue",
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
