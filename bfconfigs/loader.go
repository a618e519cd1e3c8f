package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/bfdsl/configs"
	"github.com/reusee/bfdsl/logs"
)

//go:embed schema.cue
var Schema string

var configFilenames = []string{
	"bfdsl.cue",
	".bfdsl.cue",
}

// ConfigDirs lists the directories searched for config files, most specific first.
type ConfigDirs []string

func (Module) ConfigDirs() ConfigDirs {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")
	return dirs
}

func (Module) ConfigsLoader(
	dirs ConfigDirs,
	logger logs.Logger,
) configs.Loader {
	var paths []string
	for _, dir := range dirs {
		for _, filename := range configFilenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, Schema)
}
