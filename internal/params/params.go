package params

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/inovacc/starkeep/internal/application"
)

var (
	once       sync.Once
	AppdataDir string
)

func init() {
	once.Do(getAppDataDir)
}

func getAppDataDir() {
	dir, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}

	AppdataDir = filepath.Join(dir, application.AppName)

	if err := os.MkdirAll(AppdataDir, os.ModePerm); err != nil {
		panic(err)
	}
}

// DefaultDBPath returns the default location of the embedded backup database.
func DefaultDBPath() string {
	return filepath.Join(AppdataDir, "starkeep.bolt")
}

// DefaultConfigPath returns the default location of the optional config file.
func DefaultConfigPath() string {
	return filepath.Join(AppdataDir, "config.ini")
}
