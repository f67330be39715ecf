package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// diskDir is checked before the embedded files so tuning can be edited
// without rebuilding.
var diskDir = "prefabs"

// SetDiskDir changes the override directory. An empty dir disables it.
func SetDiskDir(dir string) {
	diskDir = dir
}

// DiskDir returns the override directory.
func DiskDir() string {
	return diskDir
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if diskDir != "" {
		if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// ModTime reports the modification time of the disk override for name.
func ModTime(name string) (time.Time, bool) {
	if diskDir == "" {
		return time.Time{}, false
	}
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		s = s[idx+1:]
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(diskDir, filepath.FromSlash(clean))
}
