package config

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scenes.yaml scenes/*.yaml scenes/*.toml
var ScenesFS embed.FS

// DiskDir is where on-disk copies override the embedded specs.
var DiskDir = "config"

var sceneExts = []string{".yaml", ".yml", ".toml"}

// Load reads a spec file, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskSpecPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskSpecPath(cleanSpecPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// SceneFile finds the spec file of a scene by trying each supported
// extension, on disk first.
func SceneFile(scene string) (string, error) {
	name := path.Base(cleanSpecPath(scene))
	base := "scenes/" + strings.TrimSuffix(name, path.Ext(name))
	for _, ext := range sceneExts {
		if _, err := os.Stat(diskSpecPath(base + ext)); err == nil {
			return base + ext, nil
		}
	}
	for _, ext := range sceneExts {
		if _, err := fs.Stat(ScenesFS, base+ext); err == nil {
			return base + ext, nil
		}
	}
	return "", &fs.PathError{Op: "find scene", Path: base, Err: fs.ErrNotExist}
}

// IsNotExist reports whether err means a spec file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func cleanSpecPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		return after
	}
	return s
}

func diskSpecPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
