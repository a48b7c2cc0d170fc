// Package assets resolves the asset references a project names to files
// on disk. It is a collaborator of the engine, not part of it: the
// engine only ever sees references, never file handles.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ivlev/slides2video/internal/project"
)

// Asset is one discovered file in the asset directory.
type Asset struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Type string `json:"type" yaml:"type"`
	Size int64  `json:"size" yaml:"size"`
}

// Manifest lists every discovered asset and which scenes use it.
type Manifest struct {
	ProjectName  string              `json:"projectName" yaml:"projectName"`
	Assets       []Asset             `json:"assets" yaml:"assets"`
	UsedInScenes map[string][]string `json:"usedInScenes" yaml:"usedInScenes"`
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif"}
var videoExts = []string{".mp4", ".mov", ".webm", ".mkv", ".avi"}
var audioExts = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}

// Manager indexes one asset directory. Build it once; lookups are
// read-only afterward.
type Manager struct {
	dir    string
	byName map[string]Asset
}

// NewManager scans dir non-recursively and indexes every media file by
// base name.
func NewManager(dir string) (*Manager, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	byName := make(map[string]Asset)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		typ := classify(e.Name())
		if typ == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		byName[e.Name()] = Asset{
			ID:   uuid.NewString(),
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Type: typ,
			Size: info.Size(),
		}
	}

	return &Manager{dir: dir, byName: byName}, nil
}

// Resolve maps an asset reference to a loadable path.
func (m *Manager) Resolve(ref string) (string, bool) {
	a, ok := m.byName[ref]
	if !ok {
		return "", false
	}
	return a.Path, true
}

// Names returns the sorted base names of every indexed asset.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.byName))
	for name := range m.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifest builds the asset manifest for a project, mapping each asset
// to the IDs of the scenes that reference it.
func (m *Manager) Manifest(p *project.VideoProject) Manifest {
	used := make(map[string][]string)
	for _, sc := range p.Scenes {
		if _, ok := m.byName[sc.AssetPath]; ok {
			used[sc.AssetPath] = append(used[sc.AssetPath], sc.ID)
		}
	}

	man := Manifest{ProjectName: p.ProjectName, UsedInScenes: used}
	for _, name := range m.Names() {
		man.Assets = append(man.Assets, m.byName[name])
	}
	return man
}

func classify(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExts {
		if ext == e {
			return "image"
		}
	}
	for _, e := range videoExts {
		if ext == e {
			return "video"
		}
	}
	for _, e := range audioExts {
		if ext == e {
			return "audio"
		}
	}
	return ""
}
