// Package web holds the pages and static files served by the device.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed assets.yml
var manifestYAML []byte

//go:embed static
var staticFS embed.FS

// Page roles.
const (
	PageOperational  = "operational"
	PageProvisioning = "provisioning"
)

// Manifest maps page roles to files.
type Manifest struct {
	Pages        map[string]string `yaml:"pages"`
	ContentTypes map[string]string `yaml:"content_types"`
}

// Assets are the files served verbatim by both route sets.
type Assets struct {
	FS       fs.FS
	Manifest Manifest
}

// Load returns the embedded assets.
func Load() (*Assets, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return New(sub, manifestYAML)
}

// New builds Assets from files and a YAML manifest. Every page the
// manifest names must exist in files.
func New(files fs.FS, manifest []byte) (*Assets, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifest, &m); err != nil {
		return nil, fmt.Errorf("parse asset manifest: %w", err)
	}
	for role, name := range m.Pages {
		if _, err := fs.Stat(files, name); err != nil {
			return nil, fmt.Errorf("page %q: %w", role, err)
		}
	}
	return &Assets{FS: files, Manifest: m}, nil
}

// Page returns the contents and content type of the page for role.
func (a *Assets) Page(role string) ([]byte, string, error) {
	name, ok := a.Manifest.Pages[role]
	if !ok {
		return nil, "", fmt.Errorf("no page for %q", role)
	}
	b, err := fs.ReadFile(a.FS, name)
	if err != nil {
		return nil, "", err
	}
	return b, a.ContentType(name), nil
}

// ContentType returns the type configured for name's extension.
func (a *Assets) ContentType(name string) string {
	if ct, ok := a.Manifest.ContentTypes[path.Ext(name)]; ok {
		return ct
	}
	return "application/octet-stream"
}
