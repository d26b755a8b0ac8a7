package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// TypeCatalog resolves type metadata. Unknown types fail with TYPE_DESCRIPTION_NOT_FOUND.
type TypeCatalog interface {
	GetTypeDescription(ctx context.Context, typeFullName string, rootPath string) (m.TypeDescription, error)
}

// StaticTypeCatalog serves descriptions held in memory.
type StaticTypeCatalog struct {
	mu    sync.RWMutex
	types map[string]m.TypeDescription
}

// NewStaticTypeCatalog creates a catalog holding types.
func NewStaticTypeCatalog(types ...m.TypeDescription) *StaticTypeCatalog {
	c := &StaticTypeCatalog{types: make(map[string]m.TypeDescription, len(types))}
	for _, td := range types {
		c.types[td.TypeFullName] = td
	}

	return c
}

// Register adds or replaces a description.
func (c *StaticTypeCatalog) Register(td m.TypeDescription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.types[td.TypeFullName] = td
}

// GetTypeDescription implements TypeCatalog.
func (c *StaticTypeCatalog) GetTypeDescription(ctx context.Context, typeFullName string, rootPath string) (m.TypeDescription, error) {
	if err := ctx.Err(); err != nil {
		return m.TypeDescription{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	td, ok := c.types[typeFullName]
	if !ok {
		return m.TypeDescription{}, m.NewFailure(m.TypeDescriptionNotFound,
			"type %s is not known under root %q", typeFullName, rootPath)
	}

	return td, nil
}

// typeCatalogFile is the on-disk layout of a YAML type catalog.
type typeCatalogFile struct {
	Version int                 `yaml:"version"`
	Types   []m.TypeDescription `yaml:"types"`
}

// YAMLTypeCatalog serves descriptions read from a YAML file.
type YAMLTypeCatalog struct {
	*StaticTypeCatalog
	path string
}

// NewYAMLTypeCatalog reads the catalog at path. A missing file yields an empty catalog.
func NewYAMLTypeCatalog(path string) (*YAMLTypeCatalog, error) {
	catalog := &YAMLTypeCatalog{StaticTypeCatalog: NewStaticTypeCatalog(), path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Type catalog not found", "path", path)
			return catalog, nil
		}

		return nil, fmt.Errorf("read type catalog: %w", err)
	}

	types, err := ParseTypeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse type catalog %s: %w", path, err)
	}

	for _, td := range types {
		catalog.Register(td)
	}

	slog.Debug("Loaded type catalog", "path", path, "types", len(types))

	return catalog, nil
}

// Path returns the file the catalog was read from.
func (c *YAMLTypeCatalog) Path() string {
	return c.path
}

// ParseTypeCatalog decodes a YAML catalog document. Structurally broken descriptions
// are kept: rejecting them is the job of the queries that use them.
func ParseTypeCatalog(data []byte) ([]m.TypeDescription, error) {
	var file typeCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	for _, td := range file.Types {
		if err := td.Validate(); err != nil {
			slog.Warn("Invalid type description in catalog", "type", td.TypeFullName, "error", err)
		}
	}

	return file.Types, nil
}
