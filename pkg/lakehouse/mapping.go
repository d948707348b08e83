package lakehouse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Mapping is one source -> target lakehouse record, keyed in the mapping
// file by "workspace|lakehouse|context".
type Mapping struct {
	SourceWorkspace string `json:"source_workspace" yaml:"source_workspace" toml:"source_workspace"`
	SourceLakehouse string `json:"source_lakehouse" yaml:"source_lakehouse" toml:"source_lakehouse"`
	TargetWorkspace string `json:"target_workspace" yaml:"target_workspace" toml:"target_workspace"`
	TargetLakehouse string `json:"target_lakehouse" yaml:"target_lakehouse" toml:"target_lakehouse"`
}

// Paths holds the resolved source and target lakehouse URIs.
type Paths struct {
	Source string
	Target string
}

// ErrNotMapped reports a lookup key with no record in the mapping file.
var ErrNotMapped = errors.New("no lakehouse mapping for key")

const (
	DefaultScheme = "abfss"
	DefaultHost   = "onelake.dfs.fabric.microsoft.com"
)

// Resolver loads a mapping file and turns composite keys into lakehouse
// paths. The file format follows its extension: .yaml/.yml, .toml, and JSON
// for everything else.
type Resolver struct {
	Path   string
	Scheme string
	Host   string
}

func NewResolver(path string) *Resolver {
	return &Resolver{Path: path, Scheme: DefaultScheme, Host: DefaultHost}
}

// Key builds the composite lookup key used by the mapping file.
func Key(workspace, lakehouse, mappingContext string) string {
	return workspace + "|" + lakehouse + "|" + mappingContext
}

func (r *Resolver) load() (map[string]Mapping, error) {
	b, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("lakehouse mapping file not found: %w", err)
		}
		return nil, fmt.Errorf("read lakehouse mapping file %s: %w", r.Path, err)
	}
	m := map[string]Mapping{}
	switch strings.ToLower(filepath.Ext(r.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &m)
	case ".toml":
		err = toml.Unmarshal(b, &m)
	default:
		err = json.Unmarshal(b, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse lakehouse mapping file %s: %w", r.Path, err)
	}
	return m, nil
}

// ResolvePaths looks up the mapping for the given workspace, lakehouse and
// transformation context and formats the source and target lakehouse paths.
func (r *Resolver) ResolvePaths(workspace, lakehouse, mappingContext string) (Paths, error) {
	mappings, err := r.load()
	if err != nil {
		return Paths{}, err
	}
	key := Key(workspace, lakehouse, mappingContext)
	mv, ok := mappings[key]
	if !ok {
		return Paths{}, fmt.Errorf("%w: %q", ErrNotMapped, key)
	}
	return Paths{
		Source: r.lakehousePath(mv.SourceWorkspace, mv.SourceLakehouse),
		Target: r.lakehousePath(mv.TargetWorkspace, mv.TargetLakehouse),
	}, nil
}

func (r *Resolver) lakehousePath(workspace, lakehouse string) string {
	scheme, host := r.Scheme, r.Host
	if scheme == "" {
		scheme = DefaultScheme
	}
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("%s://%s@%s/%s.Lakehouse/", scheme, workspace, host, lakehouse)
}
