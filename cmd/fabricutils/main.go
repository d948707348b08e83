package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/skrubbel/fm-fabricutils/pkg/fabricutils"
	"github.com/skrubbel/fm-fabricutils/pkg/frame"
	"github.com/skrubbel/fm-fabricutils/pkg/io/parquetio"
	"github.com/skrubbel/fm-fabricutils/pkg/lakehouse"
)

var (
	version = "0.1.0-dev"
)

type Config struct {
	Mapping struct {
		File      string `json:"file" yaml:"file" toml:"file"`
		Workspace string `json:"workspace" yaml:"workspace" toml:"workspace"`
		Lakehouse string `json:"lakehouse" yaml:"lakehouse" toml:"lakehouse"`
		Context   string `json:"context" yaml:"context" toml:"context"`
	} `json:"mapping" yaml:"mapping" toml:"mapping"`
	Input struct {
		Path  string `json:"path" yaml:"path" toml:"path"`
		Sheet string `json:"sheet" yaml:"sheet" toml:"sheet"`
	} `json:"input" yaml:"input" toml:"input"`
	Columns []struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		Type string `json:"type" yaml:"type" toml:"type"`
	} `json:"columns" yaml:"columns" toml:"columns"`
	ColumnMap     map[string]string `json:"column_map" yaml:"column_map" toml:"column_map"`
	LocalTimeZone string            `json:"local_time_zone" yaml:"local_time_zone" toml:"local_time_zone"`
	Strict        bool              `json:"strict" yaml:"strict" toml:"strict"`
	Output        struct {
		Path string `json:"path" yaml:"path" toml:"path"`
	} `json:"output" yaml:"output" toml:"output"`
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to conversion config (JSON, YAML or TOML)")
	flag.Parse()

	if *showVersion {
		fmt.Println("fabricutils", version)
		return
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Mapping.File != "" {
		r := lakehouse.NewResolver(cfg.Mapping.File)
		paths, err := r.ResolvePaths(cfg.Mapping.Workspace, cfg.Mapping.Lakehouse, cfg.Mapping.Context)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("source:", paths.Source)
		fmt.Println("target:", paths.Target)
	}

	if cfg.Input.Path == "" {
		return
	}

	schema, err := buildSchema(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opt := fabricutils.Options{LocalTimeZone: cfg.LocalTimeZone, Strict: cfg.Strict}
	tbl, issues, err := fabricutils.ReadSheetTableIssues(context.Background(), cfg.Input.Path, cfg.Input.Sheet, schema, cfg.ColumnMap, opt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, is := range issues {
		fmt.Fprintln(os.Stderr, "warning:", is)
	}

	if cfg.Output.Path != "" {
		if err := parquetio.WriteTable(cfg.Output.Path, tbl); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Printf("cast %d rows x %d columns\n", tbl.Rows(), tbl.Cols())
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func buildSchema(cfg Config) (frame.Schema, error) {
	s := frame.Schema{Fields: make([]frame.Field, len(cfg.Columns))}
	for i, c := range cfg.Columns {
		fd, err := frame.ParseFieldType(c.Type)
		if err != nil {
			return frame.Schema{}, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fd.Name = c.Name
		s.Fields[i] = fd
	}
	return s, nil
}
