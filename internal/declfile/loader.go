// Package declfile loads pipeline declarations from YAML or TOML files
// into the same format-agnostic model the HCL loader produces. The format
// is picked per file by extension.
package declfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/fsutil"
	"github.com/vk/pipeweld/internal/stage"
)

// Loader loads pipeline declarations from YAML/TOML files.
type Loader struct{}

// NewLoader creates a new declaration file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// docRoot is the top-level document shape shared by both formats.
type docRoot struct {
	Sources    []stageDoc    `yaml:"sources" toml:"sources"`
	Transforms []stageDoc    `yaml:"transforms" toml:"transforms"`
	Sinks      []stageDoc    `yaml:"sinks" toml:"sinks"`
	Pipelines  []pipelineDoc `yaml:"pipelines" toml:"pipelines"`
}

// stageDoc is one stage declaration. Connector is set for sources/sinks,
// op for transforms.
type stageDoc struct {
	Name      string         `yaml:"name" toml:"name"`
	Connector string         `yaml:"connector" toml:"connector"`
	Op        string         `yaml:"op" toml:"op"`
	Options   map[string]any `yaml:"options" toml:"options"`
}

type pipelineDoc struct {
	Name   string   `yaml:"name" toml:"name"`
	Stages []string `yaml:"stages" toml:"stages"`
}

// Load reads every .yaml/.yml/.toml file under the given paths and merges
// the declarations into a single model. Duplicate stage or pipeline names
// across the whole file set are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Declaration file loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".yaml", ".yml", ".toml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered declaration files.", "count", len(files))

	model := config.NewModel()

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var root docRoot
		if filepath.Ext(file) == ".toml" {
			err = tomlUnmarshal(data, &root)
		} else {
			err = yamlUnmarshal(data, &root)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", file, err)
		}

		if err := mergeDoc(model, &root); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("Declaration loading complete.", "stages", len(model.Stages), "pipelines", len(model.Pipelines))
	return model, nil
}

// mergeDoc translates one decoded document into the model.
func mergeDoc(model *config.Model, root *docRoot) error {
	addStage := func(doc stageDoc, kind stage.Kind) error {
		if doc.Name == "" {
			return fmt.Errorf("%s declaration is missing a name", kind)
		}
		if _, exists := model.Stages[doc.Name]; exists {
			return fmt.Errorf("duplicate stage name '%s'", doc.Name)
		}

		opts, err := toCtyValue(doc.Options)
		if err != nil {
			return fmt.Errorf("stage '%s': %w", doc.Name, err)
		}

		model.Stages[doc.Name] = &config.Stage{
			Name:      doc.Name,
			Kind:      kind,
			Connector: doc.Connector,
			Op:        doc.Op,
			Options:   opts,
		}
		return nil
	}

	for _, doc := range root.Sources {
		if err := addStage(doc, stage.Source); err != nil {
			return err
		}
	}
	for _, doc := range root.Transforms {
		if err := addStage(doc, stage.Transform); err != nil {
			return err
		}
	}
	for _, doc := range root.Sinks {
		if err := addStage(doc, stage.Sink); err != nil {
			return err
		}
	}

	for _, doc := range root.Pipelines {
		for _, existing := range model.Pipelines {
			if existing.Name == doc.Name {
				return fmt.Errorf("duplicate pipeline name '%s'", doc.Name)
			}
		}
		model.Pipelines = append(model.Pipelines, &config.Pipeline{Name: doc.Name, Stages: doc.Stages})
	}

	return nil
}
