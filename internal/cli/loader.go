package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/cuesource"
	"github.com/roach88/ccsbridge/internal/managed"
)

// documentSource yields managed objects from a document file. An empty
// name selects the file's only document.
type documentSource interface {
	Object(rt *managed.Runtime, name string) (*managed.Object, error)
}

// openDocuments loads a document file by extension: .cue files are
// compiled with CUE; .yaml, .yml and .json files are read as YAML.
func openDocuments(path string) (documentSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		f, err := cuesource.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case ".yaml", ".yml", ".json":
		return loadYAMLDocuments(path)
	default:
		return nil, fmt.Errorf("unsupported document file %s: want .cue, .yaml, .yml or .json", path)
	}
}

// yamlDocuments holds either one document (a mapping with a class key) or
// a mapping of named documents.
type yamlDocuments struct {
	path   string
	single *managed.Document
	named  map[string]managed.Document
}

func loadYAMLDocuments(path string) (*yamlDocuments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: top level must be a mapping", path)
	}

	d := &yamlDocuments{path: path}
	if hasKey(root.Content[0], "class") {
		var doc managed.Document
		if err := decodeStrict(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		d.single = &doc
		return d, nil
	}

	if err := decodeStrict(data, &d.named); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

func (d *yamlDocuments) Object(rt *managed.Runtime, name string) (*managed.Object, error) {
	if d.single != nil {
		if name != "" {
			return nil, fmt.Errorf("%s holds a single document, not %q", d.path, name)
		}
		return managed.Decode(rt, *d.single)
	}

	if name == "" {
		if len(d.named) != 1 {
			return nil, fmt.Errorf("%s holds %d documents (%s); choose one with --name",
				d.path, len(d.named), strings.Join(d.names(), ", "))
		}
		for _, doc := range d.named {
			return managed.Decode(rt, doc)
		}
	}

	doc, ok := d.named[name]
	if !ok {
		return nil, fmt.Errorf("no document %q in %s", name, d.path)
	}
	return managed.Decode(rt, doc)
}

func (d *yamlDocuments) names() []string {
	names := make([]string, 0, len(d.named))
	for name := range d.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value kinds accepted by --as.
const (
	kindParameters  = "parameters"
	kindCoordinates = "coordinates"
	kindAccuracy    = "accuracy"
)

// inferKind picks the inbound operation for obj from its class hierarchy.
func inferKind(rt *managed.Runtime, obj *managed.Object) (string, error) {
	roots := []struct {
		class string
		kind  string
	}{
		{bridge.ClassCoordinateSystemParameters, kindParameters},
		{bridge.ClassCoordinateTuple, kindCoordinates},
		{bridge.ClassAccuracy, kindAccuracy},
		{bridge.ClassCircularAccuracy, kindAccuracy},
	}
	for _, r := range roots {
		c, err := rt.FindClass(r.class)
		if err != nil {
			return "", err
		}
		if obj.IsInstanceOf(c) {
			return r.kind, nil
		}
	}
	return "", errors.New("class " + obj.Class().Name() + " is not a parameters, coordinates or accuracy class; use --as")
}

// inboundOp maps a value kind to its inbound operation.
func inboundOp(kind string) (bridge.Operation, error) {
	switch kind {
	case kindParameters:
		return bridge.OpParametersFromManaged, nil
	case kindCoordinates:
		return bridge.OpCoordinatesFromManaged, nil
	case kindAccuracy:
		return bridge.OpAccuracyFromManaged, nil
	default:
		return "", fmt.Errorf("unknown value kind %q: want parameters, coordinates or accuracy", kind)
	}
}
