package fs

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/dHumanities/immarkus/pkg/core"
)

// Serializer encodes and decodes one vocabulary document format.
type Serializer interface {
	Marshal(v core.Vocabulary) ([]byte, error)
	Unmarshal(data []byte) (core.Vocabulary, error)
}

// DefaultSerializers returns the built-in codecs keyed by extension.
// JSON is the canonical document format; YAML exists for export and
// hand-edited vocabularies.
func DefaultSerializers() map[string]Serializer {
	yml := yamlSerializer{}
	return map[string]Serializer{
		".json":    jsonSerializer{},
		".imarkus": jsonSerializer{},
		".yaml":    yml,
		".yml":     yml,
	}
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v core.Vocabulary) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonSerializer) Unmarshal(data []byte) (core.Vocabulary, error) {
	var v core.Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return core.Vocabulary{}, err
	}
	return v, nil
}

// yamlSerializer routes through the JSON field names so the YAML keys
// match the canonical document exactly.
type yamlSerializer struct{}

func (yamlSerializer) Marshal(v core.Vocabulary) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return yaml.Marshal(payload)
}

func (yamlSerializer) Unmarshal(data []byte) (core.Vocabulary, error) {
	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return core.Vocabulary{}, err
	}
	bridged, err := json.Marshal(payload)
	if err != nil {
		return core.Vocabulary{}, err
	}
	var v core.Vocabulary
	if err := json.Unmarshal(bridged, &v); err != nil {
		return core.Vocabulary{}, err
	}
	return v, nil
}
