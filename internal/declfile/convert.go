package declfile

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

func yamlUnmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func tomlUnmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// toCtyValue converts a decoded options map into its cty.Value equivalent
// via a JSON round trip, so both loaders hand the core the same value
// representation.
func toCtyValue(options map[string]any) (cty.Value, error) {
	if len(options) == 0 {
		return cty.EmptyObjectVal, nil
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return cty.NilVal, err
	}

	impliedType, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}

	return ctyjson.Unmarshal(raw, impliedType)
}
