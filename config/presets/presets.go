// Package presets contains named configurations for common deployments.
package presets

import (
	"fmt"
	"sort"

	"github.com/spacemeshos/go-democracy/config"
)

var presets = map[string]config.Config{}

func register(name string, preset config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset with name %s already exists", name))
	}
	presets[name] = preset
}

// Options returns the names of all registered presets.
func Options() []string {
	rst := make([]string, 0, len(presets))
	for name := range presets {
		rst = append(rst, name)
	}
	sort.Strings(rst)
	return rst
}

// Get a registered preset by name.
func Get(name string) (config.Config, error) {
	if preset, exists := presets[name]; exists {
		return preset, nil
	}
	return config.Config{}, fmt.Errorf("preset %s is not registered. select one from the options %+v", name, Options())
}
