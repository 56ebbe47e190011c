package presets

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/sun-23/go-multiuser/config"
)

var presets = map[string]config.Config{}

func register(name string, preset config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("can't have two presets with the same name %s", name))
	}
	presets[name] = preset
}

// Options returns the names of registered presets.
func Options() []string {
	names := maps.Keys(presets)
	slices.Sort(names)
	return names
}

// Get a config preset by name.
func Get(name string) (config.Config, error) {
	preset, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one from %+s", name, Options())
	}
	preset.Preset = name
	preset.P2P.Peers = slices.Clone(preset.P2P.Peers)
	preset.Reconciler.TransientNames = slices.Clone(preset.Reconciler.TransientNames)
	return preset, nil
}
