package memory

import (
	"github.com/jrife/profile"
	"github.com/jrife/profile/registry"
	"github.com/jrife/profile/utils/uuid"
)

const (
	// DriverName is the name of the memory plugin
	DriverName = "memory"
)

// Plugins returns the plugins of this package
func Plugins() []profile.Plugin {
	return []profile.Plugin{
		&Plugin{},
	}
}

// Plugin creates registry profiles stored in a new in-memory hive
type Plugin struct {
}

// Name implements profile.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewProfile implements profile.Plugin.NewProfile. The "path"
// option is the key path of the profile.
func (plugin *Plugin) NewProfile(options profile.PluginOptions) (profile.Profile, error) {
	path, err := options.String("path")

	if err != nil {
		return nil, err
	}

	readOnly, err := options.Bool("read_only")

	if err != nil {
		return nil, err
	}

	logger, err := options.Logger()

	if err != nil {
		return nil, err
	}

	opts := []registry.Option{registry.WithLogger(logger)}

	if readOnly {
		opts = append(opts, registry.WithReadOnly())
	}

	return registry.New(New(), path, opts...)
}

// NewTempProfile implements profile.Plugin.NewTempProfile
func (plugin *Plugin) NewTempProfile() (profile.Profile, func(), error) {
	p, err := plugin.NewProfile(profile.PluginOptions{
		"path": registry.JoinPath(registry.DefaultRoot, uuid.TempName("profile", "")),
	})

	if err != nil {
		return nil, nil, err
	}

	return p, func() {}, nil
}
