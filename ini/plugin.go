package ini

import (
	"os"
	"path/filepath"

	"github.com/jrife/profile"
	"github.com/jrife/profile/utils/uuid"
)

const (
	// DriverName is the name of the ini plugin
	DriverName = "ini"
)

// Plugins returns the plugins of this package
func Plugins() []profile.Plugin {
	return []profile.Plugin{
		&Plugin{},
	}
}

// Plugin creates profiles stored in ini files
type Plugin struct {
}

// Name implements profile.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewProfile implements profile.Plugin.NewProfile
func (plugin *Plugin) NewProfile(options profile.PluginOptions) (profile.Profile, error) {
	path, err := options.RequiredString("path")

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

	opts := []Option{WithLogger(logger)}

	if readOnly {
		opts = append(opts, WithReadOnly())
	}

	return New(path, opts...), nil
}

// NewTempProfile implements profile.Plugin.NewTempProfile
func (plugin *Plugin) NewTempProfile() (profile.Profile, func(), error) {
	path := filepath.Join(os.TempDir(), uuid.TempName("profile", Extension))

	p, err := plugin.NewProfile(profile.PluginOptions{"path": path})

	if err != nil {
		return nil, nil, err
	}

	return p, func() { os.Remove(path) }, nil
}
