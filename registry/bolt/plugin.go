package bolt

import (
	"os"
	"path/filepath"

	"github.com/jrife/profile"
	"github.com/jrife/profile/registry"
	"github.com/jrife/profile/utils/uuid"
)

const (
	// DriverName is the name of the bbolt plugin
	DriverName = "registry"
)

// Plugins returns the plugins of this package
func Plugins() []profile.Plugin {
	return []profile.Plugin{
		&Plugin{},
	}
}

// Plugin creates registry profiles stored in a bbolt hive. The
// profiles it returns own their hive: closing the profile closes
// the database.
type Plugin struct {
}

// Name implements profile.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewProfile implements profile.Plugin.NewProfile. "hive_path"
// is the database file and "path" the key path of the profile.
func (plugin *Plugin) NewProfile(options profile.PluginOptions) (profile.Profile, error) {
	hivePath, err := options.RequiredString("hive_path")

	if err != nil {
		return nil, err
	}

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

	hive, err := Open(hivePath)

	if err != nil {
		return nil, profile.StorageError("could not open hive", err)
	}

	opts := []registry.Option{registry.WithLogger(logger)}

	if readOnly {
		opts = append(opts, registry.WithReadOnly())
	}

	p, err := registry.New(hive, path, opts...)

	if err != nil {
		hive.Close()

		return nil, err
	}

	return p, nil
}

// NewTempProfile implements profile.Plugin.NewTempProfile
func (plugin *Plugin) NewTempProfile() (profile.Profile, func(), error) {
	hivePath := filepath.Join(os.TempDir(), uuid.TempName("bbolt", ".db"))

	p, err := plugin.NewProfile(profile.PluginOptions{
		"hive_path": hivePath,
		"path":      registry.JoinPath(registry.DefaultRoot, "profile"),
	})

	if err != nil {
		return nil, nil, err
	}

	return p, func() {
		p.(*registry.Profile).Close()
		os.RemoveAll(hivePath)
	}, nil
}
