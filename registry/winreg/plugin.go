//go:build windows

package winreg

import (
	"github.com/jrife/profile"
	"github.com/jrife/profile/registry"
	"github.com/jrife/profile/utils/uuid"
	winregistry "golang.org/x/sys/windows/registry"
)

const (
	// DriverName is the name of the Windows registry plugin
	DriverName = "winreg"
	// DefaultRootKey is the root key used when none is given
	DefaultRootKey = "HKEY_CURRENT_USER"
)

// Plugins returns the plugins of this package
func Plugins() []profile.Plugin {
	return []profile.Plugin{
		&Plugin{},
	}
}

// Plugin creates registry profiles stored in the Windows registry
type Plugin struct {
}

// Name implements profile.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewProfile implements profile.Plugin.NewProfile. "root_key"
// names the predefined root key and "path" the key path below it.
func (plugin *Plugin) NewProfile(options profile.PluginOptions) (profile.Profile, error) {
	rootKey, err := options.String("root_key")

	if err != nil {
		return nil, err
	}

	if rootKey == "" {
		rootKey = DefaultRootKey
	}

	root, ok := RootKeys[rootKey]

	if !ok {
		return nil, profile.InvalidArgument("unknown root key %q", rootKey)
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

	opts := []registry.Option{registry.WithLogger(logger)}

	if readOnly {
		opts = append(opts, registry.WithReadOnly())
	}

	return registry.New(New(root), path, opts...)
}

// NewTempProfile implements profile.Plugin.NewTempProfile.
// The profile lives below HKEY_CURRENT_USER\Software.
func (plugin *Plugin) NewTempProfile() (profile.Profile, func(), error) {
	name := uuid.TempName("profile", "")

	p, err := plugin.NewProfile(profile.PluginOptions{
		"path": registry.JoinPath(registry.DefaultRoot, name),
	})

	if err != nil {
		return nil, nil, err
	}

	return p, func() {
		software, err := winregistry.OpenKey(winregistry.CURRENT_USER, registry.DefaultRoot, winregistry.ENUMERATE_SUB_KEYS|winregistry.QUERY_VALUE)

		if err != nil {
			return
		}

		defer software.Close()

		deleteTree(software, name)
	}, nil
}
