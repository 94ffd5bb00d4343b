package xml

import (
	"os"
	"path/filepath"

	"github.com/jrife/profile"
	"github.com/jrife/profile/utils/uuid"
)

const (
	// DriverName is the name of the xml plugin
	DriverName = "xml"
)

// Plugins returns the plugins of this package
func Plugins() []profile.Plugin {
	return []profile.Plugin{
		&Plugin{},
	}
}

// Plugin creates profiles stored in XML documents
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

	opts, err := pluginOptions(options)

	if err != nil {
		return nil, err
	}

	return New(path, opts...)
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

func pluginOptions(options profile.PluginOptions) ([]Option, error) {
	var opts []Option

	logger, err := options.Logger()

	if err != nil {
		return nil, err
	}

	opts = append(opts, WithLogger(logger))

	if rootName, err := options.String("root_name"); err != nil {
		return nil, err
	} else if rootName != "" {
		opts = append(opts, WithRootName(rootName))
	}

	if encoding, err := options.String("encoding"); err != nil {
		return nil, err
	} else if encoding != "" {
		opts = append(opts, WithEncoding(encoding))
	}

	if readOnly, err := options.Bool("read_only"); err != nil {
		return nil, err
	} else if readOnly {
		opts = append(opts, WithReadOnly())
	}

	return opts, nil
}
