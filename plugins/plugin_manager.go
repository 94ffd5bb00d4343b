package plugins

import (
	"github.com/jrife/profile"
)

// ProfilePluginManager lets a consumer
// retrieve a profile plugin by name
type ProfilePluginManager struct {
	plugins []profile.Plugin
}

// NewProfilePluginManager returns a ProfilePluginManager
// that is loaded with all supported plugins.
func NewProfilePluginManager() *ProfilePluginManager {
	return &ProfilePluginManager{
		plugins: allPlugins(),
	}
}

// Plugin returns the plugin whose name matches the given name.
// It returns nil if no such plugin is found.
func (pluginManager *ProfilePluginManager) Plugin(name string) profile.Plugin {
	for _, plugin := range pluginManager.plugins {
		if plugin.Name() == name {
			return plugin
		}
	}

	return nil
}

// Plugins lists the plugins of this manager
func (pluginManager *ProfilePluginManager) Plugins() []profile.Plugin {
	return pluginManager.plugins
}

// NewProfile creates a profile with the plugin named backend
func (pluginManager *ProfilePluginManager) NewProfile(backend string, options profile.PluginOptions) (profile.Profile, error) {
	plugin := pluginManager.Plugin(backend)

	if plugin == nil {
		return nil, profile.InvalidArgument("unknown backend %q", backend)
	}

	return plugin.NewProfile(options)
}
