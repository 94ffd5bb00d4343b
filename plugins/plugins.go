// Package plugins lists the profile drivers and opens
// profiles described by YAML option files.
package plugins

import (
	"github.com/jrife/profile"
	"github.com/jrife/profile/config"
	"github.com/jrife/profile/ini"
	"github.com/jrife/profile/registry/bolt"
	"github.com/jrife/profile/registry/memory"
	"github.com/jrife/profile/xml"
)

var plugins []profile.Plugin

func init() {
	plugins = allPlugins()
}

func allPlugins() []profile.Plugin {
	var all []profile.Plugin

	all = append(all, ini.Plugins()...)
	all = append(all, xml.Plugins()...)
	all = append(all, config.Plugins()...)
	all = append(all, bolt.Plugins()...)
	all = append(all, memory.Plugins()...)
	all = append(all, platformPlugins()...)

	return all
}

// Plugin returns the plugin whose name matches the given name.
// It returns nil if no such plugin is found.
func Plugin(name string) profile.Plugin {
	for _, plugin := range plugins {
		if plugin.Name() == name {
			return plugin
		}
	}

	return nil
}

// Plugins lists all the plugins that are available
func Plugins() []profile.Plugin {
	return plugins
}
