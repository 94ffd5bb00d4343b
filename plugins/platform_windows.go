//go:build windows

package plugins

import (
	"github.com/jrife/profile"
	"github.com/jrife/profile/registry/winreg"
)

func platformPlugins() []profile.Plugin {
	return winreg.Plugins()
}
