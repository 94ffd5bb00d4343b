//go:build !windows

package plugins

import (
	"github.com/jrife/profile"
)

func platformPlugins() []profile.Plugin {
	return nil
}
