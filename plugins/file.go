package plugins

import (
	"context"
	"fmt"
	"os"

	"github.com/jrife/profile"
	"github.com/jrife/profile/utils/log"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the content of a profile option file:
//
//	backend: xml
//	options:
//	  path: /etc/app/settings.xml
//	  root_name: settings
type File struct {
	Backend string                 `yaml:"backend"`
	Options map[string]interface{} `yaml:"options"`
}

// LoadOptions reads the option file at path
func LoadOptions(path string) (string, profile.PluginOptions, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return "", nil, profile.StorageError("could not read option file", err)
	}

	var file File

	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", nil, profile.ParseError(fmt.Sprintf("could not parse option file %s", path), err)
	}

	if file.Backend == "" {
		return "", nil, profile.InvalidArgument("option file %s does not name a backend", path)
	}

	options := profile.PluginOptions{}

	for key, value := range file.Options {
		options[key] = value
	}

	return file.Backend, options, nil
}

// Open creates the profile described by the option file at path
func Open(path string) (profile.Profile, error) {
	return OpenContext(context.Background(), path)
}

// OpenContext is like Open. The profile logs through the logger
// carried by ctx, enriched with the fields of ctx.
func OpenContext(ctx context.Context, path string) (profile.Profile, error) {
	backend, options, err := LoadOptions(path)

	if err != nil {
		return nil, err
	}

	plugin := Plugin(backend)

	if plugin == nil {
		return nil, profile.InvalidArgument("unknown backend %q", backend)
	}

	logger, ctx := log.LoggerFromContext(ctx, zap.L())
	options["logger"] = log.WithContext(ctx, logger).With(zap.String("backend", backend))

	return plugin.NewProfile(options)
}
