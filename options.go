package profile

import (
	"go.uber.org/zap"
)

// String returns the string option named key. It
// returns "" if the option is not set.
func (options PluginOptions) String(key string) (string, error) {
	value, ok := options[key]

	if !ok || value == nil {
		return "", nil
	}

	str, ok := value.(string)

	if !ok {
		return "", InvalidArgument("%q must be a string", key)
	}

	return str, nil
}

// RequiredString is like String but fails if
// the option is not set or empty
func (options PluginOptions) RequiredString(key string) (string, error) {
	str, err := options.String(key)

	if err != nil {
		return "", err
	}

	if str == "" {
		return "", InvalidArgument("%q is required", key)
	}

	return str, nil
}

// Bool returns the bool option named key. It
// returns false if the option is not set.
func (options PluginOptions) Bool(key string) (bool, error) {
	value, ok := options[key]

	if !ok || value == nil {
		return false, nil
	}

	b, ok := value.(bool)

	if !ok {
		return false, InvalidArgument("%q must be a bool", key)
	}

	return b, nil
}

// Logger returns the logger passed in the "logger"
// option or nil if none was passed
func (options PluginOptions) Logger() (*zap.Logger, error) {
	value, ok := options["logger"]

	if !ok || value == nil {
		return nil, nil
	}

	logger, ok := value.(*zap.Logger)

	if !ok {
		return nil, InvalidArgument("\"logger\" must be a *zap.Logger")
	}

	return logger, nil
}
