package plugins_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/profile"
	"github.com/jrife/profile/plugins"
	"github.com/jrife/profile/utils/log"
	"github.com/jrife/profile/xml"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func writeOptionFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionFile(t, `
backend: xml
options:
  path: /tmp/settings.xml
  root_name: settings
  read_only: true
`)

	backend, options, err := plugins.LoadOptions(path)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if backend != "xml" {
		t.Fatalf("expected backend to be xml, got %q", backend)
	}

	expected := profile.PluginOptions{
		"path":      "/tmp/settings.xml",
		"root_name": "settings",
		"read_only": true,
	}

	if diff := cmp.Diff(expected, options); diff != "" {
		t.Fatalf(diff)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	testCases := map[string]struct {
		content string
		err     error
	}{
		"no backend":  {content: "options:\n  path: a.ini\n", err: profile.ErrInvalidArgument},
		"malformed":   {content: "backend: [xml\n", err: profile.ErrParse},
		"wrong shape": {content: "- xml\n", err: profile.ErrParse},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := plugins.LoadOptions(writeOptionFile(t, testCase.content)); !errors.Is(err, testCase.err) {
				t.Fatalf("expected err to be %#v, got %#v", testCase.err, err)
			}
		})
	}

	if _, _, err := plugins.LoadOptions(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, profile.ErrStorage) {
		t.Fatalf("expected err to be ErrStorage, got %#v", err)
	}
}

func TestOpen(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.xml")
	path := writeOptionFile(t, "backend: xml\noptions:\n  path: "+settings+"\n  root_name: settings\n")
	ctx := log.WithLogger(context.Background(), zaptest.NewLogger(t))
	ctx = log.WithFields(ctx, zap.String("test", t.Name()))

	p, err := plugins.OpenContext(ctx, path)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	xmlProfile, ok := p.(*xml.Profile)

	if !ok {
		t.Fatalf("expected an xml profile, got %T", p)
	}

	if xmlProfile.RootName() != "settings" {
		t.Fatalf("expected root name to be settings, got %q", xmlProfile.RootName())
	}

	if err := p.SetValue("General", "Port", 8080); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	reopened, err := plugins.Open(path)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if port, err := profile.GetInt(reopened, "General", "Port", 0); err != nil || port != 8080 {
		t.Fatalf("expected port to be 8080, got %d, %#v", port, err)
	}

	unknown := writeOptionFile(t, "backend: nope\n")

	if _, err := plugins.Open(unknown); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}
}
