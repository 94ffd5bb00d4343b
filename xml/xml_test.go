package xml_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/profile"
	"github.com/jrife/profile/xml"
	"go.uber.org/zap/zaptest"
)

func tempProfile(t *testing.T, opts ...xml.Option) *xml.Profile {
	opts = append([]xml.Option{xml.WithLogger(zaptest.NewLogger(t))}, opts...)
	p, err := xml.New(filepath.Join(t.TempDir(), "test.xml"), opts...)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	return p
}

func TestSelfTest(t *testing.T) {
	p := tempProfile(t)

	if err := profile.Test(p, true); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}
}

func TestFreshDocument(t *testing.T) {
	p := tempProfile(t)

	if err := p.SetValue("General", "Port", 8080); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	data, err := os.ReadFile(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	expected := `<?xml version="1.0" encoding="utf-8"?>
<profile>
  <section name="General">
    <entry name="Port">8080</entry>
  </section>
</profile>
`

	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf(diff)
	}
}

func TestRemoveSection(t *testing.T) {
	p := tempProfile(t)

	values := map[string]map[string]interface{}{
		"General": {"Port": 8080, "Host": "localhost"},
		"Cache":   {"Size": 64},
	}

	for section, entries := range values {
		for entry, value := range entries {
			if err := p.SetValue(section, entry, value); err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}
		}
	}

	if err := p.RemoveSection("Cache"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	sections, ok, err := p.GetSectionNames()

	if err != nil || !ok {
		t.Fatalf("expected sections to exist, got %v, %#v", ok, err)
	}

	if diff := cmp.Diff([]string{"General"}, sections); diff != "" {
		t.Fatalf(diff)
	}

	if _, ok, err := p.GetEntryNames("Cache"); err != nil || ok {
		t.Fatalf("expected Cache to be absent, got %v, %#v", ok, err)
	}

	if host, err := profile.GetString(p, "General", "Host", ""); err != nil || host != "localhost" {
		t.Fatalf("expected host to be localhost, got %q, %#v", host, err)
	}
}

func TestRootName(t *testing.T) {
	p := tempProfile(t, xml.WithRootName("settings"))

	if err := p.SetValue("General", "Port", 8080); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	data, err := os.ReadFile(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if !strings.Contains(string(data), "<settings>") {
		t.Fatalf("expected root element to be settings, got %s", data)
	}

	testCases := map[string]struct {
		rootName string
		err      error
	}{
		"valid":     {rootName: "config", err: nil},
		"same":      {rootName: "settings", err: nil},
		"empty":     {rootName: "", err: profile.ErrInvalidArgument},
		"prefixed":  {rootName: "a:b", err: profile.ErrInvalidArgument},
		"digit":     {rootName: "1abc", err: profile.ErrInvalidArgument},
		"with-dash": {rootName: "my-settings", err: nil},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			clone := p.Clone().(*xml.Profile)

			if err := clone.SetRootName(testCase.rootName); !errors.Is(err, testCase.err) {
				t.Fatalf("expected err to be %#v, got %#v", testCase.err, err)
			}
		})
	}
}

func TestRootNameEvent(t *testing.T) {
	p := tempProfile(t)
	var events []profile.ChangeEvent

	p.OnChanged(func(event profile.ChangeEvent) {
		events = append(events, event)
	})

	if err := p.SetRootName("settings"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	expected := []profile.ChangeEvent{{Type: profile.ChangeOther, Entry: "RootName", Value: "settings"}}

	if diff := cmp.Diff(expected, events); diff != "" {
		t.Fatalf(diff)
	}
}

func TestEncoding(t *testing.T) {
	p := tempProfile(t, xml.WithEncoding("ISO-8859-1"))

	if err := p.SetValue("Général", "Città", "Ærø"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	data, err := os.ReadFile(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if !strings.HasPrefix(string(data), `<?xml version="1.0" encoding="ISO-8859-1"?>`) {
		t.Fatalf("expected declaration to name ISO-8859-1, got %s", data)
	}

	if strings.Contains(string(data), "Ærø") {
		t.Fatalf("expected document not to be UTF-8")
	}

	reader, err := xml.New(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	value, ok, err := reader.GetValue("Général", "Città")

	if err != nil || !ok {
		t.Fatalf("expected value to exist, got %v, %#v", ok, err)
	}

	if diff := cmp.Diff("Ærø", value); diff != "" {
		t.Fatalf(diff)
	}

	if err := p.SetEncoding("no-such-encoding"); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}
}

func TestMalformedDocument(t *testing.T) {
	p := tempProfile(t)

	if err := os.WriteFile(p.Name(), []byte("<profile><section"), 0666); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, _, err := p.GetValue("General", "Port"); !errors.Is(err, profile.ErrParse) {
		t.Fatalf("expected err to be ErrParse, got %#v", err)
	}

	if err := p.SetValue("General", "Port", 1); !errors.Is(err, profile.ErrParse) {
		t.Fatalf("expected err to be ErrParse, got %#v", err)
	}
}

func TestUnknownElementsPreserved(t *testing.T) {
	p := tempProfile(t)
	document := `<?xml version="1.0" encoding="utf-8"?>
<profile>
  <comment>keep me</comment>
  <section name="General">
    <entry name="Port">1</entry>
  </section>
</profile>
`

	if err := os.WriteFile(p.Name(), []byte(document), 0666); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	sections, _, err := p.GetSectionNames()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{"General"}, sections); diff != "" {
		t.Fatalf(diff)
	}

	if err := p.SetValue("General", "Port", 2); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	data, err := os.ReadFile(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	expected := strings.Replace(document, ">1<", ">2<", 1)

	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf(diff)
	}
}
