// Package xml implements a profile stored in an XML document:
//
//	<profile>
//	  <section name="General">
//	    <entry name="Port">8080</entry>
//	  </section>
//	</profile>
//
// The name of the root element is configurable.
package xml

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/jrife/profile"
	"github.com/jrife/profile/xmlbased"
	"go.uber.org/zap"
)

const (
	// Extension is the file extension of the default name
	Extension = ".xml"
	// DefaultRootName is the name of the root element of new documents
	DefaultRootName = "profile"

	sectionTag = "section"
	entryTag   = "entry"
	nameAttr   = "name"
)

var _ profile.Profile = (*Profile)(nil)

type options struct {
	logger   *zap.Logger
	rootName string
	encoding string
	readOnly bool
}

// Option configures a Profile
type Option func(options *options)

// WithLogger sets the logger of the profile
func WithLogger(logger *zap.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithRootName sets the name of the root element
func WithRootName(rootName string) Option {
	return func(options *options) {
		options.rootName = rootName
	}
}

// WithEncoding sets the encoding of the document
func WithEncoding(encoding string) Option {
	return func(options *options) {
		options.encoding = encoding
	}
}

// WithReadOnly makes the profile read-only
func WithReadOnly() Option {
	return func(options *options) {
		options.readOnly = true
	}
}

// Profile is a profile stored in an XML document
type Profile struct {
	xmlbased.Profile
	rootName string
}

// New creates a profile for the document at name. If name
// is empty the default name is used.
func New(name string, opts ...Option) (*Profile, error) {
	options := options{rootName: DefaultRootName}

	for _, opt := range opts {
		opt(&options)
	}

	if strings.TrimSpace(name) == "" {
		name = DefaultName()
	}

	base, err := xmlbased.New(name, options.logger, options.encoding)

	if err != nil {
		return nil, err
	}

	rootName := strings.TrimSpace(options.rootName)

	if !xmlbased.ValidName(rootName) {
		return nil, profile.InvalidArgument("root name %q is not a valid element name", rootName)
	}

	p := &Profile{Profile: base, rootName: rootName}

	if options.readOnly {
		p.Freeze()
	}

	return p, nil
}

// DefaultName returns the path of the running executable
// with its extension replaced by .xml
func DefaultName() string {
	return profile.DefaultNameWithoutExtension() + Extension
}

// DefaultName implements profile.Profile.DefaultName
func (p *Profile) DefaultName() string {
	return DefaultName()
}

// RootName returns the name of the root element
// used when a document is created
func (p *Profile) RootName() string {
	return p.rootName
}

// SetRootName changes the name of the root element
// used when a document is created
func (p *Profile) SetRootName(rootName string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	rootName = strings.TrimSpace(rootName)

	if !xmlbased.ValidName(rootName) {
		return profile.InvalidArgument("root name %q is not a valid element name", rootName)
	}

	if p.rootName == rootName || !p.RaiseChanging(profile.ChangeOther, "", "RootName", rootName) {
		return nil
	}

	p.rootName = rootName
	p.RaiseChanged(profile.ChangeOther, "", "RootName", rootName)

	return nil
}

// Clone implements profile.ReadOnlyProfile.Clone
func (p *Profile) Clone() profile.Profile {
	return &Profile{Profile: p.CloneProfile(), rootName: p.rootName}
}

// CloneReadOnly implements profile.Profile.CloneReadOnly
func (p *Profile) CloneReadOnly() profile.ReadOnlyProfile {
	clone := &Profile{Profile: p.CloneProfile(), rootName: p.rootName}
	clone.Freeze()

	return clone
}

// SetValue implements profile.Profile.SetValue
func (p *Profile) SetValue(section, entry string, value interface{}) error {
	if value == nil {
		return p.RemoveEntry(section, entry)
	}

	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	if !p.RaiseChanging(profile.ChangeSetValue, section, entry, value) {
		return nil
	}

	text := profile.FormatValue(value)
	fresh, err := p.Fresh()

	if err != nil {
		return err
	}

	p.Logger().Debug("set value", zap.String("operation", "SetValue"), zap.String("section", section), zap.String("entry", entry), zap.Bool("fresh", fresh))

	var doc *etree.Document

	if fresh {
		doc = xmlbased.NewDocument()
		sectionElement := doc.CreateElement(p.rootName).CreateElement(sectionTag)
		sectionElement.CreateAttr(nameAttr, section)
		entryElement := sectionElement.CreateElement(entryTag)
		entryElement.CreateAttr(nameAttr, entry)
		entryElement.SetText(text)
	} else {
		if doc, err = p.Document(); err != nil {
			return err
		} else if doc == nil {
			doc = xmlbased.NewDocument()
		}

		root := doc.Root()

		if root == nil {
			root = doc.CreateElement(p.rootName)
		}

		sectionElement := findNamed(root, sectionTag, section)

		if sectionElement == nil {
			sectionElement = root.CreateElement(sectionTag)
			sectionElement.CreateAttr(nameAttr, section)
		}

		entryElement := findNamed(sectionElement, entryTag, entry)

		if entryElement == nil {
			entryElement = sectionElement.CreateElement(entryTag)
			entryElement.CreateAttr(nameAttr, entry)
		}

		entryElement.SetText(text)
	}

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeSetValue, section, entry, value)

	return nil
}

// GetValue implements profile.ReadOnlyProfile.GetValue
func (p *Profile) GetValue(section, entry string) (string, bool, error) {
	section, entry, err := names(section, entry)

	if err != nil {
		return "", false, err
	}

	sectionElement, err := p.section(section)

	if err != nil || sectionElement == nil {
		return "", false, err
	}

	entryElement := findNamed(sectionElement, entryTag, entry)

	if entryElement == nil {
		return "", false, nil
	}

	return entryElement.Text(), true, nil
}

// HasEntry implements profile.ReadOnlyProfile.HasEntry
func (p *Profile) HasEntry(section, entry string) (bool, error) {
	return profile.HasEntry(p, section, entry)
}

// HasSection implements profile.ReadOnlyProfile.HasSection
func (p *Profile) HasSection(section string) (bool, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return false, err
	}

	return profile.HasSection(p, section)
}

// RemoveEntry implements profile.Profile.RemoveEntry
func (p *Profile) RemoveEntry(section, entry string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	doc, err := p.Document()

	if err != nil || doc == nil || doc.Root() == nil {
		return err
	}

	sectionElement := findNamed(doc.Root(), sectionTag, section)

	if sectionElement == nil {
		return nil
	}

	entryElement := findNamed(sectionElement, entryTag, entry)

	if entryElement == nil || !p.RaiseChanging(profile.ChangeRemoveEntry, section, entry, nil) {
		return nil
	}

	p.Logger().Debug("remove entry", zap.String("operation", "RemoveEntry"), zap.String("section", section), zap.String("entry", entry))
	sectionElement.RemoveChild(entryElement)

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeRemoveEntry, section, entry, nil)

	return nil
}

// RemoveSection implements profile.Profile.RemoveSection
func (p *Profile) RemoveSection(section string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	section, err := profile.NormalizeSection(section)

	if err != nil {
		return err
	}

	doc, err := p.Document()

	if err != nil || doc == nil || doc.Root() == nil {
		return err
	}

	sectionElement := findNamed(doc.Root(), sectionTag, section)

	if sectionElement == nil || !p.RaiseChanging(profile.ChangeRemoveSection, section, "", nil) {
		return nil
	}

	p.Logger().Debug("remove section", zap.String("operation", "RemoveSection"), zap.String("section", section))
	doc.Root().RemoveChild(sectionElement)

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeRemoveSection, section, "", nil)

	return nil
}

// GetEntryNames implements profile.ReadOnlyProfile.GetEntryNames
func (p *Profile) GetEntryNames(section string) ([]string, bool, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return nil, false, err
	}

	sectionElement, err := p.section(section)

	if err != nil || sectionElement == nil {
		return nil, false, err
	}

	return namesOf(sectionElement, entryTag), true, nil
}

// GetSectionNames implements profile.ReadOnlyProfile.GetSectionNames
func (p *Profile) GetSectionNames() ([]string, bool, error) {
	doc, err := p.Document()

	if err != nil || doc == nil || doc.Root() == nil {
		return nil, false, err
	}

	return namesOf(doc.Root(), sectionTag), true, nil
}

func (p *Profile) section(section string) (*etree.Element, error) {
	doc, err := p.Document()

	if err != nil || doc == nil || doc.Root() == nil {
		return nil, err
	}

	return findNamed(doc.Root(), sectionTag, section), nil
}

// findNamed returns the first child of parent with
// the given tag whose name attribute is name
func findNamed(parent *etree.Element, tag, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Space != "" || child.Tag != tag {
			continue
		}

		if attr := child.SelectAttr(nameAttr); attr != nil && attr.Value == name {
			return child
		}
	}

	return nil
}

// namesOf lists the name attributes of the children of
// parent with the given tag
func namesOf(parent *etree.Element, tag string) []string {
	names := []string{}

	for _, child := range parent.ChildElements() {
		if child.Space != "" || child.Tag != tag {
			continue
		}

		if attr := child.SelectAttr(nameAttr); attr != nil {
			names = append(names, attr.Value)
		}
	}

	return names
}

func names(section, entry string) (string, string, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return "", "", err
	}

	entry, err = profile.NormalizeEntry(entry)

	if err != nil {
		return "", "", err
	}

	return section, entry, nil
}
