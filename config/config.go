// Package config implements a profile stored in an application
// configuration file. Sections are elements holding add elements
// and are declared in a configSections manifest:
//
//	<configuration>
//	  <configSections>
//	    <sectionGroup name="profile">
//	      <section name="General" type="..." />
//	    </sectionGroup>
//	  </configSections>
//	  <profile>
//	    <General>
//	      <add key="Port" value="8080" />
//	    </General>
//	  </profile>
//	</configuration>
//
// The sectionGroup wrapper and the group element are omitted when
// the group name is empty.
package config

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/jrife/profile"
	"github.com/jrife/profile/xmlbased"
	"go.uber.org/zap"
)

const (
	// Extension is the file extension of the default name
	Extension = ".config"
	// DefaultGroupName is the group name of new profiles
	DefaultGroupName = "profile"
	// AppSettings is the section that is not declared in the
	// manifest when the group name is empty
	AppSettings = "appSettings"
	// SectionType is the handler type recorded for every
	// section in the manifest
	SectionType = "System.Configuration.NameValueSectionHandler, System, Version=1.0.3300.0, Culture=neutral, PublicKeyToken=b77a5c561934e089, Custom=null"

	rootTag           = "configuration"
	configSectionsTag = "configSections"
	sectionGroupTag   = "sectionGroup"
	sectionTag        = "section"
	addTag            = "add"
	nameAttr          = "name"
	typeAttr          = "type"
	keyAttr           = "key"
	valueAttr         = "value"
)

var _ profile.Profile = (*Profile)(nil)

type options struct {
	logger    *zap.Logger
	groupName string
	encoding  string
	readOnly  bool
}

// Option configures a Profile
type Option func(options *options)

// WithLogger sets the logger of the profile
func WithLogger(logger *zap.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithGroupName sets the group name. An empty
// name stores sections directly under the root.
func WithGroupName(groupName string) Option {
	return func(options *options) {
		options.groupName = groupName
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

// Profile is a profile stored in an application configuration file
type Profile struct {
	xmlbased.Profile
	groupName string
}

// New creates a profile for the configuration file at name.
// If name is empty the default name is used.
func New(name string, opts ...Option) (*Profile, error) {
	options := options{groupName: DefaultGroupName}

	for _, opt := range opts {
		opt(&options)
	}

	if strings.TrimSpace(name) == "" {
		name = DefaultName()
	}

	groupName, err := normalizeGroupName(options.groupName)

	if err != nil {
		return nil, err
	}

	base, err := xmlbased.New(name, options.logger, options.encoding)

	if err != nil {
		return nil, err
	}

	p := &Profile{Profile: base, groupName: groupName}

	if options.readOnly {
		p.Freeze()
	}

	return p, nil
}

// DefaultName returns the path of the running executable
// with its extension replaced by .config
func DefaultName() string {
	return profile.DefaultNameWithoutExtension() + Extension
}

// DefaultName implements profile.Profile.DefaultName
func (p *Profile) DefaultName() string {
	return DefaultName()
}

// GroupName returns the name of the element holding the sections
func (p *Profile) GroupName() string {
	return p.groupName
}

// SetGroupName changes the name of the element holding the
// sections. Spaces are replaced with underscores. A name with
// a namespace prefix is rejected.
func (p *Profile) SetGroupName(groupName string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	groupName, err := normalizeGroupName(groupName)

	if err != nil {
		return err
	}

	if p.groupName == groupName || !p.RaiseChanging(profile.ChangeOther, "", "GroupName", groupName) {
		return nil
	}

	p.groupName = groupName
	p.RaiseChanged(profile.ChangeOther, "", "GroupName", groupName)

	return nil
}

// Clone implements profile.ReadOnlyProfile.Clone
func (p *Profile) Clone() profile.Profile {
	return &Profile{Profile: p.CloneProfile(), groupName: p.groupName}
}

// CloneReadOnly implements profile.Profile.CloneReadOnly
func (p *Profile) CloneReadOnly() profile.ReadOnlyProfile {
	clone := &Profile{Profile: p.CloneProfile(), groupName: p.groupName}
	clone.Freeze()

	return clone
}

func (p *Profile) grouped() bool {
	return p.groupName != ""
}

func (p *Profile) appSettings(section string) bool {
	return !p.grouped() && section == AppSettings
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

	section, entry, err := p.names(section, entry)

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
		root := doc.CreateElement(rootTag)

		if !p.appSettings(section) {
			manifest := root.CreateElement(configSectionsTag)

			if p.grouped() {
				manifest = manifest.CreateElement(sectionGroupTag)
				manifest.CreateAttr(nameAttr, p.groupName)
			}

			declaration := manifest.CreateElement(sectionTag)
			declaration.CreateAttr(nameAttr, section)
			declaration.CreateAttr(typeAttr, SectionType)
		}

		parent := root

		if p.grouped() {
			parent = root.CreateElement(p.groupName)
		}

		add := parent.CreateElement(section).CreateElement(addTag)
		add.CreateAttr(keyAttr, entry)
		add.CreateAttr(valueAttr, text)
	} else {
		if doc, err = p.Document(); err != nil {
			return err
		} else if doc == nil {
			doc = xmlbased.NewDocument()
		}

		root := doc.Root()

		if root == nil {
			root = doc.CreateElement(rootTag)
		}

		if !p.appSettings(section) {
			p.declare(root, section)
		}

		parent := root

		if p.grouped() {
			if parent = findTag(root, p.groupName); parent == nil {
				parent = root.CreateElement(p.groupName)
			}
		}

		sectionElement := findTag(parent, section)

		if sectionElement == nil {
			sectionElement = parent.CreateElement(section)
		}

		add := findAdd(sectionElement, entry)

		if add == nil {
			add = sectionElement.CreateElement(addTag)
			add.CreateAttr(keyAttr, entry)
		}

		add.CreateAttr(valueAttr, text)
	}

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeSetValue, section, entry, value)

	return nil
}

// declare adds section to the manifest, creating the
// manifest as the first child of root if needed
func (p *Profile) declare(root *etree.Element, section string) {
	manifest := findTag(root, configSectionsTag)

	if manifest == nil {
		manifest = etree.NewElement(configSectionsTag)
		root.InsertChildAt(0, manifest)
	}

	if p.grouped() {
		group := findNamed(manifest, sectionGroupTag, p.groupName)

		if group == nil {
			group = manifest.CreateElement(sectionGroupTag)
			group.CreateAttr(nameAttr, p.groupName)
		}

		manifest = group
	}

	declaration := findNamed(manifest, sectionTag, section)

	if declaration == nil {
		declaration = manifest.CreateElement(sectionTag)
		declaration.CreateAttr(nameAttr, section)
	}

	declaration.CreateAttr(typeAttr, SectionType)
}

// GetValue implements profile.ReadOnlyProfile.GetValue
func (p *Profile) GetValue(section, entry string) (string, bool, error) {
	section, entry, err := p.names(section, entry)

	if err != nil {
		return "", false, err
	}

	doc, err := p.Document()

	if err != nil || doc == nil {
		return "", false, err
	}

	sectionElement := p.section(doc, section)

	if sectionElement == nil {
		return "", false, nil
	}

	add := findAdd(sectionElement, entry)

	if add == nil {
		return "", false, nil
	}

	return add.SelectAttrValue(valueAttr, ""), true, nil
}

// HasEntry implements profile.ReadOnlyProfile.HasEntry
func (p *Profile) HasEntry(section, entry string) (bool, error) {
	return profile.HasEntry(p, section, entry)
}

// HasSection implements profile.ReadOnlyProfile.HasSection
func (p *Profile) HasSection(section string) (bool, error) {
	section, err := p.normalizeSection(section)

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

	section, entry, err := p.names(section, entry)

	if err != nil {
		return err
	}

	doc, err := p.Document()

	if err != nil || doc == nil {
		return err
	}

	sectionElement := p.section(doc, section)

	if sectionElement == nil {
		return nil
	}

	add := findAdd(sectionElement, entry)

	if add == nil || !p.RaiseChanging(profile.ChangeRemoveEntry, section, entry, nil) {
		return nil
	}

	p.Logger().Debug("remove entry", zap.String("operation", "RemoveEntry"), zap.String("section", section), zap.String("entry", entry))
	sectionElement.RemoveChild(add)

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeRemoveEntry, section, entry, nil)

	return nil
}

// RemoveSection implements profile.Profile.RemoveSection. The
// declaration of the section is removed from the manifest too.
func (p *Profile) RemoveSection(section string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	section, err := p.normalizeSection(section)

	if err != nil {
		return err
	}

	doc, err := p.Document()

	if err != nil || doc == nil {
		return err
	}

	sectionElement := p.section(doc, section)

	if sectionElement == nil || !p.RaiseChanging(profile.ChangeRemoveSection, section, "", nil) {
		return nil
	}

	p.Logger().Debug("remove section", zap.String("operation", "RemoveSection"), zap.String("section", section))
	sectionElement.Parent().RemoveChild(sectionElement)

	if !p.appSettings(section) {
		if manifest := p.manifest(doc); manifest != nil {
			if declaration := findNamed(manifest, sectionTag, section); declaration != nil {
				manifest.RemoveChild(declaration)
			}
		}
	}

	if err := p.Save(doc); err != nil {
		return err
	}

	p.RaiseChanged(profile.ChangeRemoveSection, section, "", nil)

	return nil
}

// GetEntryNames implements profile.ReadOnlyProfile.GetEntryNames
func (p *Profile) GetEntryNames(section string) ([]string, bool, error) {
	section, err := p.normalizeSection(section)

	if err != nil {
		return nil, false, err
	}

	doc, err := p.Document()

	if err != nil || doc == nil {
		return nil, false, err
	}

	sectionElement := p.section(doc, section)

	if sectionElement == nil {
		return nil, false, nil
	}

	names := []string{}

	for _, child := range sectionElement.ChildElements() {
		if child.Tag != addTag {
			continue
		}

		if attr := child.SelectAttr(keyAttr); attr != nil {
			names = append(names, attr.Value)
		}
	}

	return names, true, nil
}

// GetSectionNames implements profile.ReadOnlyProfile.GetSectionNames
func (p *Profile) GetSectionNames() ([]string, bool, error) {
	doc, err := p.Document()

	if err != nil || doc == nil {
		return nil, false, err
	}

	parent := p.sections(doc)

	if parent == nil {
		return nil, false, nil
	}

	names := []string{}

	for _, child := range parent.ChildElements() {
		if !p.grouped() && child.Tag == configSectionsTag {
			continue
		}

		names = append(names, child.Tag)
	}

	return names, true, nil
}

// sections returns the element holding the sections
func (p *Profile) sections(doc *etree.Document) *etree.Element {
	root := doc.Root()

	if root == nil || !p.grouped() {
		return root
	}

	return findTag(root, p.groupName)
}

func (p *Profile) section(doc *etree.Document, section string) *etree.Element {
	parent := p.sections(doc)

	if parent == nil {
		return nil
	}

	return findTag(parent, section)
}

// manifest returns the element holding the section declarations
func (p *Profile) manifest(doc *etree.Document) *etree.Element {
	if doc.Root() == nil {
		return nil
	}

	manifest := findTag(doc.Root(), configSectionsTag)

	if manifest == nil || !p.grouped() {
		return manifest
	}

	return findNamed(manifest, sectionGroupTag, p.groupName)
}

func (p *Profile) names(section, entry string) (string, string, error) {
	section, err := p.normalizeSection(section)

	if err != nil {
		return "", "", err
	}

	entry, err = profile.NormalizeEntry(entry)

	if err != nil {
		return "", "", err
	}

	return section, entry, nil
}

// normalizeSection trims section and replaces its spaces with
// underscores. The result must be an element name without a
// namespace prefix.
func (p *Profile) normalizeSection(section string) (string, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return "", err
	}

	section = strings.ReplaceAll(section, " ", "_")

	if !xmlbased.ValidName(section) {
		return "", profile.InvalidArgument("section %q is not a valid element name", section)
	}

	if !p.grouped() && section == configSectionsTag {
		return "", profile.InvalidArgument("section %q is reserved for the manifest", section)
	}

	return section, nil
}

func normalizeGroupName(groupName string) (string, error) {
	groupName = strings.ReplaceAll(strings.TrimSpace(groupName), " ", "_")

	if strings.Contains(groupName, ":") {
		return "", profile.InvalidArgument("group name %q may not contain a namespace prefix", groupName)
	}

	if groupName != "" && (!xmlbased.ValidName(groupName) || groupName == configSectionsTag) {
		return "", profile.InvalidArgument("group name %q is not a valid element name", groupName)
	}

	return groupName, nil
}

func findTag(parent *etree.Element, tag string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Space == "" && child.Tag == tag {
			return child
		}
	}

	return nil
}

func findNamed(parent *etree.Element, tag, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Space == "" && child.Tag == tag && child.SelectAttrValue(nameAttr, "") == name {
			return child
		}
	}

	return nil
}

func findAdd(section *etree.Element, key string) *etree.Element {
	for _, child := range section.ChildElements() {
		if attr := child.SelectAttr(keyAttr); child.Tag == addTag && attr != nil && attr.Value == key {
			return child
		}
	}

	return nil
}
