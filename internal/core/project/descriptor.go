package project

import (
	"fmt"
	"strings"
)

// BinaryType is the kind of artifact a project builds.
type BinaryType string

const (
	Executable     BinaryType = "Executable"
	StaticLibrary  BinaryType = "StaticLibrary"
	DynamicLibrary BinaryType = "DynamicLibrary"
)

// BinaryTypes returns every supported binary type in wizard order.
func BinaryTypes() []BinaryType {
	return []BinaryType{Executable, StaticLibrary, DynamicLibrary}
}

// ParseBinaryType matches text case-sensitively against the supported types.
func ParseBinaryType(text string) (BinaryType, error) {
	for _, t := range BinaryTypes() {
		if string(t) == text {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w (got: %q)", ErrInvalidBinaryType, text)
}

// IsLibrary reports whether the type produces a library target.
func (t BinaryType) IsLibrary() bool {
	return t == StaticLibrary || t == DynamicLibrary
}

// LibraryKind returns the add_library kind keyword, or "" for executables.
func (t BinaryType) LibraryKind() string {
	switch t {
	case StaticLibrary:
		return "STATIC"
	case DynamicLibrary:
		return "SHARED"
	default:
		return ""
	}
}

// Configuration is the active build configuration.
type Configuration string

const (
	Debug   Configuration = "Debug"
	Release Configuration = "Release"

	// ConfigurationInvalid is the sentinel produced for unparseable input.
	ConfigurationInvalid Configuration = "Invalid"
)

// ParseConfiguration matches text case-sensitively against Debug and Release.
// Any other input yields ConfigurationInvalid; callers must check IsValid.
func ParseConfiguration(text string) Configuration {
	switch Configuration(text) {
	case Debug:
		return Debug
	case Release:
		return Release
	default:
		return ConfigurationInvalid
	}
}

// IsValid reports whether c is Debug or Release.
func (c Configuration) IsValid() bool {
	return c == Debug || c == Release
}

// String returns the configuration name.
func (c Configuration) String() string {
	return string(c)
}

// Default toolchain versions for new projects.
const (
	DefaultCppVersion   = "20"
	DefaultCmakeVersion = "3.20"
)

// Descriptor identifies one project.
type Descriptor struct {
	Name          string
	Type          BinaryType
	CppVersion    string
	CmakeVersion  string
	Configuration Configuration
}

// NewDescriptor returns a descriptor with default type, versions and configuration.
func NewDescriptor(name string) *Descriptor {
	return &Descriptor{
		Name:          name,
		Type:          Executable,
		CppVersion:    DefaultCppVersion,
		CmakeVersion:  DefaultCmakeVersion,
		Configuration: Debug,
	}
}

// Validate checks the invariants a loaded or newly created descriptor must hold.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if _, err := ParseBinaryType(string(d.Type)); err != nil {
		return err
	}
	return nil
}

// ValidateName rejects names that cannot serve as both a directory and a
// CMake target name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\ "()$;#`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// descriptorFile is the persisted document schema.
type descriptorFile struct {
	Name                 string `yaml:"name"`
	ProjectType          string `yaml:"projectType"`
	CppVersion           string `yaml:"cppVersion"`
	CmakeVersion         string `yaml:"cmakeVersion"`
	DefaultConfiguration string `yaml:"defaultConfiguration"`
}

func (d *Descriptor) toFile() descriptorFile {
	return descriptorFile{
		Name:                 d.Name,
		ProjectType:          string(d.Type),
		CppVersion:           d.CppVersion,
		CmakeVersion:         d.CmakeVersion,
		DefaultConfiguration: string(d.Configuration),
	}
}

func (f descriptorFile) toDescriptor() (*Descriptor, error) {
	d := &Descriptor{
		Name:          f.Name,
		Type:          Executable,
		CppVersion:    f.CppVersion,
		CmakeVersion:  f.CmakeVersion,
		Configuration: ParseConfiguration(f.DefaultConfiguration),
	}
	if f.ProjectType != "" {
		t, err := ParseBinaryType(f.ProjectType)
		if err != nil {
			return nil, err
		}
		d.Type = t
	}
	if d.CppVersion == "" {
		d.CppVersion = DefaultCppVersion
	}
	if d.CmakeVersion == "" {
		d.CmakeVersion = DefaultCmakeVersion
	}
	if f.DefaultConfiguration == "" {
		d.Configuration = Debug
	}
	return d, nil
}
