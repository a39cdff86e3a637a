package config

// Default value constants to avoid magic numbers and strings.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	DefaultGitHost = "https://github.com/"

	DefaultCppVersion   = "20"
	DefaultCmakeVersion = "3.20"

	// EnvPrefix is prepended to every settings key read from the environment,
	// e.g. MAGNET_LOG_LEVEL.
	EnvPrefix = "MAGNET"

	// SettingsFile is the file name looked up under the user config directory.
	SettingsFile = "settings.yaml"
)

// Settings keys, shared by the file, the environment and the CLI flags.
const (
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyNoColor       = "no_color"
	KeyGenerator     = "generator"
	KeyCMakeArgs     = "cmake_args"
	KeyGitHost       = "git_host"
	KeyCppVersion    = "cpp_version"
	KeyCmakeVersion  = "cmake_version"
	KeySourceExclude = "source_exclude"
)

// NewDefaultSettings returns settings with every field at its default.
// Generator stays empty so the platform default applies.
func NewDefaultSettings() *Settings {
	return &Settings{
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		GitHost:      DefaultGitHost,
		CppVersion:   DefaultCppVersion,
		CmakeVersion: DefaultCmakeVersion,
	}
}

func defaultValues() map[string]any {
	d := NewDefaultSettings()
	return map[string]any{
		KeyLogLevel:      d.LogLevel,
		KeyLogFormat:     d.LogFormat,
		KeyNoColor:       d.NoColor,
		KeyGenerator:     d.Generator,
		KeyCMakeArgs:     d.CMakeArgs,
		KeyGitHost:       d.GitHost,
		KeyCppVersion:    d.CppVersion,
		KeyCmakeVersion:  d.CmakeVersion,
		KeySourceExclude: []string{},
	}
}
