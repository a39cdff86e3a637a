package config

// Settings is the user-level configuration of the magnet tool.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	NoColor   bool   `mapstructure:"no_color"`

	// Generator overrides the platform default CMake generator.
	Generator string `mapstructure:"generator"`
	// CMakeArgs are extra arguments for the configure step, shell-quoted.
	CMakeArgs string `mapstructure:"cmake_args"`

	// GitHost prefixes owner/repo shorthand given to install.
	GitHost string `mapstructure:"git_host"`

	CppVersion   string `mapstructure:"cpp_version"`
	CmakeVersion string `mapstructure:"cmake_version"`

	// SourceExclude lists doublestar patterns dropped from source discovery.
	SourceExclude []string `mapstructure:"source_exclude"`
}
