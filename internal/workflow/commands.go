package workflow

import "slices"

// Scope tells whether a command needs an existing project.
type Scope int

const (
	// ScopeGlobal commands run anywhere.
	ScopeGlobal Scope = iota
	// ScopeProject commands load a project descriptor.
	ScopeProject
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "project"
}

// CommandInfo describes one entry of the command table.
type CommandInfo struct {
	Name    string
	Usage   string
	Summary string
	Scope   Scope
	// RequiresRoot commands must run in the directory holding .magnet.
	// Other project commands find the root by walking upward.
	RequiresRoot bool
}

var commands = []CommandInfo{
	{Name: "help", Usage: "magnet help", Summary: "Show the list of commands", Scope: ScopeGlobal},
	{Name: "version", Usage: "magnet version", Summary: "Print the magnet version", Scope: ScopeGlobal},
	{Name: "new", Usage: "magnet new", Summary: "Create a new C++ project", Scope: ScopeGlobal},
	{Name: "config", Usage: "magnet config [Debug/Release]", Summary: "Change the default build configuration", Scope: ScopeProject, RequiresRoot: true},
	{Name: "generate", Usage: "magnet generate", Summary: "Generate the CMake build scripts and configure the build", Scope: ScopeProject, RequiresRoot: true},
	{Name: "build", Usage: "magnet build", Summary: "Build the project in its default configuration", Scope: ScopeProject},
	{Name: "run", Usage: "magnet run", Summary: "Launch the built executable", Scope: ScopeProject},
	{Name: "clean", Usage: "magnet clean", Summary: "Remove the CMake cache from the build directory", Scope: ScopeProject},
	{Name: "install", Usage: "magnet install [url | --list]", Summary: "Install one or all dependencies", Scope: ScopeProject, RequiresRoot: true},
	{Name: "remove", Usage: "magnet remove <dependency>", Summary: "Remove an installed dependency", Scope: ScopeProject, RequiresRoot: true},
	{Name: "switch", Usage: "magnet switch <dependency> <branch>", Summary: "Check out another branch of a dependency", Scope: ScopeProject, RequiresRoot: true},
}

// Commands returns the command table in help order.
func Commands() []CommandInfo {
	return slices.Clone(commands)
}

// Lookup returns the table entry for name.
func Lookup(name string) (CommandInfo, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandInfo{}, false
}

// IsGlobal reports whether name runs without a project.
func IsGlobal(name string) bool {
	c, ok := Lookup(name)
	return ok && c.Scope == ScopeGlobal
}
