// Package wizard provides the interactive huh-based wizard that collects the
// settings of a new project.
package wizard

import "errors"

// WizardResult holds the user's selections from the new-project wizard.
type WizardResult struct {
	ProjectName string // Project and target name (required)
	ProjectType string // Executable, StaticLibrary, DynamicLibrary
	CppVersion  string // C++ standard, e.g. "20"
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select or Input
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Options for select questions
	Default     string                   // Default value
	Required    bool                     // Whether the field is required
	Validate    func(string) error       // Extra validation for input questions
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Question identifiers.
const (
	QuestionProjectName = "project_name"
	QuestionProjectType = "project_type"
	QuestionCppVersion  = "cpp_version"
)

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrRequired is returned by input validation for an empty required answer.
	ErrRequired = errors.New("a value is required")
)
