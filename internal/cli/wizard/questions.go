package wizard

import (
	"github.com/magnet-build/magnet/internal/core/project"
)

// Defaults pre-fills answers. Questions whose answer is already known are
// skipped entirely.
type Defaults struct {
	ProjectName string
	ProjectType string
	CppVersion  string
	// ValidateName runs on the typed project name in addition to the
	// built-in rules, e.g. to reject an existing directory.
	ValidateName func(string) error
}

var cppVersions = []string{"26", "23", "20", "17", "14", "11"}

// DefaultQuestions returns the new-project questions for the answers missing
// from d, in the order they are asked.
func DefaultQuestions(d Defaults) []Question {
	var questions []Question

	if d.ProjectName == "" {
		questions = append(questions, Question{
			ID:          QuestionProjectName,
			Type:        QuestionTypeInput,
			Title:       "Project name",
			Description: "Used for the project directory and the CMake target",
			Required:    true,
			Validate: func(name string) error {
				if err := project.ValidateName(name); err != nil {
					return err
				}
				if d.ValidateName != nil {
					return d.ValidateName(name)
				}
				return nil
			},
		})
	}

	if d.ProjectType == "" {
		questions = append(questions, Question{
			ID:          QuestionProjectType,
			Type:        QuestionTypeSelect,
			Title:       "Project type",
			Description: "What the Source directory builds into",
			Default:     string(project.Executable),
			Options: []Option{
				{Label: "Executable", Value: string(project.Executable), Desc: "a runnable program"},
				{Label: "Static library", Value: string(project.StaticLibrary), Desc: "linked into its users"},
				{Label: "Shared library", Value: string(project.DynamicLibrary), Desc: "loaded at run time"},
			},
		})
	}

	if d.CppVersion == "" {
		opts := make([]Option, len(cppVersions))
		for i, v := range cppVersions {
			opts[i] = Option{Label: "C++" + v, Value: v}
		}
		questions = append(questions, Question{
			ID:      QuestionCppVersion,
			Type:    QuestionTypeSelect,
			Title:   "C++ standard",
			Default: project.DefaultCppVersion,
			Options: opts,
		})
	}

	return questions
}

// Seed returns a result holding the answers already known from d.
func Seed(d Defaults) *WizardResult {
	return &WizardResult{
		ProjectName: d.ProjectName,
		ProjectType: d.ProjectType,
		CppVersion:  d.CppVersion,
	}
}
