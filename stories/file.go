package stories

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

// File is the YAML representation of a story file:
//
//	title: Button/Energy
//	stories:
//	  - name: Delete Building
//	    description: Removes the building and its bills.
//	    args:
//	      label: Delete
//	      variant: destructive
//	      size: lg
//	      action: true
type File struct {
	Title   string      `yaml:"title" validate:"required"`
	Stories []FileStory `yaml:"stories" validate:"required,min=1,unique=Name,dive"`
}

// FileStory is a story entry in a File
type FileStory struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Args        FileArgs `yaml:"args"`
}

// FileArgs are the Button props of a FileStory
type FileArgs struct {
	Label           string `yaml:"label"`
	Variant         string `yaml:"variant"`
	Size            string `yaml:"size"`
	BackgroundColor string `yaml:"backgroundColor"`
	Primary         bool   `yaml:"primary"`
	// Action attaches an OnClick that logs the click
	Action bool `yaml:"action"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Parse reads a story file from r. Clicks of stories with action set are logged to logger.
func Parse(r io.Reader, logger *slog.Logger) ([]Story, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("story file is empty")
		}
		return nil, fmt.Errorf("decoding story file: %w", err)
	}

	if err := validatorInstance().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid story file: %w", convertValidationError(err))
	}

	result := make([]Story, 0, len(file.Stories))
	names := make(map[string]string, len(file.Stories))
	for i, fs := range file.Stories {
		story := NewStory(file.Title, fs.Name, ui.ButtonProps{
			Label:           fs.Args.Label,
			Variant:         ui.ButtonVariant(fs.Args.Variant),
			Size:            ui.ButtonSize(fs.Args.Size),
			BackgroundColor: fs.Args.BackgroundColor,
			Primary:         fs.Args.Primary,
		})
		story.Description = fs.Description

		// Names differing only in case or punctuation share an ID
		if other, exists := names[story.ID]; exists {
			return nil, fmt.Errorf("story %d (%s): ID %s is already used by story %q", i, fs.Name, story.ID, other)
		}
		names[story.ID] = fs.Name

		if err := story.Args.Validate(); err != nil {
			return nil, fmt.Errorf("story %d (%s): %w", i, fs.Name, err)
		}
		if fs.Args.Action {
			story.Args.OnClick = LogClick(logger, story.ID)
		}

		result = append(result, story)
	}

	return result, nil
}

// LoadFile reads and parses the story file at path
func LoadFile(path string, logger *slog.Logger) ([]Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story file: %w", err)
	}

	result, err := Parse(bytes.NewReader(data), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

func convertValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		// Namespace is e.g. File.Stories[0].Name, drop the root type
		field := fe.Namespace()
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}

		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s needs at least %s entries", field, fe.Param()))
		case "unique":
			msgs = append(msgs, fmt.Sprintf("%s must have unique %s values", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
