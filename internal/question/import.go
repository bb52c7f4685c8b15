package question

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// importEntry is one question in a YAML question bank.
type importEntry struct {
	OppositionID  int64  `yaml:"opposition_id" validate:"required"`
	TopicID       int64  `yaml:"topic_id" validate:"required"`
	Statement     string `yaml:"statement" validate:"required"`
	OptionA       string `yaml:"option_a" validate:"required"`
	OptionB       string `yaml:"option_b" validate:"required"`
	OptionC       string `yaml:"option_c" validate:"required"`
	OptionD       string `yaml:"option_d"`
	CorrectOption string `yaml:"correct_option" validate:"required,oneof=A B C D"`
	Difficulty    int    `yaml:"difficulty" validate:"min=0,max=5"`
	Published     bool   `yaml:"published"`
}

type importFile struct {
	Questions []importEntry `yaml:"questions"`
}

// Importer loads YAML question banks into the repository.
type Importer struct {
	repo     Repository
	validate *validator.Validate
}

// NewImporter creates an Importer writing through the given repository.
func NewImporter(repo Repository) *Importer {
	return &Importer{
		repo:     repo,
		validate: validator.New(),
	}
}

// ImportFile reads a YAML question bank and inserts every entry.
// It returns the number of imported questions. Validation stops the import
// at the first invalid entry so a bank is either well-formed or rejected.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var file importFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return 0, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}

	for idx, entry := range file.Questions {
		if err := i.validate.Struct(entry); err != nil {
			return 0, fmt.Errorf("question %d in %s is invalid: %w", idx+1, path, err)
		}
		q := Question{
			OppositionID:  entry.OppositionID,
			TopicID:       entry.TopicID,
			Statement:     entry.Statement,
			OptionA:       entry.OptionA,
			OptionB:       entry.OptionB,
			OptionC:       entry.OptionC,
			OptionD:       entry.OptionD,
			CorrectOption: entry.CorrectOption,
			Difficulty:    entry.Difficulty,
			Published:     entry.Published,
		}
		if !q.IsComplete() {
			return 0, fmt.Errorf("question %d in %s: correct option %q has no text", idx+1, path, entry.CorrectOption)
		}
		if err := i.repo.Create(ctx, &q); err != nil {
			return 0, fmt.Errorf("create question %d from %s > %w", idx+1, path, err)
		}
	}

	return len(file.Questions), nil
}
