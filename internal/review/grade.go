package review

import "fmt"

// Grade is the learner's self-assessment of a review.
type Grade int

const (
	GradeAgain Grade = iota // failed to recall, schedule resets
	GradeHard               // recalled with difficulty
	GradeGood               // recalled correctly
	GradeEasy               // recalled effortlessly
)

var gradeNames = map[Grade]string{
	GradeAgain: "again",
	GradeHard:  "hard",
	GradeGood:  "good",
	GradeEasy:  "easy",
}

// ErrInvalidGrade is returned when a grade outside [0, 3] is submitted.
var ErrInvalidGrade = fmt.Errorf("grade must be between %d and %d", GradeAgain, GradeEasy)

func (g Grade) String() string {
	if name, ok := gradeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// Validate reports whether the grade is one of the four known values.
func (g Grade) Validate() error {
	if g < GradeAgain || g > GradeEasy {
		return ErrInvalidGrade
	}
	return nil
}

// ParseGrade converts a grade name ("again", "hard", "good", "easy") to a Grade.
func ParseGrade(name string) (Grade, error) {
	for g, n := range gradeNames {
		if n == name {
			return g, nil
		}
	}
	return 0, ErrInvalidGrade
}
