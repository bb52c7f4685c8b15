// Package shuffle derives a reproducible permutation of a question's answer
// options from the question's identifier alone.
//
// The permutation is never persisted: the render path and the grading path
// both recompute it, so the two can never disagree as long as they run the
// same build. Changing the derivation below is a breaking change for any
// in-flight attempt.
package shuffle

// Option is one answer choice, carrying its positional label (A-D).
type Option struct {
	Label string
	Text  string
}

var positionLabels = [...]string{"A", "B", "C", "D"}

// Result is a shuffled view of a question's options. CorrectLabel is the
// label that is correct after shuffling. Fallback is set when the stored
// correct label did not match any option: the options are returned in their
// original order and the caller is expected to flag the question for content
// moderation.
type Result struct {
	Options      []Option
	CorrectLabel string
	Fallback     bool
}

// Options permutes the question's options deterministically and remaps the
// correct label to its shuffled position. Works for three or four options;
// a question without a D option never gains one.
func Options(questionID string, options []Option, correctLabel string) Result {
	correctIdx := -1
	for i, opt := range options {
		if opt.Label == correctLabel {
			correctIdx = i
			break
		}
	}
	if correctIdx < 0 {
		// Corrupt content: serve the question unshuffled rather than failing.
		out := make([]Option, len(options))
		copy(out, options)
		return Result{Options: out, CorrectLabel: correctLabel, Fallback: true}
	}

	seed := Seed(questionID)
	perm := make([]int, len(options))
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i >= 1; i-- {
		j := (seed + i*7) % (i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := make([]Option, len(options))
	remapped := correctLabel
	for pos, orig := range perm {
		out[pos] = Option{Label: positionLabels[pos], Text: options[orig].Text}
		if orig == correctIdx {
			remapped = positionLabels[pos]
		}
	}

	return Result{Options: out, CorrectLabel: remapped}
}

// Seed sums the character codes of the identifier. Exposed so tests can pin
// the derivation; any change here invalidates answers submitted against
// questions rendered by an older build.
func Seed(questionID string) int {
	sum := 0
	for _, r := range questionID {
		sum += int(r)
	}
	return sum
}
