// Package repair removes systematic over-escaping artifacts from generated
// LaTeX, such as the wrapper macros and doubled escapes left behind by
// Pandoc.
//
// The catalogue is a fixed, ordered list of rules. A pass applies the rules
// in order and repeats the catalogue while a later rule exposes a defect an
// earlier one fixes, so the output of a pass is clean for a second pass.
// Converge re-runs passes up to an explicit cap for rule sets that do not
// settle within one pass.
//
// Verbatim-like environments (verbatim, Verbatim, lstlisting, minted) are
// never modified.
package repair

// IssueKind identifies the rule that produced an Issue.
type IssueKind string

const (
	DoubleAmpersand       IssueKind = "DOUBLE_AMPERSAND"
	HypertargetWrapper    IssueKind = "HYPERTARGET_WRAPPER"
	TexorpdfstringWrapper IssueKind = "TEXORPDFSTRING_WRAPPER"
	QuoteWrappedListItem  IssueKind = "QUOTE_WRAPPED_LIST_ITEM"
	ULMacro               IssueKind = "UL_MACRO"
)

// Issue is one defect found and fixed during a pass.
type Issue struct {
	Kind        IssueKind
	Description string
}

// String formats the issue as "KIND: description".
func (i Issue) String() string {
	return string(i.Kind) + ": " + i.Description
}

// DefaultMaxPasses is the iteration cap used when Converge gets a
// non-positive limit.
const DefaultMaxPasses = 5

// maxRounds bounds how often one pass re-applies the catalogue.
const maxRounds = 16

// Repairer applies a rule catalogue to LaTeX text.
type Repairer struct {
	rules []Rule
}

// New creates a Repairer. Without rules it uses DefaultRules.
func New(rules ...Rule) *Repairer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Repairer{rules: rules}
}

// Rules returns a copy of the catalogue in application order.
func (r *Repairer) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Repair runs one pass. Each rule that changed the text contributes one
// Issue, in catalogue order, counting every change it made during the pass.
func (r *Repairer) Repair(text string) (string, []Issue) {
	counts := make([]int, len(r.rules))
	for round := 0; round < maxRounds; round++ {
		changed := false
		for i, rule := range r.rules {
			fixed, n := applyOutsideVerbatim(rule.Apply, text)
			if n == 0 {
				continue
			}
			text = fixed
			counts[i] += n
			changed = true
		}
		if !changed {
			break
		}
	}

	var issues []Issue
	for i, n := range counts {
		if n > 0 {
			issues = append(issues, Issue{Kind: r.rules[i].Kind, Description: r.rules[i].Describe(n)})
		}
	}
	return text, issues
}

// Converge repeats Repair until a pass reports no issues or maxPasses passes
// have run. It returns the final text, the issues of all passes and the
// number of passes that changed something.
func (r *Repairer) Converge(text string, maxPasses int) (string, []Issue, int) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	var all []Issue
	passes := 0
	for passes < maxPasses {
		fixed, issues := r.Repair(text)
		if len(issues) == 0 {
			break
		}
		text = fixed
		all = append(all, issues...)
		passes++
	}
	return text, all, passes
}

var defaultRepairer = New()

// Repair runs one pass of the default catalogue.
func Repair(text string) (string, []Issue) {
	return defaultRepairer.Repair(text)
}
