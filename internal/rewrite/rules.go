package rewrite

import "strings"

// Route registration call openings that carry the prefix.
const (
	routerReceiver = "router."
	apiPrefix      = "/api/"
)

// routeMethods lists the router methods in the order their rules run.
var routeMethods = []string{"get", "post", "put", "delete"}

// Rule is a single literal substring replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

// Name returns the router method the rule targets, e.g. "get" for
// router.get('/api/. Rules not shaped like a route call return the pattern.
func (r Rule) Name() string {
	rest, ok := strings.CutPrefix(r.Pattern, routerReceiver)
	if !ok {
		return r.Pattern
	}
	method, _, ok := strings.Cut(rest, "(")
	if !ok || method == "" {
		return r.Pattern
	}
	return method
}

// RouteRules returns the rules that strip /api/ from router.get, post, put
// and delete registrations, in that order.
func RouteRules() []Rule {
	rules := make([]Rule, 0, len(routeMethods))
	for _, m := range routeMethods {
		opening := routerReceiver + m + "('"
		rules = append(rules, Rule{
			Pattern:     opening + apiPrefix,
			Replacement: opening + "/",
		})
	}
	return rules
}

// Outcome records how many occurrences a rule replaced.
type Outcome struct {
	Rule  Rule
	Count int
}

// Apply runs rules in order over content. Each rule sees the output of the
// previous one and replaces every non-overlapping occurrence. Rules with an
// empty pattern are skipped.
func Apply(content string, rules []Rule) (string, []Outcome) {
	outcomes := make([]Outcome, 0, len(rules))
	for _, r := range rules {
		if r.Pattern == "" {
			outcomes = append(outcomes, Outcome{Rule: r})
			continue
		}
		n := strings.Count(content, r.Pattern)
		if n > 0 {
			content = strings.ReplaceAll(content, r.Pattern, r.Replacement)
		}
		outcomes = append(outcomes, Outcome{Rule: r, Count: n})
	}
	return content, outcomes
}
