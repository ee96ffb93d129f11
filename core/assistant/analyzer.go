package assistant

import (
	"regexp"
	"strings"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
)

// Confidence per rule. These are fixed per rule, not computed.
const (
	confidenceGreeting       = 0.9
	confidenceFeatureHowTo   = 0.85
	confidenceFeature        = 0.8
	confidencePricing        = 0.8
	confidenceSubjectTopic   = 0.85
	confidenceSubject        = 0.75
	confidenceKeywordMatched = 0.7
)

var (
	greetingRegex = regexp.MustCompile(`^(hi|hello|hey|hiya|howdy|greetings|good (morning|afternoon|evening))( there)?[\s!.]*$`)

	pricingKeywords    = []string{"price", "cost", "subscription", "plan", "free", "trial", "premium", "team"}
	comparisonKeywords = []string{"compare", "difference", "versus", " vs ", "better than"}
	definitionPrefixes = []string{"what is", "what are", "define", "explain"}
	problemKeywords    = []string{"solve", "calculate", "find the", "compute"}
	resourceKeywords   = []string{"resource", "article", "video", "tutorial", "guide"}
	accountKeywords    = []string{"account", "login", "sign up", "password", "profile"}
)

// rule classifies a normalized query, reporting whether it matched.
type rule struct {
	name     string
	classify func(q string) (QueryAnalysis, bool)
}

// Analyzer classifies chat queries by evaluating its rules in order; the first match wins.
type Analyzer struct {
	info  *catalog.PlatformInfo
	rules []rule
}

func NewAnalyzer(info *catalog.PlatformInfo) *Analyzer {
	a := &Analyzer{info: info}
	a.rules = []rule{
		{name: "greeting", classify: matchGreeting},
		{name: "feature", classify: a.matchFeature},
		{name: "pricing", classify: a.matchPricing},
		{name: "subject", classify: a.matchSubject},
		{name: "comparison", classify: keywordRule(TypeComparison, containsAny(comparisonKeywords))},
		{name: "how_to", classify: keywordRule(TypeHowTo, isHowTo)},
		{name: "definition", classify: keywordRule(TypeDefinition, hasAnyPrefix(definitionPrefixes))},
		{name: "problem_solving", classify: keywordRule(TypeProblemSolving, containsAny(problemKeywords))},
		{name: "resource", classify: keywordRule(TypeResourceRequest, containsAny(resourceKeywords))},
		{name: "account", classify: keywordRule(TypeAccountQuestion, containsAny(accountKeywords))},
	}
	return a
}

// Analyze classifies query. It accepts any input; no match yields TypeUnknown with zero confidence.
func (a *Analyzer) Analyze(query string) QueryAnalysis {
	q := core.CleanString(query, true /* lower */)
	for _, r := range a.rules {
		if analysis, ok := r.classify(q); ok {
			return analysis
		}
	}
	return newAnalysis(TypeUnknown, 0)
}

// RuleNames returns the rule names in evaluation order.
func (a *Analyzer) RuleNames() []string {
	names := make([]string, 0, len(a.rules))
	for _, r := range a.rules {
		names = append(names, r.name)
	}
	return names
}

func newAnalysis(typ QueryType, confidence float64, entities ...Entity) QueryAnalysis {
	if entities == nil {
		entities = []Entity{}
	}
	return QueryAnalysis{Type: typ, Confidence: confidence, Entities: entities}
}

func matchGreeting(q string) (QueryAnalysis, bool) {
	if greetingRegex.MatchString(q) {
		return newAnalysis(TypeGreeting, confidenceGreeting), true
	}
	return QueryAnalysis{}, false
}

func (a *Analyzer) matchFeature(q string) (QueryAnalysis, bool) {
	for _, f := range a.info.Features {
		if !(containsTerm(q, f.Name) || containsTerm(q, f.ID)) {
			continue
		}
		analysis := newAnalysis(
			TypeFeatureInquiry, confidenceFeature,
			Entity{Name: f.Name, Type: EntityFeature, Value: f.ID},
		)
		analysis.Feature = f.Name
		if strings.Contains(q, "how") && (strings.Contains(q, "use") || strings.Contains(q, "work")) {
			analysis.Type = TypeHowTo
			analysis.Confidence = confidenceFeatureHowTo
		}
		return analysis, true
	}
	return QueryAnalysis{}, false
}

func (a *Analyzer) matchPricing(q string) (QueryAnalysis, bool) {
	if !containsAny(pricingKeywords)(q) {
		return QueryAnalysis{}, false
	}
	analysis := newAnalysis(TypePricingInquiry, confidencePricing)
	for _, p := range a.info.Plans {
		if containsAny(p.Keywords)(q) {
			analysis.PricingPlan = p.ID
			analysis.Entities = append(analysis.Entities, Entity{Name: p.Name, Type: EntityPricingPlan, Value: p.ID})
			break
		}
	}
	return analysis, true
}

// matchSubject matches a subject by its name or by one of its topics.
// A topic match raises the confidence and records the topic as a second entity.
func (a *Analyzer) matchSubject(q string) (QueryAnalysis, bool) {
	for _, s := range a.info.Subjects {
		var topic string
		for _, t := range s.Topics {
			if containsTerm(q, t) {
				topic = t
				break
			}
		}
		if topic == "" && !containsTerm(q, s.Name) {
			continue
		}

		analysis := newAnalysis(
			TypeSubjectQuestion, confidenceSubject,
			Entity{Name: s.Name, Type: EntitySubject, Value: strings.ToLower(s.Name)},
		)
		analysis.Subject = s.Name
		if topic != "" {
			analysis.Topic = topic
			analysis.Confidence = confidenceSubjectTopic
			analysis.Entities = append(analysis.Entities, Entity{Name: topic, Type: EntityTopic, Value: strings.ToLower(topic)})
		}
		return analysis, true
	}
	return QueryAnalysis{}, false
}

func keywordRule(typ QueryType, pred func(q string) bool) func(q string) (QueryAnalysis, bool) {
	return func(q string) (QueryAnalysis, bool) {
		if pred(q) {
			return newAnalysis(typ, confidenceKeywordMatched), true
		}
		return QueryAnalysis{}, false
	}
}

func isHowTo(q string) bool {
	return strings.HasPrefix(q, "how") || strings.Contains(q, "how to")
}

func containsAny(keywords []string) func(q string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if containsTerm(q, kw) {
				return true
			}
		}
		return false
	}
}

func hasAnyPrefix(prefixes []string) func(q string) bool {
	return func(q string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(q, p) {
				return true
			}
		}
		return false
	}
}

// containsTerm reports whether the lowered query q contains term (case-insensitive). Empty terms never match.
func containsTerm(q, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(q, strings.ToLower(term))
}
