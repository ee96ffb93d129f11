package assistant

import (
	"fmt"
	"strings"

	"github.com/trezcool/elimu/core/catalog"
)

const (
	featureCapabilitiesShown = 3
	planFeaturesShown        = 2
)

// TemplateSelector turns an analysis into a canned response.
type TemplateSelector struct {
	info *catalog.PlatformInfo
}

func NewTemplateSelector(info *catalog.PlatformInfo) *TemplateSelector {
	return &TemplateSelector{info: info}
}

// Select picks the template for analysis and fills its placeholders.
// Placeholders are replaced literally in a single pass; unknown ones are left as they are.
func (ts *TemplateSelector) Select(analysis QueryAnalysis) string {
	tmpls := ts.info.Templates
	vars := map[string]string{"platformName": ts.info.Name}

	switch analysis.Type {
	case TypeGreeting:
		return fill(tmpls.Greeting, vars)

	case TypeFeatureInquiry:
		f, ok := ts.info.Feature(analysis.Feature)
		if !ok {
			break
		}
		vars["feature"] = f.Name
		vars["description"] = f.Description
		vars["capabilities"] = strings.Join(first(f.Capabilities, featureCapabilitiesShown), ", ")
		return fill(tmpls.FeatureExplanation, vars)

	case TypeHowTo:
		if f, ok := ts.info.Feature(analysis.Feature); ok && analysis.Feature != "" {
			vars["feature"] = f.Name
			vars["howTo"] = f.HowTo
			return fill(tmpls.FeatureHowTo, vars)
		}
		return fill(tmpls.HowTo, vars)

	case TypePricingInquiry:
		if p, ok := ts.info.Plan(analysis.PricingPlan); ok {
			vars["planName"] = p.Name
			vars["planPrice"] = p.Price
			vars["planFeatures"] = strings.Join(first(p.Features, planFeaturesShown), " and ")
			return fill(tmpls.PricingPlan, vars)
		}
		for _, p := range ts.info.Plans {
			vars[p.ID+"Plan"] = planSummary(p)
		}
		return fill(tmpls.PricingOverview, vars)

	case TypeSubjectQuestion:
		if analysis.Subject == "" {
			break
		}
		vars["subject"] = analysis.Subject
		if analysis.Topic != "" {
			vars["topic"] = analysis.Topic
			return fill(tmpls.SubjectTopic, vars)
		}
		if s, ok := ts.info.Subject(analysis.Subject); ok {
			vars["topics"] = strings.Join(s.Topics, ", ")
		}
		return fill(tmpls.SubjectOverview, vars)

	case TypeComparison:
		return fill(tmpls.Comparison, vars)
	case TypeDefinition:
		return fill(tmpls.Definition, vars)
	case TypeProblemSolving:
		return fill(tmpls.ProblemSolving, vars)
	case TypeResourceRequest:
		return fill(tmpls.ResourceRequest, vars)
	case TypeAccountQuestion:
		return fill(tmpls.Account, vars)
	case TypeFeedback:
		return fill(tmpls.Feedback, vars)
	case TypeOpinion:
		return fill(tmpls.Opinion, vars)
	}
	return fill(tmpls.Clarification, vars)
}

func planSummary(p catalog.Plan) string {
	return fmt.Sprintf("%s (%s): %s.", p.Name, p.Price, strings.Join(first(p.Features, planFeaturesShown), ", "))
}

// fill replaces every {key} of vars found in tmpl.
func fill(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func first(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
