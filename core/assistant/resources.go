package assistant

import (
	"strings"

	"github.com/trezcool/elimu/core/catalog"
)

const (
	maxSuggestedArticles  = 2
	maxSuggestedVideos    = 2
	maxSuggestedTools     = 1
	maxSuggestedResources = 3
)

// ResourceSuggester picks learning resources matching the subject of an analysis.
type ResourceSuggester struct {
	info *catalog.PlatformInfo
}

func NewResourceSuggester(info *catalog.PlatformInfo) *ResourceSuggester {
	return &ResourceSuggester{info: info}
}

// Suggest returns at most 3 resources: articles first, then videos, then tools, each in catalog order.
// It returns an empty list when the analysis has no subject.
func (rs *ResourceSuggester) Suggest(analysis QueryAnalysis) []catalog.Resource {
	suggestions := make([]catalog.Resource, 0, maxSuggestedResources)
	if analysis.Subject == "" {
		return suggestions
	}
	subject := strings.ToLower(analysis.Subject)

	suggestions = append(suggestions, matching(rs.info.Resources.Articles, subject, maxSuggestedArticles)...)
	suggestions = append(suggestions, matching(rs.info.Resources.Videos, subject, maxSuggestedVideos)...)
	suggestions = append(suggestions, matching(rs.info.Resources.Tools, subject, maxSuggestedTools)...)

	if len(suggestions) > maxSuggestedResources {
		suggestions = suggestions[:maxSuggestedResources]
	}
	return suggestions
}

func matching(resources []catalog.Resource, subject string, limit int) []catalog.Resource {
	found := make([]catalog.Resource, 0, limit)
	for _, r := range resources {
		if len(found) == limit {
			break
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), subject) {
				found = append(found, r)
				break
			}
		}
	}
	return found
}
