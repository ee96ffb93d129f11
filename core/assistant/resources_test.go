package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/elimu/core/catalog"
)

func titles(resources []catalog.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Title)
	}
	return out
}

func TestResourceSuggester_Suggest(t *testing.T) {
	rs := NewResourceSuggester(catalog.Default())

	tests := []struct {
		name    string
		subject string
		want    []string
	}{
		{name: "no subject", subject: "", want: []string{}},
		{
			name:    "capped at three, articles first",
			subject: "Mathematics",
			want:    []string{"Understanding Derivatives", "Solving Linear Equations", "Calculus in 20 Minutes"},
		},
		{
			name:    "case insensitive",
			subject: "MATHEMATICS",
			want:    []string{"Understanding Derivatives", "Solving Linear Equations", "Calculus in 20 Minutes"},
		},
		{
			name:    "one of each kind",
			subject: "Physics",
			want:    []string{"Newton's Laws Explained", "Thermodynamics Crash Course", "Unit Converter"},
		},
		{
			name:    "article and tool",
			subject: "Chemistry",
			want:    []string{"Balancing Chemical Equations", "Unit Converter"},
		},
		{name: "video only", subject: "Economics", want: []string{"Supply and Demand Curves"}},
		{name: "nothing tagged", subject: "History", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Suggest(QueryAnalysis{Type: TypeSubjectQuestion, Subject: tt.subject})
			assert.NotNil(t, got)
			assert.LessOrEqual(t, len(got), 3)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestResourceSuggester_PerKindCaps(t *testing.T) {
	info := catalog.Default()
	info.Resources.Articles = nil
	info.Resources.Videos = nil
	rs := NewResourceSuggester(info)

	// three tools are tagged mathematics but only one tool is ever suggested
	got := rs.Suggest(QueryAnalysis{Subject: "Mathematics"})
	assert.Equal(t, []string{"Graphing Calculator"}, titles(got))
	assert.Equal(t, catalog.KindTool, got[0].Kind)
}
