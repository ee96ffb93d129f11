package catalog

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	info := Default()
	require.NoError(t, info.Validate(validator.New()))

	for _, r := range info.Resources.Articles {
		assert.Equal(t, KindArticle, r.Kind)
	}
	for _, r := range info.Resources.Videos {
		assert.Equal(t, KindVideo, r.Kind)
	}
	for _, r := range info.Resources.Tools {
		assert.Equal(t, KindTool, r.Kind)
	}
}

func TestDefault_FreshCopies(t *testing.T) {
	a, b := Default(), Default()
	a.Features[0].Name = "changed"
	assert.Equal(t, "AI Tutor", b.Features[0].Name)
}

func TestPlatformInfo_Lookups(t *testing.T) {
	info := Default()

	f, ok := info.Feature("ai tutor")
	assert.True(t, ok)
	assert.Equal(t, "ai-tutor", f.ID)
	f, ok = info.Feature("quiz-generator")
	assert.True(t, ok)
	assert.Equal(t, "Quiz Generator", f.Name)
	_, ok = info.Feature("time machine")
	assert.False(t, ok)

	s, ok := info.Subject("mathematics")
	assert.True(t, ok)
	assert.Contains(t, s.Topics, "Calculus")

	p, ok := info.Plan("premium")
	assert.True(t, ok)
	assert.Equal(t, "Premium", p.Name)
	_, ok = info.Plan("gold")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	data := []byte(`
name: Mini
features:
  - id: ai-tutor
    name: AI Tutor
    description: Tutor.
    capabilities: [explanations]
subjects:
  - name: Mathematics
    topics: [Algebra]
plans:
  - {id: free, name: Free, price: $0, features: [a], keywords: [free, trial]}
  - {id: premium, name: Premium, price: $5, features: [b], keywords: [premium]}
  - {id: team, name: Team, price: $20, features: [c], keywords: [team]}
templates:
  greeting: hi
  featureExplanation: f
  featureHowTo: f
  pricingOverview: p
  pricingPlan: p
  subjectOverview: s
  subjectTopic: s
  comparison: c
  howTo: h
  definition: d
  problemSolving: p
  resourceRequest: r
  account: a
  feedback: f
  opinion: o
  clarification: c
resources:
  articles:
    - {title: A, url: "https://x.test/a", tags: [mathematics]}
  tools:
    - {title: T, url: "https://x.test/t", tags: [mathematics]}
`)
	info, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, info.Validate(validator.New()))

	assert.Equal(t, "Mini", info.Name)
	assert.Equal(t, []string{"free", "trial"}, info.Plans[0].Keywords)
	assert.Equal(t, KindArticle, info.Resources.Articles[0].Kind)
	assert.Equal(t, KindTool, info.Resources.Tools[0].Kind)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	assert.Error(t, err)

	info, err := Parse([]byte("name: Empty"))
	require.NoError(t, err)
	assert.Error(t, info.Validate(validator.New()))
}
