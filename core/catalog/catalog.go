// Package catalog holds the platform reference data the assistant answers from:
// features, subjects and their topics, pricing plans, response templates and learning resources.
//
// A PlatformInfo is built once at startup (Default or Load) and must be treated as read-only
// afterwards; it is shared by pointer between the analyzer, the template selector and the
// resource suggester.
package catalog

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Resource kinds
const (
	KindArticle = "article"
	KindVideo   = "video"
	KindTool    = "tool"
)

type (
	Feature struct {
		ID           string   `yaml:"id" json:"id" validate:"required"`
		Name         string   `yaml:"name" json:"name" validate:"required"`
		Description  string   `yaml:"description" json:"description" validate:"required"`
		Capabilities []string `yaml:"capabilities" json:"capabilities" validate:"min=1"`
		HowTo        string   `yaml:"howTo" json:"how_to"`
	}

	Subject struct {
		Name   string   `yaml:"name" json:"name" validate:"required"`
		Topics []string `yaml:"topics" json:"topics" validate:"dive,required"`
	}

	Plan struct {
		ID       string   `yaml:"id" json:"id" validate:"required,oneof=free premium team"`
		Name     string   `yaml:"name" json:"name" validate:"required"`
		Price    string   `yaml:"price" json:"price" validate:"required"`
		Features []string `yaml:"features" json:"features" validate:"min=1"`
		// Keywords resolve a pricing question to this plan.
		Keywords []string `yaml:"keywords" json:"-" validate:"min=1,dive,required"`
	}

	Templates struct {
		Greeting           string `yaml:"greeting" validate:"required"`
		FeatureExplanation string `yaml:"featureExplanation" validate:"required"`
		FeatureHowTo       string `yaml:"featureHowTo" validate:"required"`
		PricingOverview    string `yaml:"pricingOverview" validate:"required"`
		PricingPlan        string `yaml:"pricingPlan" validate:"required"`
		SubjectOverview    string `yaml:"subjectOverview" validate:"required"`
		SubjectTopic       string `yaml:"subjectTopic" validate:"required"`
		Comparison         string `yaml:"comparison" validate:"required"`
		HowTo              string `yaml:"howTo" validate:"required"`
		Definition         string `yaml:"definition" validate:"required"`
		ProblemSolving     string `yaml:"problemSolving" validate:"required"`
		ResourceRequest    string `yaml:"resourceRequest" validate:"required"`
		Account            string `yaml:"account" validate:"required"`
		Feedback           string `yaml:"feedback" validate:"required"`
		Opinion            string `yaml:"opinion" validate:"required"`
		Clarification      string `yaml:"clarification" validate:"required"`
	}

	Resource struct {
		Title       string   `yaml:"title" json:"title" validate:"required"`
		URL         string   `yaml:"url" json:"url" validate:"required,url"`
		Description string   `yaml:"description" json:"description"`
		Kind        string   `yaml:"-" json:"kind"`
		Tags        []string `yaml:"tags" json:"tags" validate:"min=1"`
	}

	Resources struct {
		Articles []Resource `yaml:"articles" validate:"dive"`
		Videos   []Resource `yaml:"videos" validate:"dive"`
		Tools    []Resource `yaml:"tools" validate:"dive"`
	}

	PlatformInfo struct {
		Name      string    `yaml:"name" json:"name" validate:"required"`
		Features  []Feature `yaml:"features" json:"features" validate:"min=1,dive"`
		Subjects  []Subject `yaml:"subjects" json:"subjects" validate:"min=1,dive"`
		Plans     []Plan    `yaml:"plans" json:"plans" validate:"len=3,dive"`
		Templates Templates `yaml:"templates" json:"-"`
		Resources Resources `yaml:"resources" json:"-"`
	}
)

// Load reads a PlatformInfo from a YAML file.
func Load(path string) (*PlatformInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog")
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*PlatformInfo, error) {
	info := new(PlatformInfo)
	if err := yaml.Unmarshal(data, info); err != nil {
		return nil, errors.Wrap(err, "decoding catalog")
	}
	info.setKinds()
	return info, nil
}

// Validate checks that the catalog is complete enough to answer every query type.
func (info *PlatformInfo) Validate(validate *validator.Validate) error {
	return validate.Struct(info)
}

func (info *PlatformInfo) setKinds() {
	for i := range info.Resources.Articles {
		info.Resources.Articles[i].Kind = KindArticle
	}
	for i := range info.Resources.Videos {
		info.Resources.Videos[i].Kind = KindVideo
	}
	for i := range info.Resources.Tools {
		info.Resources.Tools[i].Kind = KindTool
	}
}

// Feature looks a feature up by display name or id (case-insensitive).
func (info *PlatformInfo) Feature(name string) (Feature, bool) {
	for _, f := range info.Features {
		if strings.EqualFold(f.Name, name) || strings.EqualFold(f.ID, name) {
			return f, true
		}
	}
	return Feature{}, false
}

// Subject looks a subject up by name (case-insensitive).
func (info *PlatformInfo) Subject(name string) (Subject, bool) {
	for _, s := range info.Subjects {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Subject{}, false
}

// Plan looks a pricing plan up by id.
func (info *PlatformInfo) Plan(id string) (Plan, bool) {
	for _, p := range info.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
