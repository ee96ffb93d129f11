package assistant

import "github.com/trezcool/elimu/core/catalog"

// QueryType is the classified intent of a chat query.
type QueryType string

const (
	TypeGreeting        QueryType = "greeting"
	TypeSubjectQuestion QueryType = "subject_question"
	TypeFeatureInquiry  QueryType = "feature_inquiry"
	TypePricingInquiry  QueryType = "pricing_inquiry"
	TypeComparison      QueryType = "comparison_request"
	TypeHowTo           QueryType = "how_to_question"
	TypeDefinition      QueryType = "definition_request"
	TypeProblemSolving  QueryType = "problem_solving"
	TypeOpinion         QueryType = "opinion_request"
	TypeResourceRequest QueryType = "resource_request"
	TypeAccountQuestion QueryType = "account_question"
	TypeFeedback        QueryType = "feedback"
	TypeUnknown         QueryType = "unknown"
)

// QueryTypes lists every QueryType.
var QueryTypes = []QueryType{
	TypeGreeting, TypeSubjectQuestion, TypeFeatureInquiry, TypePricingInquiry, TypeComparison, TypeHowTo,
	TypeDefinition, TypeProblemSolving, TypeOpinion, TypeResourceRequest, TypeAccountQuestion, TypeFeedback,
	TypeUnknown,
}

func (t QueryType) Valid() bool {
	for _, qt := range QueryTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// Entity kinds
const (
	EntityFeature     = "feature"
	EntitySubject     = "subject"
	EntityTopic       = "topic"
	EntityPricingPlan = "pricing_plan"
)

// Entity is a catalog term recognized in a query.
type Entity struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// QueryAnalysis is the result of classifying one query. It is never persisted as is.
type QueryAnalysis struct {
	Type        QueryType `json:"type"`
	Subject     string    `json:"subject,omitempty"`
	Topic       string    `json:"topic,omitempty"`
	Feature     string    `json:"feature,omitempty"`
	PricingPlan string    `json:"pricing_plan,omitempty"`
	Confidence  float64   `json:"confidence"`
	Entities    []Entity  `json:"entities"`
}

func (qa QueryAnalysis) IsUnknown() bool { return qa.Type == TypeUnknown }

// Reply is the assistant's full answer to a query.
type Reply struct {
	Analysis  QueryAnalysis      `json:"analysis"`
	Response  string             `json:"response"`
	Resources []catalog.Resource `json:"resources"`
}

// Query is the payload of an assistant request.
type Query struct {
	Query string `json:"query" validate:"required,max=2000"`
}
