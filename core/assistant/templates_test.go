package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/elimu/core/catalog"
)

func TestTemplateSelector_Select(t *testing.T) {
	ts := NewTemplateSelector(catalog.Default())

	tests := []struct {
		name     string
		analysis QueryAnalysis
		want     string
	}{
		{
			name:     "greeting",
			analysis: QueryAnalysis{Type: TypeGreeting},
			want: "Hello! I'm the Elimu learning assistant. I can tell you about our features, " +
				"subjects and pricing, or help you study. What would you like to know?",
		},
		{
			name:     "feature explanation shows three capabilities",
			analysis: QueryAnalysis{Type: TypeFeatureInquiry, Feature: "Quiz Generator"},
			want: "Quiz Generator: Builds multiple-choice, true/false and short-answer quizzes from a topic or your own notes. " +
				"Key capabilities include multiple question types, instant grading, explanations for every answer.",
		},
		{
			name:     "unknown feature falls back to clarification",
			analysis: QueryAnalysis{Type: TypeFeatureInquiry, Feature: "Time Machine"},
			want: "I'm not sure I understood that. Could you rephrase, or ask me about a subject, " +
				"a feature like the AI Tutor, or our pricing plans?",
		},
		{
			name:     "feature how-to",
			analysis: QueryAnalysis{Type: TypeHowTo, Feature: "Course Catalog"},
			want: "Here's how to use the Course Catalog: open Courses from the main menu, filter by subject " +
				"or level and click Enrol on any course you like.",
		},
		{
			name:     "generic how-to",
			analysis: QueryAnalysis{Type: TypeHowTo},
			want:     "I can walk you through it step by step. Could you tell me a bit more about what you're trying to do?",
		},
		{
			name:     "pricing plan shows two features",
			analysis: QueryAnalysis{Type: TypePricingInquiry, PricingPlan: "premium"},
			want:     "The Premium plan costs $9.99/month and includes unlimited AI Tutor sessions and advanced assignment generator.",
		},
		{
			name:     "pricing overview",
			analysis: QueryAnalysis{Type: TypePricingInquiry},
			want: "Elimu offers three plans. " +
				"Free ($0/month): 5 AI Tutor sessions per day, basic quiz and flashcard generators. " +
				"Premium ($9.99/month): unlimited AI Tutor sessions, advanced assignment generator. " +
				"Team ($29.99/month for 5 seats): everything in Premium, educator dashboard.",
		},
		{
			name:     "subject topic",
			analysis: QueryAnalysis{Type: TypeSubjectQuestion, Subject: "Mathematics", Topic: "Calculus"},
			want: "Calculus is a key part of Mathematics. I can explain the core concepts, walk through " +
				"worked examples or generate practice questions on Calculus. Where would you like to start?",
		},
		{
			name:     "subject overview",
			analysis: QueryAnalysis{Type: TypeSubjectQuestion, Subject: "Economics"},
			want: "We cover Economics in depth, including Microeconomics, Macroeconomics, Supply and Demand, Inflation. " +
				"Which topic would you like to explore?",
		},
		{
			name:     "feedback",
			analysis: QueryAnalysis{Type: TypeFeedback},
			want:     "Thanks for your feedback! It helps us make Elimu better.",
		},
		{
			name:     "unknown",
			analysis: QueryAnalysis{Type: TypeUnknown},
			want: "I'm not sure I understood that. Could you rephrase, or ask me about a subject, " +
				"a feature like the AI Tutor, or our pricing plans?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ts.Select(tt.analysis))
		})
	}
}

func TestTemplateSelector_KeepsUnresolvedPlaceholders(t *testing.T) {
	info := catalog.Default()
	info.Templates.Greeting = "Hi {name}, welcome to {platformName}!"
	info.Templates.SubjectOverview = "{subject}: {topics} {unknown}"

	ts := NewTemplateSelector(info)
	assert.Equal(t, "Hi {name}, welcome to Elimu!", ts.Select(QueryAnalysis{Type: TypeGreeting}))
	// subject missing from the catalog: {topics} stays
	assert.Equal(t, "Alchemy: {topics} {unknown}", ts.Select(QueryAnalysis{Type: TypeSubjectQuestion, Subject: "Alchemy"}))
}

func TestTemplateSelector_SinglePass(t *testing.T) {
	info := catalog.Default()
	info.Name = "{platformName}"
	ts := NewTemplateSelector(info)
	assert.Equal(t, "Thanks for your feedback! It helps us make {platformName} better.", ts.Select(QueryAnalysis{Type: TypeFeedback}))
}

func TestTemplateSelector_EveryTypeAnswers(t *testing.T) {
	ts := NewTemplateSelector(catalog.Default())
	for _, typ := range QueryTypes {
		assert.NotEmpty(t, ts.Select(QueryAnalysis{Type: typ}), "type %s", typ)
	}
}
