// Package assistant answers learning-assistant chat queries: it classifies them (Analyzer),
// picks a canned response (TemplateSelector) and suggests resources (ResourceSuggester)
// from the platform catalog.
package assistant

import (
	"context"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
)

type (
	// Recorder keeps a history of analyzed queries. Implementations must not fail the request.
	Recorder interface {
		RecordQuery(ctx context.Context, query string, analysis QueryAnalysis, req core.Requester)
	}

	ServiceInterface interface {
		Analyze(ctx context.Context, query string, req core.Requester) QueryAnalysis
		Reply(ctx context.Context, query string, req core.Requester) Reply
		Catalog() *catalog.PlatformInfo
	}

	Service struct {
		info      *catalog.PlatformInfo
		analyzer  *Analyzer
		selector  *TemplateSelector
		suggester *ResourceSuggester
		recorder  Recorder
	}
)

var _ ServiceInterface = (*Service)(nil)

// NewService builds the assistant around info. recorder may be nil.
func NewService(info *catalog.PlatformInfo, recorder Recorder) *Service {
	if info == nil {
		panic("assistant: nil catalog")
	}
	return &Service{
		info:      info,
		analyzer:  NewAnalyzer(info),
		selector:  NewTemplateSelector(info),
		suggester: NewResourceSuggester(info),
		recorder:  recorder,
	}
}

func (svc *Service) Catalog() *catalog.PlatformInfo {
	return svc.info
}

func (svc *Service) Analyze(ctx context.Context, query string, req core.Requester) QueryAnalysis {
	analysis := svc.analyzer.Analyze(query)
	svc.record(ctx, query, analysis, req)
	return analysis
}

func (svc *Service) Reply(ctx context.Context, query string, req core.Requester) Reply {
	analysis := svc.Analyze(ctx, query, req)
	return Reply{
		Analysis:  analysis,
		Response:  svc.selector.Select(analysis),
		Resources: svc.suggester.Suggest(analysis),
	}
}

func (svc *Service) record(ctx context.Context, query string, analysis QueryAnalysis, req core.Requester) {
	if svc.recorder != nil {
		svc.recorder.RecordQuery(ctx, query, analysis, req)
	}
}
