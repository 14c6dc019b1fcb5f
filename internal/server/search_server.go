package server

import (
	"context"
	"fmt"
	"net/http"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/recommend"
	"homescout/internal/domain/value"
	"homescout/internal/metrics"
	"homescout/pkg/httpx/reply"
	"homescout/pkg/httpx/req"
	"homescout/pkg/lox"
	"homescout/pkg/rest"
)

type searchService interface {
	Search(ctx context.Context, q recommend.Query) ([]entity.ScoredCommunity, error)
}

type SearchServer struct {
	searchService searchService
}

func NewSearchServer(searchService searchService) SearchServer {
	return SearchServer{
		searchService: searchService,
	}
}

func (s SearchServer) postV1Search(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SearchRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	// Нулевой потолок означает поиск без бюджета.
	priceMax := request.PriceMax
	if priceMax <= 0 {
		priceMax = recommend.UnboundedPriceMax
	}

	results, err := s.searchService.Search(ctx, recommend.Query{
		City:     request.City,
		District: request.District,
		PriceMin: request.PriceMin,
		PriceMax: priceMax,
		Weights:  newDomainWeights(request.Weights),
	})
	if err != nil {
		return fmt.Errorf("searchService.Search: %w", err)
	}

	metrics.SearchTotal.Inc()
	metrics.CandidatesScored.Observe(float64(len(results)))

	reply.JSON(ctx, w, http.StatusOK, rest.SearchResponse{
		Total:       len(results),
		Communities: lox.Map(results, newRESTCommunityBrief),
	})

	return nil
}

func (s SearchServer) getV1ConfigWeights(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTWeights(value.DefaultWeights()))

	return nil
}
