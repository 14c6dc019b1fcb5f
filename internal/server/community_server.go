package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
	"homescout/pkg/errcodes"
	"homescout/pkg/httpx/reply"
)

type scoreService interface {
	ScoreOne(ctx context.Context, communityID int64, weights value.Weights) (entity.ScoredCommunity, error)
}

type schoolDistrictLister interface {
	ListByCommunity(ctx context.Context, communityID int64) ([]entity.SchoolDistrict, error)
}

type poiLister interface {
	ListByCommunity(ctx context.Context, communityID int64) ([]entity.NearbyPOI, error)
}

type CommunityServer struct {
	scoreService scoreService
	schools      schoolDistrictLister
	pois         poiLister
}

func NewCommunityServer(
	scoreService scoreService,
	schools schoolDistrictLister,
	pois poiLister,
) CommunityServer {
	return CommunityServer{
		scoreService: scoreService,
		schools:      schools,
		pois:         pois,
	}
}

func (s CommunityServer) getV1Community(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return domain.NewError(errcodes.InvalidCommunityID, "community id must be an integer")
	}

	scored, err := s.scoreService.ScoreOne(ctx, id, value.DefaultWeights())
	if err != nil {
		return fmt.Errorf("scoreService.ScoreOne: %w", err)
	}

	schools, err := s.schools.ListByCommunity(ctx, id)
	if err != nil {
		return fmt.Errorf("schools.ListByCommunity: %w", err)
	}

	pois, err := s.pois.ListByCommunity(ctx, id)
	if err != nil {
		return fmt.Errorf("pois.ListByCommunity: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCommunityDetail(scored, schools, pois))

	return nil
}
