// Package recommend объединяет фильтрацию кандидатов, оценку и анализ
// в единый путь запроса: подбор по городу/району/бюджету, независимая
// оценка каждого кандидата и детерминированное ранжирование.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/insight"
	"homescout/internal/domain/service/scoring"
	"homescout/internal/domain/value"
	"homescout/pkg/errcodes"
)

// UnboundedPriceMax — верхняя граница "безграничного" ценового окна.
// Поиск с PriceMin <= 0 и PriceMax >= этой величины считается поиском
// без бюджета: записи без цены снова допускаются к оценке.
const UnboundedPriceMax = 1_000_000

const defaultScoreWorkers = 8

type CommunityRepository interface {
	Filter(ctx context.Context, filter domain.CommunityFilter) ([]entity.Community, error)

	// GetByID возвращает nil, nil для несуществующего идентификатора.
	GetByID(ctx context.Context, id int64) (*entity.Community, error)
}

type SchoolDistrictRepository interface {
	// LatestForCommunity возвращает запись с самым свежим годом или nil,
	// если за комплексом не закреплено учебных заведений.
	LatestForCommunity(ctx context.Context, communityID int64) (*entity.SchoolDistrict, error)
}

type POIRepository interface {
	ListByCommunity(ctx context.Context, communityID int64) ([]entity.NearbyPOI, error)
}

// Query — поисковый запрос фасада.
type Query struct {
	City     string
	District *string
	PriceMin int
	PriceMax int
	Weights  value.Weights
}

// Service — агрегатор пути запроса. Только читает хранилище; ничего не
// мутирует, поэтому запрос можно отменить в любой точке до финальной
// сортировки без побочных эффектов.
type Service struct {
	communities CommunityRepository
	schools     SchoolDistrictRepository
	pois        POIRepository
	engine      *scoring.Engine

	scoreWorkers int
}

func NewService(
	communities CommunityRepository,
	schools SchoolDistrictRepository,
	pois POIRepository,
	engine *scoring.Engine,
) *Service {
	return &Service{
		communities:  communities,
		schools:      schools,
		pois:         pois,
		engine:       engine,
		scoreWorkers: defaultScoreWorkers,
	}
}

// WithScoreWorkers ограничивает пул конкурентной оценки кандидатов.
func (s *Service) WithScoreWorkers(n int) *Service {
	if n > 0 {
		s.scoreWorkers = n
	}
	return s
}

// Search подбирает кандидатов, оценивает каждого и возвращает список,
// отсортированный по убыванию балла. Ничьи разрешаются возрастанием
// идентификатора, поэтому повторные запросы по неизменным данным дают
// побайтово одинаковый порядок. Пустой результат — валидный успех.
func (s *Service) Search(ctx context.Context, q Query) ([]entity.ScoredCommunity, error) {
	params := domain.CommunityFilter{
		City:             q.City,
		District:         q.District,
		PriceMin:         q.PriceMin,
		PriceMax:         q.PriceMax,
		IncludeNullPrice: q.PriceMin <= 0 && q.PriceMax >= UnboundedPriceMax,
	}

	candidates, err := s.communities.Filter(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("communities.Filter: %w", err)
	}

	results := make([]entity.ScoredCommunity, len(candidates))

	// Оценка кандидатов независима друг от друга: каждый считается в
	// своём слоте, упорядочивание происходит только после g.Wait.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scoreWorkers)

	for i, candidate := range candidates {
		g.Go(func() error {
			scored, err := s.score(gctx, candidate, q.PriceMin, q.PriceMax, q.Weights)
			if err != nil {
				return err
			}

			results[i] = scored
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Community.ID < results[j].Community.ID
	})

	return results, nil
}

// ScoreOne оценивает один комплекс для детальной карточки. Ценовое окно
// безгранично: отсутствующая или дорогая цена деградирует к нейтральной
// или верхней части шкалы, а не дисквалифицирует запись.
func (s *Service) ScoreOne(ctx context.Context, communityID int64, weights value.Weights) (entity.ScoredCommunity, error) {
	community, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		return entity.ScoredCommunity{}, fmt.Errorf("communities.GetByID: %w", err)
	}

	if community == nil {
		return entity.ScoredCommunity{}, domain.NewError(errcodes.CommunityNotFound, "community not found")
	}

	return s.score(ctx, *community, 0, UnboundedPriceMax, weights)
}

func (s *Service) score(
	ctx context.Context,
	community entity.Community,
	priceMin, priceMax int,
	weights value.Weights,
) (entity.ScoredCommunity, error) {
	school, err := s.schools.LatestForCommunity(ctx, community.ID)
	if err != nil {
		return entity.ScoredCommunity{}, fmt.Errorf("schools.LatestForCommunity: %w", err)
	}

	var schoolRank *value.SchoolRank
	if school != nil {
		schoolRank = school.Rank
	}

	pois, err := s.pois.ListByCommunity(ctx, community.ID)
	if err != nil {
		return entity.ScoredCommunity{}, fmt.Errorf("pois.ListByCommunity: %w", err)
	}

	sub := entity.SubScores{
		Price:        s.engine.PriceScore(community.AvgPrice, priceMin, priceMax),
		School:       s.engine.SchoolScore(schoolRank),
		Facilities:   s.engine.FacilitiesScore(pois),
		PropertyMgmt: s.engine.PropertyScore(community.PropertyCompany, community.PropertyFee, community.GreenRatio, community.VolumeRatio),
		Developer:    s.engine.DeveloperScore(community.Developer),
	}

	// Взвешенная сумма лежит в [0,10]; наружу отдаётся шкала 0-100
	// с одним знаком после запятой.
	total := s.engine.TotalScore(sub, weights)
	display := math.Round(total*10*10) / 10

	analysis := insight.Analyze(sub, insight.Attributes{
		AvgPrice:        community.AvgPrice,
		PropertyCompany: community.PropertyCompany,
		Developer:       community.Developer,
	}, schoolRank, pois)

	return entity.ScoredCommunity{
		Community: community,
		Score:     display,
		SubScores: sub,
		Pros:      analysis.Pros,
		Cons:      analysis.Cons,
		Tags:      analysis.Tags,
	}, nil
}
