package server

import (
	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
	"homescout/pkg/lox"
	"homescout/pkg/rest"
)

func newRESTSubScores(sub entity.SubScores) rest.SubScores {
	return rest.SubScores{
		Price:        sub.Price,
		School:       sub.School,
		Facilities:   sub.Facilities,
		PropertyMgmt: sub.PropertyMgmt,
		Developer:    sub.Developer,
	}
}

func newRESTCommunityBrief(scored entity.ScoredCommunity) rest.CommunityBrief {
	return rest.CommunityBrief{
		ID:        scored.Community.ID,
		Name:      scored.Community.Name,
		City:      scored.Community.City,
		District:  scored.Community.District,
		AvgPrice:  scored.Community.AvgPrice,
		Score:     scored.Score,
		SubScores: newRESTSubScores(scored.SubScores),
		Pros:      scored.Pros,
		Cons:      scored.Cons,
		Tags:      scored.Tags,
	}
}

func newRESTCommunityDetail(
	scored entity.ScoredCommunity,
	schools []entity.SchoolDistrict,
	pois []entity.NearbyPOI,
) rest.CommunityDetail {
	community := scored.Community

	return rest.CommunityDetail{
		ID:              community.ID,
		Name:            community.Name,
		City:            community.City,
		District:        community.District,
		Address:         community.Address,
		Lat:             community.Lat,
		Lng:             community.Lng,
		AvgPrice:        community.AvgPrice,
		BuildYear:       community.BuildYear,
		TotalUnits:      community.TotalUnits,
		GreenRatio:      community.GreenRatio,
		VolumeRatio:     community.VolumeRatio,
		PropertyCompany: community.PropertyCompany,
		PropertyFee:     community.PropertyFee,
		Developer:       community.Developer,
		ParkingRatio:    community.ParkingRatio,
		Score:           scored.Score,
		SubScores:       newRESTSubScores(scored.SubScores),
		Pros:            scored.Pros,
		Cons:            scored.Cons,
		Tags:            scored.Tags,
		SchoolDistricts: lox.Map(schools, newRESTSchoolDistrict),
		NearbyPOIs:      lox.Map(pois, newRESTNearbyPOI),
	}
}

func newRESTSchoolDistrict(district entity.SchoolDistrict) rest.SchoolDistrict {
	var rank *string
	if district.Rank != nil {
		r := string(*district.Rank)
		rank = &r
	}

	return rest.SchoolDistrict{
		PrimarySchool: district.PrimarySchool,
		MiddleSchool:  district.MiddleSchool,
		SchoolRank:    rank,
		Year:          district.Year,
	}
}

func newRESTNearbyPOI(poi entity.NearbyPOI) rest.NearbyPOI {
	return rest.NearbyPOI{
		Category: string(poi.Category),
		Name:     poi.Name,
		Distance: poi.Distance,
		WalkTime: poi.WalkTime,
	}
}

func newRESTWeights(weights value.Weights) rest.Weights {
	return rest.Weights{
		Price:        weights.Price,
		School:       weights.School,
		Facilities:   weights.Facilities,
		PropertyMgmt: weights.PropertyMgmt,
		Developer:    weights.Developer,
	}
}

func newDomainWeights(weights *rest.Weights) value.Weights {
	if weights == nil {
		return value.DefaultWeights()
	}

	return value.Weights{
		Price:        weights.Price,
		School:       weights.School,
		Facilities:   weights.Facilities,
		PropertyMgmt: weights.PropertyMgmt,
		Developer:    weights.Developer,
	}
}
