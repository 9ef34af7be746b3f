package services

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"matergui-core/internal/infrastructure/database/redis"
	"matergui-core/internal/modules/records/dto"
	"matergui-core/internal/modules/records/schema"
)

// dueDateScanLimit borne le nombre de grossesses inspectées pour le
// compteur d'accouchements prévus dans le mois
const dueDateScanLimit = 200

// StatsService calcule le rapport agrégé du tableau de bord : compteurs par
// collection, accouchements prévus dans le mois calendaire courant et
// répartition des structures sanitaires par région. Chaque compteur dégrade
// à zéro en cas d'échec plutôt que de faire échouer le rapport entier.
type StatsService struct {
	store DocumentStore
	cache *redis.Client
}

func NewStatsService(store DocumentStore, cache *redis.Client) *StatsService {
	return &StatsService{
		store: store,
		cache: cache,
	}
}

// GetDashboardStats retourne le rapport, servi depuis le cache Redis quand
// une entrée fraîche existe (TTL court). Le cache est strictement best
// effort : toute erreur Redis déclenche un calcul direct.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*dto.StatsResponse, error) {
	if !s.store.Available() {
		return nil, NewStoreUnavailableError()
	}

	if s.cache.Available() {
		if raw, err := s.cache.GetWithPattern(ctx, "cache_stats"); err == nil {
			var cached dto.StatsResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats := &dto.StatsResponse{
		Patients:           s.countCollection(ctx, schema.KindPatient),
		Pregnancies:        s.countCollection(ctx, schema.KindPregnancy),
		Visits:             s.countCollection(ctx, schema.KindVisit),
		Appointments:       s.countCollection(ctx, schema.KindAppointment),
		Alerts:             s.countCollection(ctx, schema.KindAlert),
		DueThisMonth:       s.countDueThisMonth(ctx),
		FacilitiesByRegion: s.countFacilitiesByRegion(ctx),
	}

	if s.cache.Available() {
		if data, err := json.Marshal(stats); err == nil {
			s.cache.SetWithPattern(ctx, "cache_stats", data)
		}
	}

	return stats, nil
}

// countCollection compte les documents d'une collection, zéro en cas d'échec
func (s *StatsService) countCollection(ctx context.Context, collection string) int64 {
	count, err := s.store.CountDocuments(ctx, collection, bson.M{})
	if err != nil {
		return 0
	}
	return count
}

// countDueThisMonth compte les grossesses dont la date prévue
// d'accouchement tombe dans le mois calendaire courant (date serveur)
func (s *StatsService) countDueThisMonth(ctx context.Context) int64 {
	docs, err := s.store.FindDocuments(ctx, schema.KindPregnancy, bson.M{},
		dueDateScanLimit, bson.M{"expected_due_date": 1})
	if err != nil {
		return 0
	}

	now := time.Now()
	var due int64
	for _, doc := range docs {
		edd, ok := asTime(doc["expected_due_date"])
		if !ok {
			continue
		}
		if edd.Year() == now.Year() && edd.Month() == now.Month() {
			due++
		}
	}
	return due
}

// countFacilitiesByRegion regroupe les structures sanitaires par région ;
// liste vide si la collection n'existe pas encore
func (s *StatsService) countFacilitiesByRegion(ctx context.Context) []dto.RegionCount {
	regions := []dto.RegionCount{}

	names, err := s.store.ListCollectionNames(ctx)
	if err != nil {
		return regions
	}
	exists := false
	for _, name := range names {
		if name == schema.KindFacility {
			exists = true
			break
		}
	}
	if !exists {
		return regions
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$region"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	rows, err := s.store.Aggregate(ctx, schema.KindFacility, pipeline)
	if err != nil {
		return regions
	}

	for _, row := range rows {
		region, _ := row["_id"].(string)
		regions = append(regions, dto.RegionCount{
			Region: region,
			Count:  asInt64(row["count"]),
		})
	}
	return regions
}

// asTime accepte les représentations de dates rencontrées selon la source
// (time.Time décodé en mémoire, primitive.DateTime depuis le store)
func asTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	}
	return time.Time{}, false
}

// asInt64 accepte les types numériques produits par l'agrégation
func asInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
