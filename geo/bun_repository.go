package geo

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxCountries bounds the reference table loaded for reverse geocoding.
const MaxCountries = 1000

// ErrInvalidCountry indicates a country without code or with an inverted box.
var ErrInvalidCountry = errors.New("geo: country requires a code and a valid bounding box")

// RepositoryConfig wires the Bun-backed country repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	IDGen      types.IDGenerator
}

type countryStore interface {
	repository.Repository[*Record]
}

// Repository stores the country reference table and resolves coordinates
// against it.
type Repository struct {
	countryStore
	idGen types.IDGenerator
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ReverseGeocoder          = (*Repository)(nil)
)

// allCountries is shared by every lookup so cached listings stay keyed on a
// single query.
var allCountries repository.SelectCriteria = func(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("code ASC").Limit(MaxCountries)
}

// NewRepository constructs the default country repository.
func NewRepository(cfg RepositoryConfig, opts ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("geo: db or repository required")
	}
	options := applyRepositoryOptions(opts)
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
			GetIdentifier: func() string {
				return "code"
			},
		})
	}
	if options.CacheEnabled {
		if _, ok := repo.(*repositorycache.CachedRepository[*Record]); !ok {
			cacheCfg := cache.DefaultConfig()
			if options.CacheConfig != nil {
				cacheCfg = *options.CacheConfig
			}
			cacheService, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, cacheService, cache.NewDefaultKeySerializer())
		}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		countryStore: repo,
		idGen:        idGen,
	}, nil
}

// ReverseGeocode returns the country whose bounding box contains the point.
// When boxes overlap the smallest one wins. A nil country means the point is
// not inside any known country.
func (r *Repository) ReverseGeocode(ctx context.Context, lat, lng float64) (*types.Country, error) {
	countries, err := r.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	return Locate(countries, lat, lng), nil
}

// ListCountries returns the reference table ordered by code.
func (r *Repository) ListCountries(ctx context.Context) ([]types.Country, error) {
	records, _, err := r.List(ctx, allCountries)
	if err != nil {
		return nil, err
	}
	out := make([]types.Country, 0, len(records))
	for _, rec := range records {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

// UpsertCountry creates or updates a country matched by code.
func (r *Repository) UpsertCountry(ctx context.Context, country types.Country) (*types.Country, error) {
	country.Code = strings.ToUpper(strings.TrimSpace(country.Code))
	if country.Code == "" || country.MinLat > country.MaxLat || country.MinLng > country.MaxLng {
		return nil, ErrInvalidCountry
	}
	rec := fromDomain(country)
	existing, err := r.Get(ctx, repository.SelectBy("code", "=", country.Code))
	switch {
	case err == nil:
		rec.ID = existing.ID
		updated, err := r.Update(ctx, rec)
		if err != nil {
			return nil, err
		}
		out := toDomain(updated)
		return &out, nil
	case repository.IsRecordNotFound(err):
		if rec.ID == uuid.Nil {
			rec.ID = r.idGen.UUID()
		}
		created, err := r.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		out := toDomain(created)
		return &out, nil
	default:
		return nil, err
	}
}

// Locate picks the smallest bounding box in countries containing the point.
func Locate(countries []types.Country, lat, lng float64) *types.Country {
	var (
		best     *types.Country
		bestArea float64
	)
	for i := range countries {
		c := countries[i]
		if !c.Contains(lat, lng) {
			continue
		}
		area := (c.MaxLat - c.MinLat) * (c.MaxLng - c.MinLng)
		if best == nil || area < bestArea {
			best = &c
			bestArea = area
		}
	}
	return best
}

func fromDomain(country types.Country) *Record {
	return &Record{
		ID:     country.ID,
		Code:   country.Code,
		Name:   strings.TrimSpace(country.Name),
		MinLat: country.MinLat,
		MaxLat: country.MaxLat,
		MinLng: country.MinLng,
		MaxLng: country.MaxLng,
	}
}

func toDomain(rec *Record) types.Country {
	if rec == nil {
		return types.Country{}
	}
	return types.Country{
		ID:     rec.ID,
		Code:   rec.Code,
		Name:   rec.Name,
		MinLat: rec.MinLat,
		MaxLat: rec.MaxLat,
		MinLng: rec.MinLng,
		MaxLng: rec.MaxLng,
	}
}
