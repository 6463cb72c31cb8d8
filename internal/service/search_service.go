package service

import (
	"context"
	"sort"

	"github.com/vmhub/videomakers-backend/internal/geo"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
)

// SearchRepositoryAPI descreve a busca de videomakers no armazenamento.
type SearchRepositoryAPI interface {
	SearchVideomakers(ctx context.Context, filter models.VideomakerFilter) ([]models.User, error)
}

// SearchService implementa a busca de videomakers com filtros e
// ordenação por distância quando o cliente informa coordenadas.
type SearchService struct {
	users SearchRepositoryAPI
}

// NewSearchService cria o serviço de busca.
func NewSearchService(users SearchRepositoryAPI) *SearchService {
	return &SearchService{users: users}
}

// SearchVideomakers busca videomakers ativos. Sem coordenadas no filtro,
// a ordenação é por rating; com coordenadas, por distância crescente
// (videomakers sem localização ficam no fim).
func (s *SearchService) SearchVideomakers(ctx context.Context, filter models.VideomakerFilter) ([]models.VideomakerResult, error) {
	if filter.Categoria != "" && !models.IsValidCategory(filter.Categoria) {
		return nil, apperror.New(apperror.ErrCodeValidation, "categoria desconhecida: "+filter.Categoria)
	}
	if (filter.Latitude == nil) != (filter.Longitude == nil) {
		return nil, apperror.New(apperror.ErrCodeValidation, "latitude e longitude devem ser informadas juntas")
	}

	users, err := s.users.SearchVideomakers(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]models.VideomakerResult, 0, len(users))
	for _, u := range users {
		r := models.VideomakerResult{User: u}
		if filter.Latitude != nil && u.Latitude != nil && u.Longitude != nil {
			d := geo.Haversine(*filter.Latitude, *filter.Longitude, *u.Latitude, *u.Longitude)
			r.DistanciaKm = &d
		}
		results = append(results, r)
	}

	if filter.Latitude != nil {
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].DistanciaKm, results[j].DistanciaKm
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return *di < *dj
			}
		})
	}

	return results, nil
}
