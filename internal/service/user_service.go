package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// UserRepository descreve o que o UserService precisa do armazenamento.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, role string, limit, offset int) ([]models.User, error)
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

// FavoriteRepositoryAPI expõe as operações de favoritos usadas pelo serviço.
type FavoriteRepositoryAPI interface {
	Add(ctx context.Context, clienteID, videomakerID uuid.UUID) error
	Remove(ctx context.Context, clienteID, videomakerID uuid.UUID) error
	List(ctx context.Context, clienteID uuid.UUID, limit, offset int) ([]models.User, error)
}

// UserService cuida de perfis, favoritos e moderação de contas.
type UserService struct {
	users     UserRepository
	favorites FavoriteRepositoryAPI
}

// UpdateProfileInput são os campos editáveis do perfil. Ponteiros nil
// significam "não alterar".
type UpdateProfileInput struct {
	Nome          *string
	Telefone      *string
	Bio           *string
	Cidade        *string
	Estado        *string
	Latitude      *float64
	Longitude     *float64
	Categorias    []string
	PortfolioURLs []string
	ValorHora     *float64
}

// NewUserService cria o serviço de usuários.
func NewUserService(users UserRepository, favorites FavoriteRepositoryAPI) *UserService {
	return &UserService{users: users, favorites: favorites}
}

// GetProfile devolve o perfil público de um usuário.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile atualiza o perfil do próprio usuário.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Nome != nil {
		if err := validation.ValidateLength("nome", *in.Nome, validation.MinNomeLength, validation.MaxNomeLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		user.Nome = *in.Nome
	}
	if in.Telefone != nil {
		user.Telefone = in.Telefone
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}
	if in.Cidade != nil {
		if err := validation.ValidateLength("cidade", *in.Cidade, 0, validation.MaxCidadeLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		user.Cidade = in.Cidade
	}
	if in.Estado != nil {
		if err := validation.ValidateEstado(*in.Estado); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		user.Estado = in.Estado
	}
	if in.Latitude != nil {
		user.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		user.Longitude = in.Longitude
	}
	if in.Categorias != nil {
		for _, c := range in.Categorias {
			if !models.IsValidCategory(c) {
				return nil, apperror.New(apperror.ErrCodeValidation, "categoria desconhecida: "+c)
			}
		}
		user.Categorias = in.Categorias
	}
	if in.PortfolioURLs != nil {
		user.PortfolioURLs = in.PortfolioURLs
	}
	if in.ValorHora != nil {
		if err := validation.ValidateValor("valor_hora", *in.ValorHora); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		user.ValorHora = in.ValorHora
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lista usuários para o painel admin.
func (s *UserService) ListUsers(ctx context.Context, role string, limit, offset int) ([]models.User, error) {
	if role != "" && !models.IsValidRole(role) {
		return nil, apperror.New(apperror.ErrCodeValidation, "role desconhecido")
	}
	return s.users.List(ctx, role, limit, offset)
}

// SetAtivo ativa ou desativa uma conta. Somente admin.
func (s *UserService) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	if err := s.users.SetAtivo(ctx, id, ativo); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}
	return nil
}

// AddFavorite marca um videomaker como favorito do cliente.
func (s *UserService) AddFavorite(ctx context.Context, clienteID, videomakerID uuid.UUID) error {
	target, err := s.GetProfile(ctx, videomakerID)
	if err != nil {
		return err
	}
	if target.Role != models.RoleVideomaker {
		return apperror.New(apperror.ErrCodeValidation, "somente videomakers podem ser favoritados")
	}
	return s.favorites.Add(ctx, clienteID, videomakerID)
}

// RemoveFavorite desfaz o favorito.
func (s *UserService) RemoveFavorite(ctx context.Context, clienteID, videomakerID uuid.UUID) error {
	return s.favorites.Remove(ctx, clienteID, videomakerID)
}

// ListFavorites lista os videomakers favoritos do cliente.
func (s *UserService) ListFavorites(ctx context.Context, clienteID uuid.UUID, limit, offset int) ([]models.User, error) {
	return s.favorites.List(ctx, clienteID, limit, offset)
}
