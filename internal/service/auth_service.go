package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// AuthRepository descreve o que o AuthService precisa do armazenamento.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthService cuida de cadastro, login e renovação de tokens.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput são os dados de cadastro.
type RegisterInput struct {
	Nome     string
	Email    string
	Password string
	Role     string
}

// AuthResult é o retorno de cadastro e login.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

// NewAuthService cria o serviço de autenticação.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{repo: repo, tokenManager: tokenManager}
}

// Register cadastra um cliente ou videomaker e já devolve os tokens.
// Admins não se cadastram pela API pública.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateLength("nome", in.Nome, validation.MinNomeLength, validation.MaxNomeLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if in.Role != models.RoleCliente && in.Role != models.RoleVideomaker {
		return nil, apperror.New(apperror.ErrCodeValidation, "role deve ser cliente ou videomaker")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "não foi possível processar a senha")
	}

	user := &models.User{
		ID:            uuid.New(),
		Nome:          strings.TrimSpace(in.Nome),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  string(passHash),
		Role:          in.Role,
		Categorias:    []string{},
		PortfolioURLs: []string{},
		Ativo:         true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "email já cadastrado")
		}
		return nil, err
	}

	pair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: pair}, nil
}

// Login valida as credenciais e devolve os tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.Ativo {
		return nil, apperror.New(apperror.ErrCodeForbidden, "conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	pair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: pair}, nil
}

// Refresh emite um novo par a partir de um refresh token válido.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh token inválido")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh token inválido")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	if !user.Ativo {
		return nil, apperror.New(apperror.ErrCodeForbidden, "conta desativada")
	}

	return s.tokenManager.GeneratePair(user)
}
