package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// mockAuthRepository implementa AuthRepository em memória.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{
		Nome:     "Ana Souza",
		Email:    "Ana@Example.com",
		Password: "senha12345",
		Role:     models.RoleVideomaker,
	})
	if err != nil {
		t.Fatalf("register retornou erro: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("o ID do usuário deveria estar preenchido")
	}
	if res.User.Email != "ana@example.com" {
		t.Fatalf("o email deveria ser normalizado, veio %q", res.User.Email)
	}
	if res.TokenPair.AccessToken == "" {
		t.Fatalf("esperava um access token")
	}

	loginRes, err := svc.Login(ctx, "ana@example.com", "senha12345")
	if err != nil {
		t.Fatalf("login retornou erro: %v", err)
	}
	if loginRes.User.ID != res.User.ID {
		t.Fatalf("login devolveu outro usuário")
	}
}

func TestAuthService_Register_EmailDuplicado(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("a", "r", time.Minute, time.Hour)
	svc := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	in := RegisterInput{
		Nome:     "Bruno Lima",
		Email:    "bruno@example.com",
		Password: "senha12345",
		Role:     models.RoleCliente,
	}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("primeiro cadastro falhou: %v", err)
	}

	_, err := svc.Register(ctx, in)
	if !apperror.IsConflict(err) {
		t.Fatalf("esperava conflito de email, veio %v", err)
	}
}

func TestAuthService_Register_RoleAdminRecusado(t *testing.T) {
	svc := NewAuthService(newMockAuthRepository(), NewTokenManager("a", "r", time.Minute, time.Hour))

	_, err := svc.Register(context.Background(), RegisterInput{
		Nome:     "Mallory",
		Email:    "mallory@example.com",
		Password: "senha12345",
		Role:     models.RoleAdmin,
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("cadastro de admin pela API pública deveria falhar, veio %v", err)
	}
}

func TestAuthService_Login_SenhaErrada(t *testing.T) {
	repo := newMockAuthRepository()
	svc := NewAuthService(repo, NewTokenManager("a", "r", time.Minute, time.Hour))

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha12345"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "carol@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCliente,
		Ativo:        true,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	if _, err := svc.Login(context.Background(), "carol@example.com", "outra-senha1"); err == nil {
		t.Fatalf("login com senha errada deveria falhar")
	}
}

func TestAuthService_Login_ContaDesativada(t *testing.T) {
	repo := newMockAuthRepository()
	svc := NewAuthService(repo, NewTokenManager("a", "r", time.Minute, time.Hour))

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha12345"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "davi@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleVideomaker,
		Ativo:        false,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	_, err := svc.Login(context.Background(), "davi@example.com", "senha12345")
	if !apperror.IsForbidden(err) {
		t.Fatalf("conta desativada deveria ser proibida, veio %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := NewAuthService(repo, tokenManager)

	user := &models.User{
		ID:    uuid.New(),
		Email: "eva@example.com",
		Role:  models.RoleCliente,
		Ativo: true,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	pair, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("não foi possível gerar tokens: %v", err)
	}

	newPair, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh retornou erro: %v", err)
	}
	if newPair.AccessToken == "" {
		t.Fatalf("esperava um novo access token")
	}

	userID, role, err := tokenManager.ParseAccess(newPair.AccessToken)
	if err != nil {
		t.Fatalf("o novo access token deveria ser válido: %v", err)
	}
	if userID != user.ID || role != models.RoleCliente {
		t.Fatalf("claims inesperados: %v %v", userID, role)
	}
}
