package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// fakeNotificationRepo guarda as notificações em memória para inspeção.
type fakeNotificationRepo struct {
	mu      sync.Mutex
	entries []models.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.entries {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	notifications, _ := f.ListByUser(ctx, userID, 0, 0)
	count := 0
	for _, n := range notifications {
		if !n.Lida {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) eventsFor(userID uuid.UUID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []string
	for _, n := range f.entries {
		if n.UserID == userID {
			events = append(events, n.Evento)
		}
	}
	return events
}

func newTestNotifications() (*NotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return NewNotificationService(repo, nil), repo
}

// fakeConfigRepo devolve sempre a mesma configuração.
type fakeConfigRepo struct {
	cfg *models.PlatformConfig
}

func (f *fakeConfigRepo) Get(ctx context.Context) (*models.PlatformConfig, error) {
	if f.cfg == nil {
		return nil, repository.ErrConfigNotFound
	}
	return f.cfg, nil
}

func (f *fakeConfigRepo) Update(ctx context.Context, taxaComissao, valorHoraBase float64, updatedBy uuid.UUID) (*models.PlatformConfig, error) {
	f.cfg = &models.PlatformConfig{
		ID:            1,
		TaxaComissao:  taxaComissao,
		ValorHoraBase: valorHoraBase,
		UpdatedBy:     &updatedBy,
	}
	return f.cfg, nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func newTestConfig(taxa, valorHora float64) *ConfigService {
	return NewConfigService(&fakeConfigRepo{cfg: &models.PlatformConfig{
		ID:            1,
		TaxaComissao:  taxa,
		ValorHoraBase: valorHora,
	}}, &fakeAuditRepo{})
}

// fakeProcessor grava as chamadas feitas e permite roteirizar falhas.
type fakeProcessor struct {
	authorizeErr error
	captureErr   error
	refundErr    error
	cancelErr    error

	authorizeCalls int
	captureCalls   int
	refundCalls    int
	cancelCalls    int

	lastAuthorizedCentavos int64
	lastCapturedCentavos   int64
	lastIntentID           string
}

func (f *fakeProcessor) Authorize(ctx context.Context, valorCentavos int64, metadata map[string]string) (string, error) {
	f.authorizeCalls++
	f.lastAuthorizedCentavos = valorCentavos
	if f.authorizeErr != nil {
		return "", f.authorizeErr
	}
	return "pi_" + uuid.NewString()[:8], nil
}

func (f *fakeProcessor) Capture(ctx context.Context, intentID string, valorCentavos int64) error {
	f.captureCalls++
	f.lastIntentID = intentID
	f.lastCapturedCentavos = valorCentavos
	return f.captureErr
}

func (f *fakeProcessor) Refund(ctx context.Context, intentID string, valorCentavos int64) error {
	f.refundCalls++
	f.lastIntentID = intentID
	return f.refundErr
}

func (f *fakeProcessor) Cancel(ctx context.Context, intentID string) error {
	f.cancelCalls++
	f.lastIntentID = intentID
	return f.cancelErr
}

func ptr[T any](v T) *T {
	return &v
}

func futureDate() time.Time {
	return time.Now().Add(72 * time.Hour)
}
