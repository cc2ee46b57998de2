package usecase

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/google/uuid"
)

type ProductUC interface {
	AddProduct(ctx context.Context, ownerID uuid.UUID, rawURL string) (*domain.TrackedProduct, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]domain.TrackedProduct, error)
	GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error)
	DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error
	RefreshProduct(ctx context.Context, ownerID, id uuid.UUID) (*OrchestratorResult, error)
	GetHistory(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.PriceObservation, error)
	ListScrapeLogs(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.ScrapeLogEntry, error)
	GetScrapeLog(ctx context.Context, ownerID, productID, logID uuid.UUID) (*domain.ScrapeLogEntry, error)
}

type AlertUC interface {
	SetTargetPrice(ctx context.Context, ownerID uuid.UUID, req *SetTargetPriceReq) (*domain.PriceAlert, error)
	GetAlert(ctx context.Context, ownerID, productID uuid.UUID) (*domain.PriceAlert, error)
	Toggle(ctx context.Context, ownerID, alertID uuid.UUID, enabled bool) (*domain.PriceAlert, error)
	Dismiss(ctx context.Context, ownerID, alertID uuid.UUID) (*domain.PriceAlert, error)
	ListNotifications(ctx context.Context, ownerID uuid.UUID) ([]Notification, error)
	UnreadCount(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type ProfileUC interface {
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, req *UpdateProfileReq) (*domain.Profile, error)
}

type ChangeUC interface {
	Subscribe(ctx context.Context, ownerID uuid.UUID, table string) (Subscription, error)
}

type NotifyUC interface {
	HandleAlertTriggered(ctx context.Context, payload []byte) error
}
