package usecase

import (
	"context"
	"strings"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
)

type ProfileUseCase struct {
	profileRepo ProfileRepository
	bus         ChangeBus
	logger      logger.Logger
}

func NewProfileUC(profileRepo ProfileRepository, bus ChangeBus, logger logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		bus:         bus,
		logger:      logger,
	}
}

// GetProfile возвращает профиль, создавая пустой при первом обращении.
func (p *ProfileUseCase) GetProfile(ctx context.Context, ownerID uuid.UUID) (*domain.Profile, error) {
	const op = "ProfileUseCase.GetProfile"

	profile, err := p.profileRepo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return profile, nil
}

func (p *ProfileUseCase) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req *UpdateProfileReq) (*domain.Profile, error) {
	const op = "ProfileUseCase.UpdateProfile"

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return nil, e.Wrap(op, e.ErrFullNameRequired)
	}

	if _, err := p.profileRepo.GetOrCreate(ctx, ownerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	profile, err := p.profileRepo.Update(ctx, ownerID, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	publishChanges(ctx, p.bus, p.logger,
		domain.NewChangeEvent(domain.TableProfiles, domain.ChangeUpdate, ownerID, ownerID, profile))
	return profile, nil
}
