package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/jitter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
)

const (
	rawContentType = "application/json"
	uploadAttempts = 3
	uploadTimeout  = 30 * time.Second

	// RawPrefix общий для всех сырых ответов, на него действует правило истечения бакета.
	RawPrefix = "scrape-logs/"
)

// MinioInfrastructure архивирует сырые ответы в MinIO в фоне.
type MinioInfrastructure struct {
	repo        usecase.RawObjectRepository
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	baseBackoff time.Duration
}

func NewMinioInfrastructure(repo usecase.RawObjectRepository, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		repo:        repo,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		baseBackoff: time.Second,
	}
}

// RawObjectKey возвращает ключ объекта для записи журнала.
func RawObjectKey(productID, logID uuid.UUID) string {
	return fmt.Sprintf("%s%s/%s.json", RawPrefix, productID, logID)
}

// ArchiveRaw запускает фоновую загрузку и сразу возвращает управление.
func (m *MinioInfrastructure) ArchiveRaw(req *usecase.ArchiveRawReq) {
	if req == nil || len(req.Raw) == 0 {
		return
	}

	m.wg.Add(1)
	go m.archive(req)
}

// archive загружает объект с экспоненциальной задержкой; если ключ не удалось сохранить в журнале, объект удаляется.
func (m *MinioInfrastructure) archive(req *usecase.ArchiveRawReq) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.archive"

	ctx, cancel := context.WithTimeout(m.shutdownCtx, uploadTimeout)
	defer cancel()

	key := RawObjectKey(req.ProductID, req.LogID)

	var stored string
	for attempt := 0; attempt < uploadAttempts; attempt++ {
		var err error
		stored, err = m.repo.Put(ctx, key, req.Raw, rawContentType)
		if err == nil {
			break
		}

		m.logger.Warnf("%s: upload %s failed (attempt %d): %v", op, key, attempt+1, err)
		if attempt == uploadAttempts-1 {
			return
		}

		if !jitter.Sleep(ctx.Done(), jitter.ExponentialBackoff(m.baseBackoff, 10*m.baseBackoff, attempt, jitter.DefaultJitter)) {
			m.logger.Warnf("%s: archive interrupted by shutdown, key=%s", op, key)
			return
		}
	}

	if req.OnStored == nil {
		return
	}

	if err := req.OnStored(ctx, stored); err != nil {
		m.logger.Errorf(err, "%s: failed to record object key %s", op, stored)
		if err := m.repo.Delete(ctx, stored); err != nil {
			m.logger.Warnf("%s: cleanup of %s failed: %v", op, stored, err)
		}
	}
}

// WaitForArchive ожидает завершения фоновых загрузок с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForArchive(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio archive timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
