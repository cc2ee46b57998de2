package minio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
)

type memObjects struct {
	mu      sync.Mutex
	failFor int
	puts    int
	objects map[string][]byte
	deleted []string
}

func (m *memObjects) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	if m.puts <= m.failFor {
		return "", errors.New("minio unavailable")
	}
	m.objects[key] = data
	return key, nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func newInfra(repo usecase.RawObjectRepository) *MinioInfrastructure {
	m := NewMinioInfrastructure(repo, logger.Nop{}, context.Background())
	m.baseBackoff = time.Millisecond
	return m
}

func waitArchive(t *testing.T, m *MinioInfrastructure) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.WaitForArchive(ctx); err != nil {
		t.Fatalf("WaitForArchive: %v", err)
	}
}

func TestArchiveRawStoresObjectAndReportsKey(t *testing.T) {
	repo := &memObjects{objects: map[string][]byte{}, failFor: 1}
	m := newInfra(repo)

	productID, logID := uuid.New(), uuid.New()
	var gotKey string
	m.ArchiveRaw(&usecase.ArchiveRawReq{
		ProductID: productID,
		LogID:     logID,
		Raw:       []byte(`{"success":true}`),
		OnStored: func(_ context.Context, key string) error {
			gotKey = key
			return nil
		},
	})
	waitArchive(t, m)

	want := RawObjectKey(productID, logID)
	if gotKey != want {
		t.Fatalf("want key %q, got %q", want, gotKey)
	}
	if string(repo.objects[want]) != `{"success":true}` {
		t.Fatalf("object not stored: %v", repo.objects)
	}
	if repo.puts != 2 {
		t.Fatalf("want 2 put attempts (one retry), got %d", repo.puts)
	}
}

func TestArchiveRawRemovesObjectWhenKeyNotRecorded(t *testing.T) {
	repo := &memObjects{objects: map[string][]byte{}}
	m := newInfra(repo)

	m.ArchiveRaw(&usecase.ArchiveRawReq{
		ProductID: uuid.New(),
		LogID:     uuid.New(),
		Raw:       []byte(`{}`),
		OnStored: func(context.Context, string) error {
			return errors.New("log row gone")
		},
	})
	waitArchive(t, m)

	if len(repo.objects) != 0 || len(repo.deleted) != 1 {
		t.Fatalf("want orphan object removed, objects=%v deleted=%v", repo.objects, repo.deleted)
	}
}

func TestArchiveRawSkipsEmptyPayload(t *testing.T) {
	repo := &memObjects{objects: map[string][]byte{}}
	m := newInfra(repo)

	m.ArchiveRaw(&usecase.ArchiveRawReq{ProductID: uuid.New(), LogID: uuid.New()})
	waitArchive(t, m)

	if repo.puts != 0 {
		t.Fatalf("want no upload for empty payload, got %d", repo.puts)
	}
}

func TestArchiveRawGivesUpAfterRetries(t *testing.T) {
	repo := &memObjects{objects: map[string][]byte{}, failFor: 100}
	m := newInfra(repo)

	called := false
	m.ArchiveRaw(&usecase.ArchiveRawReq{
		ProductID: uuid.New(),
		LogID:     uuid.New(),
		Raw:       []byte(`{}`),
		OnStored: func(context.Context, string) error {
			called = true
			return nil
		},
	})
	waitArchive(t, m)

	if repo.puts != uploadAttempts || called {
		t.Fatalf("want %d attempts and no callback, got %d attempts, called=%v", uploadAttempts, repo.puts, called)
	}
}
