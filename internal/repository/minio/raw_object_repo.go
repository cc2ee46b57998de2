package minio

import (
	"bytes"
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// RawObjectRepo реализует хранилище сырых ответов поверх MinIO.
type RawObjectRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewRawObjectRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *RawObjectRepo {
	return &RawObjectRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Put загружает объект в бакет и возвращает его ключ.
func (r *RawObjectRepo) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	info, err := r.mc.PutObject(ctx, r.cfg.BucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (r *RawObjectRepo) Delete(ctx context.Context, key string) error {
	if err := r.mc.RemoveObject(ctx, r.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
