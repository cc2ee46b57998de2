package clients

import (
	"context"
	"fmt"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

const rawExpiryRuleID = "expire-raw-responses"

// NewMinIOClient создаёт клиент объектного хранилища для архива сырых ответов.
func NewMinIOClient(c *cfg.MinIOCfg) (*minio.Client, error) {
	client, err := minio.New(c.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.MinioRootUser, c.MinioRootPassword, ""),
		Secure: c.MinioUseSSL,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("minio %s: %w", c.MinioEndpoint, err))
	}

	return client, nil
}

// EnsureBucket создаёт бакет архива и настраивает удаление объектов под prefix
// через c.RawRetentionDays дней.
func EnsureBucket(ctx context.Context, client *minio.Client, c *cfg.MinIOCfg, prefix string) error {
	exists, err := client.BucketExists(ctx, c.BucketName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if !exists {
		err := client.MakeBucket(ctx, c.BucketName, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if c.RawRetentionDays == 0 {
		return nil
	}

	if err := client.SetBucketLifecycle(ctx, c.BucketName, RawExpiryLifecycle(prefix, c.RawRetentionDays)); err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("lifecycle for %s: %w", c.BucketName, err))
	}

	return nil
}

// RawExpiryLifecycle строит правило истечения для сырых ответов.
func RawExpiryLifecycle(prefix string, days int) *lifecycle.Configuration {
	return &lifecycle.Configuration{
		Rules: []lifecycle.Rule{{
			ID:         rawExpiryRuleID,
			Status:     "Enabled",
			RuleFilter: lifecycle.Filter{Prefix: prefix},
			Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(days)},
		}},
	}
}
