package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "monvix")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "prices")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := Load(logger.Nop{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Http.Port != "8080" || c.Grpc.Port != "8091" {
		t.Fatalf("unexpected ports %s/%s", c.Http.Port, c.Grpc.Port)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Topic != "price-alerts" {
		t.Fatalf("unexpected kafka cfg %+v", c.Kafka)
	}
	if c.Firecrawl.BaseURL != "https://api.firecrawl.dev" || c.Firecrawl.Timeout != 0 {
		t.Fatalf("unexpected firecrawl cfg %+v", c.Firecrawl)
	}
	if c.Redis.ProductTTL != 3*time.Minute || c.Redis.HistoryTTL != 10*time.Minute {
		t.Fatalf("unexpected redis ttl %+v", c.Redis)
	}
	if c.Minio.RawRetentionDays != 90 {
		t.Fatalf("unexpected raw retention %d", c.Minio.RawRetentionDays)
	}
	if c.Telegram.BotToken != "" || c.Site.CallbackURL() != "" {
		t.Fatalf("optional settings must stay empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FIRECRAWL_BASE_URL", "http://firecrawl.local/")
	t.Setenv("FIRECRAWL_TIMEOUT", "45s")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("READ_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "4s")

	c, err := Load(logger.Nop{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Firecrawl.BaseURL != "http://firecrawl.local" || c.Firecrawl.Timeout != 45*time.Second {
		t.Fatalf("unexpected firecrawl cfg %+v", c.Firecrawl)
	}
	if c.Redis.Timeout != 4*time.Second {
		t.Fatalf("redis timeout must be the larger of read/write, got %v", c.Redis.Timeout)
	}
}

func TestLoadRequiresFirecrawlKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FIRECRAWL_API_KEY", "")

	if _, err := Load(logger.Nop{}); !errors.Is(err, e.ErrMissingAPIKey) {
		t.Fatalf("want missing api key, got %v", err)
	}
}

func TestLoadRejectsBadInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_PARTITIONS", "many")

	if _, err := Load(logger.Nop{}); !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Fatalf("want incorrect env variable, got %v", err)
	}
}

func TestLoadRejectsNegativeRetention(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MINIO_RAW_RETENTION_DAYS", "-1")

	if _, err := Load(logger.Nop{}); !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Fatalf("want incorrect env variable, got %v", err)
	}
}

func TestCallbackURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://tracker.example", "https://tracker.example/auth/callback"},
		{"https://tracker.example/", "https://tracker.example/auth/callback"},
	}

	for _, tt := range tests {
		if got := (&SiteCfg{URL: tt.url}).CallbackURL(); got != tt.want {
			t.Errorf("CallbackURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
