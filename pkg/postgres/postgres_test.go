package postgres

import (
	"testing"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
)

func TestDSNEscapesCredentials(t *testing.T) {
	got := DSN(&cfg.PGDBCfg{
		Host:     "db",
		Port:     "5432",
		User:     "monvix",
		Password: "p@ss word",
		DBName:   "prices",
		SSLMode:  "disable",
	})

	want := "postgres://monvix:p%40ss%20word@db:5432/prices?sslmode=disable"
	if got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}
