package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

func TestConnect_RequiresURIAndDatabase(t *testing.T) {
	cases := []Config{
		{Database: "freefortalk"},
		{URI: "mongodb://localhost:27017"},
	}
	for _, cfg := range cases {
		_, _, err := Connect(context.Background(), cfg)
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.KindConfig {
			t.Fatalf("%+v: expected config error, got %v", cfg, err)
		}
	}
}

func TestConnect_RejectsMalformedURI(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "not-a-mongo-uri", Database: "freefortalk"})
	if err == nil {
		t.Fatalf("expected error for malformed uri")
	}
	if domain.KindOf(err) == domain.KindConfig {
		t.Fatalf("malformed uri is a connect error, not a missing setting: %v", err)
	}
}

func TestConfig_ClientOptions(t *testing.T) {
	opts := Config{URI: "mongodb://localhost:27017", Timeout: 3 * time.Second}.clientOptions()
	if opts.AppName == nil || *opts.AppName != appName {
		t.Fatalf("expected app name %q, got %v", appName, opts.AppName)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != 3*time.Second {
		t.Fatalf("unexpected server selection timeout: %v", opts.ServerSelectionTimeout)
	}
}
