package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

func TestNewBcryptHasher_CostRange(t *testing.T) {
	h, err := NewBcryptHasher(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.cost != DefaultBcryptCost {
		t.Fatalf("expected default cost %d, got %d", DefaultBcryptCost, h.cost)
	}

	for _, cost := range []int{bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost)
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.KindConfig {
			t.Fatalf("cost %d: expected config error, got %v", cost, err)
		}
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h, _ := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash equals plaintext")
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d, got %d", bcrypt.MinCost, cost)
	}

	other, _ := h.Hash("secret123")
	if other == hash {
		t.Fatalf("expected distinct salts")
	}

	ok, err := h.Verify(hash, "secret123")
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = h.Verify(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected clean mismatch, got %v %v", ok, err)
	}
	if _, err := h.Verify("garbage", "secret123"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
