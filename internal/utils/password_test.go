// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("expected match, got: %v", err)
	}
	if err := CheckPassword(hash, "other"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got: %v", err)
	}
}

func TestHashPassword_OutOfRangeCostUsesDefault(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, _ := HashPassword("same", bcrypt.MinCost)
	h2, _ := HashPassword("same", bcrypt.MinCost)
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "pw")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected a non-mismatch error, got: %v", err)
	}
}
