// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"testing"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
	"github.com/JelteF/pg-human/internal/keychain"
)

func TestResolveAPIKeyEnvPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		pghuman string
		openai  string
		want    string
	}{
		{name: "pghuman var wins", pghuman: "key-a", openai: "key-b", want: "key-a"},
		{name: "openai var as fallback", pghuman: "", openai: "key-b", want: "key-b"},
		{name: "surrounding whitespace trimmed", pghuman: "  key-a \n", openai: "", want: "key-a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PGHUMAN_API_KEY", tt.pghuman)
			t.Setenv("OPENAI_API_KEY", tt.openai)
			got, err := resolveAPIKey()
			if err != nil {
				t.Fatalf("resolveAPIKey() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv("PGHUMAN_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if km, err := keychain.GetManager(); err == nil {
		if v, err := km.LoadAPIKey(); err == nil && v != "" {
			t.Skip("API key present in OS keychain")
		}
	}

	_, err := resolveAPIKey()
	if err == nil {
		t.Fatal("resolveAPIKey() expected error with no key configured")
	}
	if !pgherrors.IsKind(err, pgherrors.ConfigMissing) {
		t.Errorf("resolveAPIKey() error kind = %q, want %q", pgherrors.KindOf(err), pgherrors.ConfigMissing)
	}
}

func TestResolveDSNEnvPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		pghuman     string
		databaseURL string
		want        string
	}{
		{
			name:        "pghuman var wins",
			pghuman:     "postgres://a:b@host:5432/db",
			databaseURL: "postgres://c:d@other:5432/db",
			want:        "postgres://a:b@host:5432/db",
		},
		{
			name:        "database_url as fallback",
			pghuman:     "",
			databaseURL: "postgres://c:d@other:5432/db",
			want:        "postgres://c:d@other:5432/db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PGHUMAN_DSN", tt.pghuman)
			t.Setenv("DATABASE_URL", tt.databaseURL)
			got, err := resolveDSN()
			if err != nil {
				t.Fatalf("resolveDSN() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDSNMissing(t *testing.T) {
	t.Setenv("PGHUMAN_DSN", "")
	t.Setenv("DATABASE_URL", "")
	if km, err := keychain.GetManager(); err == nil {
		if v, err := km.LoadDBDSN(); err == nil && v != "" {
			t.Skip("DSN present in OS keychain")
		}
	}

	_, err := resolveDSN()
	if err == nil {
		t.Fatal("resolveDSN() expected error with no connection configured")
	}
	if !pgherrors.IsKind(err, pgherrors.ConfigMissing) {
		t.Errorf("resolveDSN() error kind = %q, want %q", pgherrors.KindOf(err), pgherrors.ConfigMissing)
	}
}
