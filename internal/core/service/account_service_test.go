package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

func TestAccountService_Create_HashesPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, zerolog.Nop())

	account, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Email:    "Nova@Gestao.com",
		Name:     "Nova Contadora",
		Password: "s3nh4-inicial",
		Role:     domain.RoleContador,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if account.PasswordHash != "" {
		t.Fatalf("hash must not be returned")
	}
	if account.Email != "nova@gestao.com" {
		t.Fatalf("email must be normalized, got %s", account.Email)
	}

	stored := repo.accounts[account.ID]
	if stored.PasswordHash == "s3nh4-inicial" {
		t.Fatalf("password stored in plain form")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3nh4-inicial")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !stored.Active {
		t.Fatalf("new accounts start active")
	}
}

func TestAccountService_Create_RejectsUnknownRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Email:    "x@gestao.com",
		Name:     "X",
		Password: "pw",
		Role:     domain.Role("GERENTE"),
	})
	if err == nil {
		t.Fatalf("expected error for role outside the closed set")
	}
}

func TestAccountService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	seedAccount(t, repo, "dup@gestao.com", "pw", domain.RoleAssistente, true)
	svc := NewAccountService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Email:    "dup@gestao.com",
		Name:     "Dup",
		Password: "pw",
		Role:     domain.RoleAssistente,
	})
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAccountService_Update_RoleChange(t *testing.T) {
	repo := newStubAccountRepo()
	admin := seedAccount(t, repo, "admin@gestao.com", "pw", domain.RoleAdmin, true)
	target := seedAccount(t, repo, "assist@gestao.com", "pw", domain.RoleAssistente, true)
	svc := NewAccountService(repo, zerolog.Nop())

	role := domain.RoleContador
	updated, err := svc.Update(context.Background(), admin.ID, target.ID, ports.UpdateAccountInput{Role: &role})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleContador {
		t.Fatalf("expected CONTADOR, got %s", updated.Role)
	}
}

func TestAccountService_Update_SelfDeactivateForbidden(t *testing.T) {
	repo := newStubAccountRepo()
	admin := seedAccount(t, repo, "admin@gestao.com", "pw", domain.RoleAdmin, true)
	svc := NewAccountService(repo, zerolog.Nop())

	inactive := false
	_, err := svc.Update(context.Background(), admin.ID, admin.ID, ports.UpdateAccountInput{Active: &inactive})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if !repo.accounts[admin.ID].Active {
		t.Fatalf("account must remain active")
	}
}

func TestAccountService_Delete_SelfForbidden(t *testing.T) {
	repo := newStubAccountRepo()
	admin := seedAccount(t, repo, "admin@gestao.com", "pw", domain.RoleAdmin, true)
	svc := NewAccountService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
