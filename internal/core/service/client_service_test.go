package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

func TestClientService_Create(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	client, err := svc.Create(context.Background(), ports.CreateClientInput{
		Name:      "Mercado Bom Preço LTDA",
		TradeName: "Bom Preço",
		CNPJ:      "04252011000110",
		Email:     "contato@bompreco.com.br",
		Regime:    "simples",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !client.Active {
		t.Fatalf("new clients start active")
	}
	if client.Regime != domain.RegimeSimples {
		t.Fatalf("unexpected regime: %s", client.Regime)
	}
}

func TestClientService_Create_DuplicateCNPJ(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	input := ports.CreateClientInput{Name: "Empresa A", CNPJ: "04252011000110", Regime: "real"}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input.Name = "Empresa B"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestClientService_Update_Partial(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	client := seedClient(t, repo)

	phone := "+55 11 91234-5678"
	updated, err := svc.Update(context.Background(), client.ID, ports.UpdateClientInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("phone not updated")
	}
	if updated.Name != client.Name {
		t.Fatalf("untouched fields must survive a partial update")
	}
}

func TestClientService_List_ClampsLimit(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListClientsFilter{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page must default to 1, got %d", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("limit must be capped at %d, got %d", maxPageLimit, result.Limit)
	}
}
