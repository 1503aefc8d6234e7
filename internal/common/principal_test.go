package common

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

func TestNewPrincipal_PluralScopeWins(t *testing.T) {
	legacyOrg := uuid.New()
	legacyWh := uuid.New()
	org1, org2 := uuid.New(), uuid.New()
	wh1 := uuid.New()

	p := NewPrincipal(&models.User{
		ID:              uuid.New(),
		Role:            models.RoleAuditor,
		OrganizationID:  &legacyOrg,
		WarehouseID:     &legacyWh,
		OrganizationIDs: []uuid.UUID{org1, org2},
		WarehouseIDs:    []uuid.UUID{wh1},
	})

	assert.Equal(t, []uuid.UUID{org1, org2}, p.OrganizationIDs)
	assert.Equal(t, []uuid.UUID{wh1}, p.WarehouseIDs)
	assert.False(t, p.HasOrganization(legacyOrg))
	assert.False(t, p.HasWarehouse(legacyWh))
}

func TestNewPrincipal_LegacySingularFallback(t *testing.T) {
	legacyOrg := uuid.New()
	legacyWh := uuid.New()

	p := NewPrincipal(&models.User{
		ID:             uuid.New(),
		Role:           models.RoleStoreManager,
		OrganizationID: &legacyOrg,
		WarehouseID:    &legacyWh,
	})

	assert.Equal(t, []uuid.UUID{legacyOrg}, p.OrganizationIDs)
	assert.Equal(t, []uuid.UUID{legacyWh}, p.WarehouseIDs)
	assert.True(t, p.HasOrganization(legacyOrg))
	assert.True(t, p.HasWarehouse(legacyWh))
}

func TestNewPrincipal_NoScope(t *testing.T) {
	p := NewPrincipal(&models.User{ID: uuid.New(), Role: models.RoleAdmin})

	assert.Empty(t, p.OrganizationIDs)
	assert.Empty(t, p.WarehouseIDs)
	assert.False(t, p.HasOrganization(uuid.New()))
}

func TestPrincipalContextRoundTrip(t *testing.T) {
	p := Principal{UserID: uuid.New(), Role: models.RoleLeadAuditor}
	ctx := WithPrincipal(context.Background(), p)

	got, ok := GetPrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = GetPrincipalFromContext(context.Background())
	assert.False(t, ok)
}
