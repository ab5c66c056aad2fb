package services_test

import (
	"testing"

	"supplyflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy(t *testing.T) {
	policy := services.NewAccessPolicy()

	t.Run("dispute resolution is admin only", func(t *testing.T) {
		assert.True(t, policy.CanPerform(services.OpResolveDispute, services.RoleAdmin))

		for _, role := range []services.Role{
			services.RoleContractor, services.RoleSupplier, services.RoleDriver,
		} {
			assert.False(t, policy.CanPerform(services.OpResolveDispute, role), role.String())
		}
	})

	t.Run("delivery completion belongs to drivers", func(t *testing.T) {
		assert.True(t, policy.CanPerform(services.OpCompleteDelivery, services.RoleDriver))
		assert.False(t, policy.CanPerform(services.OpCompleteDelivery, services.RoleContractor))
	})

	t.Run("either party may open a dispute, admins may not", func(t *testing.T) {
		assert.True(t, policy.CanPerform(services.OpOpenDispute, services.RoleContractor))
		assert.True(t, policy.CanPerform(services.OpOpenDispute, services.RoleSupplier))
		assert.False(t, policy.CanPerform(services.OpOpenDispute, services.RoleAdmin))
	})

	t.Run("reviews and reorders are contractor operations", func(t *testing.T) {
		assert.True(t, policy.CanPerform(services.OpSubmitReview, services.RoleContractor))
		assert.False(t, policy.CanPerform(services.OpSubmitReview, services.RoleSupplier))
		assert.True(t, policy.CanPerform(services.OpReorderItems, services.RoleContractor))
	})

	t.Run("unknown operation denies everyone", func(t *testing.T) {
		assert.False(t, policy.CanPerform(services.Operation("nope"), services.RoleAdmin))
	})

	t.Run("authorize wraps the sentinel", func(t *testing.T) {
		require.NoError(t, policy.Authorize(services.OpCreateOrder, services.RoleContractor))

		err := policy.Authorize(services.OpResolveDispute, services.RoleDriver)
		require.ErrorIs(t, err, services.ErrAccessDenied)
	})
}

func TestRole_Validate(t *testing.T) {
	for _, r := range []services.Role{
		services.RoleContractor, services.RoleSupplier, services.RoleDriver, services.RoleAdmin,
	} {
		require.NoError(t, r.Validate(), r.String())
	}

	require.Error(t, services.RoleUnknown.Validate())
	require.Error(t, services.Role(17).Validate())
}
