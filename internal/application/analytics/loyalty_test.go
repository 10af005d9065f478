package analytics

import (
	"testing"

	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoyaltyTier(t *testing.T) {
	tests := []struct {
		totalSpent string
		want       enum.LoyaltyTier
	}{
		{"0", enum.LoyaltyTierNew},
		{"0.01", enum.LoyaltyTierRegular},
		{"199.99", enum.LoyaltyTierRegular},
		{"200", enum.LoyaltyTierSilver},
		{"200.00", enum.LoyaltyTierSilver},
		{"499.99", enum.LoyaltyTierSilver},
		{"500", enum.LoyaltyTierGold},
		{"12000", enum.LoyaltyTierGold},
	}
	for _, tt := range tests {
		t.Run(tt.totalSpent, func(t *testing.T) {
			assert.Equal(t, tt.want, LoyaltyTier(dec(tt.totalSpent)))
		})
	}

	t.Run("UnsetIsNew", func(t *testing.T) {
		assert.Equal(t, enum.LoyaltyTierNew, LoyaltyTier(decimal.Decimal{}))
	})
}

func TestWithTiers(t *testing.T) {
	assert.Empty(t, WithTiers(nil))

	rows := WithTiers(customersWithSpend("0", "150", "250", "800"))
	want := []enum.LoyaltyTier{enum.LoyaltyTierNew, enum.LoyaltyTierRegular, enum.LoyaltyTierSilver, enum.LoyaltyTierGold}
	for i, row := range rows {
		assert.Equal(t, want[i], row.LoyaltyTier)
	}
	assert.Equal(t, "Silver", rows[2].LoyaltyTier.String())
}
