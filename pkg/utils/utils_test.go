package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "master-insurance-application", Slugify("  Master Insurance Application! "))
	assert.Equal(t, "", Slugify("---"))
}

func TestFieldKey(t *testing.T) {
	tests := map[string]string{
		"Years at Address":    "years_at_address",
		"Driver #1 Last Name": "driver_1_last_name",
		"3rd Party Carrier":   "f_3rd_party_carrier",
		"!!!":                 "",
	}
	for label, want := range tests {
		assert.Equal(t, want, FieldKey(label), label)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateToken("agent-1", "agent@example.com", []string{"staff"}, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.UserID)
	assert.Equal(t, "agent@example.com", claims.Email)

	SetSecret("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestActorID(t *testing.T) {
	assert.Equal(t, "system", ActorID(context.Background()))

	ctx := WithClaims(context.Background(), &UserClaims{UserID: "agent-7"})
	assert.Equal(t, "agent-7", ActorID(ctx))
}
