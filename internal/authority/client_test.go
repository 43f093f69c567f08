package authority

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

func TestClientGrantReward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/rewards/grant", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var grant domain.RewardGrant
		require.NoError(t, json.NewDecoder(r.Body).Decode(&grant))
		assert.Equal(t, domain.ActionDaily, grant.ActionType)

		json.NewEncoder(w).Encode(domain.RewardResult{XPGained: 26, GoldGained: 6})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-1", time.Second)
	result, err := client.GrantReward(context.Background(), domain.RewardGrant{
		ActionType: domain.ActionDaily,
		Streak:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, 26, result.XPGained)
	assert.Equal(t, 6, result.GoldGained)
}

func TestClientMapsStatusCodesToSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrSessionInvalid},
		{"forbidden", http.StatusForbidden, domain.ErrNotOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "denied"})
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "bad-token", time.Second)
			_, err := client.GrantReward(context.Background(), domain.RewardGrant{ActionType: domain.ActionTask})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientTimeoutIsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-1", 20*time.Millisecond)
	_, err := client.GrantReward(context.Background(), domain.RewardGrant{ActionType: domain.ActionTask})
	assert.ErrorIs(t, err, domain.ErrAuthorityTimeout)
}
