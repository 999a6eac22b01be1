package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gatherly/server/internal/auth"
	"github.com/stretchr/testify/require"
)

func runGenTokenForTest(t *testing.T, userID, username string, refresh bool) string {
	t.Helper()

	origUserID := genTokenUserID
	origUsername := genTokenUsername
	origRefresh := genTokenRefresh
	defer func() {
		genTokenUserID = origUserID
		genTokenUsername = origUsername
		genTokenRefresh = origRefresh
	}()

	genTokenUserID = userID
	genTokenUsername = username
	genTokenRefresh = refresh

	buf := new(bytes.Buffer)
	genTokenCmd.SetOut(buf)
	genTokenCmd.SetErr(buf)
	require.NoError(t, runGenToken(genTokenCmd))
	return buf.String()
}

func TestGenTokenIssuesAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	output := runGenTokenForTest(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", false)
	token := strings.TrimSpace(strings.SplitN(output, "\n", 2)[0])
	require.NotEmpty(t, token)

	manager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour, "gatherly")
	claims, err := manager.ValidateAccess(token)
	require.NoError(t, err)
	require.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Contains(t, output, "Authorization: Bearer")
}

func TestGenTokenIssuesRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	output := runGenTokenForTest(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", true)
	token := strings.TrimSpace(output)

	manager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour, "gatherly")
	_, err := manager.ValidateAccess(token)
	require.Error(t, err)
	claims, err := manager.ValidateRefresh(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
}

func TestGenTokenRejectsBadUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	origUserID := genTokenUserID
	defer func() { genTokenUserID = origUserID }()
	genTokenUserID = "not-a-uuid"

	err := runGenToken(genTokenCmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "UUID")
}

func TestGenTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	origUserID := genTokenUserID
	defer func() { genTokenUserID = origUserID }()
	genTokenUserID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	err := runGenToken(genTokenCmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}
