package token_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/stretchr/testify/require"
)

func TestLoadKeyPairFromPEM(t *testing.T) {
	t.Run("ecdsa round trip", func(t *testing.T) {
		kp, err := token.GenerateECDSAKeyPair("k1")
		require.NoError(t, err)
		pemData, err := kp.ExportPrivateKeyPEM()
		require.NoError(t, err)

		loaded, err := token.LoadKeyPairFromPEM("k1", pemData)
		require.NoError(t, err)
		require.Equal(t, token.ES256, loaded.Algorithm)
		require.Equal(t, jwt.SigningMethodES256, loaded.GetSigningMethod())
	})

	t.Run("rsa round trip", func(t *testing.T) {
		kp, err := token.GenerateRSAKeyPair("k2", 1024)
		require.NoError(t, err)
		pemData, err := kp.ExportPrivateKeyPEM()
		require.NoError(t, err)

		loaded, err := token.LoadKeyPairFromPEM("k2", pemData)
		require.NoError(t, err)
		require.Equal(t, token.RS256, loaded.Algorithm)
		require.Equal(t, jwt.SigningMethodRS256, loaded.GetSigningMethod())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := token.LoadKeyPairFromPEM("k3", "not a pem")
		require.Error(t, err)
	})
}

func TestKeyPairFromConfig_Ephemeral(t *testing.T) {
	kp, err := token.KeyPairFromConfig("")
	require.NoError(t, err)
	require.Equal(t, token.ES256, kp.Algorithm)
	require.NotEmpty(t, kp.KeyID)
}
