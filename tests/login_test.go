package tests

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavv/httpexpect/v2"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/tests/suite"
)

// Correctness of login root
// checks http responce and JWT
func TestLoginRoot(t *testing.T) {
	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	timestamp := time.Now()

	resp := e.POST("/login").
		WithJSON(models.Credentials{
			Username: "root",
			Password: rootPass,
		}).
		Expect().
		Status(200)

	json := resp.JSON()

	// response must be {"access_token" : "string"}
	json.Object().Keys().ContainsOnly("access_token")

	// extract token value as string
	tokenString := json.Path("$.access_token").String().Raw()

	claims := jwt.MapClaims{}

	// parse token
	token, err := jwt.NewParser().ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	// validate token
	require.Truef(t, token.Valid, "Invalid token")
	require.NoError(t, err, "Unrecognized error during token parsing %w", err)

	// token must be {"uid": "int64", login: "string", role: "string", exp: "int64"}
	expectedKeys := []string{"uid", "login", "role", "exp"}
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	assert.ElementsMatchf(t, expectedKeys, keys, "JWT claims don't match")

	// validate token values
	// (give some gap for TTL due to uncertainty)
	const deltaSeconds = 1
	assert.Equal(t, models.RootLogin, claims["login"].(string))
	assert.Equal(t, models.RootID, int64(claims["uid"].(float64)))
	assert.Equal(t, models.RoleEditor, claims["role"].(string))
	assert.InDelta(t, timestamp.Add(cfg.TokenTTL).Unix(), claims["exp"].(float64), deltaSeconds)
}

func TestFailLoginRoot(t *testing.T) {
	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	resp := e.POST("/login").
		WithJSON(models.Credentials{
			Username: "root",
			Password: suite.RandomFakePassword(),
		}).
		Expect().
		Status(401)

	json := resp.JSON()

	// check returned error
	json.Object().Keys().ContainsOnly("error")
	json.Path("$.error").String().IsEqualFold("invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	e.POST("/login").
		WithJSON(models.Credentials{Password: rootPass}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").String().IsEqualFold("username required")

	e.POST("/login").
		WithJSON(models.Credentials{Username: "root"}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").String().IsEqualFold("password required")
}
