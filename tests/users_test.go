package tests

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/require"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/tests/suite"
)

func TestCreateUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: suite.RandomFakeUsername(),
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200).
		JSON().
		Object().
		Keys().
		ContainsOnly("id")
}

func TestGetUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	username := suite.RandomFakeUsername()

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	id := e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: username,
			Password: suite.RandomFakePassword(),
			Role:     models.RoleEditor,
		}).Expect().
		Status(200).
		JSON().
		Path("$.id").
		Number().
		Raw()

	json := e.GET("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(200).
		JSON()

	json.Object().Keys().ContainsOnly("user")
	json.Path("$.user.username").String().IsEqual(username)
	json.Path("$.user.role").String().IsEqual(models.RoleEditor)
}

func TestCreateUserDefaultRole(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	id := e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: suite.RandomFakeUsername(),
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200).
		JSON().
		Path("$.id").
		Number().
		Raw()

	e.GET("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(200).
		JSON().
		Path("$.user.role").String().IsEqual(models.RoleReader)
}

func TestCreateDuplicateUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	username := suite.RandomFakeUsername()

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: username,
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200)

	e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: username,
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(400).
		JSON().
		Path("$.error").String().IsEqualFold("user exists")
}

func TestUpdateUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	id := e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: suite.RandomFakeUsername(),
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200).
		JSON().
		Path("$.id").
		Number().
		Raw()

	newUsername := suite.RandomFakeUsername()

	e.PUT("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: newUsername,
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200)

	e.GET("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(200).
		JSON().
		Path("$.user.username").String().IsEqual(newUsername)
}

func TestDeleteUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	id := e.POST("/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(models.EditorIn{
			Username: suite.RandomFakeUsername(),
			Password: suite.RandomFakePassword(),
		}).Expect().
		Status(200).
		JSON().
		Path("$.id").
		Number().
		Raw()

	e.DELETE("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(200)

	e.GET("/users/{id}", id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(404).
		JSON().
		Path("$.error").String().IsEqualFold("user not found")
}

func TestGetNotExistingUser(t *testing.T) {
	token, err := suite.RootLogin(cfg.Address, cfg.Timeout, rootPass)
	require.NoError(t, err)

	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	uGet := "/users/" + strconv.Itoa(int(gofakeit.Uint32()))
	e.GET(uGet).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(404).
		JSON().
		Path("$.error").String().IsEqualFold("user not found")
}

func TestUsersDeniedWithoutToken(t *testing.T) {
	u := url.URL{
		Scheme: "http",
		Host:   cfg.Address,
	}
	e := httpexpect.Default(t, u.String())

	e.GET("/users").
		Expect().
		Status(401)
}
