package tests

import (
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/eac-lab/film-archive/internal/config"
)

// Actual environment
var (
	cfg      *config.Config
	rootPass string
	secret   string
)

// Functional tests run against a live server; without CONFIG_PATH
// there is nothing to talk to and the whole package is skipped.
func TestMain(m *testing.M) {
	godotenv.Load("../.env")

	if os.Getenv("CONFIG_PATH") == "" {
		return
	}

	cfg = config.MustLoadPath(os.Getenv("CONFIG_PATH"))
	rootPass = os.Getenv("ROOT_PASS")
	secret = os.Getenv("SECRET")

	os.Exit(m.Run())
}
