package suite

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const passDefaultLen = 10

// RootLogin logins root user and returns the access token.
func RootLogin(address string, timeout time.Duration, rootPass string) (string, error) {
	c := http.Client{Timeout: timeout}

	bodyReq, err := json.Marshal(map[string]string{
		"username": "root",
		"password": rootPass,
	})
	if err != nil {
		return "", err
	}

	url := "http://" + address + "/login"

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(bodyReq))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}

	defer resp.Body.Close()
	bodyResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var form struct {
		Token string `json:"access_token"`
	}

	if err = json.Unmarshal(bodyResp, &form); err != nil {
		return "", err
	}

	return form.Token, nil
}

func RandomFakePassword() string {
	return gofakeit.Password(true, true, true, true, false, passDefaultLen)
}

func RandomFakeUsername() string {
	return gofakeit.Username() + gofakeit.DigitN(4)
}
