package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"galaxypoker-server/internal/config"
	"galaxypoker-server/internal/jwt"

	"github.com/stretchr/testify/assert"
)

func setupJWT() {
	os.Setenv("GP_JWT_PUBLIC_KEY", "testdata/public.pem")
	os.Setenv("GP_JWT_PRIVATE_KEY", "testdata/private.key")
	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	resp := assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp := assertDo(t, req, respObj, statusCode, signedJWT...)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func TestParsePaginationOptions(t *testing.T) {
	a := assert.New(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	start, rows, err := parsePaginationOptions(req)
	a.NoError(err)
	a.Equal(int64(0), start)
	a.Equal(defaultRows, rows)

	req = httptest.NewRequest(http.MethodGet, "/test?start=10&rows=5", nil)
	start, rows, err = parsePaginationOptions(req)
	a.NoError(err)
	a.Equal(int64(10), start)
	a.Equal(5, rows)

	req = httptest.NewRequest(http.MethodGet, "/test?start=-1", nil)
	_, _, err = parsePaginationOptions(req)
	a.EqualError(err, "start cannot be less than zero")

	req = httptest.NewRequest(http.MethodGet, "/test?rows=0", nil)
	_, _, err = parsePaginationOptions(req)
	a.EqualError(err, "rows must be greater than zero")

	req = httptest.NewRequest(http.MethodGet, "/test?rows=101", nil)
	_, _, err = parsePaginationOptions(req)
	a.EqualError(err, "rows cannot be greater than 100")
}
