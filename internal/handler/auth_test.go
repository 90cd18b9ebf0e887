package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/config"
)

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Validation failures must be caught before any repository call; the
// handlers below run with nil repositories to prove it.
func TestRegisterPasswordMismatch(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	c, rec := postJSON(t, "/v1/auth/register",
		`{"name":"Alice","handle":"alice","password":"one","password_confirm":"two"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "passwords do not match")
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	cases := []string{
		`{}`,
		`{"name":"Alice"}`,
		`{"name":"Alice","handle":"alice"}`,
		`{"handle":"alice","password":"pw","password_confirm":"pw"}`,
		`{"name":"  ","handle":"alice","password":"pw","password_confirm":"pw"}`,
	}
	for _, body := range cases {
		c, rec := postJSON(t, "/v1/auth/register", body)
		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	c, rec := postJSON(t, "/v1/auth/login", `{"handle":"alice"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRequiresToken(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	c, rec := postJSON(t, "/v1/auth/refresh", `{"refresh_token":"  "}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCustomerID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := getCustomerID(c)
	assert.ErrorIs(t, err, errNoIdentity)

	// JWT claims decode numbers as float64.
	c.Set("customer_id", float64(7))
	id, err := getCustomerID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	c.Set("customer_id", "12")
	id, err = getCustomerID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	c.Set("customer_id", float64(0))
	_, err = getCustomerID(c)
	assert.ErrorIs(t, err, errNoIdentity)
}
