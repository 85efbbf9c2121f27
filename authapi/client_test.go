package authapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/authapi"
)

func newClient(t *testing.T, handler http.Handler, options ...authapi.ClientOption) *authapi.Client {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	client, err := authapi.New(backend.URL, options...)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := authapi.New("  ")
	require.Error(t, err)
}

func TestLogin_DecodesSuccessResponse(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, authapi.RouteLogin, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req authapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.com", req.Email)

		fmt.Fprint(w, `{"accessToken":"AT1","refreshToken":"RT1","user":{"id":"1","email":"a@b.com","firstname":"A","lastname":"B","role":"user"}}`)
	}))

	resp, err := client.Login(context.Background(), authapi.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "AT1", resp.AccessToken)
	require.Equal(t, "RT1", resp.RefreshToken)
	require.NotNil(t, resp.User)
	require.Equal(t, "a@b.com", resp.User.Email)
}

func TestLogin_BodyLevelRejection(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Unauthorized","message":"Invalid email or password"}`)
	}))

	_, err := client.Login(context.Background(), authapi.LoginRequest{Email: "a@b.com", Password: "bad"})
	require.Error(t, err)

	var rejection *authapi.RejectionError
	require.True(t, errors.As(err, &rejection))
	require.Equal(t, "Invalid email or password", rejection.Message)
}

func TestLogin_RejectionFallsBackToErrorField(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"Unauthorized"}`)
	}))

	_, err := client.Login(context.Background(), authapi.LoginRequest{Email: "a@b.com", Password: "bad"})
	var rejection *authapi.RejectionError
	require.True(t, errors.As(err, &rejection))
	require.Equal(t, "Unauthorized", rejection.Message)
}

func TestRegister_Rejection(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, authapi.RouteSignup, r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":"Conflict","message":"Email is already registered"}`)
	}))

	_, err := client.Register(context.Background(), authapi.RegisterRequest{
		Email: "a@b.com", Password: "x", FirstName: "A", LastName: "B",
	})
	var rejection *authapi.RejectionError
	require.True(t, errors.As(err, &rejection))
	require.Equal(t, "Email is already registered", rejection.Message)
}

func TestRefresh_SendsBearerAndTokenBody(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, authapi.RouteRefresh, r.URL.Path)
		require.Equal(t, "Bearer AT1", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "RT1", body["token"])

		fmt.Fprint(w, `{"access_token":"AT2"}`)
	}))

	resp, err := client.Refresh(context.Background(), "AT1", "RT1")
	require.NoError(t, err)
	require.Equal(t, "AT2", resp.AccessToken)
}

func TestRefresh_OmitsAuthorizationWithoutAccessToken(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"access_token":"AT2"}`)
	}))

	_, err := client.Refresh(context.Background(), "", "RT1")
	require.NoError(t, err)
}

func TestRefresh_MessageSignalsRejection(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"Refresh token expired"}`)
	}))

	_, err := client.Refresh(context.Background(), "AT1", "RT1")
	var rejection *authapi.RejectionError
	require.True(t, errors.As(err, &rejection))
	require.Equal(t, "Refresh token expired", rejection.Message)
}

func TestClient_Timeout(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}), authapi.WithTimeout(50*time.Millisecond))

	_, err := client.Login(context.Background(), authapi.LoginRequest{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, authapi.RequestTimedOutErr)
}
