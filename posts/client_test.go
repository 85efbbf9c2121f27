package posts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-auth-client/posts"
)

func TestNewClient_RequiredParameters(t *testing.T) {
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "at"})

	_, err := posts.NewClient("", tokens)
	require.Error(t, err)

	_, err = posts.NewClient("http://localhost", nil)
	require.Error(t, err)
}

func TestClient_List(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, posts.RoutePosts, r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"p1","title":"First","content":"hello","published":true,"authorId":"u1"},
			{"id":"p2","title":"Second","content":"world","published":false,"authorId":"u1"}
		]`))
	}))
	defer server.Close()

	client, err := posts.NewClient(server.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "at-1"}))
	require.NoError(t, err)

	fetched, err := client.List(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Bearer at-1", gotAuth)
	require.Len(t, fetched, 2)
	require.Equal(t, "First", fetched[0].Title)
	require.False(t, fetched[1].Published)
}

func TestClient_ListUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Missing token"}`))
	}))
	defer server.Close()

	client, err := posts.NewClient(server.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "expired"}))
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}
