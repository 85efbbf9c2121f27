package session

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the session into a standard oauth2.TokenSource so stock
// HTTP stacks (oauth2.NewClient, SDKs taking a TokenSource) can authorize
// requests with the current access token. When the access token is absent the
// source drives a renewal before answering.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerTokenSource{ctx: ctx, manager: m}
}

type managerTokenSource struct {
	ctx     context.Context
	manager *Manager
}

func (ts *managerTokenSource) Token() (*oauth2.Token, error) {
	current := ts.manager.Snapshot()
	if current.AccessToken == "" {
		if err := ts.manager.Refresh(ts.ctx); err != nil {
			return nil, err
		}
		current = ts.manager.Snapshot()
	}
	return &oauth2.Token{
		AccessToken: current.AccessToken,
		TokenType:   "Bearer",
	}, nil
}
