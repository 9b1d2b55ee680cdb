package client

import (
	"context"
	"fmt"

	"draftbook-backend/pkg/idtoken"
)

// DefaultGreeting is the summary a fresh profile starts with.
func DefaultGreeting(name string) string {
	return fmt.Sprintf("My name is %s and I signed up using Google.", name)
}

// SignInResult reports both halves of the sign-in: the verified identity
// and the outcome of the best-effort profile creation. CreateErr is
// returned rather than swallowed; the caller decides whether to ignore
// it and navigate on, which is what the UI does.
type SignInResult struct {
	Identity  *idtoken.Identity
	CreateErr error
}

// ProfileSyncer orchestrates sign-in-and-sync: verify the assertion,
// create the profile from the verified identity, and keep the session's
// cached summary consistent with the store.
type ProfileSyncer struct {
	verifier idtoken.Verifier
	api      *API
	session  *Session
}

func NewProfileSyncer(verifier idtoken.Verifier, api *API, session *Session) *ProfileSyncer {
	return &ProfileSyncer{
		verifier: verifier,
		api:      api,
		session:  session,
	}
}

func (p *ProfileSyncer) Session() *Session {
	return p.session
}

// SignIn runs steps 1-3 of the flow. A malformed assertion aborts the
// whole sign-in before any state changes: partial identity data must
// never reach the creation endpoint. The creation call itself is
// best-effort; its failure is reported in the result, and the session
// is signed in either way.
func (p *ProfileSyncer) SignIn(ctx context.Context, assertion string) (*SignInResult, error) {
	identity, err := p.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, err
	}

	p.session.SetEmail(identity.Email)

	createErr := p.api.CreateAuthor(ctx, assertion,
		identity.Name, identity.Email, DefaultGreeting(identity.Name))

	return &SignInResult{
		Identity:  identity,
		CreateErr: createErr,
	}, nil
}

// LoadSummary is the cache-or-fetch policy: a locally cached summary is
// used as-is without a round trip; only when the cache is empty does the
// client ask the server.
func (p *ProfileSyncer) LoadSummary(ctx context.Context) (string, error) {
	if summary, ok := p.session.Cache().Get(); ok {
		return summary, nil
	}

	email := p.session.Email()
	if email == "" {
		return "", fmt.Errorf("no signed-in email in session")
	}

	summary, err := p.api.FetchSummary(ctx, email)
	if err != nil {
		return "", err
	}

	p.session.Cache().Set(summary)
	return summary, nil
}

// SubmitSummary sends an update and overwrites the local cache only on
// success, so a failed update never poisons the cached view.
func (p *ProfileSyncer) SubmitSummary(ctx context.Context, summary string) error {
	email := p.session.Email()
	if email == "" {
		return fmt.Errorf("no signed-in email in session")
	}

	stored, err := p.api.UpdateSummary(ctx, email, summary)
	if err != nil {
		return err
	}

	p.session.Cache().Set(stored)
	return nil
}
