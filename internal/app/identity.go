package app

import (
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Identities owns the token <-> display name bijection.
type Identities struct {
	mu     sync.RWMutex
	names  map[string]domain.Token
	tokens map[domain.Token]string
}

func NewIdentities() *Identities {
	return &Identities{
		names:  make(map[string]domain.Token),
		tokens: make(map[domain.Token]string),
	}
}

// Register claims name and issues a fresh token for it.
func (r *Identities) Register(name string) (domain.Token, error) {
	id, err := domain.NewIdentity(name)
	if err != nil {
		return "", err
	}
	if name == domain.ServerName {
		return "", domain.ErrNameTaken
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.names[name]; taken {
		return "", domain.ErrNameTaken
	}
	r.names[name] = id.Token
	r.tokens[id.Token] = name
	log.Info().Str("module", "app.identity").Str("name", name).Msg("registered name")
	return id.Token, nil
}

func (r *Identities) LookupName(token domain.Token) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.tokens[token]
	return name, ok
}

// Verify checks that token is live and bound to name.
func (r *Identities) Verify(token domain.Token, name string) (*domain.Session, error) {
	if token == "" || name == "" {
		return nil, domain.ErrVerifyFailed
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.tokens[token] != name {
		return nil, domain.ErrVerifyFailed
	}
	return &domain.Session{Token: token, Name: name}, nil
}

// Remove frees the token and its name. Unknown tokens are ignored.
func (r *Identities) Remove(token domain.Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.tokens[token]
	if !ok {
		return
	}
	delete(r.tokens, token)
	delete(r.names, name)
	log.Info().Str("module", "app.identity").Str("name", name).Msg("released name")
}

func (r *Identities) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
