// Package merchant is the edit surface: the merchant-mode gate and the catalog
// operations it unlocks.
package merchant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

var (
	ErrNotMerchant    = errors.New("merchant mode required")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrDeclined       = errors.New("delete declined")
)

// DeletePrompt is shown before a product is removed.
const DeletePrompt = "Hapus produk ini secara permanen dari Cloud?"

// Credentials is the static merchant login. It gates the UI only.
type Credentials struct {
	Username string
	Password string
}

// Check compares trimmed input against the configured pair.
func (c Credentials) Check(username, password string) bool {
	return strings.TrimSpace(username) == c.Username && strings.TrimSpace(password) == c.Password
}

// Mutator applies catalog changes and schedules their persistence.
// *cloudsync.Engine satisfies it.
type Mutator interface {
	Mutate(fn func(catalog.Catalog) (catalog.Catalog, error)) error
	Flush(ctx context.Context) error
}

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// Answer returns a Confirmer that always gives the same answer.
func Answer(yes bool) Confirmer {
	return func(string) bool { return yes }
}

// Session tracks merchant mode and routes edits to the Mutator.
type Session struct {
	creds   Credentials
	catalog Mutator
	logger  *zap.Logger

	mu     sync.Mutex
	active bool
}

// NewSession returns a session in shopper mode.
func NewSession(creds Credentials, m Mutator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{creds: creds, catalog: m, logger: logger.With(zap.String("component", "merchant"))}
}

// Active reports whether merchant mode is on.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Login enters merchant mode when the credentials match.
func (s *Session) Login(username, password string) error {
	if !s.creds.Check(username, password) {
		s.logger.Info("merchant login rejected")
		return ErrBadCredentials
	}
	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
	s.logger.Info("merchant mode on")
	return nil
}

// Logout leaves merchant mode and writes any pending edits. Merchant mode is left even
// when the write fails; the error is returned for display.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()
	if !wasActive {
		return nil
	}

	s.logger.Info("merchant mode off")
	if err := s.catalog.Flush(ctx); err != nil {
		return fmt.Errorf("save on close: %w", err)
	}
	return nil
}

// Update merges patch into the product with the given id.
func (s *Session) Update(id string, patch catalog.Patch) error {
	if !s.Active() {
		return ErrNotMerchant
	}
	if patch.Empty() {
		return nil
	}
	return s.catalog.Mutate(func(c catalog.Catalog) (catalog.Catalog, error) {
		return catalog.Update(c, id, patch)
	})
}

// Create prepends a placeholder product and returns it.
func (s *Session) Create() (catalog.Product, error) {
	if !s.Active() {
		return catalog.Product{}, ErrNotMerchant
	}
	product := catalog.Placeholder(catalog.NewID())
	err := s.catalog.Mutate(func(c catalog.Catalog) (catalog.Catalog, error) {
		return catalog.Prepend(c, product), nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	s.logger.Info("product created", zap.String("id", product.ID))
	return product, nil
}

// Delete removes a product after confirm agrees. A declined prompt returns ErrDeclined
// and changes nothing.
func (s *Session) Delete(id string, confirm Confirmer) error {
	if !s.Active() {
		return ErrNotMerchant
	}
	if confirm == nil || !confirm(DeletePrompt) {
		return ErrDeclined
	}
	if err := s.catalog.Mutate(func(c catalog.Catalog) (catalog.Catalog, error) {
		return catalog.Remove(c, id)
	}); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("id", id))
	return nil
}
