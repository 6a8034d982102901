package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/duty-roster/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".duty-roster/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
)

// ScopeSheets covers reading the staff sheet and publishing the roster
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

func requiredScopes() []string {
	return []string{ScopeSheets}
}

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// Redirect to the local callback server
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// TokenStore persists one OAuth token per environment under Dir
type TokenStore struct {
	Dir string

	mu     sync.Mutex
	cached *oauth2.Token
}

// NewTokenStore returns a store rooted at ~/.duty-roster/tokens
func NewTokenStore() (*TokenStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &TokenStore{Dir: filepath.Join(homeDir, tokenDirName)}, nil
}

func (s *TokenStore) path(env string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("token-%s.json", env))
}

// Load returns nil without error when no token has been saved for env
func (s *TokenStore) Load(env string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path(env))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

func (s *TokenStore) Save(env string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.Dir, tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path(env), data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *TokenStore) Delete(env string) error {
	if err := os.Remove(s.path(env)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// Token returns a valid token for env, refreshing a saved one or running the browser flow if needed.
// Only one flow runs at a time.
func (s *TokenStore) Token(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.cached.Valid() {
		return s.cached, nil
	}

	saved, err := s.Load(env)
	if err != nil {
		logger.Warn("Failed to load saved token", zap.Error(err))
	}

	if token := s.reuse(ctx, oauthConfig, env, saved, logger); token != nil {
		s.cached = token
		return token, nil
	}

	logger.Info("No valid token found, starting OAuth flow")

	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := s.Save(env, token); err != nil {
		// The token still works for this session
		logger.Warn("Failed to save token", zap.Error(err))
	}

	s.cached = token
	return token, nil
}

// reuse returns the saved token, refreshed if expired, when it carries every required scope.
// A saved token with missing scopes is deleted.
func (s *TokenStore) reuse(ctx context.Context, oauthConfig *oauth2.Config, env string, saved *oauth2.Token, logger *zap.Logger) *oauth2.Token {
	if saved == nil {
		return nil
	}

	token := saved
	if !saved.Valid() {
		if saved.RefreshToken == "" {
			return nil
		}
		refreshed, err := oauthConfig.TokenSource(ctx, saved).Token()
		if err != nil || refreshed.AccessToken == saved.AccessToken {
			return nil
		}
		token = refreshed
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		logger.Warn("Saved token is missing required scopes, deleting it", zap.Error(err))
		if err := s.Delete(env); err != nil {
			logger.Warn("Failed to delete token", zap.Error(err))
		}
		return nil
	}

	if token != saved {
		logger.Debug("Token refreshed")
		if err := s.Save(env, token); err != nil {
			logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
	}

	return token
}

// ClearToken forgets the in-memory token so the next call reloads from disk
func (s *TokenStore) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

// validateTokenScopes checks the token's granted scopes through Google's tokeninfo endpoint
func validateTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	return missingScopes(strings.Fields(tokenInfo.Scope))
}

func missingScopes(granted []string) error {
	var missing []string
	for _, required := range requiredScopes() {
		if !slices.Contains(granted, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}
	return nil
}

// listenForAuthCallback serves the redirect URL locally until the authorization code arrives
func listenForAuthCallback(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Authorization successful!</h1><p>You can close this window and return to the roster.</p></body></html>`)

		codeChan <- code
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}

	return code, nil
}
