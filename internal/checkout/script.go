package checkout

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clinic-payments/internal/domain"
)

// ScriptLoader fetches the gateway's checkout script exactly once per process.
// Subsequent Load calls return the cached outcome without touching the
// network, so a page session never injects the script twice. A failed load is
// not cached; the next attempt retries.
type ScriptLoader struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	loaded bool
}

func NewScriptLoader(scriptURL string) *ScriptLoader {
	return &ScriptLoader{
		url:    scriptURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Load returns true once the script is available. The boolean mirrors the
// widget runtime's "already loaded" check.
func (l *ScriptLoader) Load(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrScriptLoad, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrScriptLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: http %d from %s", domain.ErrScriptLoad, resp.StatusCode, l.url)
	}

	l.loaded = true
	return true, nil
}

// Loaded reports the cached flag without loading.
func (l *ScriptLoader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
