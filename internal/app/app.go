// Package app wires the client core together: configuration, the remote
// service, and the session, cache, editor, and preference stores that
// commands operate on.
package app

import (
	"sync"

	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/editor"
	"taskflow/internal/prefs"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// ServiceFactory creates the remote service from config and a token
// provider. Used to inject the backend during dispatch, or a fake in tests.
type ServiceFactory func(cfg *config.Config, tokens service.TokenProvider) (service.Service, error)

// App bundles the core stores handed to every command.
type App struct {
	Cfg     *config.Config
	Service service.Service
	Session *session.Store
	Tasks   *cache.Cache
	Editor  *editor.Coordinator
	Prefs   *prefs.Store
}

// New builds the store graph. The session store and the backend reference
// each other (the store logs in through the service, the service draws
// tokens from the store); a late-bound holder breaks the construction
// cycle. The cache and editor register as session reset hooks so logout
// and invalidation cascade: no task or draft state outlives the session
// that produced it.
func New(cfg *config.Config, factory ServiceFactory) (*App, error) {
	holder := &tokenHolder{}
	svc, err := factory(cfg, holder)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(cfg, svc)
	holder.bind(sess)

	tasks := cache.New(sess, svc)
	ed := editor.New(tasks)
	sess.OnReset(tasks.Clear)
	sess.OnReset(ed.Cancel)

	return &App{
		Cfg:     cfg,
		Service: svc,
		Session: sess,
		Tasks:   tasks,
		Editor:  ed,
		Prefs:   prefs.NewStore(cfg),
	}, nil
}

// tokenHolder defers token lookups to the session store once it exists.
type tokenHolder struct {
	mu   sync.Mutex
	sess *session.Store
}

func (h *tokenHolder) bind(s *session.Store) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess = s
}

func (h *tokenHolder) Token() (string, bool) {
	h.mu.Lock()
	s := h.sess
	h.mu.Unlock()
	if s == nil {
		return "", false
	}
	return s.Token()
}
