package keys

import (
	"os"
	"sync"
)

// Well-known key names read from the environment.
const (
	DeepSeekKeyName = "DEEPSEEK_API_KEY"
	NewsAPIKeyName  = "NEWS_API_KEY"
	FinnhubKeyName  = "FINNHUB_API_KEY"
)

// Key is a named secret sourced from the environment. Value is empty when
// the variable is unset.
type Key struct {
	Name        string
	Description string
	Value       string
}

func (k *Key) Exists() bool {
	return k.Value != ""
}

// Redacted returns a display string showing only the first and last four
// characters. Values under eight characters produce overlapping slices; the
// display quirk is accepted.
func (k *Key) Redacted() string {
	if k.Value == "" {
		return "Not set"
	}
	head := k.Value[:min(4, len(k.Value))]
	tail := k.Value[max(0, len(k.Value)-4):]
	return head + "..." + tail
}

// Registry holds at most one Key per name for the lifetime of the process.
// It is constructed once in main and passed to the components that need it.
type Registry struct {
	mu    sync.Mutex
	keys  map[string]*Key
	order []string
}

func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]*Key)}
}

// GetOrCreate returns the existing Key for name, or reads the environment
// once and registers a new one. Repeated calls never re-read the environment
// and never error on duplicates.
func (r *Registry) GetOrCreate(name, description string) *Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k, ok := r.keys[name]; ok {
		return k
	}
	k := &Key{
		Name:        name,
		Description: description,
		Value:       os.Getenv(name),
	}
	r.keys[name] = k
	r.order = append(r.order, name)
	return k
}

// Keys returns all registered keys in registration order.
func (r *Registry) Keys() []*Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Key, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.keys[name])
	}
	return out
}
