package highlight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Service highlights source snippets for terminal display. Callers must
// Release the service when done; the shared backing state tears down once
// every holder has released.
type Service interface {
	Highlight(source, language string) (string, error)
	Release()
}

var (
	mu    sync.Mutex
	refs  int
	state *highlighter
)

// Acquire returns the shared highlighter, starting it on first use.
func Acquire() Service {
	mu.Lock()
	defer mu.Unlock()
	refs++
	if state == nil {
		state = &highlighter{
			formatter: formatters.Get("terminal256"),
			style:     styles.Get("monokai"),
			lexers:    make(map[string]chroma.Lexer),
		}
	}
	return &handle{}
}

type highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
	lexers    map[string]chroma.Lexer
}

func (h *highlighter) lexerFor(language string) chroma.Lexer {
	key := strings.ToLower(strings.TrimSpace(language))
	if lexer, ok := h.lexers[key]; ok {
		return lexer
	}
	lexer := lexers.Get(key)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	h.lexers[key] = lexer
	return lexer
}

func (h *highlighter) render(source, language string) (string, error) {
	lexer := h.lexerFor(language)
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("highlight: tokenise: %w", err)
	}
	var out strings.Builder
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", fmt.Errorf("highlight: format: %w", err)
	}
	return out.String(), nil
}

type handle struct {
	once     sync.Once
	released bool
}

func (h *handle) Highlight(source, language string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if h.released || state == nil {
		return "", fmt.Errorf("highlight: service released")
	}
	return state.render(source, language)
}

func (h *handle) Release() {
	h.once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		h.released = true
		refs--
		if refs <= 0 {
			refs = 0
			state = nil
		}
	})
}

// active reports whether the shared state is alive. Test hook.
func active() bool {
	mu.Lock()
	defer mu.Unlock()
	return state != nil
}
