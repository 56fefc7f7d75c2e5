// internal/resolve/proxy.go
//
// HTTP client for the external pinyin/hint/random-word proxy service.
// Three request types, each a POST with a JSON body under its own path:
//   /pinyin       {characters}          → choices[0].message.content
//   /random-word  {length, exclude}     → {word}
//   /hints        {characters, isIdiom} → {hints}
//
// Every failure mode — transport error, timeout, non-200 status, malformed
// payload — is wrapped in a ProxyError carrying its kind, so the resolver
// can log what actually went wrong before collapsing all of them into the
// same "no result" fallback.

package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	lookupTimeout = 10 * time.Second
	hintTimeout   = 20 * time.Second
)

// ProxyError wraps a remote-call failure with its operation and kind.
// Kinds: "transport", "status", "decode", "payload".
type ProxyError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ProxyError) Error() string {
	return fmt.Sprintf("proxy %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ProxyError) Unwrap() error { return e.Err }

// proxyClient issues bounded requests against the proxy base URL.
type proxyClient struct {
	base string
	http *http.Client
}

func newProxyClient(base string) *proxyClient {
	return &proxyClient{base: strings.TrimRight(base, "/"), http: &http.Client{}}
}

// Pinyin asks the service for space-separated pinyin, returned as raw text
// for the resolver to clean and validate.
func (p *proxyClient) Pinyin(ctx context.Context, characters string) (string, error) {
	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	req := map[string]any{"characters": characters}
	if err := p.post(ctx, "/pinyin", lookupTimeout, req, &res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", &ProxyError{Op: "pinyin", Kind: "payload", Err: fmt.Errorf("no message content")}
	}
	return res.Choices[0].Message.Content, nil
}

// RandomWord asks the service for a word of the given character length,
// outside the exclusion list. The raw text is returned unfiltered.
func (p *proxyClient) RandomWord(ctx context.Context, length int, exclude []string) (string, error) {
	if exclude == nil {
		exclude = []string{}
	}
	var res struct {
		Word string `json:"word"`
	}
	req := map[string]any{"length": length, "exclude": exclude}
	if err := p.post(ctx, "/random-word", lookupTimeout, req, &res); err != nil {
		return "", err
	}
	if res.Word == "" {
		return "", &ProxyError{Op: "random-word", Kind: "payload", Err: fmt.Errorf("empty word")}
	}
	return res.Word, nil
}

// Hints asks the service for hint sentences about a word.
func (p *proxyClient) Hints(ctx context.Context, characters string, isIdiom bool) ([]string, error) {
	var res struct {
		Hints []string `json:"hints"`
	}
	req := map[string]any{"characters": characters, "isIdiom": isIdiom}
	if err := p.post(ctx, "/hints", hintTimeout, req, &res); err != nil {
		return nil, err
	}
	return res.Hints, nil
}

// post issues one bounded JSON request. No retries: the resolver's layered
// fallback chain is the recovery strategy, not request-level retries.
func (p *proxyClient) post(ctx context.Context, path string, timeout time.Duration, body, out any) error {
	op := strings.TrimPrefix(path, "/")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return &ProxyError{Op: op, Kind: "payload", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+path, bytes.NewReader(payload))
	if err != nil {
		return &ProxyError{Op: op, Kind: "transport", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return &ProxyError{Op: op, Kind: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProxyError{Op: op, Kind: "status", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProxyError{Op: op, Kind: "decode", Err: err}
	}
	return nil
}
