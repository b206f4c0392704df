package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultLanguageToolURL = "https://api.languagetool.org"

var _ Checker = (*LanguageTool)(nil)

// LanguageToolOptions configures the LanguageTool HTTP client.
type LanguageToolOptions struct {
	BaseURL  string
	Language string
	Username string
	APIKey   string
	Timeout  time.Duration
}

// LanguageTool checks text through the LanguageTool /v2/check endpoint.
type LanguageTool struct {
	hc       *http.Client
	endpoint string
	language string
	username string
	apiKey   string
}

func NewLanguageTool(opts LanguageToolOptions) (*LanguageTool, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultLanguageToolURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("grammar: invalid languagetool url %q: %w", opts.BaseURL, err)
	}
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &LanguageTool{
		hc: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		endpoint: base + "/v2/check",
		language: lang,
		username: opts.Username,
		apiKey:   opts.APIKey,
	}, nil
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Context struct {
			Text   string `json:"text"`
			Offset int    `json:"offset"`
			Length int    `json:"length"`
		} `json:"context"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text and returns the matches in the order the server reports them.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]Issue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", lt.language)
	if lt.username != "" && lt.apiKey != "" {
		form.Set("username", lt.username)
		form.Set("apiKey", lt.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("grammar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := lt.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar: call languagetool: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("grammar: languagetool responded with status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("grammar: decode languagetool response: %w", err)
	}

	issues := make([]Issue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		issues = append(issues, Issue{
			ContextOffset: m.Context.Offset,
			Offset:        m.Offset,
			Length:        m.Length,
			Message:       m.Message,
			Replacements:  replacements,
			RuleID:        m.Rule.ID,
		})
	}
	return issues, nil
}

// Close releases pooled connections.
func (lt *LanguageTool) Close() error {
	lt.hc.CloseIdleConnections()
	return nil
}

// LanguageToolFactory defers client construction until a checker is needed.
func LanguageToolFactory(opts LanguageToolOptions) CheckerFactory {
	return func() (Checker, error) {
		return NewLanguageTool(opts)
	}
}
