package grammar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "matches": [
    {
      "message": "Possible spelling mistake found.",
      "offset": 10,
      "length": 7,
      "replacements": [{"value": "grammar"}, {"value": "grammars"}, {"value": "gamer"}, {"value": "crammer"}],
      "context": {"text": "This has grammer errors", "offset": 9, "length": 7},
      "rule": {"id": "MORFOLOGIK_RULE_EN_US"}
    },
    {
      "message": "Use \"an\" instead of \"a\".",
      "offset": 30,
      "length": 1,
      "replacements": [{"value": "an"}],
      "context": {"text": "is a apple", "offset": 3, "length": 1},
      "rule": {"id": "EN_A_VS_AN"}
    }
  ]
}`

func TestLanguageTool_Check(t *testing.T) {
	var gotText, gotLang, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/check", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		gotText = r.PostForm.Get("text")
		gotLang = r.PostForm.Get("language")
		gotUser = r.PostForm.Get("username")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	lt, err := NewLanguageTool(LanguageToolOptions{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	defer lt.Close()

	got, err := lt.Check(context.Background(), "This has grammer errors and is a apple")
	require.NoError(t, err)

	assert.Equal(t, "This has grammer errors and is a apple", gotText)
	assert.Equal(t, "en-US", gotLang)
	assert.Empty(t, gotUser)

	require.Len(t, got, 2)
	assert.Equal(t, Issue{
		ContextOffset: 9,
		Offset:        10,
		Length:        7,
		Message:       "Possible spelling mistake found.",
		Replacements:  []string{"grammar", "grammars", "gamer", "crammer"},
		RuleID:        "MORFOLOGIK_RULE_EN_US",
	}, got[0])
	assert.Equal(t, "EN_A_VS_AN", got[1].RuleID)
}

func TestLanguageTool_Credentials(t *testing.T) {
	var gotUser, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotUser = r.PostForm.Get("username")
		gotKey = r.PostForm.Get("apiKey")
		_, _ = w.Write([]byte(`{"matches": []}`))
	}))
	defer srv.Close()

	lt, err := NewLanguageTool(LanguageToolOptions{BaseURL: srv.URL, Username: "me@example.com", APIKey: "secret"})
	require.NoError(t, err)

	got, err := lt.Check(context.Background(), "fine")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "me@example.com", gotUser)
	assert.Equal(t, "secret", gotKey)
}

func TestLanguageTool_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	lt, err := NewLanguageTool(LanguageToolOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = lt.Check(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNewLanguageTool_Defaults(t *testing.T) {
	lt, err := NewLanguageTool(LanguageToolOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguageToolURL+"/v2/check", lt.endpoint)
	assert.Equal(t, DefaultLanguage, lt.language)

	_, err = NewLanguageTool(LanguageToolOptions{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestLanguageTool_OwnTransport(t *testing.T) {
	lt, err := NewLanguageTool(LanguageToolOptions{})
	require.NoError(t, err)

	tr, ok := lt.hc.Transport.(*http.Transport)
	require.True(t, ok, "expected *http.Transport, got %T", lt.hc.Transport)
	assert.NotSame(t, http.DefaultTransport, tr)
	assert.NoError(t, lt.Close())
}
