package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultWordsAPIHost = "wordsapiv1.p.rapidapi.com"

var ErrMissingAPIKey = errors.New("words api key not configured")

// WordsAPIProvider counts dictionary definitions through WordsAPI on RapidAPI.
type WordsAPIProvider struct {
	client  *http.Client
	baseURL string
	host    string
	apiKey  string
	tracer  trace.Tracer
}

func NewWordsAPIProvider(tracer trace.Tracer, apiKey, host string) *WordsAPIProvider {
	if host == "" {
		host = defaultWordsAPIHost
	}
	return &WordsAPIProvider{
		client:  newHTTPClient(),
		baseURL: "https://" + host,
		host:    host,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// CountDefinitions returns how many definitions word has. Unknown words
// count as 0.
func (p *WordsAPIProvider) CountDefinitions(ctx context.Context, word string) (int, error) {
	ctx, span := p.tracer.Start(ctx, "wordsapi.count-definitions")
	defer span.End()
	span.SetAttributes(attribute.String("word", word))

	if p.apiKey == "" {
		return 0, ErrMissingAPIKey
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return 0, nil
	}

	header := http.Header{}
	header.Set("X-RapidAPI-Key", p.apiKey)
	header.Set("X-RapidAPI-Host", p.host)

	var raw struct {
		Word        string `json:"word"`
		Definitions []struct {
			Definition   string `json:"definition"`
			PartOfSpeech string `json:"partOfSpeech"`
		} `json:"definitions"`
	}
	endpoint := p.baseURL + "/words/" + url.PathEscape(strings.ToLower(word)) + "/definitions"
	err := getJSON(ctx, p.client, "wordsapi", endpoint, header, &raw)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch definitions for %q: %w", word, err)
	}

	span.SetAttributes(attribute.Int("definitions", len(raw.Definitions)))
	return len(raw.Definitions), nil
}
