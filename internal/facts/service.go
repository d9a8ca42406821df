// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package facts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/wikifacts/internal/cache"
	"github.com/pdiddy/wikifacts/internal/dispatch"
	"github.com/pdiddy/wikifacts/internal/infobox"
	"github.com/pdiddy/wikifacts/internal/wiki"
)

// Resolver turns a topic string into a page handle. Implemented by
// *wiki.Client; tests supply mocks.
type Resolver interface {
	Resolve(ctx context.Context, title string) (wiki.Page, error)
}

// Renderer returns the raw HTML of a resolved page.
type Renderer interface {
	RenderHTML(ctx context.Context, page wiki.Page) (string, error)
}

// Service answers single-field lookups against Wikipedia infoboxes.
type Service struct {
	resolver Resolver
	renderer Renderer
	store    *cache.Store // nil disables caching
	rules    []Rule
	byName   map[string]*Rule
	log      *zap.Logger
}

// NewService builds a Service over the given collaborators. A nil
// store disables caching; a nil logger disables logging.
func NewService(resolver Resolver, renderer Renderer, rules []Rule, store *cache.Store, log *zap.Logger) (*Service, error) {
	if err := compileRules(rules); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	byName := make(map[string]*Rule, len(rules))
	for i := range rules {
		byName[rules[i].Name] = &rules[i]
	}

	return &Service{
		resolver: resolver,
		renderer: renderer,
		store:    store,
		rules:    rules,
		byName:   byName,
		log:      log,
	}, nil
}

// Rules returns the configured rules in declaration order.
func (s *Service) Rules() []Rule {
	return append([]Rule{}, s.rules...)
}

// Lookup extracts the named field from the topic's infobox.
func (s *Service) Lookup(ctx context.Context, field, topic string) (string, error) {
	rule, ok := s.byName[field]
	if !ok {
		return "", fmt.Errorf("unknown field %q", field)
	}

	text, err := s.infoboxText(ctx, topic)
	if err != nil {
		return "", err
	}

	return rule.Apply(text)
}

// Handler returns a dispatch handler that joins the capture into a
// topic string and looks up the given field.
func (s *Service) Handler(field string) dispatch.Handler {
	return func(ctx context.Context, capture []string) (dispatch.Result, error) {
		topic := strings.Join(capture, " ")
		value, err := s.Lookup(ctx, field, topic)
		if err != nil {
			return dispatch.Result{}, err
		}
		return dispatch.Result{Answers: []string{value}}, nil
	}
}

// infoboxText returns the cleaned infobox text for topic, consulting
// the cache first. Cache failures are logged and otherwise ignored.
func (s *Service) infoboxText(ctx context.Context, topic string) (string, error) {
	if s.store != nil {
		text, ok, err := s.store.Get(ctx, topic)
		if err != nil {
			s.log.Warn("cache read failed", zap.String("topic", topic), zap.Error(err))
		} else if ok {
			s.log.Debug("cache hit", zap.String("topic", topic))
			return text, nil
		}
	}

	page, err := s.resolver.Resolve(ctx, topic)
	if err != nil {
		return "", err
	}

	rawHTML, err := s.renderer.RenderHTML(ctx, page)
	if err != nil {
		return "", err
	}

	text, err := infobox.Extract(rawHTML)
	if err != nil {
		return "", err
	}
	cleaned := infobox.Clean(text)

	if s.store != nil {
		if err := s.store.Put(ctx, topic, page.Title, cleaned); err != nil {
			s.log.Warn("cache write failed", zap.String("topic", topic), zap.Error(err))
		}
	}

	return cleaned, nil
}
