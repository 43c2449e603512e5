// Package roster adapts the external enrollment system into the read-only
// provider the lifecycle engine consumes.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/repository"
)

// Provider lists the students expected to submit for a classroom, in
// enrollment order.
type Provider interface {
	ListStudents(ctx context.Context, classroomID string) ([]string, error)
}

type repositoryProvider struct {
	students repository.StudentRepository
}

// NewProvider builds a provider over the student repository.
func NewProvider(students repository.StudentRepository) Provider {
	return &repositoryProvider{students: students}
}

func (p *repositoryProvider) ListStudents(ctx context.Context, classroomID string) ([]string, error) {
	return p.students.ListNamesByClassroom(ctx, classroomID)
}

type cachedProvider struct {
	next   Provider
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider wraps a provider with a redis JSON cache. Cache failures
// degrade to the underlying provider and are logged, never surfaced.
func NewCachedProvider(next Provider, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) Provider {
	return &cachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "roster_cache").Logger(),
	}
}

func (p *cachedProvider) ListStudents(ctx context.Context, classroomID string) ([]string, error) {
	cacheKey := fmt.Sprintf("roster:classroom:%s", classroomID)

	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey).Result(); err == nil {
			var names []string
			if unmarshalErr := json.Unmarshal([]byte(cached), &names); unmarshalErr == nil {
				p.logger.Debug().Str("classroom_id", classroomID).Msg("roster cache hit")
				return names, nil
			}
		} else if err != redis.Nil {
			p.logger.Warn().Err(err).Msg("failed to read roster cache")
		}
	}

	names, err := p.next.ListStudents(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if payload, err := json.Marshal(names); err == nil {
			if err := p.cache.Set(ctx, cacheKey, payload, p.ttl).Err(); err != nil {
				p.logger.Warn().Err(err).Msg("failed to store roster cache")
			}
		}
	}

	return names, nil
}

// Static returns a provider that serves a fixed roster regardless of
// classroom, for tests and engine-as-library callers.
func Static(names ...string) Provider {
	return staticProvider(names)
}

type staticProvider []string

func (p staticProvider) ListStudents(context.Context, string) ([]string, error) {
	return append([]string(nil), p...), nil
}
