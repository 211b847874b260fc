package materializer

import (
	"context"
)

// resolve returns the entity stored under id. When it is absent, create builds it,
// usually from contract reads, and save persists it before it is returned.
// The bool reports whether the entity was created.
func resolve[T any](
	ctx context.Context,
	id string,
	load func(context.Context, string) (*T, error),
	create func(context.Context) (*T, error),
	save func(context.Context, *T) error,
) (*T, bool, error) {
	existing, err := load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	entity, err := create(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := save(ctx, entity); err != nil {
		return nil, false, err
	}
	return entity, true, nil
}
