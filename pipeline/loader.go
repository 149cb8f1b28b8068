package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON loads an asset and unmarshals it as JSON.
func LoadJSON[T any](ctx context.Context, s *Server, ref string) (T, error) {
	var result T

	data, err := s.Load(ctx, ref).Await(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load asset %s: %w", ref, err)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", ref, err)
	}

	return result, nil
}

// MustLoadJSON loads and unmarshals a JSON asset, panicking on error.
// Use this for data that must be present for the application to function.
func MustLoadJSON[T any](ctx context.Context, s *Server, ref string) T {
	result, err := LoadJSON[T](ctx, s, ref)
	if err != nil {
		panic(err)
	}
	return result
}
