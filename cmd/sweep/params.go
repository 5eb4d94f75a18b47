package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-sweep/internal/strategy"
)

// parseParams turns repeated name=value flags into strategy params.
func parseParams(pairs []string) (strategy.Params, error) {
	params := make(strategy.Params, len(pairs))

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for parameter %s: %w", name, err)
		}

		params[strings.TrimSpace(name)] = value
	}

	return params, nil
}
