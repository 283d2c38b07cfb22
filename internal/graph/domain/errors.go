package domain

import "errors"

var (
	ErrEntityNotFound   = errors.New("entity not found in graph")
	ErrNoResults        = errors.New("subgraph query returned no results")
	ErrEmptyEntityKey   = errors.New("entity key must not be empty")
	ErrInvalidDepth     = errors.New("depth must be 1 or 2")
	ErrSessionNotFound  = errors.New("explorer session not found")
	ErrSnapshotNotFound = errors.New("graph snapshot not cached")
)
