package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFieldSpec signals a malformed field mapping spec string.
	ErrInvalidFieldSpec = errors.New("field mapping specification must contain a valid source prefix")
	// ErrEmptyFieldMapping signals a request without any field mapping.
	ErrEmptyFieldMapping = errors.New("empty field mapping: at least one logical field must be mapped")
	// ErrUnknownAlgorithm signals an algorithm id missing from the registry.
	ErrUnknownAlgorithm = errors.New("no such algorithm")
	// ErrUnsupportedLanguage signals a default language missing from the catalog.
	ErrUnsupportedLanguage = errors.New("language not supported")
	// ErrInvalidRequest signals a clustering request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrClustering signals a failure while configuring or running an algorithm.
	ErrClustering = errors.New("clustering failed")
	// ErrSearchFailed signals a failure of the upstream search call.
	ErrSearchFailed = errors.New("search failed")
	// ErrEmbeddingProviderError signals a failed call to the embedding provider.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// ClusteringErrorPrefix starts every ClusteringError message.
const ClusteringErrorPrefix = "Clustering error: "

// ClusteringError wraps an algorithm failure with a stable, greppable prefix.
type ClusteringError struct {
	Err error
}

func (e *ClusteringError) Error() string { return ClusteringErrorPrefix + e.Err.Error() }

// Unwrap exposes both the sentinel and the original cause to errors.Is / errors.As.
func (e *ClusteringError) Unwrap() []error { return []error{ErrClustering, e.Err} }

// NewClusteringError wraps err as a clustering failure.
func NewClusteringError(err error) error {
	return &ClusteringError{Err: err}
}

// UnknownAlgorithmError reports the requested algorithm id.
type UnknownAlgorithmError struct {
	ID string
}

func (e *UnknownAlgorithmError) Error() string { return "No such algorithm: " + e.ID }

func (e *UnknownAlgorithmError) Unwrap() error { return ErrUnknownAlgorithm }

// NewUnknownAlgorithm creates an unknown algorithm error.
func NewUnknownAlgorithm(id string) error {
	return &UnknownAlgorithmError{ID: id}
}

// UnsupportedLanguageError reports a default language missing from the catalog.
type UnsupportedLanguageError struct {
	Language  string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("Default clustering language not supported: %s (supported: %v)", e.Language, e.Supported)
}

func (e *UnsupportedLanguageError) Unwrap() error { return ErrUnsupportedLanguage }
