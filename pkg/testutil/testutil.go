// Package testutil provides testing utilities for colprof
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/colprof/pkg/arff"
	"github.com/ajitpratap0/colprof/pkg/features"
	"github.com/ajitpratap0/colprof/pkg/posterior"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ testing.TB) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// StubClassifier returns a fixed raw label and records every feature set it
// is asked to classify. It is safe for concurrent use.
type StubClassifier struct {
	// Label is the raw label, before the categorical -> nominal rename
	Label     string
	Classes   []string
	Posterior []float64
	Err       error

	mu    sync.Mutex
	calls []features.Features
}

// NewStubClassifier returns a stub that always answers label with
// probability 1 over the classes categorical, numeric and date.
func NewStubClassifier(label string) *StubClassifier {
	classes := []string{arff.LabelCategorical, arff.LabelNumeric, arff.LabelDate}
	proba := make([]float64, len(classes))
	for i, c := range classes {
		if c == label {
			proba[i] = 1
		}
	}
	return &StubClassifier{Label: label, Classes: classes, Posterior: proba}
}

// Classify implements arff.Classifier.
func (s *StubClassifier) Classify(f features.Features) (arff.Outcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, f)
	s.mu.Unlock()

	if s.Err != nil {
		return arff.Outcome{}, s.Err
	}

	classes := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		classes[i] = arff.RenameLabel(c)
	}
	return arff.Outcome{
		Label:     arff.RenameLabel(s.Label),
		Classes:   classes,
		Posterior: append([]float64(nil), s.Posterior...),
	}, nil
}

// Calls returns the features seen so far.
func (s *StubClassifier) Calls() []features.Features {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]features.Features(nil), s.calls...)
}

// Rows builds row posteriors that put 0.8 on the given status of each row
// and 0.1 on the two others.
func Rows(statuses ...posterior.Status) posterior.RowPosteriors {
	rows := make(posterior.RowPosteriors, len(statuses))
	for i, s := range statuses {
		rows[i] = [posterior.NumStatuses]float64{0.1, 0.1, 0.1}
		rows[i][s] = 0.8
	}
	return rows
}

// Strings converts values to the raw cell representation.
func Strings(values ...string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
