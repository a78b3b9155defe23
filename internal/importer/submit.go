package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// StatusError carries the HTTP status class a creation failed with.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %v", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Failure describes one candidate that could not be stored.
type Failure struct {
	Index     int
	Candidate Candidate
	Status    int
	Message   string
	Err       error
}

// BatchError reports that at least one candidate of a submission failed.
// Other candidates of the same batch may have been stored.
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	msg := e.Failures[0].Message
	if n := len(e.Failures) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more failed)", n)
	}

	return msg
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}

	return errs
}

type SubmitResult struct {
	Created  []*transaction.Transaction
	Failures []Failure
}

// Submit creates every candidate independently and waits for all of them.
// Candidates are checked against directories read at submission time, so ids
// that vanished or never existed fail as validation errors. Nothing is rolled
// back when some fail; the returned *BatchError lists the failures while
// Created holds what was stored.
func (s *Service) Submit(ctx context.Context, candidates []Candidate) (SubmitResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("loading directories: %w", err)
	}

	created := make([]*transaction.Transaction, len(candidates))
	failed := make([]*Failure, len(candidates))

	var g errgroup.Group

	limit := s.opts.Concurrency
	if limit <= 0 {
		limit = -1
	}

	g.SetLimit(limit)

	for i, c := range candidates {
		g.Go(func() error {
			tx, err := s.submitOne(ctx, c, snap)
			if err != nil {
				f := classify(c, err)
				f.Index = i
				failed[i] = &f

				slog.Warn("Failed to import transaction", "description", c.Description, "status", f.Status, "error", err)

				return nil
			}

			created[i] = tx

			return nil
		})
	}

	_ = g.Wait()

	var res SubmitResult

	for i := range candidates {
		if failed[i] != nil {
			res.Failures = append(res.Failures, *failed[i])
			continue
		}

		res.Created = append(res.Created, created[i])
	}

	if len(res.Failures) > 0 {
		return res, &BatchError{Failures: res.Failures}
	}

	return res, nil
}

func (s *Service) submitOne(ctx context.Context, c Candidate, snap Snapshot) (*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := c.against(snap)
	if err != nil {
		return nil, err
	}

	params, err := c.Params()
	if err != nil {
		return nil, err
	}

	return s.creator.Create(ctx, params)
}

// StatusOf returns the HTTP status class of a creation error, or 0 when the
// error has none (network problems, cancellation, unclassified failures).
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}

	if errors.Is(err, transaction.ErrValidation) {
		return http.StatusBadRequest
	}

	return 0
}

func classify(c Candidate, err error) Failure {
	status := StatusOf(err)

	var msg string

	switch {
	case status == http.StatusUnauthorized:
		msg = "session expired, please log in again"
	case status == http.StatusBadRequest:
		msg = fmt.Sprintf("invalid transaction %q: %s", c.Description, strings.TrimSpace(err.Error()))
	case status >= http.StatusInternalServerError:
		msg = fmt.Sprintf("server error while importing %q", c.Description)
	default:
		msg = fmt.Sprintf("import failed: %v", err)
	}

	return Failure{
		Candidate: c,
		Status:    status,
		Message:   msg,
		Err:       err,
	}
}
