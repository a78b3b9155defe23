package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/encoding"
	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
	"github.com/MrJamesThe3rd/spendly/internal/importer/normalize"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// Creator stores one transaction.
//
//go:generate mockgen -source=service.go -destination=creator_mock.go -package=importer
type Creator interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

type CategorySource interface {
	Directory(ctx context.Context) (category.Directory, error)
	UncategorizedID(dir category.Directory) string
}

type AccountSource interface {
	List(ctx context.Context) ([]account.Account, error)
}

// Snapshot is the category and account state a preview is built against.
type Snapshot struct {
	Categories      category.Directory
	Accounts        []account.Account
	UncategorizedID string
}

type Options struct {
	Placeholder    string
	MaxUploadBytes int64
	// Concurrency bounds in-flight creations during Submit. Zero means no
	// limit.
	Concurrency int
}

type Service struct {
	normalizer *normalize.Normalizer
	creator    Creator
	categories CategorySource
	accounts   AccountSource
	opts       Options
}

func NewService(creator Creator, categories CategorySource, accounts AccountSource, opts Options) *Service {
	return &Service{
		normalizer: normalize.New(opts.Placeholder),
		creator:    creator,
		categories: categories,
		accounts:   accounts,
		opts:       opts,
	}
}

// CheckMediaType accepts only a declared CSV media type.
func CheckMediaType(declared string) error {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || mediaType != "text/csv" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, declared)
	}

	return nil
}

// ReadUpload reads the whole upload into memory as UTF-8 text.
func (s *Service) ReadUpload(r io.Reader) (string, error) {
	limited := r
	if s.opts.MaxUploadBytes > 0 {
		limited = io.LimitReader(r, s.opts.MaxUploadBytes+1)
	}

	counted := &countingReader{r: limited}

	utf8r, err := encoding.NewUTF8Reader(counted)
	if err != nil {
		return "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if s.opts.MaxUploadBytes > 0 && counted.n > s.opts.MaxUploadBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, s.opts.MaxUploadBytes)
	}

	return string(data), nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}

// Headers returns the header row offered for column mapping.
func (s *Service) Headers(text string) (csvtext.Row, error) {
	rows := csvtext.Tokenize(text)
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return rows[0], nil
}

// Snapshot reads the current category and account directories.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	dir, err := s.categories.Directory(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Categories:      dir,
		Accounts:        accounts,
		UncategorizedID: s.categories.UncategorizedID(dir),
	}, nil
}

// Preview builds the candidate list for text under mapping. Structural
// problems abort the whole preview. Rows whose amount does not parse are
// left out.
func (s *Service) Preview(text string, mapping ColumnMapping, snap Snapshot) ([]Candidate, error) {
	rows := csvtext.Tokenize(text)
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	header, data := rows[0], rows[1:]
	if len(data) == 0 {
		return nil, ErrNoDataRows
	}

	cols, err := ResolveMapping(header, mapping)
	if err != nil {
		return nil, err
	}

	if _, ok := snap.Categories.Get(mapping.DefaultCategoryID); !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownCategory, mapping.DefaultCategoryID)
	}

	if !account.Contains(snap.Accounts, mapping.DefaultAccountID) {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownAccount, mapping.DefaultAccountID)
	}

	candidates := make([]Candidate, 0, len(data))

	for i, row := range data {
		fields := s.normalizer.Row(row, cols, i+1)
		if !fields.Keep() {
			continue
		}

		candidates = append(candidates, assemble(fields, mapping, snap))
	}

	slog.Info("Import preview built",
		"rows", len(data),
		"kept", len(candidates),
		"dropped", len(data)-len(candidates),
	)

	return candidates, nil
}

func assemble(f normalize.Fields, mapping ColumnMapping, snap Snapshot) Candidate {
	c := Candidate{
		Date:        f.Date,
		Description: f.Description,
		Amount:      f.Amount,
		CategoryID:  mapping.DefaultCategoryID,
		AccountID:   mapping.DefaultAccountID,
	}

	if f.CategoryLabel != "" {
		if matched, ok := snap.Categories.Match(f.CategoryLabel); ok {
			c.CategoryID = matched.ID
			c.ImportedCategoryRaw = new(f.CategoryLabel)
		}
	}

	c.TrustState = transaction.DeriveTrust(false, c.ImportedCategoryRaw, c.CategoryID, snap.UncategorizedID)

	return c
}
