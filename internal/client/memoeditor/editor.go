// Package memoeditor edits a deal's investment memo and saves it as new
// immutable versions.
package memoeditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/dealflow/internal/client/querycache"
	"github.com/SscSPs/dealflow/internal/core/domain"
)

// ErrNoDeal is returned by operations that need an opened deal.
var ErrNoDeal = errors.New("no deal opened")

// MemoAPI is the part of the API client the editor needs.
type MemoAPI interface {
	GetMemo(ctx context.Context, dealID int64) (*domain.Memo, error)
	SaveMemo(ctx context.Context, dealID int64, sections domain.MemoSections) (int64, error)
	MemoHistory(ctx context.Context, dealID int64) ([]domain.MemoVersion, error)
}

// Editor holds the in-memory sections of one deal's memo. Edits stay local
// until Save. It is safe for concurrent use.
type Editor struct {
	api    MemoAPI
	cache  *querycache.Cache
	logger *slog.Logger

	mu       sync.Mutex
	opened   bool
	dealID   int64
	openSeq  uint64
	sections domain.MemoSections
	loadErr  error
}

// New creates an editor with no deal opened.
func New(api MemoAPI, cache *querycache.Cache, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{api: api, cache: cache, logger: logger}
}

// Open switches to dealID, discarding unsaved edits, and loads its current
// memo. A missing memo, a failed fetch and unparseable content all leave
// every section blank; LoadError tells the last two apart.
func (e *Editor) Open(ctx context.Context, dealID int64) {
	e.mu.Lock()
	e.openSeq++
	seq := e.openSeq
	e.opened = true
	e.dealID = dealID
	e.sections = domain.MemoSections{}
	e.loadErr = nil
	e.mu.Unlock()

	sections, loadErr := e.load(ctx, dealID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.openSeq != seq {
		// Another deal was opened while this one loaded.
		return
	}
	e.sections = sections
	e.loadErr = loadErr
}

func (e *Editor) load(ctx context.Context, dealID int64) (domain.MemoSections, error) {
	memo, err := querycache.Fetch(ctx, e.cache, querycache.KeyMemo(dealID), func(ctx context.Context) (*domain.Memo, error) {
		return e.api.GetMemo(ctx, dealID)
	})
	if err != nil {
		e.logger.Warn("Failed to load memo", slog.Int64("deal_id", dealID), slog.String("error", err.Error()))
		return domain.MemoSections{}, err
	}
	if memo == nil {
		return domain.MemoSections{}, nil
	}
	sections, err := domain.ParseMemoContent(memo.Content)
	if err != nil {
		e.logger.Warn("Stored memo content is unreadable", slog.Int64("deal_id", dealID), slog.String("error", err.Error()))
		return domain.MemoSections{}, err
	}
	return sections, nil
}

// DealID returns the opened deal.
func (e *Editor) DealID() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dealID, e.opened
}

// LoadError returns why the last Open could not load the memo, or nil when
// it loaded or simply did not exist.
func (e *Editor) LoadError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// Sections returns a copy of the current local sections.
func (e *Editor) Sections() domain.MemoSections {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sections
}

// Set replaces the local text of one section.
func (e *Editor) Set(section domain.MemoSection, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.opened {
		return ErrNoDeal
	}
	return e.sections.Set(section, text)
}

// Save stores the whole local mapping as a new version and returns its id.
// The local sections are left as they are.
func (e *Editor) Save(ctx context.Context) (int64, error) {
	e.mu.Lock()
	if !e.opened {
		e.mu.Unlock()
		return 0, ErrNoDeal
	}
	dealID, sections := e.dealID, e.sections
	e.mu.Unlock()

	versionID, err := e.api.SaveMemo(ctx, dealID, sections)
	if err != nil {
		return 0, fmt.Errorf("failed to save memo: %w", err)
	}
	e.cache.Invalidate(querycache.KeyMemo(dealID), querycache.KeyMemoHistory(dealID))
	e.logger.Debug("Memo version saved", slog.Int64("deal_id", dealID), slog.Int64("version_id", versionID))
	return versionID, nil
}

// History lists the saved versions of the opened deal, newest first. It is
// fetched on first use and returns nil when it cannot be loaded.
func (e *Editor) History(ctx context.Context) []domain.MemoVersion {
	dealID, ok := e.DealID()
	if !ok {
		return nil
	}
	versions, err := querycache.Fetch(ctx, e.cache, querycache.KeyMemoHistory(dealID), func(ctx context.Context) ([]domain.MemoVersion, error) {
		return e.api.MemoHistory(ctx, dealID)
	})
	if err != nil {
		e.logger.Warn("Failed to load memo history", slog.Int64("deal_id", dealID), slog.String("error", err.Error()))
		return nil
	}
	return versions
}
