package cleaner

import (
	"bytes"
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"
	"bibcleaner/core/reconcile"
	"bibcleaner/core/storage"

	"go.uber.org/zap"
)

// ErrUploadDisabled is returned when an upload is requested without a storage client.
var ErrUploadDisabled = errors.New("uploads are not enabled")

// CleanResponse is the result of cleaning one uploaded file.
type CleanResponse struct {
	RunID    string            `json:"run_id"`
	Source   string            `json:"source"`
	Regular  string            `json:"regular"`
	Crossref string            `json:"crossref"`
	Summary  reconcile.Summary `json:"summary"`
	Objects  []string          `json:"objects,omitempty"`
}

// SearchResponse is the result of a single index search.
type SearchResponse struct {
	Query    string   `json:"query"`
	Count    int      `json:"count"`
	Locators []string `json:"locators"`
}

// Service cleans files and runs searches against a shared index client.
// Every use of the query client and engine holds mu, so lookups from
// concurrent requests stay serialized behind one limiter.
type Service struct {
	mu     sync.Mutex
	query  *dblp.QueryClient
	engine *reconcile.Engine
	logger *zap.Logger

	store      storage.Client
	storageCfg storage.Config

	now func() time.Time
}

// NewService creates a cleaning service. Ambiguous matches are settled by
// policy ("original" or "first"). store may be nil when uploads are disabled.
func NewService(client *dblp.Client, dblpCfg dblp.Config, cleanCfg reconcile.Config, policy string, store storage.Client, storageCfg storage.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chooser, err := reconcile.PolicyChooser(policy)
	if err != nil {
		return nil, err
	}
	query := dblp.NewQueryClient(client, dblpCfg)
	fetcher := dblp.NewFetcher(client, dblpCfg, logger)
	resolver := reconcile.NewResolver(query, fetcher, chooser, cleanCfg, logger)
	return &Service{
		query:      query,
		engine:     reconcile.NewEngine(resolver, cleanCfg, logger),
		logger:     logger,
		store:      store,
		storageCfg: storageCfg,
		now:        time.Now,
	}, nil
}

// Clean parses data, cleans it and renders both output files.
// A malformed document is reported as a *bibtex.ParseError before any lookup.
func (s *Service) Clean(ctx context.Context, source string, data []byte, upload bool) (*CleanResponse, error) {
	if upload && s.store == nil {
		return nil, ErrUploadDisabled
	}
	file, err := bibtex.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	result := s.engine.Run(ctx, file.Entries)
	s.mu.Unlock()

	regular, crossref := result.Files(source, s.now())
	resp := &CleanResponse{
		RunID:    result.RunID,
		Source:   source,
		Regular:  regular.String(),
		Crossref: crossref.String(),
		Summary:  result.Summary,
	}

	if upload {
		regularPath, crossrefPath := reconcile.OutputPaths(source, "")
		files := []storage.File{
			{Name: path.Join(result.RunID, path.Base(regularPath)), Data: []byte(resp.Regular)},
			{Name: path.Join(result.RunID, path.Base(crossrefPath)), Data: []byte(resp.Crossref)},
		}
		names, err := storage.UploadFiles(ctx, s.store, s.storageCfg, files)
		if err != nil {
			return nil, err
		}
		resp.Objects = names
	}
	return resp, nil
}

// Search runs one index search for text.
func (s *Service) Search(ctx context.Context, text string) (*SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locators, err := s.query.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{
		Query:    s.query.LastQuery(),
		Count:    len(locators),
		Locators: locators,
	}, nil
}
