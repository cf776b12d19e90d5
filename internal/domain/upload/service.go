package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Input is an incoming file: the name the uploader gave it and its bytes.
type Input struct {
	Name    string
	Content io.Reader
}

// Options tunes the Service. The zero value uses DefaultExtensions.
type Options struct {
	Extensions Extensions
	// ValidateReplace applies the extension allow-list to Replace as well as Create.
	ValidateReplace bool
}

// Service keeps a blob on disk and its row in the record table in step.
// Disk is written before the row is committed, so a failed commit leaves an
// orphan blob behind. Audit reports those; nothing repairs them.
type Service struct {
	repo            Repository
	blobs           BlobDirectory
	allowed         Extensions
	validateReplace bool
	locks           *idLocks
	log             *log.Logger
}

func NewService(repo Repository, blobs BlobDirectory, logger *log.Logger, opts Options) *Service {
	allowed := opts.Extensions
	if len(allowed) == 0 {
		allowed = NewExtensions(DefaultExtensions...)
	}
	return &Service{
		repo:            repo,
		blobs:           blobs,
		allowed:         allowed,
		validateReplace: opts.ValidateReplace,
		locks:           newIDLocks(),
		log:             logger,
	}
}

// Create validates the extension, writes the blob under baseDir and inserts its row.
func (s *Service) Create(ctx context.Context, in Input, baseDir string) (f *File, err error) {
	defer func() { observe("create", err) }()

	if !s.allowed.Allows(in.Name) {
		return nil, ErrInvalidFileType
	}

	if err := s.blobs.EnsureDir(baseDir); err != nil {
		return nil, err
	}

	name := storageName(in.Name)
	path := storagePath(baseDir, name)
	if _, err := s.blobs.Write(path, in.Content); err != nil {
		return nil, err
	}

	f = &File{Filename: name, FilePath: path}
	if err := s.repo.Create(ctx, f); err != nil {
		s.log.Warn("orphan blob left after failed insert", "path", path, "err", err)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	s.log.Info("file saved", "id", f.ID, "path", path)
	return f, nil
}

// Replace swaps the blob behind id for a new one, keeping the id.
func (s *Service) Replace(ctx context.Context, id uint, in Input, baseDir string) (f *File, err error) {
	defer func() { observe("replace", err) }()

	unlock := s.locks.lock(id)
	defer unlock()

	f, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.validateReplace && !s.allowed.Allows(in.Name) {
		return nil, ErrInvalidFileType
	}

	if err := s.blobs.Remove(f.FilePath); err != nil {
		return nil, err
	}

	name := storageName(in.Name)
	path := storagePath(baseDir, name)
	if err := s.blobs.EnsureDir(baseDir); err != nil {
		return nil, err
	}
	if _, err := s.blobs.Write(path, in.Content); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, name, path); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		s.log.Warn("orphan blob left after failed update", "id", id, "path", path, "err", err)
		return nil, fmt.Errorf("failed to update file record: %w", err)
	}

	f.Filename = name
	f.FilePath = path
	s.log.Info("file updated", "id", id, "path", path)
	return f, nil
}

// Remove deletes the blob behind id, then its row.
func (s *Service) Remove(ctx context.Context, id uint) (err error) {
	defer func() { observe("remove", err) }()

	unlock := s.locks.lock(id)
	defer unlock()

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(f.FilePath); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("file deleted", "id", id, "path", f.FilePath)
	return nil
}

// EnsureUploadDir creates dir ahead of the first upload.
func (s *Service) EnsureUploadDir(dir string) error {
	return s.blobs.EnsureDir(dir)
}

func (s *Service) Get(ctx context.Context, id uint) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*File, error) {
	return s.repo.List(ctx)
}

// Open returns the record and an open handle on its blob. The caller closes it.
// A row whose blob is gone reads as ErrFileNotFound.
func (s *Service) Open(ctx context.Context, id uint) (*File, afero.File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	exists, err := s.blobs.Exists(f.FilePath)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrFileNotFound
	}
	blob, err := s.blobs.Open(f.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, blob, nil
}

// AuditReport lists where disk and table disagree.
type AuditReport struct {
	OrphanBlobs  []string // files in the directory with no row
	MissingBlobs []*File  // rows whose file is gone
}

func (r *AuditReport) Clean() bool {
	return len(r.OrphanBlobs) == 0 && len(r.MissingBlobs) == 0
}

// Audit compares the blobs under baseDir against every row. It changes nothing.
// Rows pointing outside baseDir are only checked for existence.
func (s *Service) Audit(ctx context.Context, baseDir string) (*AuditReport, error) {
	files, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	blobs, err := s.blobs.List(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload directory: %w", err)
	}

	report := &AuditReport{}
	known := make(map[string]struct{}, len(files))
	for _, f := range files {
		known[filepath.Clean(f.FilePath)] = struct{}{}
		exists, err := s.blobs.Exists(f.FilePath)
		if err != nil {
			return nil, err
		}
		if !exists {
			report.MissingBlobs = append(report.MissingBlobs, f)
		}
	}
	for _, path := range blobs {
		if _, ok := known[filepath.Clean(path)]; !ok {
			report.OrphanBlobs = append(report.OrphanBlobs, path)
		}
	}
	return report, nil
}
