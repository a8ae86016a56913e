// Package fileservice lists directories and performs the single-file operations a file
// browser offers: rename, create, text read/write and launching with the OS default
// application. It holds no state besides its configuration; every call is answered from
// the file system as it is at that moment.
package fileservice

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/datatug/filepane/pkg/files"
	"github.com/datatug/filepane/pkg/fpsettings"
	"github.com/datatug/filepane/pkg/launcher"
	"github.com/datatug/filepane/pkg/logging"
)

type Option func(*Service)

// WithEditableExtensions replaces the allow-list of extensions eligible for text editing.
func WithEditableExtensions(exts ...string) Option {
	return func(s *Service) {
		s.editable = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			s.editable[strings.ToLower(ext)] = struct{}{}
		}
	}
}

func WithLauncher(l launcher.Launcher) Option {
	return func(s *Service) {
		s.launcher = l
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

type Service struct {
	store    files.Store
	editable map[string]struct{}
	launcher launcher.Launcher
	logger   *slog.Logger
}

func New(store files.Store, o ...Option) *Service {
	s := &Service{
		store:    store,
		launcher: launcher.NewLauncher(),
		logger:   logging.Discard(),
	}
	WithEditableExtensions(fpsettings.DefaultEditableExtensions...)(s)
	for _, opt := range o {
		opt(s)
	}
	return s
}

// IsEditable reports whether path has an extension from the edit allow-list.
func (s *Service) IsEditable(path string) bool {
	_, ok := s.editable[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ListDirectory lists the immediate children of dir.
func (s *Service) ListDirectory(ctx context.Context, dir string) (files.Listing, error) {
	const op = "list"
	dir, err := absPath(dir)
	if err != nil {
		return files.Listing{}, s.fail(op, dir, err)
	}
	if err = ctx.Err(); err != nil {
		return files.Listing{}, s.fail(op, dir, err)
	}
	info, err := s.store.Stat(ctx, dir)
	if err != nil {
		return files.Listing{}, s.fail(op, dir, err)
	}
	if !info.IsDir() {
		return files.Listing{}, s.fail(op, dir, invalidArgument("not a directory"))
	}
	children, err := s.store.ReadDir(ctx, dir)
	if err != nil {
		return files.Listing{}, s.fail(op, dir, err)
	}
	s.logger.Debug("listed directory", "path", dir, "entries", len(children))
	return files.NewListing(dir, children), nil
}

// Rename gives path a new name inside the same parent directory and returns the new path.
func (s *Service) Rename(ctx context.Context, path, newName string) (string, error) {
	const op = "rename"
	if err := validateName(newName); err != nil {
		return "", s.fail(op, path, err)
	}
	path, err := absPath(path)
	if err != nil {
		return "", s.fail(op, path, err)
	}
	if err = ctx.Err(); err != nil {
		return "", s.fail(op, path, err)
	}
	newPath := filepath.Join(filepath.Dir(path), newName)
	if newPath == path {
		if _, err = s.store.Stat(ctx, path); err != nil {
			return "", s.fail(op, path, err)
		}
		return path, nil
	}
	if err = s.store.Rename(ctx, path, newPath); err != nil {
		return "", s.fail(op, path, err)
	}
	s.logger.Info("renamed", "path", path, "new_path", newPath)
	return newPath, nil
}

// CreateFile creates an empty file called name in parentDir. An existing file is never overwritten.
func (s *Service) CreateFile(ctx context.Context, parentDir, name string) (string, error) {
	const op = "create"
	if err := validateName(name); err != nil {
		return "", s.fail(op, parentDir, err)
	}
	parentDir, err := absPath(parentDir)
	if err != nil {
		return "", s.fail(op, parentDir, err)
	}
	if err = ctx.Err(); err != nil {
		return "", s.fail(op, parentDir, err)
	}
	info, err := s.store.Stat(ctx, parentDir)
	if err != nil {
		return "", s.fail(op, parentDir, err)
	}
	if !info.IsDir() {
		return "", s.fail(op, parentDir, invalidArgument("parent is not a directory"))
	}
	newPath := filepath.Join(parentDir, name)
	if err = s.store.CreateFile(ctx, newPath); err != nil {
		return "", s.fail(op, newPath, err)
	}
	s.logger.Info("created file", "path", newPath)
	return newPath, nil
}

// ReadTextFile returns the whole content of an allow-listed text file.
func (s *Service) ReadTextFile(ctx context.Context, path string) (string, error) {
	const op = "read"
	path, err := s.editablePath(path)
	if err != nil {
		return "", s.fail(op, path, err)
	}
	if err = ctx.Err(); err != nil {
		return "", s.fail(op, path, err)
	}
	info, err := s.store.Stat(ctx, path)
	if err != nil {
		return "", s.fail(op, path, err)
	}
	if info.IsDir() {
		return "", s.fail(op, path, invalidArgument("is a directory"))
	}
	data, err := s.store.ReadFile(ctx, path)
	if err != nil {
		return "", s.fail(op, path, err)
	}
	content, err := decodeText(data)
	if err != nil {
		return "", s.fail(op, path, err)
	}
	s.logger.Debug("read text file", "path", path, "bytes", len(data))
	return content, nil
}

// WriteTextFile replaces the content of an allow-listed text file, creating it if needed.
// Readers see either the old or the new content, never a mix.
func (s *Service) WriteTextFile(ctx context.Context, path, content string) error {
	const op = "write"
	path, err := s.editablePath(path)
	if err != nil {
		return s.fail(op, path, err)
	}
	if err = validateText(content); err != nil {
		return s.fail(op, path, err)
	}
	if err = ctx.Err(); err != nil {
		return s.fail(op, path, err)
	}
	if err = s.store.WriteFile(ctx, path, []byte(content)); err != nil {
		return s.fail(op, path, err)
	}
	s.logger.Info("wrote text file", "path", path, "bytes", len(content))
	return nil
}

// Launch opens path with the OS default application. The caller is expected to have
// confirmed this with the user; nothing about the target is checked beyond its existence.
func (s *Service) Launch(ctx context.Context, path string) error {
	const op = "launch"
	path, err := absPath(path)
	if err != nil {
		return s.fail(op, path, err)
	}
	if err = ctx.Err(); err != nil {
		return s.fail(op, path, err)
	}
	if _, err = s.store.Stat(ctx, path); err != nil {
		return s.fail(op, path, err)
	}
	if err = s.launcher.Launch(ctx, path); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.fail(op, path, ctxErr)
		}
		return s.fail(op, path, files.NewError(files.KindLaunch, "", "", err))
	}
	s.logger.Info("launched", "path", path)
	return nil
}

func (s *Service) editablePath(path string) (string, error) {
	if !s.IsEditable(path) {
		return path, invalidArgument("extension %q is not editable", filepath.Ext(path))
	}
	return absPath(path)
}

func (s *Service) fail(op, path string, err error) error {
	err = files.Wrap(op, path, err)
	s.logger.Info("file operation failed", "op", op, "path", path, "err", err)
	return err
}

func absPath(path string) (string, error) {
	if path == "" {
		return path, invalidArgument("path is empty")
	}
	return filepath.Abs(path)
}
