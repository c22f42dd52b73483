package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/adampresley/adamgokit/slices"
	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

// ContentDocuments are the site JSON documents that can be read and saved.
var ContentDocuments = []string{"gallery", "videos", "featured", "services"}

type ContentServicer interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, body []byte) error
}

type ContentServiceConfig struct {
	Defaults fs.FS
	Prefix   string
	Storage  filestorage.FileStorer
}

type ContentService struct {
	defaults fs.FS
	prefix   string
	storage  filestorage.FileStorer
}

func NewContentService(config ContentServiceConfig) ContentService {
	return ContentService{
		defaults: config.Defaults,
		prefix:   config.Prefix,
		storage:  config.Storage,
	}
}

/*
Get returns a document from storage, falling back to the bundled default.
Names may be given with or without the .json extension.
*/
func (s ContentService) Get(ctx context.Context, name string) ([]byte, error) {
	var (
		err    error
		doc    string
		object filestorage.Object
		b      []byte
	)

	if doc, err = documentName(name); err != nil {
		return nil, err
	}

	object, err = s.storage.Get(ctx, s.key(doc))

	if err == nil {
		defer object.Body.Close()

		if b, err = io.ReadAll(object.Body); err != nil {
			return nil, fmt.Errorf("error reading document '%s': %w", doc, err)
		}

		return b, nil
	}

	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("error fetching document '%s': %w", doc, err)
	}

	if s.defaults != nil {
		if b, err = fs.ReadFile(s.defaults, doc+".json"); err == nil {
			return b, nil
		}
	}

	return nil, models.NewUserError(models.ErrNotFound, fmt.Sprintf("document '%s' not found", doc))
}

// Save stores a document pretty-printed. The body must be valid JSON.
func (s ContentService) Save(ctx context.Context, name string, body []byte) error {
	var (
		err error
		doc string
		buf bytes.Buffer
	)

	if doc, err = documentName(name); err != nil {
		return err
	}

	if !json.Valid(body) {
		return models.NewUserError(models.ErrValidation, "body must be valid JSON")
	}

	if !s.storage.Writable() {
		return filestorage.ErrReadOnly
	}

	if err = json.Indent(&buf, body, "", "  "); err != nil {
		return models.NewUserError(models.ErrValidation, "body must be valid JSON")
	}

	buf.WriteByte('\n')

	if err = s.storage.Put(ctx, s.key(doc), &buf); err != nil {
		return fmt.Errorf("error saving document '%s': %w", doc, err)
	}

	return nil
}

func (s ContentService) key(doc string) string {
	return path.Join(s.prefix, doc+".json")
}

func documentName(name string) (string, error) {
	doc := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".json")

	if !slices.IsInSlice(doc, ContentDocuments) {
		return "", models.NewUserError(models.ErrNotFound, fmt.Sprintf("unknown document '%s'", name))
	}

	return doc, nil
}
