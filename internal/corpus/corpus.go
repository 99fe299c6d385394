// Package corpus loads gold-standard and prediction files into token trees.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-seqeval/internal/config"
	"github.com/jamesainslie/go-seqeval/tagtree"
)

var (
	// ErrNoConverter indicates an XML gold file with no TEI converter set.
	ErrNoConverter = errors.New("corpus: XML gold file requires a TEI converter")

	// ErrUnsupportedFormat indicates an XML prediction file.
	ErrUnsupportedFormat = errors.New("corpus: unsupported file format")
)

// Converter turns a TEI/XML document into IOB2-tagged sentences. The
// implementation is external and typically wraps a language-specific
// tokenizer and sentence splitter.
type Converter interface {
	Convert(ctx context.Context, path string, reader config.ReaderConfig, entities config.EntityDict, language string) (*tagtree.Tree, error)
}

// Loader reads gold and prediction files.
type Loader struct {
	Config    *config.Config
	Converter Converter // optional, required only for XML gold files
	Logger    *slog.Logger
}

// Pair is a loaded gold/prediction pair.
type Pair struct {
	Gold *tagtree.Tree
	Pred *tagtree.Tree
}

// LoadGold loads a gold-standard file. XML files are passed to the
// Converter, and any other file is decoded as JSON.
func (l *Loader) LoadGold(ctx context.Context, path string) (*tagtree.Tree, error) {
	if !isXML(path) {
		return l.decode("gold", path)
	}
	if l.Converter == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoConverter, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("gold file: %w", err)
	}
	cfg := l.config()
	t, err := l.Converter.Convert(ctx, path, cfg.Reader, cfg.Entities, cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	l.logger().Debug("converted gold file", "path", path, "tokens", tagtree.Len(t))
	return t, nil
}

// LoadPrediction loads a prediction file, which is always JSON. XML is
// rejected since predictions have no conversion path.
func (l *Loader) LoadPrediction(_ context.Context, path string) (*tagtree.Tree, error) {
	if isXML(path) {
		return nil, fmt.Errorf("%w: prediction file %s", ErrUnsupportedFormat, path)
	}
	return l.decode("prediction", path)
}

// LoadPair loads gold and prediction concurrently.
func (l *Loader) LoadPair(ctx context.Context, goldPath, predPath string) (Pair, error) {
	var p Pair
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.LoadGold(ctx, goldPath)
		p.Gold = t
		return err
	})
	g.Go(func() error {
		t, err := l.LoadPrediction(ctx, predPath)
		p.Pred = t
		return err
	})
	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return p, nil
}

func (l *Loader) decode(role, path string) (*tagtree.Tree, error) {
	t, err := tagtree.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s file: %w", role, err)
	}
	l.logger().Debug("loaded file", "role", role, "path", path, "tokens", tagtree.Len(t))
	return t, nil
}

func isXML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

func (l *Loader) config() *config.Config {
	if l.Config == nil {
		return config.Default()
	}
	return l.Config
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
