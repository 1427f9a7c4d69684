package dataset

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Provider memoizes the loader for a single path. The cached Dataset is shared by
// every caller and is never modified.
type Provider struct {
	path    string
	reload  bool
	logger  *logrus.Logger
	load    func(string) (*Dataset, error)
	mu      sync.Mutex
	cached  *Dataset
	modTime time.Time
}

// NewProvider creates a provider for path. With reload set the file is loaded again
// whenever its modification time changes.
func NewProvider(path string, reload bool, logger *logrus.Logger) *Provider {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Provider{
		path:   path,
		reload: reload,
		logger: logger,
		load:   Open,
	}
}

// Path returns the file the provider reads.
func (p *Provider) Path() string {
	return p.path
}

// Dataset returns the memoized dataset, loading it on first use.
func (p *Provider) Dataset() (*Dataset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && !p.reload {
		return p.cached, nil
	}

	info, err := os.Stat(p.path)
	if err != nil {
		return nil, loadError(p.path, "cannot open file", err)
	}
	if p.cached != nil && info.ModTime().Equal(p.modTime) {
		return p.cached, nil
	}

	start := time.Now()
	ds, err := p.load(p.path)
	if err != nil {
		p.logger.WithError(err).WithField("path", p.path).Error("Failed to load dataset")
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"path":     p.path,
		"records":  ds.Len(),
		"duration": time.Since(start).String(),
		"reloaded": p.cached != nil,
	}).Info("Loaded dataset")

	p.cached = ds
	p.modTime = info.ModTime()
	return ds, nil
}
