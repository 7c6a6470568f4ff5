package prose

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jdkato/prose/v2"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

const warmupText = "Jane Doe works as an engineer in London."

// Registry owns the process-wide tagging/NER model. The model is built on
// first use and shared read-only afterwards.
type Registry struct {
	once   sync.Once
	mu     sync.RWMutex
	model  *prose.Model
	err    error
	closed bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Init loads the model eagerly so startup surfaces a broken model as a
// configuration error instead of the first request.
func (r *Registry) Init() error {
	_, err := r.Model()
	return err
}

func (r *Registry) Model() (*prose.Model, error) {
	r.once.Do(func() {
		model, err := loadModel()
		r.mu.Lock()
		r.model, r.err = model, err
		r.mu.Unlock()
	})

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, domain.WrapError(domain.ErrConfig, "load nlp model", errors.New("registry closed"))
	}
	return r.model, r.err
}

// Close drops the model; later Model calls fail.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.model = nil
	return nil
}

func loadModel() (model *prose.Model, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			model = nil
			err = domain.WrapError(domain.ErrConfig, "load nlp model", fmt.Errorf("panic: %v", rec))
		}
	}()

	doc, err := prose.NewDocument(warmupText)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfig, "load nlp model", err)
	}
	if doc.Model == nil {
		return nil, domain.WrapError(domain.ErrConfig, "load nlp model", errors.New("no model attached"))
	}
	return doc.Model, nil
}
