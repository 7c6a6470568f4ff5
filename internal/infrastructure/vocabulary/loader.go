package vocabulary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type file struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Set is the controlled keyword vocabulary. Entries are trimmed and
// lower-cased on load, and lookups are exact.
type Set struct {
	words map[string]struct{}
}

func New(keywords ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			s.words[kw] = struct{}{}
		}
	}
	return s
}

// Load reads a JSON or YAML file holding a top-level "keywords" list. Any
// failure is a configuration error: the service must not start without it.
func Load(path string) (*Set, error) {
	const op = "load vocabulary"

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfig, op, err)
	}

	var parsed file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &parsed)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &parsed)
	default:
		err = fmt.Errorf("unsupported vocabulary file type %q", ext)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfig, op, err)
	}

	set := New(parsed.Keywords...)
	if set.Size() == 0 {
		return nil, domain.WrapError(domain.ErrConfig, op, errors.New("vocabulary has no keywords"))
	}
	return set, nil
}

func (s *Set) Contains(keyword string) bool {
	_, ok := s.words[keyword]
	return ok
}

func (s *Set) Size() int {
	return len(s.words)
}
