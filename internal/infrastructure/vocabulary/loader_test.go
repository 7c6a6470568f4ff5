package vocabulary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	set, err := Load(writeFile(t, "vocab.json", `{"keywords": ["Python", " SQL ", "machine learning", ""]}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Size() != 3 {
		t.Fatalf("expected 3 keywords, got %d", set.Size())
	}
	for _, kw := range []string{"python", "sql", "machine learning"} {
		if !set.Contains(kw) {
			t.Fatalf("expected %q in vocabulary", kw)
		}
	}
	if set.Contains("Python") {
		t.Fatalf("lookups must be exact on lower-cased entries")
	}
}

func TestLoadYAML(t *testing.T) {
	set, err := Load(writeFile(t, "vocab.yml", "keywords:\n  - go\n  - Kubernetes\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !set.Contains("kubernetes") || set.Size() != 2 {
		t.Fatalf("unexpected vocabulary size %d", set.Size())
	}
}

func TestLoadFailuresAreConfigErrors(t *testing.T) {
	cases := map[string]string{
		"missing":   filepath.Join(t.TempDir(), "nope.json"),
		"malformed": writeFile(t, "bad.json", `{"keywords": [`),
		"empty":     writeFile(t, "empty.json", `{"keywords": []}`),
		"extension": writeFile(t, "vocab.txt", "python"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(path); !domain.IsKind(err, domain.ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}

func TestShippedVocabularyLoads(t *testing.T) {
	set, err := Load(filepath.Join("..", "..", "..", "configs", "valid_keywords.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !set.Contains("python") || !set.Contains("sql") {
		t.Fatalf("expected core keywords in shipped vocabulary")
	}
}

// Keywords come from RAKE phrases and KeyBERT n-grams, which only contain word
// characters separated by spaces; punctuated entries like "c++" could never match.
func TestShippedVocabularyEntriesAreTokenizable(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "configs", "valid_keywords.json"))
	if err != nil {
		t.Fatalf("read vocabulary: %v", err)
	}
	var doc struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode vocabulary: %v", err)
	}
	tokenizable := regexp.MustCompile(`^\w+( \w+)*$`)
	for _, kw := range doc.Keywords {
		if !tokenizable.MatchString(kw) {
			t.Fatalf("keyword %q cannot be produced by the keyword extractors", kw)
		}
	}
}
