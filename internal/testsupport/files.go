package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleHandlist is a small handlist covering collection fields, the
// combined MSS field and one unparseable reference.
const SampleHandlist = "Macomber handlist\n" +
	"MAC0001\n" +
	"Title: How the Virgin appeared\n" +
	"Text: Budge 1933, 12\n" +
	"PEth: 41.8 (21r-30v)\n" +
	"EMML: 4205 (25v + 51r + 26r)\n" +
	"MSS: CRA 53-17; VLVE 298 (151a); 272(113a)\n" +
	"MAC0002-A\n" +
	"Title: The second story\n" +
	"EMDL: (illegible)\n"

// SampleIncipits holds one incipit for the CRA reference of SampleHandlist.
const SampleIncipits = "1,ወሀሎ፡ ፩ብእሲ,CRA,53,\n"

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
