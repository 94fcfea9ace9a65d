package fixtures

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// SampleLines is the smallest realistic input:
// two points around a comment.
var SampleLines = []string{
	"0.001 1e-10",
	"# comment",
	"0.01 5e-11",
}

// TestDataGenerator writes Allan deviation data files for tests
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// WriteLines writes lines joined by '\n' to name and returns the full path.
func (g *TestDataGenerator) WriteLines(name string, lines ...string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSample writes SampleLines to name.
func (g *TestDataGenerator) WriteSample(name string) (string, error) {
	return g.WriteLines(name, SampleLines...)
}

// WriteWhiteNoise writes an octave-spaced white-FM curve, sigma(tau) =
// sigma1 / sqrt(tau), from tau0 for n points, preceded by a header comment.
func (g *TestDataGenerator) WriteWhiteNoise(name string, tau0, sigma1 float64, n int) (string, error) {
	lines := []string{"# tau[s] adev"}
	tau := tau0
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("%g %g", tau, sigma1/math.Sqrt(tau)))
		tau *= 2
	}
	return g.WriteLines(name, lines...)
}
