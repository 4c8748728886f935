package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aviarylab/chirp/pkg/cluster"
)

func sampleResult() *cluster.Result {
	return &cluster.Result{
		ClusterLabels:  []int{0, 0, 1, -1},
		Embeddings:     [][]float64{{1, 2}, {1.5, 2.5}, {8, 9}, {-3, -3}},
		ClusterCenters: [][]float64{{1.25, 2.25}, {8, 9}},
		ValidIndices:   []int{0, 1, 3, 4},
		TotalClusters:  2,
		NoisePoints:    1,
	}
}

func TestOutputJSONContract(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(sampleResult(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Output: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{
		"cluster_labels", "umap_embeddings", "cluster_centers",
		"valid_indices", "total_clusters", "noise_points",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
}

func TestOutputYAML(t *testing.T) {
	var buf bytes.Buffer
	err := Output(sampleResult(), OutputOptions{Format: FormatYAML, Writer: &buf})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), "total_clusters: 2") {
		t.Errorf("YAML output missing total_clusters:\n%s", buf.String())
	}
}

func TestOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := Output(sampleResult(), OutputOptions{File: path}); err != nil {
		t.Fatalf("Output: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	var decoded cluster.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file output is not valid JSON: %v", err)
	}
	if decoded.TotalClusters != 2 || decoded.NoisePoints != 1 {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}

func TestOutputUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(sampleResult(), OutputOptions{Format: "xml", Writer: &buf}); err == nil {
		t.Error("unsupported format accepted")
	}
}

func TestRunSummary(t *testing.T) {
	out := RunSummary(sampleResult(), 6, DefaultTheme)

	for _, want := range []string{"4/6", "2", "#0×2", "#1×1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("summary has %d lines, want 3:\n%s", lines, out)
	}
}
