package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

const sampleCSV = `SEQN,RIAGENDR,DMDEDUC2,DMDMARTL,RIDAGEYR,BMXWT,BPXSY1,BPXSY2,BPXDI1,BPXDI2
1,1,1,1,25,70.5,120,118,80,78
2,2,5,5,62,61.2,135,130,85,84
3,1,3,77,17,88.0,112,110,70,72
4,2,,99,81,,140,138,90,88
5,1,8,1,45,92.3,128,126,82,80
`

// resetFlags clears values and Changed state left over from earlier invocations.
func resetFlags() {
	for _, name := range []string{"data", "http-timeout", "debug", "config"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
	for _, name := range []string{"output", "figures-dir"} {
		if fl := reportCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
	if fl := serveCmd.Flags().Lookup("addr"); fl != nil {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	cfg = nil
}

// execCmd runs the root command with args and returns stdout and the error.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir and writes the sample CSV into it.
func isolate(t *testing.T) (home, csvPath string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	csvPath = filepath.Join(home, "nhanes.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return home, csvPath
}

func TestCLI_ReportWritesPageAndFigures(t *testing.T) {
	home, csvPath := isolate(t)
	out := filepath.Join(home, "site", "report.html")
	figs := filepath.Join(home, "figs")

	runCmd(t, "report", "--data", csvPath, "-o", out, "--figures-dir", figs)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(b)
	headings := []string{"Education Level", "Body Weight", "Comparing Distributions", "Stratification", "Civil Status", "App repository"}
	last := -1
	for _, h := range headings {
		i := strings.Index(html, "<h2>"+h+"</h2>")
		if i < 0 {
			t.Fatalf("missing heading %q", h)
		}
		if i < last {
			t.Fatalf("heading %q out of order", h)
		}
		last = i
	}
	if !strings.Contains(html, "Frequency Table Education Label") {
		t.Fatalf("pie figure missing from page")
	}

	entries, err := os.ReadDir(figs)
	if err != nil {
		t.Fatalf("read figures dir: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("expected 7 exported figures, got %d", len(entries))
	}
	if _, err := os.Stat(filepath.Join(figs, "education-pie.html")); err != nil {
		t.Fatalf("education figure not exported: %v", err)
	}
}

func TestCLI_SummaryPrintsChartSummaries(t *testing.T) {
	_, csvPath := isolate(t)

	out := runCmd(t, "summary", "--data", csvPath)

	for _, want := range []string{
		"Analysis of univariate data - NHANES case study",
		"[chart 1] Frequency Table Education Label",
		"[chart 3] Distributions Comparisons (BPXSY1, BPXSY2, BPXDI1, BPXDI2)",
		"[chart 7] Civil Status Frequency Table (Female, Male)",
		"MEDIAN",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ReportFailsFastOnHTTPStatus(t *testing.T) {
	home, _ := isolate(t)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	out := filepath.Join(home, "report.html")
	_, err := execCmd(t, "report", "--data", srv.URL+"/nhanes.csv", "-o", out)
	var se *survey.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", se.StatusCode)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected a single request, got %d", hits)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no report should be written on failure")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _ := isolate(t)

	runCmd(t, "config", "set", "age_bins", "18, 40, 80")
	runCmd(t, "config", "set", "preview_rows", "5")
	if _, err := os.Stat(filepath.Join(home, ".nhanes", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}

	out := runCmd(t, "config", "show")
	for _, want := range []string{"age_bins: 18,40,80", "preview_rows: 5", "recode gender: RIAGENDR -> RIAGENDRx (1=Male, 2=Female)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}

	if _, err := execCmd(t, "config", "set", "age_bins", "40,18"); err == nil {
		t.Fatalf("expected error for decreasing age_bins")
	}
	if _, err := execCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
