package main

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<Forecast>
	<SysAuthor>SMG</SysAuthor>
	<SysPubdate>2025-08-30 16:00</SysPubdate>
	<SysLanguage>English</SysLanguage>
	<TodaySituation>Hot and humid.</TodaySituation>
	<WeatherForecast>
		<ValidFor>2025-08-31</ValidFor>
		<WeatherDescription>Sunny periods.</WeatherDescription>
		<AstronomicalTide>NIL</AstronomicalTide>
	</WeatherForecast>
</Forecast>`

// feedServer serves the fixture and records how many requests arrived
func feedServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte(feedFixture))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// captureLog redirects package log output for the duration of a test
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

// isolateEnv keeps ambient configuration out of run()
func isolateEnv(t *testing.T, templatesDir string) {
	t.Helper()
	t.Setenv("SMGMD_CONFIG", "")
	t.Setenv("SMGMD_CACHE", "")
	t.Setenv("SMGMD_USER_AGENT", "")
	t.Setenv("SMGMD_TEMPLATES", templatesDir)
}

func TestRun_LangOverridesURLDetection(t *testing.T) {
	hits := 0
	srv := feedServer(t, &hits)
	isolateEnv(t, t.TempDir())
	captureLog(t)

	// The URL names the English feed; -lang pt must still win
	var out bytes.Buffer
	err := run([]string{"-lang", "pt", "-url", srv.URL + "/e_forecast.xml"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits != 1 {
		t.Errorf("expected the explicit URL to be fetched once, got %d requests", hits)
	}
	if !strings.Contains(out.String(), "Previsão Meteorológica de Macau") {
		t.Error("expected the Portuguese default template to be selected")
	}
	if !strings.Contains(out.String(), "Sem dados") {
		t.Error("expected the Portuguese tide fallback for the NIL sentinel")
	}
	if strings.Contains(out.String(), "No data") {
		t.Error("URL-detected English must not leak into the output")
	}
}

func TestRun_URLDetectionWithoutLang(t *testing.T) {
	hits := 0
	srv := feedServer(t, &hits)
	isolateEnv(t, t.TempDir())
	captureLog(t)

	var out bytes.Buffer
	if err := run([]string{"-url", srv.URL + "/e_forecast.xml"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "# Macau Weather Forecast") {
		t.Error("expected the English default template via URL detection")
	}
	if !strings.Contains(out.String(), "No data") {
		t.Error("expected the English tide fallback via URL detection")
	}
}

func TestRun_MarkerlessTemplateFallsBack(t *testing.T) {
	hits := 0
	srv := feedServer(t, &hits)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte("# No marker here\n{forecasts}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	isolateEnv(t, dir)
	logBuf := captureLog(t)

	var out bytes.Buffer
	err := run([]string{"-template", "bad.md", "-url", srv.URL + "/e_forecast.xml"}, &out)
	if err != nil {
		t.Fatalf("marker-less template must not abort the run: %v", err)
	}

	if !strings.Contains(logBuf.String(), "bad.md") || !strings.Contains(logBuf.String(), "built-in default") {
		t.Errorf("expected a fallback warning naming the template, got %q", logBuf.String())
	}
	if !strings.Contains(out.String(), "# Macau Weather Forecast") {
		t.Error("expected the built-in default template in the output")
	}
	if !strings.Contains(out.String(), "Hot and humid.") {
		t.Error("expected the feed's situation text in the output")
	}
}

func TestRun_MissingTemplateFileFallsBack(t *testing.T) {
	hits := 0
	srv := feedServer(t, &hits)
	isolateEnv(t, t.TempDir())
	logBuf := captureLog(t)

	var out bytes.Buffer
	err := run([]string{"-template", "nope.md", "-url", srv.URL + "/e_forecast.xml"}, &out)
	if err != nil {
		t.Fatalf("missing template must not abort the run: %v", err)
	}
	if !strings.Contains(logBuf.String(), "nope.md") {
		t.Errorf("expected a fallback warning naming the template, got %q", logBuf.String())
	}
	if !strings.Contains(out.String(), "# Macau Weather Forecast") {
		t.Error("expected the built-in default template in the output")
	}
}

func TestRun_FetchFailureEmitsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	isolateEnv(t, t.TempDir())
	captureLog(t)

	var out bytes.Buffer
	if err := run([]string{"-url", srv.URL + "/e_forecast.xml"}, &out); err == nil {
		t.Fatal("expected error for failed fetch, got nil")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on the fatal path, got %q", out.String())
	}
}

func TestRun_ParseFailureEmitsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<Forecast>"))
	}))
	defer srv.Close()
	isolateEnv(t, t.TempDir())
	captureLog(t)

	var out bytes.Buffer
	if err := run([]string{"-url", srv.URL + "/e_forecast.xml"}, &out); err == nil {
		t.Fatal("expected error for malformed feed, got nil")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on the fatal path, got %q", out.String())
	}
}

func TestRun_ListTemplates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.md", "zulu.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	isolateEnv(t, dir)
	captureLog(t)

	var out bytes.Buffer
	if err := run([]string{"-list-templates"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Available templates:\n  - alpha.md\n  - zulu.md\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}
