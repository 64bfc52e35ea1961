package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/statementizer/internal/model"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addSegmentFlags(cmd)
	return cmd
}

func newViper(t *testing.T, file string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix("STATEMENTIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(file)); err != nil {
			t.Fatal(err)
		}
	}
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfigFrom(newViper(t, ""), newFlagCommand())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	want := model.DefaultConfig()
	if cfg.Input.TextColumn != want.Input.TextColumn {
		t.Errorf("expected text column %q, got %q", want.Input.TextColumn, cfg.Input.TextColumn)
	}
	if cfg.Segmentation.Strategy != want.Segmentation.Strategy {
		t.Errorf("expected strategy %q, got %q", want.Segmentation.Strategy, cfg.Segmentation.Strategy)
	}
	if cfg.Cache.TTL != want.Cache.TTL {
		t.Errorf("expected cache TTL %v, got %v", want.Cache.TTL, cfg.Cache.TTL)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	file := `
input:
  id_column: FileID
  text_column: FileText
segmentation:
  strategy: sentence
cache:
  ttl: 5m
`
	t.Setenv("STATEMENTIZER_INPUT_TEXT_COLUMN", "EnvText")
	t.Setenv("STATEMENTIZER_SEGMENTATION_STRATEGY", "whole")

	cmd := newFlagCommand()
	if err := cmd.Flags().Set("strategy", "linguistic"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("no-cache", "true"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFrom(newViper(t, file), cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Input.IDColumn != "FileID" {
		t.Errorf("file should beat defaults: got %q", cfg.Input.IDColumn)
	}
	if cfg.Input.TextColumn != "EnvText" {
		t.Errorf("env should beat file: got %q", cfg.Input.TextColumn)
	}
	if cfg.Segmentation.Strategy != "linguistic" {
		t.Errorf("flag should beat env: got %q", cfg.Segmentation.Strategy)
	}
	if cfg.Cache.TTL.Minutes() != 5 {
		t.Errorf("expected 5m TTL from file, got %v", cfg.Cache.TTL)
	}
	if cfg.Cache.Enabled {
		t.Error("expected --no-cache to disable the cache")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Set("strategy", "telepathy"); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfigFrom(newViper(t, ""), cmd)
	if !errors.Is(err, model.ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}

	cmd = newFlagCommand()
	if err := cmd.Flags().Set("text", ""); err != nil {
		t.Fatal(err)
	}
	_, err = loadConfigFrom(newViper(t, ""), cmd)
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".statementizer", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Statementizer Configuration File") {
		t.Errorf("missing header comment:\n%s", data)
	}

	// The written file loads back to the defaults
	cfg, err := loadConfigFrom(newViper(t, string(data)), newFlagCommand())
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Cache.TTL != model.DefaultConfig().Cache.TTL {
		t.Errorf("expected default TTL, got %v", cfg.Cache.TTL)
	}
	if cfg.Server.MaxUploadBytes != model.DefaultConfig().Server.MaxUploadBytes {
		t.Errorf("expected default upload limit, got %d", cfg.Server.MaxUploadBytes)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestOutputFormat(t *testing.T) {
	cfg := model.DefaultConfig()
	if f, err := outputFormat(cfg); err != nil || f != "csv" {
		t.Errorf("expected csv default, got %q (%v)", f, err)
	}

	cfg.Output.Format = "pq"
	if f, err := outputFormat(cfg); err != nil || f != "parquet" {
		t.Errorf("expected parquet, got %q (%v)", f, err)
	}

	cfg.Output.Format = "xlsx"
	if _, err := outputFormat(cfg); !errors.Is(err, model.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "posts.csv")
	if err := os.WriteFile(in, []byte("ID,Text\n1,First one. Second one.\n2,\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "statements.csv")

	stdout, stderr, err := executeRoot(t, "split", in, "--strategy", "sentence", "--out", out, "--preview", "1")
	if err != nil {
		t.Fatalf("split failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "ID,Sentence ID,Context,Statement\n" +
		"1,1,First one. Second one.,First one.\n" +
		"1,2,First one. Second one.,Second one.\n"
	if string(data) != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", data, want)
	}

	if !strings.Contains(stderr, "Statements:   2") {
		t.Errorf("summary missing statement count:\n%s", stderr)
	}
	if !strings.Contains(stdout, "First one.") || strings.Contains(stdout, "Second one.\n") {
		t.Errorf("expected a one-row preview:\n%s", stdout)
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(good, []byte("ID,Text\n1,Hello. World.\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("Key,Body\n1,Hello.\n"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	_, stderr, err := executeRoot(t, "batch", good, bad, "--output-dir", outDir, "--concurrency", "2")
	if err == nil {
		t.Fatal("expected batch to report the failed file")
	}
	if !strings.Contains(stderr, "Failures:    1") {
		t.Errorf("expected one failure in summary:\n%s", stderr)
	}

	if _, err := os.Stat(filepath.Join(outDir, "good.statements.csv")); err != nil {
		t.Errorf("expected output for good.csv: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.statements.csv")); err == nil {
		t.Error("expected no output for bad.csv")
	}
}

func TestStrategiesCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "strategies")
	if err != nil {
		t.Fatalf("strategies failed: %v", err)
	}

	for _, s := range model.Strategies() {
		if !strings.Contains(stdout, string(s)) {
			t.Errorf("missing strategy %s in:\n%s", s, stdout)
		}
	}
	if !strings.Contains(stdout, "aliases: nlp, punkt") {
		t.Errorf("missing linguistic aliases in:\n%s", stdout)
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "posts.statements.csv")
	content := "Statement\nHurry now\nVIP members only\nHello\n"
	if err := os.WriteFile(in, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := executeRoot(t, "classify", in)
	if err != nil {
		t.Fatalf("classify failed: %v\n%s", err, stderr)
	}

	// Default output sits next to the input
	out := filepath.Join(dir, "posts.statements.classified.csv")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected default output %s: %v", out, err)
	}
	want := "Statement,detected_tactics,exclusive_marketing,urgency_marketing\n" +
		"Hurry now,urgency_marketing,false,true\n" +
		"VIP members only,exclusive_marketing,true,false\n" +
		"Hello,,false,false\n"
	if string(data) != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", data, want)
	}

	if !strings.Contains(stderr, "Classified 3 rows") {
		t.Errorf("missing row count:\n%s", stderr)
	}
	counts := map[string]string{}
	for _, line := range strings.Split(stderr, "\n") {
		if f := strings.Fields(line); len(f) == 2 {
			counts[f[0]] = f[1]
		}
	}
	if counts["urgency_marketing"] != "1" || counts["exclusive_marketing"] != "1" {
		t.Errorf("unexpected per-tactic counts %v in:\n%s", counts, stderr)
	}

	// A custom dictionary replaces the built-in tactics
	dict := filepath.Join(dir, "tactics.yaml")
	if err := os.WriteFile(dict, []byte("greeting:\n  - hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	custom := filepath.Join(dir, "custom.csv")
	if _, stderr, err := executeRoot(t, "classify", in, "--dict", dict, "--out", custom); err != nil {
		t.Fatalf("classify with dictionary failed: %v\n%s", err, stderr)
	}
	data, err = os.ReadFile(custom)
	if err != nil {
		t.Fatal(err)
	}
	want = "Statement,detected_tactics,greeting\n" +
		"Hurry now,,false\n" +
		"VIP members only,,false\n" +
		"Hello,greeting,true\n"
	if string(data) != want {
		t.Errorf("unexpected custom output:\n%s\nwant:\n%s", data, want)
	}
}
