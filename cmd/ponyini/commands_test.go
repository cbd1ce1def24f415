package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/pack"
)

const pipCanonical = `Name,"Pip Squeak"
Behavior,stand,0.5,3,1,0,"stand right.gif","stand left.gif",None,,,,false,0,0,,true,,,"0,0","0,0",false
Speak,hi,"Hello, there",,false,1
`

func TestParseFiles(t *testing.T) {
	defer func() { parseFlags.format = "text" }()
	useConfig(t, testConfig(t.TempDir()))
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), "Name,Pip\n\nSpeak,hi,Hello,{a.mp3,b.ogg}\n")

	parseFlags.format = "json"
	cmd, stdout, _ := newCommand()
	if err := parseFiles(cmd, []string{file}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var doc struct {
		Source string `json:"source"`
		Rows   []struct {
			Line   int   `json:"line"`
			Fields []any `json:"fields"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if doc.Source != file || len(doc.Rows) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	speak := doc.Rows[1]
	if speak.Line != 3 {
		t.Errorf("Speak row line = %d, want 3", speak.Line)
	}
	list, ok := speak.Fields[3].([]any)
	if !ok || len(list) != 2 || list[0] != "a.mp3" || list[1] != "b.ogg" {
		t.Errorf("Speak field 3 = %#v, want a nested list", speak.Fields[3])
	}

	parseFlags.format = "text"
	cmd, stdout, _ = newCommand()
	if err := parseFiles(cmd, []string{file}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if want := `   3  "Speak" "hi" "Hello" {"a.mp3" "b.ogg"}`; !strings.Contains(stdout.String(), want) {
		t.Errorf("text output lacks %q:\n%s", want, stdout)
	}
}

func TestParseFiles_Diagnostics(t *testing.T) {
	useConfig(t, testConfig(t.TempDir()))
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), "Name,\"Pip\n")

	cmd, stdout, _ := newCommand()
	err := parseFiles(cmd, []string{file})
	if !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("parse error = %v, want ErrProblemsFound", err)
	}
	if !strings.Contains(stdout.String(), "warning") && !strings.Contains(stdout.String(), "error") {
		t.Errorf("diagnostic not printed:\n%s", stdout)
	}
}

func TestFormatFiles(t *testing.T) {
	defer func() { fmtFlags.write, fmtFlags.check = false, false }()
	useConfig(t, testConfig(t.TempDir()))
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), pipIni)

	cmd, stdout, _ := newCommand()
	if err := formatFiles(cmd, []string{file}); err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if stdout.String() != pipCanonical {
		t.Errorf("fmt output = %q, want %q", stdout.String(), pipCanonical)
	}

	fmtFlags.check = true
	cmd, stdout, _ = newCommand()
	if err := formatFiles(cmd, []string{file}); !errors.Is(err, cli.ErrProblemsFound) {
		t.Errorf("--check on a non-canonical file = %v, want ErrProblemsFound", err)
	}
	if strings.TrimSpace(stdout.String()) != file {
		t.Errorf("--check output = %q, want the file name", stdout.String())
	}

	fmtFlags.check, fmtFlags.write = false, true
	cmd, _, _ = newCommand()
	if err := formatFiles(cmd, []string{file}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	data, _ := os.ReadFile(file)
	if string(data) != pipCanonical {
		t.Errorf("rewritten file = %q", data)
	}

	fmtFlags.check, fmtFlags.write = true, false
	cmd, _, _ = newCommand()
	if err := formatFiles(cmd, []string{file}); err != nil {
		t.Errorf("--check on a canonical file = %v", err)
	}

	fmtFlags.write = true
	if err := formatFiles(cmd, []string{file}); cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("--write with --check = %v, want a usage error", err)
	}
}

func TestFormatFiles_UnrepresentableRow(t *testing.T) {
	defer func() { fmtFlags.write = false }()
	useConfig(t, testConfig(t.TempDir()))
	const ini = "'keep me\nName,Pip\nSpeak,hello,He said \"hi\" there,{a.mp3},false,1\n"
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), ini)

	fmtFlags.write = true
	cmd, _, stderr := newCommand()
	if err := formatFiles(cmd, []string{file}); !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("fmt -w = %v, want ErrProblemsFound", err)
	}
	if !strings.Contains(stderr.String(), "not representable") || !strings.Contains(stderr.String(), "not rewritten") {
		t.Errorf("stderr = %q", stderr)
	}
	data, _ := os.ReadFile(file)
	if string(data) != ini {
		t.Errorf("file was rewritten: %q", data)
	}
}

func TestFormatFiles_Stdin(t *testing.T) {
	useConfig(t, testConfig(t.TempDir()))

	cmd, stdout, _ := newCommand()
	cmd.SetIn(strings.NewReader("'x\r\nName , Pip\r\n"))
	if err := formatFiles(cmd, []string{"-"}); err != nil {
		t.Fatalf("fmt - failed: %v", err)
	}
	if stdout.String() != "Name,Pip\n" {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestLintFiles(t *testing.T) {
	defer func() { lintFlags.format, lintFlags.strict, lintFlags.noFiles = "text", false, false }()
	useConfig(t, testConfig(t.TempDir()))
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "pony.ini"), "Name,Pip\nBehavior,stand,0.5,3,1,0,r.gif,l.gif,Al,,,,false,0,0,,true,,,\"0,0\",\"0,0\",false\n")
	writeFile(t, filepath.Join(dir, "r.gif"), "gif")

	lintFlags.format = "json"
	cmd, stdout, _ := newCommand()
	if err := lintFiles(cmd, []string{file}); err != nil {
		t.Fatalf("lint without --strict should pass on warnings: %v", err)
	}

	var view struct {
		Files []struct {
			Diagnostics []struct {
				Severity   string `json:"severity"`
				Type       string `json:"type"`
				Code       string `json:"code"`
				Suggestion string `json:"suggestion"`
			} `json:"diagnostics"`
		} `json:"files"`
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if view.Errors != 0 {
		t.Errorf("errors = %d, want 0", view.Errors)
	}
	codes := map[string]int{}
	for _, d := range view.Files[0].Diagnostics {
		if d.Type == "lint" {
			codes[d.Code]++
		}
	}
	if codes["unknown movement"] != 1 || codes["missing file"] != 1 {
		t.Errorf("lint codes = %v, want one unknown movement and one missing file", codes)
	}

	lintFlags.strict = true
	cmd, _, _ = newCommand()
	if err := lintFiles(cmd, []string{file}); !errors.Is(err, cli.ErrProblemsFound) {
		t.Errorf("lint --strict = %v, want ErrProblemsFound", err)
	}

	lintFlags.noFiles = true
	cmd, stdout, _ = newCommand()
	_ = lintFiles(cmd, []string{file})
	if strings.Contains(stdout.String(), "missing file") {
		t.Error("--no-files should skip the file check")
	}
}

func TestLintFiles_CoercionErrors(t *testing.T) {
	defer func() { lintFlags.format = "text" }()
	cfg := testConfig(t.TempDir())
	cfg.Conversion.StrictCoercion = true
	useConfig(t, cfg)

	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"),
		"Name,Pip\nSpeak,a,A,,maybe\nSpeak,b,B,,perhaps\n")

	cmd, stdout, _ := newCommand()
	err := lintFiles(cmd, []string{file})
	if !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("lint = %v, want ErrProblemsFound", err)
	}
	if !strings.Contains(stdout.String(), "2 errors") {
		t.Errorf("both bad rows should be reported even with strict coercion:\n%s", stdout)
	}
}

func TestConvertFiles(t *testing.T) {
	defer func() { convertFlags.format = "" }()
	useConfig(t, testConfig(t.TempDir()))
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), pipIni)

	cmd, stdout, _ := newCommand()
	if err := convertFiles(cmd, []string{file}); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var out struct {
		Behavior map[string]struct {
			RightImage string `json:"rightimage"`
			Movement   string `json:"movement"`
		} `json:"behavior"`
		Speeches map[string]struct {
			Text string `json:"text"`
		} `json:"speeches"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if b := out.Behavior["stand"]; b.Movement != "None" {
		t.Errorf("stand = %+v", b)
	}
	if s := out.Speeches["hi"]; s.Text != "Hello, there" {
		t.Errorf("hi = %+v", s)
	}

	convertFlags.format = "yaml"
	cmd, stdout, _ = newCommand()
	if err := convertFiles(cmd, []string{file}); err != nil {
		t.Fatalf("convert --format yaml failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "behavior:") {
		t.Errorf("yaml output:\n%s", stdout)
	}

	convertFlags.format = "text"
	if err := convertFiles(cmd, []string{file}); cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("text output for files = %v, want a usage error", err)
	}
}

func TestConvertFiles_StrictCoercion(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Conversion.StrictCoercion = true
	useConfig(t, cfg)
	file := writeFile(t, filepath.Join(t.TempDir(), "pony.ini"), "Name,Pip\nSpeak,a,A,,maybe\n")

	cmd, stdout, stderr := newCommand()
	if err := convertFiles(cmd, []string{file}); !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("convert = %v, want ErrProblemsFound", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be printed for a failed file, got %q", stdout)
	}
	if !strings.Contains(stderr.String(), "maybe") {
		t.Errorf("the coercion failure should be reported:\n%s", stderr)
	}
}

func TestRunPipeline(t *testing.T) {
	defer func() { runFlags.format = "text" }()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Pip", "pony.ini"), pipIni)
	writeFile(t, filepath.Join(root, "Bad", "pony.ini"), "Name,\"Bad\n")

	cfg := testConfig(root)
	cfg.Conversion.StrictSyntax = true
	useConfig(t, cfg)

	runFlags.format = "json"
	cmd, stdout, _ := newCommand()
	err := runPipeline(cmd, nil)
	if !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("run = %v, want ErrProblemsFound for the bad pony", err)
	}

	var view struct {
		RunID   string `json:"run_id"`
		Trigger string `json:"trigger"`
		Repair  struct {
			Ponies []struct {
				Dir   string `json:"dir"`
				Error string `json:"error"`
			} `json:"ponies"`
		} `json:"repair"`
		Convert struct {
			Ponies []struct {
				Dir     string `json:"dir"`
				Written bool   `json:"written"`
			} `json:"ponies"`
		} `json:"convert"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if view.RunID == "" || view.Trigger != pack.TriggerManual {
		t.Errorf("run_id = %q, trigger = %q", view.RunID, view.Trigger)
	}
	if len(view.Repair.Ponies) != 2 || view.Repair.Ponies[0].Dir != "Bad" || view.Repair.Ponies[0].Error == "" {
		t.Errorf("repair = %+v", view.Repair)
	}
	if len(view.Convert.Ponies) != 1 || !view.Convert.Ponies[0].Written {
		t.Errorf("convert = %+v", view.Convert)
	}
	if _, err := os.Stat(filepath.Join(root, "Pip", pack.ConfigName)); err != nil {
		t.Errorf("config.json not written: %v", err)
	}
}

func TestRepairPack(t *testing.T) {
	defer func() { repairFlags.names, repairFlags.format = false, "text" }()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Pip Squeak", "pony.ini"), pipIni)
	useConfig(t, testConfig(root))

	repairFlags.names = true
	cmd, stdout, _ := newCommand()
	if err := repairPack(cmd, nil); err != nil {
		t.Fatalf("repair failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "names: 1 renamed, 0 skipped") {
		t.Errorf("output lacks the rename summary:\n%s", out)
	}
	if !strings.Contains(out, "repair: 1 ponies, 1 written, 0 failed") {
		t.Errorf("output lacks the repair summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "Pip_Squeak", pack.RepairedName)); err != nil {
		t.Errorf("_pony.ini not written in the renamed directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "Pip_Squeak", pack.ConfigName)); err == nil {
		t.Error("repair must not convert")
	}
}

func TestConvertPack_RequiresRepair(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Pip", "pony.ini"), pipIni)
	useConfig(t, testConfig(root))

	cmd, stdout, _ := newCommand()
	if err := convertFiles(cmd, nil); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "convert: 0 ponies") {
		t.Errorf("without _pony.ini nothing is converted:\n%s", stdout)
	}
}
