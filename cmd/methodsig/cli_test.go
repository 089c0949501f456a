// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/methodsig/internal/bootstrap"
	"github.com/kraklabs/methodsig/internal/errors"
	mstest "github.com/kraklabs/methodsig/internal/testing"
	"github.com/kraklabs/methodsig/internal/ui"
	"github.com/kraklabs/methodsig/pkg/ingestion"
	"github.com/kraklabs/methodsig/pkg/sigparse"
)

type testCLI struct {
	*cli
	out *bytes.Buffer
	err *bytes.Buffer
}

// newTestCLI returns a cli with default configuration, colors off, a
// discarded log and captured output.
func newTestCLI(t *testing.T, globals GlobalFlags, stdin string) *testCLI {
	t.Helper()

	originalNoColor, originalOutput := color.NoColor, ui.Output
	t.Cleanup(func() { color.NoColor, ui.Output = originalNoColor, originalOutput })
	color.NoColor = true

	var out, errOut bytes.Buffer
	ui.Output = &out

	return &testCLI{
		cli: &cli{
			globals: globals,
			config:  bootstrap.DefaultConfig(),
			workDir: t.TempDir(),
			logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			stdin:   strings.NewReader(stdin),
			stdout:  &out,
			stderr:  &errOut,
		},
		out: &out,
		err: &errOut,
	}
}

func requireUserError(t *testing.T, err error, exitCode int) *errors.UserError {
	t.Helper()
	require.Error(t, err)
	var ue *errors.UserError
	require.True(t, stderrors.As(err, &ue), "expected *errors.UserError, got %T: %v", err, err)
	assert.Equal(t, exitCode, ue.ExitCode, ue.Error())
	return ue
}

func TestDispatch_UnknownCommand(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	ue := requireUserError(t, c.dispatch([]string{"frobnicate"}), errors.ExitInput)
	assert.Contains(t, ue.Cause, `"frobnicate"`)
}

func TestParse_SingleSignature(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	err := c.dispatch([]string{"parse", "public  void log(String message,int level)"})
	require.NoError(t, err)

	assert.Equal(t, "ok        public void log(String message, int level)\n", c.out.String())
}

func TestParse_SingleMalformed(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	err := c.runParse([]string{"void run(int)"})

	ue := requireUserError(t, err, errors.ExitInput)
	assert.True(t, stderrors.Is(err, sigparse.ErrMalformedSignature))
	assert.Equal(t, "Malformed signature: void run(int)", ue.Message)
	assert.Empty(t, c.out.String())
}

func TestParse_SingleRejected(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")
	c.config.Limits.MaxSignatureBytes = 8

	ue := requireUserError(t, c.runParse([]string{"public void tooLong()"}), errors.ExitInput)
	assert.Equal(t, "Signature rejected", ue.Message)
	assert.Equal(t, "signature exceeds 8 bytes", ue.Cause)
}

func TestParse_MixedArguments(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	err := c.runParse([]string{"int size()", "a b c d()"})

	ue := requireUserError(t, err, errors.ExitInput)
	assert.Equal(t, "1 of 2 signatures did not parse", ue.Message)

	lines := strings.Split(strings.TrimSuffix(c.out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ok        int size()", lines[0])
	assert.Equal(t, "malformed a b c d()", lines[1])
	assert.Contains(t, lines[2], "arg:2")
	assert.Contains(t, lines[2], "prefix")
}

func TestParse_QuietHidesParsed(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{Quiet: true}, "")

	require.NoError(t, c.runParse([]string{"int a()", "int b()"}))
	assert.Empty(t, c.out.String())
}

func TestParse_JSONArguments(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{JSON: true, Quiet: true}, "")

	require.NoError(t, c.runParse([]string{"public void log(String message)", "int size()"}))

	var results []ingestion.Result
	require.NoError(t, json.Unmarshal(c.out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, ingestion.StatusParsed, results[0].Status)
	assert.Equal(t, "public", results[0].Signature.AccessModifier)
	assert.Equal(t, []sigparse.Argument{}, results[1].Signature.Arguments)
	assert.Contains(t, c.out.String(), `"arguments": []`)
}

func TestParse_StdinJSONLines(t *testing.T) {
	stdin := "int a()\n\n   \nvoid b(int x)\r\nvoid c(int)\n"
	c := newTestCLI(t, GlobalFlags{JSON: true, Quiet: true}, stdin)

	err := c.runParse([]string{"--stdin"})
	requireUserError(t, err, errors.ExitInput)

	var results []ingestion.Result
	scanner := bufio.NewScanner(bytes.NewReader(c.out.Bytes()))
	for scanner.Scan() {
		var r ingestion.Result
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r), scanner.Text())
		results = append(results, r)
	}
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, 4, results[1].Line)
	assert.Equal(t, "void b(int x)", results[1].Text)
	assert.Equal(t, ingestion.StatusParsed, results[1].Status)
	assert.Equal(t, "stdin", results[2].Source)
	assert.Equal(t, ingestion.StatusMalformed, results[2].Status)
	assert.Equal(t, sigparse.StageArgument, results[2].Stage)
}

func TestParse_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no signatures", nil, "No signatures given"},
		{"stdin with arguments", []string{"--stdin", "int a()"}, "Invalid arguments"},
		{"unknown flag", []string{"--bogus"}, "Invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, GlobalFlags{}, "")
			ue := requireUserError(t, c.runParse(tt.args), errors.ExitInput)
			assert.Equal(t, tt.want, ue.Message)
		})
	}
}

func TestParse_EmptyStdin(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "\n\n")

	ue := requireUserError(t, c.runParse([]string{"--stdin"}), errors.ExitInput)
	assert.Equal(t, "No signatures given", ue.Message)
}

func TestParse_Help(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	require.NoError(t, c.runParse([]string{"--help"}))
	assert.Contains(t, c.err.String(), "Usage: methodsig parse")
	assert.Contains(t, c.err.String(), "--stdin")
}

func javaProject(t *testing.T) string {
	t.Helper()
	return mstest.WriteJavaTree(t, map[string]string{
		"src/Api.java": mstest.JavaClass("Api",
			"public void ping()",
			"public static int count(int[] xs)",
			"void put(Map<String, Integer> m)",
		),
		"src/Util.java": mstest.JavaClass("Util",
			"static <T> T first(T[] items)",
		),
		"README.md": "not java",
	})
}

func TestScan_GenericsAreRejected(t *testing.T) {
	root := javaProject(t)
	c := newTestCLI(t, GlobalFlags{}, "")

	require.NoError(t, c.runScan([]string{root}))

	out := c.out.String()
	api := filepath.Join(root, "src", "Api.java")
	assert.Contains(t, out, api+":8 rejected  void put(Map<String, Integer> m)")
	assert.Contains(t, out, "    unsupported: generic type Map<String, Integer>\n")
	assert.Contains(t, out, "rejected  T first(T[] items)")
	assert.NotContains(t, out, "public void ping()")
	assert.NotContains(t, out, " malformed void")
	assert.Contains(t, out, "Scan Summary")
	assert.Contains(t, out, "Files:        2")
	assert.Contains(t, out, "Parsed:       2")
	assert.Contains(t, out, "Malformed:    0")
	assert.Contains(t, out, "Rejected:     2")
	assert.NotContains(t, out, "Malformed by stage:")
	assert.Contains(t, out, "skipped not_java: 1")
	assert.Contains(t, out, "✓ No malformed declarations (2 rejected)\n")
}

func TestScan_OnlyMalformedJSON(t *testing.T) {
	root := javaProject(t)
	c := newTestCLI(t, GlobalFlags{JSON: true, Quiet: true}, "")

	require.NoError(t, c.runScan([]string{"--only-malformed", "--workers", "2", root}))

	var report ingestion.Report
	require.NoError(t, json.Unmarshal(c.out.Bytes(), &report))
	assert.Empty(t, report.Results)
	assert.Equal(t, 2, report.Parsed)
	assert.Zero(t, report.Malformed)
	assert.Equal(t, 2, report.Rejected)
}

func TestScan_NoJavaFiles(t *testing.T) {
	root := mstest.WriteJavaTree(t, map[string]string{"README.md": "# notes"})
	c := newTestCLI(t, GlobalFlags{}, "")

	require.NoError(t, c.runScan([]string{root}))
	assert.Contains(t, c.out.String(), "ℹ No .java files found\n")
	assert.Contains(t, c.out.String(), "✓ All declarations parsed\n")
}

func malformedReport() *ingestion.Report {
	return &ingestion.Report{
		Results: []ingestion.Result{{
			Input:  ingestion.Input{Source: "src/Api.java", Line: 8, Text: "void run(int)"},
			Status: ingestion.StatusMalformed,
			Stage:  sigparse.StageArgument,
			Error:  `malformed signature "void run(int)": argument 1 "int" has 1 tokens, want 2`,
		}},
		Parsed:           3,
		Malformed:        1,
		MalformedByStage: map[sigparse.Stage]int{sigparse.StageArgument: 1},
		Files:            1,
	}
}

func TestPrintScanReport_Malformed(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	c.printScanReport(malformedReport(), false)

	out := c.out.String()
	assert.Contains(t, out, "src/Api.java:8 malformed void run(int)\n")
	assert.Contains(t, out, `argument 1 "int" has 1 tokens`)
	assert.Contains(t, out, "Declarations: 4")
	assert.Contains(t, out, "Malformed by stage:\n  argument:    1\n")
	assert.Contains(t, out, "✗ 1 malformed method declarations\n")
}

func TestPrintScanReport_Quiet(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{Quiet: true}, "")

	c.printScanReport(malformedReport(), true)

	assert.Equal(t, "src/Api.java:8 malformed void run(int)\n"+
		`    malformed signature "void run(int)": argument 1 "int" has 1 tokens, want 2`+"\n", c.out.String())
}

func TestScanFailure(t *testing.T) {
	ue := requireUserError(t, scanFailure(malformedReport()), errors.ExitInput)
	assert.Equal(t, "1 malformed method declarations", ue.Message)
	assert.Equal(t, "1 of 4 declarations do not fit '[access] returnType name(type name, ...)'", ue.Cause)

	assert.NoError(t, scanFailure(&ingestion.Report{Parsed: 2, Rejected: 5}))
}

func TestScan_Clean(t *testing.T) {
	root := mstest.WriteJavaTree(t, map[string]string{
		"A.java": mstest.JavaClass("A", "public void a()", "int b(int x, String y)"),
	})
	c := newTestCLI(t, GlobalFlags{Verbose: 1}, "")

	require.NoError(t, c.runScan([]string{root}))
	assert.Contains(t, c.out.String(), "ok        public void a()")
	assert.Contains(t, c.out.String(), "Malformed:    0")
	assert.Contains(t, c.out.String(), "✓ All declarations parsed\n")
}

func TestScan_ExcludeFlag(t *testing.T) {
	root := javaProject(t)
	c := newTestCLI(t, GlobalFlags{Quiet: true}, "")

	require.NoError(t, c.runScan([]string{"--exclude", "Api.java", root}))
	assert.Empty(t, c.out.String())
}

func TestScan_MissingPath(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	requireUserError(t, c.runScan([]string{filepath.Join(t.TempDir(), "missing")}), errors.ExitNotFound)
}

func TestScan_NegativeWorkers(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	requireUserError(t, c.runScan([]string{"--workers", "-1", "."}), errors.ExitInput)
}

func TestScanError(t *testing.T) {
	assert.Equal(t, errors.ExitNotFound, scanError(os.ErrNotExist).(*errors.UserError).ExitCode)
	assert.Equal(t, errors.ExitPermission, scanError(os.ErrPermission).(*errors.UserError).ExitCode)
	assert.Equal(t, errors.ExitInternal, scanError(context.Canceled).(*errors.UserError).ExitCode)
	assert.Equal(t, errors.ExitInternal, scanError(stderrors.New("x")).(*errors.UserError).ExitCode)
}

func TestInit(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	require.NoError(t, c.runInit(nil))
	path := filepath.Join(c.workDir, bootstrap.ConfigFileName)
	assert.FileExists(t, path)
	assert.Contains(t, c.out.String(), "✓ Created "+path)
	assert.Contains(t, c.out.String(), "Next steps:")

	requireUserError(t, c.runInit(nil), errors.ExitConfig)

	c.out.Reset()
	require.NoError(t, c.runInit([]string{"--force"}))
	assert.Contains(t, c.out.String(), "ℹ Replaced existing .methodsig.yaml\n✓ Created "+path)
}

func TestInit_JSON(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{JSON: true, Quiet: true}, "")

	require.NoError(t, c.runInit(nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal(c.out.Bytes(), &got))
	assert.Equal(t, filepath.Join(c.workDir, bootstrap.ConfigFileName), got["config_path"])
	assert.Equal(t, false, got["overwritten"])
}

func TestCompletion(t *testing.T) {
	for shell, marker := range map[string]string{
		"bash": "complete -F _methodsig_completion methodsig",
		"zsh":  "#compdef methodsig",
		"fish": "complete -c methodsig",
	} {
		t.Run(shell, func(t *testing.T) {
			c := newTestCLI(t, GlobalFlags{}, "")
			require.NoError(t, c.runCompletion([]string{shell}))
			assert.Contains(t, c.out.String(), marker)
			for _, cmd := range []string{"parse", "scan", "init"} {
				assert.Contains(t, c.out.String(), cmd)
			}
		})
	}
}

func TestCompletion_Errors(t *testing.T) {
	c := newTestCLI(t, GlobalFlags{}, "")

	ue := requireUserError(t, c.runCompletion([]string{"tcsh"}), errors.ExitInput)
	assert.Equal(t, "Unsupported shell", ue.Message)

	requireUserError(t, c.runCompletion(nil), errors.ExitInput)
}

func TestNewLogger_Levels(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		globals GlobalFlags
		want    slog.Level
	}{
		{"default", GlobalFlags{}, slog.LevelWarn},
		{"verbose", GlobalFlags{Verbose: 1}, slog.LevelInfo},
		{"very verbose", GlobalFlags{Verbose: 3}, slog.LevelDebug},
		{"quiet", GlobalFlags{Quiet: true}, slog.LevelError},
		{"verbose wins over quiet", GlobalFlags{Quiet: true, Verbose: 1}, slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newLogger(io.Discard, tt.globals).Handler()
			assert.True(t, h.Enabled(ctx, tt.want))
			assert.False(t, h.Enabled(ctx, tt.want-1))
		})
	}
}

func TestConfigError(t *testing.T) {
	missing := configError("/x/.methodsig.yaml", os.ErrNotExist)
	assert.Equal(t, errors.ExitConfig, missing.ExitCode)
	assert.Equal(t, "Configuration file not found", missing.Message)

	invalid := configError("/x/.methodsig.yaml", stderrors.New("yaml: bad"))
	assert.Equal(t, "Cannot load configuration", invalid.Message)
}
