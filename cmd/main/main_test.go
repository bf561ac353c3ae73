package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsim/internal/similarity/model"
	"wordsim/internal/similarity/service"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WORDSIM_CONFIG", "HOST", "PORT", "ALLOW_ORIGINS", "MAX_UPLOAD_MB",
		"LOG_LEVEL", "LOG_FILE", "MIN_WORDS", "MAX_WORDS",
		"MIN_MATCH", "WORKERS", "METRIC",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompare_HelloWorld(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "hello world\nhello wrold\n")
	out := filepath.Join(dir, "out.txt")

	stdout, err := execute(t, in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Time elapsed:")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Row 1: helloworld ~ Row 2: hellowrold | Similarity: 80.00%\n", string(b))
}

func TestCompare_Flags(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "Hello World\nhello wrold\nhelo world\n")
	out := filepath.Join(dir, "out.txt")

	stdout, err := execute(t, in, out, "-m", "85%", "--metric", "damerau", "--show-original", "--preview", "1", "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "90.00%")
	assert.Contains(t, stdout, "1 of 2")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"Row 1: Hello World ~ Row 2: hello wrold | Similarity: 90.00%\n"+
			"Row 1: Hello World ~ Row 3: helo world | Similarity: 90.00%\n",
		string(b))
}

func TestCompare_NoPairs(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "cat\ndog\n")
	out := filepath.Join(dir, "out.txt")

	_, err := execute(t, in, out)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestCompare_EmptyLineWritesNothing(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "alpha\n\nbeta\n")
	out := filepath.Join(dir, "out.txt")

	_, err := execute(t, in, out)
	var el *service.EmptyLineError
	require.True(t, errors.As(err, &el))
	assert.Equal(t, 2, el.Line)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCompare_InvalidCount(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "a\nb\nc\n")

	_, err := execute(t, in, filepath.Join(dir, "out.txt"), "--max-words", "2")
	var ic *service.InvalidCountError
	require.True(t, errors.As(err, &ic))
	assert.Equal(t, 3, ic.Count)
}

func TestCompare_BadMinMatch(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "a\nb\n")

	for _, m := range []string{"abc", "101", "-3"} {
		_, err := execute(t, in, filepath.Join(dir, "out.txt"), "--min-match="+m)
		assert.Error(t, err, m)
	}
}

func TestCompare_MissingInput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	_, err := execute(t, filepath.Join(dir, "nope.txt"), filepath.Join(dir, "out.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompare_ArgsRequired(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "only-one")
	assert.Error(t, err)
}

func TestCompare_ConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "hello world\nhello wrold\n")
	out := filepath.Join(dir, "out.txt")
	conf := filepath.Join(dir, "wordsim.toml")
	require.NoError(t, os.WriteFile(conf, []byte("min_match = 85\n"), 0o644))

	_, err := execute(t, "--config", conf, in, out)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, b, "80%% pair must be dropped at 85")
}

func TestCompare_Idempotent(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	words := []string{"apple", "apples", "applet", "maple", "ample", "apple pie", "Applepie", "grape", "grapes"}
	in := writeInput(t, dir, strings.Join(words, "\n")+"\n")

	outA := filepath.Join(dir, "a.txt")
	outB := filepath.Join(dir, "b.txt")
	_, err := execute(t, in, outA, "-m", "50", "-w", "1")
	require.NoError(t, err)
	_, err = execute(t, in, outB, "-m", "50", "-w", "8")
	require.NoError(t, err)

	a, _ := os.ReadFile(outA)
	b, _ := os.ReadFile(outB)
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestRenderPreview(t *testing.T) {
	pairs := []model.Pair{
		{Similarity: 1, I: 1, TokenI: "abc", J: 4, TokenJ: "abc"},
		{Similarity: 0.9, I: 2, TokenI: "abcd", J: 3, TokenJ: "abce"},
	}
	s := renderPreview(pairs, 10, false)
	assert.Contains(t, s, "100.00%")
	assert.Contains(t, s, "abce")
	assert.NotContains(t, s, "shown")

	s = renderPreview(pairs, 1, false)
	assert.NotContains(t, s, "abce")
	assert.Contains(t, s, "1 of 2")
}

func TestProgress_DisabledOffTerminal(t *testing.T) {
	p := newProgress(&bytes.Buffer{}, 10, true)
	assert.Nil(t, p.bar)
	p.add(3)
	p.finish()
	p.abort()
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, fmt.Errorf("compare: %w", context.Canceled))
	assert.Equal(t, "interrupted\n", buf.String())

	buf.Reset()
	reportError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestCompare_CancelledRunReportsInterrupted(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "hello world\nhello wrold\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{in, filepath.Join(dir, "out.txt")})
	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)

	var buf bytes.Buffer
	reportError(&buf, err)
	assert.Equal(t, "interrupted\n", buf.String())
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
}
