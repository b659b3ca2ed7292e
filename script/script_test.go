package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verbalang/verba/internal/diag"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := New("")
	require.NoError(t, err)
	return r
}

func TestRunSource(t *testing.T) {
	t.Parallel()

	r := newRunner(t)

	t.Run("clean script", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte(`on load:
	set {count} to 0
	send "ready" to the console
	if {count} is 0:
		broadcast "fresh start"
	wait for 2 seconds
`))
		assert.False(t, report.HasErrors())
		require.Len(t, report.Nodes, 6)
		assert.Equal(t, "script load event", report.Nodes[0].SyntaxName)
		assert.Equal(t, "set variable", report.Nodes[1].SyntaxName)
		assert.Equal(t, "condition", report.Nodes[3].SyntaxName)
		assert.Equal(t, "broadcast", report.Nodes[4].SyntaxName)
	})

	t.Run("unmatched line", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte("frobnicate the widget\n"))
		assert.True(t, report.HasErrors())
		require.NotEmpty(t, report.Entries)
		entry := report.Entries[len(report.Entries)-1]
		assert.Contains(t, entry.Message, "can't understand this line")
		assert.Equal(t, "main.vb", entry.File)
		assert.Equal(t, 1, entry.Line)
	})

	t.Run("parsing continues after an error", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte("nonsense here\nsend \"still parsed\"\n"))
		assert.True(t, report.HasErrors())
		require.Len(t, report.Nodes, 1)
		assert.Equal(t, "send message", report.Nodes[0].SyntaxName)
	})

	t.Run("comments and blank lines are skipped", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte("# header\n\nsend \"hi\"\n"))
		assert.False(t, report.HasErrors())
		assert.Len(t, report.Nodes, 1)
	})

	t.Run("windows line endings", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte("send \"hi\"\r\nsend \"there\"\r\n"))
		assert.False(t, report.HasErrors())
		assert.Len(t, report.Nodes, 2)
	})

	t.Run("bad indentation is reported and skipped", func(t *testing.T) {
		t.Parallel()
		report := r.RunSource("main.vb", []byte("send \"ok\"\n\t\tsend \"lost\"\n"))
		assert.True(t, report.HasErrors())
		assert.Len(t, report.Nodes, 1)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.vb")
	require.NoError(t, os.WriteFile(path, []byte("send \"hello\"\n"), 0o644))

	r := newRunner(t)
	report, err := r.Run(path)
	require.NoError(t, err)
	assert.False(t, report.HasErrors())
	assert.Equal(t, path, report.File)

	_, err = r.Run(filepath.Join(dir, "missing.vb"))
	assert.Error(t, err)
}

func TestMaxErrorsCapsReport(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	r.config.MaxErrors = 2

	report := r.RunSource("main.vb", []byte("bad one\nbad two\nbad three\n"))
	errors := 0
	for _, e := range report.Entries {
		if e.Severity == diag.SeverityError {
			errors++
		}
	}
	assert.Equal(t, 2, errors)
}

func TestIgnorePaths(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	r.IgnorePath("vendor")

	assert.True(t, r.ignored("scripts/vendor/dep.vb"))
	assert.False(t, r.ignored("scripts/main.vb"))
}

func TestProcessPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.vb"), []byte("send \"a\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.verba"), []byte("broken line\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a script\n"), 0o644))

	r := newRunner(t)
	reports, err := ProcessPath(context.Background(), zap.NewNop(), r, dir)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byFile := make(map[string]*Report, len(reports))
	for _, rep := range reports {
		byFile[filepath.Base(rep.File)] = rep
	}
	assert.False(t, byFile["a.vb"].HasErrors())
	assert.True(t, byFile["b.verba"].HasErrors())
}

func TestConfigParsing(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := parseConfigurationFile("no/such/file.yaml")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("values are read", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".verba.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"name: demo\nextensions: [\".scr\"]\nignore-paths: [\"vendor\"]\nmax-errors: 5\ncolors: false\n",
		), 0o644))

		cfg, err := parseConfigurationFile(path)
		require.NoError(t, err)
		assert.Equal(t, "demo", cfg.Name)
		assert.Equal(t, []string{".scr"}, cfg.Extensions)
		assert.Equal(t, []string{"vendor"}, cfg.IgnorePaths)
		assert.Equal(t, 5, cfg.MaxErrors)
		assert.False(t, cfg.Colors)
	})

	t.Run("empty extensions fall back to defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".verba.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: demo\n"), 0o644))

		cfg, err := parseConfigurationFile(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Extensions, cfg.Extensions)
	})
}
