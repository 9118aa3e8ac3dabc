package cli_test

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/cli"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `
node "constant" "answer" {
  params {
    value = 42
  }
}
`

func TestExecuteRunsGraphFromPositionalArg(t *testing.T) {
	path := testutil.WriteHCL(t, "graph.hcl", minimalDoc)
	out := &testutil.SafeBuffer{}

	err := cli.Execute(out, []string{"--log-level", "error", path})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "answer.value = 42")
}

func TestExecuteRunsGraphFromFlag(t *testing.T) {
	path := testutil.WriteHCL(t, "graph.hcl", minimalDoc)
	out := &testutil.SafeBuffer{}

	err := cli.Execute(out, []string{"--graph", path, "--log-level", "error"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "answer.value = 42")
}

func TestMissingGraphPathIsExitError(t *testing.T) {
	out := &testutil.SafeBuffer{}
	err := cli.Execute(out, nil)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestInvalidLogLevel(t *testing.T) {
	out := &testutil.SafeBuffer{}
	err := cli.Execute(out, []string{"--log-level", "loud", "graph.hcl"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestInvalidLogFormat(t *testing.T) {
	out := &testutil.SafeBuffer{}
	err := cli.Execute(out, []string{"--log-format", "xml", "graph.hcl"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestConfigFileSuppliesGraphPath(t *testing.T) {
	graphPath := testutil.WriteHCL(t, "graph.hcl", minimalDoc)
	cfgPath := testutil.WriteHCL(t, "config.yaml", "graph: "+graphPath+"\nlogLevel: error\n")
	out := &testutil.SafeBuffer{}

	err := cli.Execute(out, []string{"--config", cfgPath})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "answer.value = 42")
}

func TestMissingDocumentFileFails(t *testing.T) {
	out := &testutil.SafeBuffer{}
	err := cli.Execute(out, []string{"--log-level", "error", "/nonexistent/graph.hcl"})
	assert.Error(t, err)
}
