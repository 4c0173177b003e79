package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func TestNamesListsAllTemplates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"data-analysis",
		"llm-auditor",
		"logs-assistant",
		"pdocs",
		"quiz",
		"sql",
		"twilio",
	}, Names())
}

func TestGetUnknownTemplate(t *testing.T) {
	t.Parallel()

	_, err := Get("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestEveryTemplatePipelineValidates(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		tpl, err := Get(name)
		require.NoError(t, err)
		assert.NoError(t, tpl.Pipeline().Validate(), "template %s", name)
	}
}

func TestKnowledgeBaseTemplateSteps(t *testing.T) {
	t.Parallel()

	tpl, err := Get("pdocs")
	require.NoError(t, err)

	var names []string
	for _, s := range tpl.Steps() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		steps.StepBucket,
		steps.StepUpload,
		steps.StepKnowledgeBase,
		steps.StepDatabaseWait,
		steps.StepIndexing,
		steps.StepAgent,
	}, names)
	assert.False(t, tpl.HasTools())
}

func TestToolTemplateSteps(t *testing.T) {
	t.Parallel()

	tpl, err := Get("sql")
	require.NoError(t, err)

	var names []string
	for _, s := range tpl.Steps() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		steps.StepDatabaseUser,
		steps.StepAgent,
		steps.StepNamespace,
		steps.StepFunctions,
		steps.StepAttach,
	}, names)
	assert.True(t, tpl.HasTools())
}

func TestComponentAgentTemplateSteps(t *testing.T) {
	t.Parallel()

	tpl, err := Get("llm-auditor")
	require.NoError(t, err)

	var names []string
	for _, s := range tpl.Steps() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		criticAgentStep,
		revisorAgentStep,
		steps.StepAgent,
		steps.StepNamespace,
		steps.StepFunctions,
		steps.StepAttach,
	}, names)
}

func TestToolTemplatesDeclareFunctionTokens(t *testing.T) {
	t.Parallel()

	expected := map[string][]string{
		"data-analysis":  {"LIST_FILES_TOKEN", "LOAD_CSV_TOKEN", "GET_COLUMN_INFO_TOKEN"},
		"llm-auditor":    {"SEARCH_TOKEN", "CRITIC_TOKEN", "REVISOR_TOKEN"},
		"logs-assistant": {"GET_LOGS_TOKEN"},
		"sql":            {"GET_SCHEMA_TOKEN", "EXECUTE_QUERY_TOKEN"},
		"twilio":         {"SEND_MESSAGE_TOKEN"},
	}
	for _, name := range Names() {
		tpl, err := Get(name)
		require.NoError(t, err)
		if !tpl.HasTools() {
			assert.Empty(t, tpl.TokenNames, "template %s", name)
			continue
		}
		assert.Equal(t, expected[name], tpl.TokenNames, "template %s", name)
	}
}

func TestSQLTemplateWithholdsAdminCredentials(t *testing.T) {
	t.Parallel()

	tpl, err := Get("sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{steps.SecretDBAdminUser, steps.SecretDBAdminPassword}, tpl.OmitSecrets)
}

func TestBucketOnlyTemplateSteps(t *testing.T) {
	t.Parallel()

	tpl, err := Get("data-analysis")
	require.NoError(t, err)

	var names []string
	for _, s := range tpl.Steps() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		steps.StepBucket,
		steps.StepUpload,
		steps.StepAgent,
		steps.StepNamespace,
		steps.StepFunctions,
		steps.StepAttach,
	}, names)
}

func TestToolSpecsAreComplete(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		tpl, err := Get(name)
		require.NoError(t, err)
		for _, tool := range tpl.Tools {
			assert.NotEmpty(t, tool.Name, "template %s", name)
			assert.NotEmpty(t, tool.Description, "tool %s", tool.Name)
			assert.Contains(t, tool.FunctionPath, "/", "tool %s needs a package/function path", tool.Name)
			assert.NotNil(t, tool.InputSchema, "tool %s", tool.Name)
			assert.NotNil(t, tool.OutputSchema, "tool %s", tool.Name)
		}
	}
}
