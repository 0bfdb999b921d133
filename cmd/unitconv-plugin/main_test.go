package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/redpanda-data/benthos/v4/public/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/unitconv/testutil"
)

func newTestProcessor(t *testing.T, yamlConfig string) *UnitProcessor {
	t.Helper()
	conf := unitProcessorConfig()
	pConf, err := conf.ParseYAML(yamlConfig, nil)
	require.NoError(t, err)

	processor, err := newUnitProcessorFromConfig(pConf, service.MockResources())
	require.NoError(t, err)
	t.Cleanup(func() { _ = processor.Close(context.Background()) })
	return processor
}

func processOne(t *testing.T, p *UnitProcessor, payload string) *service.Message {
	t.Helper()
	batch, err := p.Process(context.Background(), service.NewMessage([]byte(payload)))
	require.NoError(t, err, "errors are reported on the message, not returned")
	require.Len(t, batch, 1)
	return batch[0]
}

func TestUnitProcessor_StringOutput(t *testing.T) {
	p := newTestProcessor(t, ``)

	testCases := []struct {
		input    string
		expected string
	}{
		{`("3 kiloinches", "meter")`, "76.2 meter"},
		{`("4 millifeet", "nanoinch")`, "48000000 nanoinch"},
		{"  (\"1 meter\", \"feet\")\n", "3.28 feet"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			msg := processOne(t, p, tc.input)
			require.NoError(t, msg.GetError())
			b, err := msg.AsBytes()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(b))
		})
	}
}

func TestUnitProcessor_ValueOutput(t *testing.T) {
	p := newTestProcessor(t, `output: value`)

	msg := processOne(t, p, `("6 mebibyte", "kibibit")`)
	require.NoError(t, msg.GetError())

	v, err := msg.AsStructured()
	require.NoError(t, err)
	assert.InDelta(t, 49152, v, 1e-9)
}

func TestUnitProcessor_UnitOutput(t *testing.T) {
	p := newTestProcessor(t, `output: unit`)

	msg := processOne(t, p, `("-10 celsius", "fahrenheit")`)
	require.NoError(t, msg.GetError())

	got, err := msg.AsStructured()
	require.NoError(t, err)

	want := map[string]any{
		"value":  14,
		"unit":   "fahrenheit",
		"family": "temperature",
		"prefix": "",
	}
	if diff := cmp.Diff(want, got, testutil.NumericComparer); diff != "" {
		t.Errorf("structured output mismatch (-want +got):\n%s", diff)
	}
}

func TestUnitProcessor_KeepsMetadata(t *testing.T) {
	p := newTestProcessor(t, ``)

	in := service.NewMessage([]byte(`("1 byte", "bits")`))
	in.MetaSet("sensor", "s-1")
	batch, err := p.Process(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	v, ok := batch[0].MetaGet("sensor")
	assert.True(t, ok)
	assert.Equal(t, "s-1", v)
}

func TestUnitProcessor_Errors(t *testing.T) {
	p := newTestProcessor(t, ``)

	for _, input := range []string{
		"",
		"not a request",
		`("1 parsec", "meter")`,
		`("1 meter", "byte")`,
	} {
		t.Run(input, func(t *testing.T) {
			msg := processOne(t, p, input)
			assert.Error(t, msg.GetError())
		})
	}
}

func TestUnitProcessor_Catalog(t *testing.T) {
	path := testutil.WriteTempCatalog(t, testutil.ExtraUnitsCatalog)
	p := newTestProcessor(t, fmt.Sprintf("catalog_path: %s\noutput: string", path))

	msg := processOne(t, p, `("2 hours", "minutes")`)
	require.NoError(t, msg.GetError())
	b, err := msg.AsBytes()
	require.NoError(t, err)
	assert.Equal(t, "120 minute", string(b))
}

func TestUnitProcessor_BadConfig(t *testing.T) {
	conf := unitProcessorConfig()

	pConf, err := conf.ParseYAML("catalog_path: /nonexistent/units.yaml", nil)
	require.NoError(t, err)
	_, err = newUnitProcessorFromConfig(pConf, service.MockResources())
	assert.Error(t, err)
}
