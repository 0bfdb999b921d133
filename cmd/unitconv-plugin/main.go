package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/redpanda-data/benthos/v4/public/service"
	"github.com/twinfer/unitconv/pkg/convert"
	"github.com/twinfer/unitconv/pkg/unit"
)

// Output modes of the processor.
const (
	outputString = "string"
	outputValue  = "value"
	outputUnit   = "unit"
)

// UnitProcessor is a Benthos processor that evaluates unit conversion
// requests carried in message payloads.
type UnitProcessor struct {
	config     UnitConfig
	converter  *convert.Converter
	logger     *service.Logger
	mConverted *service.MetricCounter
	mErrors    *service.MetricCounter
}

// UnitConfig contains configuration parameters for the unit processor.
type UnitConfig struct {
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`
	Output      string `json:"output" yaml:"output"`
}

func init() {
	// Register the processor with Benthos
	err := service.RegisterProcessor(
		"unit_convert",
		unitProcessorConfig(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newUnitProcessorFromConfig(conf, mgr)
		},
	)
	if err != nil {
		panic(err)
	}
}

func main() {
	service.RunCLI(context.Background())
}

// unitProcessorConfig returns a config spec for a unit_convert processor.
func unitProcessorConfig() *service.ConfigSpec {
	return service.NewConfigSpec().
		Summary("Converts values between units of measure.").
		Description("Each message payload is a conversion request of the form `(\"<value> <prefix+unit>\", \"<prefix+target_unit>\")`, e.g. `(\"3 kilometer\", \"inches\")`. " +
			"Length, temperature and data units are built in; more families can be declared in a YAML catalog.").
		Field(service.NewStringField("catalog_path").
			Description("Optional path to a YAML catalog declaring additional unit families.").
			Example("./units.yaml").
			Default("")).
		Field(service.NewStringEnumField("output", outputString, outputValue, outputUnit).
			Description("`string` replaces the payload with the rendered result (\"76.2 meter\"), `value` with the number expressed in the target prefix, `unit` with a structured object.").
			Default(outputString)).
		Version("0.1.0")
}

// newUnitProcessorFromConfig creates a new UnitProcessor from a parsed config.
func newUnitProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*UnitProcessor, error) {
	catalogPath, err := conf.FieldString("catalog_path")
	if err != nil {
		return nil, err
	}

	output, err := conf.FieldString("output")
	if err != nil {
		return nil, err
	}

	config := UnitConfig{
		CatalogPath: catalogPath,
		Output:      output,
	}

	var opts []convert.Option
	if config.CatalogPath != "" {
		opts = append(opts, convert.WithCatalogFile(config.CatalogPath))
	}

	converter, err := convert.NewConverter(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create converter: %w", err)
	}

	logger := mgr.Logger()
	metrics := mgr.Metrics()

	logger.Debugf("Unit processor ready with families: %s", strings.Join(converter.Registry().Families(), ", "))

	return &UnitProcessor{
		config:     config,
		converter:  converter,
		logger:     logger,
		mConverted: metrics.NewCounter("unitconv_converted"),
		mErrors:    metrics.NewCounter("unitconv_errors"),
	}, nil
}

// Process evaluates the conversion request held in the message payload.
func (u *UnitProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	raw, err := msg.AsBytes()
	if err != nil {
		u.logger.Errorf("Failed to get payload from message: %v", err)
		u.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to get payload from message: %w", err))
		return service.MessageBatch{msg}, nil
	}

	request := strings.TrimSpace(string(raw))
	result, err := u.converter.Convert(request)
	if err != nil {
		u.logger.Errorf("Failed to convert %q: %v", request, err)
		u.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to convert: %w", err))
		return service.MessageBatch{msg}, nil
	}

	value, err := result.Value()
	if err != nil {
		u.logger.Errorf("Failed to apply prefix %q: %v", result.Prefix, err)
		u.mErrors.Incr(1)
		msg.SetError(err)
		return service.MessageBatch{msg}, nil
	}

	newMsg := msg.Copy()
	switch u.config.Output {
	case outputValue:
		newMsg.SetStructured(value)
	case outputUnit:
		newMsg.SetStructured(map[string]any{
			"value":  value,
			"unit":   result.Prefix + result.Measure.Unit(),
			"family": result.Measure.Family(),
			"prefix": result.Prefix,
		})
	default:
		newMsg.SetBytes([]byte(unit.FormatValue(value) + " " + result.Prefix + result.Measure.Unit()))
	}

	u.logger.Tracef("Converted %q to %s", request, result)
	u.mConverted.Incr(1)

	return service.MessageBatch{newMsg}, nil
}

// Close the processor resources
func (u *UnitProcessor) Close(ctx context.Context) error {
	u.logger.Debug("Closing unit processor")
	return nil
}
