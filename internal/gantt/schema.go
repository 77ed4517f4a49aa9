package gantt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchemaURL = "gantitt://tasks.schema.json"

//go:embed tasks.schema.json
var tasksSchemaJSON string

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaJSON)); err != nil {
			tasksSchemaErr = err
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile(tasksSchemaURL)
	})
	return tasksSchema, tasksSchemaErr
}

// CheckTasksJSON validates serialized tasks against the embedded schema.
func CheckTasksJSON(data []byte) error {
	schema, err := compiledTasksSchema()
	if err != nil {
		return fmt.Errorf("failed to compile task schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode tasks: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		return fmt.Errorf("serialized tasks do not match schema: %s", firstCause(ve))
	}
	return nil
}

// firstCause walks to the deepest leaf error, which names the failing field.
func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return fmt.Sprintf("%s: %s", ve.InstanceLocation, ve.Message)
}
