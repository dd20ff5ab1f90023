// Package schema provides JSON schema validation for suitegen input documents.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	schemafs "github.com/suitegen/suitegen/schema"
)

var (
	collectionSchema  *jsonschema.Schema
	environmentSchema *jsonschema.Schema
	compileOnce       sync.Once
	compileErr        error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		collectionData, err := schemafs.FS.ReadFile("collection.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read collection schema: %w", err)
			return
		}

		environmentData, err := schemafs.FS.ReadFile("environment.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read environment schema: %w", err)
			return
		}

		collectionDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(collectionData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal collection schema: %w", err)
			return
		}

		environmentDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(environmentData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal environment schema: %w", err)
			return
		}

		if err := compiler.AddResource("collection.schema.json", collectionDoc); err != nil {
			compileErr = fmt.Errorf("add collection schema resource: %w", err)
			return
		}

		if err := compiler.AddResource("environment.schema.json", environmentDoc); err != nil {
			compileErr = fmt.Errorf("add environment schema resource: %w", err)
			return
		}

		collectionSchema, err = compiler.Compile("collection.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile collection schema: %w", err)
			return
		}

		environmentSchema, err = compiler.Compile("environment.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile environment schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateCollection validates JSON data against the collection schema.
func ValidateCollection(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := collectionSchema.Validate(v); err != nil {
		return fmt.Errorf("collection validation failed: %w", err)
	}

	return nil
}

// ValidateEnvironment validates JSON data against the environment schema.
func ValidateEnvironment(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := environmentSchema.Validate(v); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	return nil
}

// Problems flattens a validation error into one line per violated
// constraint, each prefixed with the JSON location of the offending
// value. Errors that are not schema validation errors come back as a
// single line.
func Problems(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	printer := message.NewPrinter(language.English)
	var problems []string
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			problems = append(problems, fmt.Sprintf("%s: %s", instancePath(v.InstanceLocation), v.ErrorKind.LocalizedString(printer)))
			return
		}
		for _, cause := range v.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return problems
}

func instancePath(location []string) string {
	if len(location) == 0 {
		return "document root"
	}
	return "/" + strings.Join(location, "/")
}
