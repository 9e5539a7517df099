package domain

import (
	"github.com/invopop/jsonschema"
)

// DefaultModel is the model every interaction targets unless configured otherwise.
const DefaultModel = "gpt-3.5-turbo"

type LLMInput struct {
	SystemMessage string
	UserMessage   string
	Model         string
}

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
