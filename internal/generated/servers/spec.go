package servers

import (
	"encoding/json"
	"fmt"
	"sync"

	"hubflow/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

var (
	loadOnce   sync.Once
	loadedSpec *openapi3.T
	loadErr    error

	registerOnce sync.Once
	registerErr  error
)

// GetSwagger returns the validated OpenAPI document the handlers were generated from.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(api.OpenAPI)
		if err != nil {
			loadErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("invalid spec: %w", err)
			return
		}
		loadedSpec = doc
	})
	return loadedSpec, loadErr
}

// swaggerDoc serves the document to swag readers such as the swagger UI.
type swaggerDoc struct {
	doc []byte
}

func (s swaggerDoc) ReadDoc() string {
	return string(s.doc)
}

// RegisterSwaggerDoc publishes the document under swag's default instance
// name. swag panics on a second registration, so only the first call registers.
func RegisterSwaggerDoc() error {
	registerOnce.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			registerErr = err
			return
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			registerErr = fmt.Errorf("encode spec: %w", err)
			return
		}
		swag.Register(swag.Name, swaggerDoc{doc: raw})
	})
	return registerErr
}
