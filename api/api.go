// Package api embeds the OpenAPI document of the HTTP API.
package api

import _ "embed"

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=oapi-codegen.types.yml openapi.yml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=oapi-codegen.server.yml openapi.yml

//go:embed openapi.yml
var OpenAPI []byte
