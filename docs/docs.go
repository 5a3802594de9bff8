// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Dependency health", "security": [], "responses": {"200": {"description": "OK"}, "503": {"description": "A dependency is down"}}}
        },
        "/metrics": {
            "get": {"tags": ["system"], "summary": "Prometheus metrics", "security": [], "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/form-templates": {
            "get": {
                "tags": ["templates"], "summary": "List templates",
                "parameters": [
                    {"name": "lob", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["templates"], "summary": "Create a template with its sections and fields",
                "parameters": [{"name": "template", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormTemplate"}}],
                "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/api/form-templates/field-types": {
            "get": {"tags": ["templates"], "summary": "Field type catalogue", "responses": {"200": {"description": "OK"}}}
        },
        "/api/form-templates/master": {
            "post": {"tags": ["templates"], "summary": "Build the master template for a set of lines of business", "responses": {"201": {"description": "Created"}}}
        },
        "/api/form-templates/{id}": {
            "get": {"tags": ["templates"], "summary": "Get a template tree", "parameters": [{"$ref": "#/parameters/ID"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["templates"], "summary": "Update template metadata", "parameters": [{"$ref": "#/parameters/ID"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "delete": {"tags": ["templates"], "summary": "Delete a template and its tree", "parameters": [{"$ref": "#/parameters/ID"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/api/form-templates/{id}/render": {
            "post": {"tags": ["templates"], "summary": "Render visible sections and fields for the given data", "parameters": [{"$ref": "#/parameters/ID"}, {"$ref": "#/parameters/Data"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/form-templates/{id}/validate": {
            "post": {"tags": ["templates"], "summary": "Validate data against a template", "parameters": [{"$ref": "#/parameters/ID"}, {"$ref": "#/parameters/Data"}], "responses": {"200": {"description": "OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/api/form-templates/{id}/submissions": {
            "post": {"tags": ["submissions"], "summary": "Create a draft or submitted submission", "parameters": [{"$ref": "#/parameters/ID"}, {"$ref": "#/parameters/Data"}], "responses": {"201": {"description": "Created"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/api/form-templates/{id}/submissions/export": {
            "get": {"tags": ["export"], "summary": "Export a template's submissions as a spreadsheet", "parameters": [{"$ref": "#/parameters/ID"}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/form-submissions": {
            "get": {
                "tags": ["submissions"], "summary": "List submissions",
                "parameters": [
                    {"name": "template_id", "in": "query", "type": "string"},
                    {"name": "policy_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["draft", "submitted", "processed"]}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/form-submissions/{id}": {
            "get": {"tags": ["submissions"], "summary": "Get a submission", "parameters": [{"$ref": "#/parameters/ID"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["submissions"], "summary": "Save or submit a draft", "parameters": [{"$ref": "#/parameters/ID"}, {"$ref": "#/parameters/Data"}], "responses": {"200": {"description": "OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/api/acord/export": {
            "post": {"tags": ["export"], "summary": "Export ACORD XML or PDF", "produces": ["application/xml", "application/pdf"], "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/api/audit-logs": {
            "get": {
                "tags": ["audit"], "summary": "List audit logs",
                "parameters": [
                    {"name": "module", "in": "query", "type": "string"},
                    {"name": "record_id", "in": "query", "type": "string"},
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "actor_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/audit-logs/{module}/{id}": {
            "get": {"tags": ["audit"], "summary": "History of one record", "parameters": [{"name": "module", "in": "path", "required": true, "type": "string"}, {"$ref": "#/parameters/ID"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/webhook-deliveries": {
            "get": {"tags": ["webhooks"], "summary": "List webhook deliveries", "parameters": [{"name": "event", "in": "query", "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/processor/run": {
            "post": {"tags": ["processor"], "summary": "Run one delivery sweep now", "responses": {"200": {"description": "OK"}}}
        },
        "/api/processor/status": {
            "get": {"tags": ["processor"], "summary": "Last sweep result", "responses": {"200": {"description": "OK"}}}
        }
    },
    "parameters": {
        "ID": {"name": "id", "in": "path", "required": true, "type": "string"},
        "Data": {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"data": {"type": "object"}}}}
    },
    "responses": {
        "Error": {"description": "Error envelope", "schema": {"$ref": "#/definitions/Error"}}
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "FormTemplate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "line_of_business": {"type": "array", "items": {"type": "string"}},
                "is_active": {"type": "boolean"},
                "sections": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agency Forms API",
	Description:      "Dynamic insurance forms with conditional logic and ACORD export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
