// Package docs registers the OpenAPI document for the wrapped API.
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
    "paths": {
        "/report": {
            "post": {
                "description": "Load the aggregate for the chosen player count, resolve the user and render every slide. The password is accepted but never checked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Report"],
                "summary": "Generate Report",
                "parameters": [
                    {
                        "description": "Login form",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LoginRequest"}
                    },
                    {
                        "type": "integer",
                        "description": "Initial slide index",
                        "name": "slide",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Report", "schema": {"$ref": "#/definitions/models.ReportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Data Load Failed", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/report/{playerCount}/{username}/radar.svg": {
            "get": {
                "produces": ["image/svg+xml"],
                "tags": ["Report"],
                "summary": "Player Radar Chart",
                "parameters": [
                    {"type": "integer", "description": "2 or 4", "name": "playerCount", "in": "path", "required": true},
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Edge length in pixels", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "SVG document", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/share": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Share"],
                "summary": "Create Share Link",
                "parameters": [
                    {
                        "description": "Who to share",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ShareRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ShareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/share/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Share"],
                "summary": "Get Share",
                "parameters": [
                    {"type": "string", "description": "Share ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ShareResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string", "maxLength": 64},
                "password": {"type": "string", "maxLength": 128},
                "playerCount": {"type": "integer", "enum": [2, 4]}
            }
        },
        "models.ShareRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string", "maxLength": 64},
                "playerCount": {"type": "integer", "enum": [2, 4]}
            }
        },
        "models.ShareResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "models.ReportResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "player_count": {"type": "integer"},
                "slides": {"type": "array", "items": {"type": "object"}},
                "current_slide": {"type": "integer"},
                "variables": {"type": "object"},
                "radar": {"type": "array", "items": {"type": "object"}},
                "archetype": {"type": "object"},
                "titles": {"type": "array", "items": {"type": "object"}},
                "corp_titles": {"type": "array", "items": {"type": "object"}},
                "generations": {"type": "array", "items": {"type": "object"}},
                "ranks": {"type": "array", "items": {"type": "object"}},
                "evaluations": {"type": "object"},
                "global_summary": {"type": "object"},
                "share_text": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TFM Wrapped API",
	Description:      "Year-in-review reports built from precomputed game aggregates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
