// Package docs registers the OpenAPI document served at /swagger/*.
// Keep it in step with the godoc annotations on the handlers.
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
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create a user",
                "parameters": [
                    {
                        "description": "Signup data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.SignupRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive a bearer token",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UsersResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by id",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "description": "At most one filter applies, in this order: userId, date, interval[gte]+interval[lte], gte, lte.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Owner id", "name": "userId", "in": "query"},
                    {"type": "string", "description": "Exact start date", "name": "date", "in": "query"},
                    {"type": "string", "description": "Interval start (inclusive)", "name": "interval[gte]", "in": "query"},
                    {"type": "string", "description": "Interval end (inclusive)", "name": "interval[lte]", "in": "query"},
                    {"type": "string", "description": "Start date lower bound (inclusive)", "name": "gte", "in": "query"},
                    {"type": "string", "description": "Start date upper bound (inclusive)", "name": "lte", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Event"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event owned by the caller",
                "parameters": [
                    {
                        "description": "Event dates",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.EventRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get event by id",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Replace an event's dates",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Event dates",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.EventRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.EventRequest": {
            "type": "object",
            "properties": {
                "finishDate": {"type": "string", "example": "2024-01-01T11:00:00Z"},
                "startDate": {"type": "string", "example": "2024-01-01T10:00:00Z"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "plaintextPassword": {"type": "string"}
            }
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "authToken": {"type": "string"}
            }
        },
        "handler.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "plaintextPassword": {"type": "string"}
            }
        },
        "handler.UsersResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}
            }
        },
        "model.Event": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "finishDate": {"type": "string"},
                "id": {"type": "string"},
                "startDate": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Scheduler API",
	Description:      "Users sign up, log in and manage the events they own.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
