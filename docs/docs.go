// Package docs registra el documento OpenAPI servido en /swagger.
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
        "/horses": {
            "get": {
                "description": "Sin parámetros devuelve todos. Con parámetros aplica todos como intersección.",
                "produces": ["application/json"],
                "tags": ["horses"],
                "summary": "Listar / buscar caballos",
                "parameters": [
                    {"type": "string", "description": "Substring del nombre", "name": "name", "in": "query"},
                    {"type": "string", "description": "Substring de la descripción", "name": "description", "in": "query"},
                    {"type": "string", "description": "Nacidos antes de (YYYY-MM-DD)", "name": "bornBefore", "in": "query"},
                    {"type": "string", "description": "female | male", "name": "sex", "in": "query"},
                    {"type": "string", "description": "Substring del nombre del owner", "name": "ownerName", "in": "query"},
                    {"type": "integer", "description": "Máximo de resultados", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/horses.horseResponse"}}},
                    "400": {"description": "parámetros inválidos", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["horses"],
                "summary": "Crear caballo",
                "parameters": [
                    {"description": "Datos del caballo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/horses.horseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/horses.horseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/horses.validationErrorResponse"}}
                }
            }
        },
        "/horses/{horseID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["horses"],
                "summary": "Obtener caballo por id",
                "parameters": [{"type": "integer", "description": "ID del caballo", "name": "horseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/horses.horseResponse"}},
                    "404": {"description": "horse not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["horses"],
                "summary": "Actualizar caballo (registro completo)",
                "parameters": [
                    {"type": "integer", "description": "ID del caballo", "name": "horseID", "in": "path", "required": true},
                    {"description": "Registro completo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/horses.horseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/horses.horseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/horses.validationErrorResponse"}},
                    "404": {"description": "horse not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["horses"],
                "summary": "Borrar caballo",
                "parameters": [{"type": "integer", "description": "ID del caballo", "name": "horseID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "horse not found", "schema": {"type": "string"}}
                }
            }
        },
        "/horses/{horseID}/familytree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["horses"],
                "summary": "Árbol de ancestros",
                "parameters": [
                    {"type": "integer", "description": "ID del caballo", "name": "horseID", "in": "path", "required": true},
                    {"type": "integer", "description": "Generaciones a incluir (1-10)", "name": "generations", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/horses.treeResponse"}},
                    "404": {"description": "horse not found", "schema": {"type": "string"}}
                }
            }
        },
        "/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Buscar owners",
                "parameters": [
                    {"type": "string", "description": "Substring del nombre completo", "name": "name", "in": "query"},
                    {"type": "integer", "description": "Máximo de resultados", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/owners.OwnerResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Crear owner",
                "parameters": [
                    {"description": "Datos del owner", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.createOwnerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/owners/{ownerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Obtener owner",
                "parameters": [{"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "404": {"description": "owner not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["owners"],
                "summary": "Borrar owner",
                "parameters": [{"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "owner not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "horses.horseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "sex": {"type": "string", "enum": ["female", "male"]},
                "image": {"type": "string"},
                "ownerId": {"type": "integer"},
                "parentFemaleId": {"type": "integer"},
                "parentMaleId": {"type": "integer"}
            }
        },
        "horses.horseResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "sex": {"type": "string", "enum": ["female", "male"]},
                "image": {"type": "string"},
                "owner": {"$ref": "#/definitions/owners.OwnerResponse"},
                "parentFemale": {"type": "integer"},
                "parentMale": {"type": "integer"}
            }
        },
        "horses.treeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "sex": {"type": "string", "enum": ["female", "male"]},
                "owner": {"$ref": "#/definitions/owners.OwnerResponse"},
                "parentFemale": {"$ref": "#/definitions/horses.treeResponse"},
                "parentMale": {"$ref": "#/definitions/horses.treeResponse"}
            }
        },
        "horses.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "horses.validationErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/horses.FieldError"}}
            }
        },
        "owners.OwnerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "owners.createOwnerRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "description": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Horse Registry API",
	Description:      "Registro de caballos con pedigrí (madre/padre) y owners.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
