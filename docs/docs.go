// Package docs holds the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Internal login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/login/client": {
            "post": {
                "description": "The client must have an application config provisioned, otherwise 403.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Client login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.clientLoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Clients only see the orders they created.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List one day of orders",
                "parameters": [{"type": "string", "description": "Day as DDMMYYYY (default: today, UTC)", "name": "day", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listOrdersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Only customer and address.street are required; the remaining fields get defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create an order",
                "parameters": [
                    {"type": "string", "description": "Idempotency key to prevent duplicate submissions", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier request with the same Idempotency-Key", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Idempotency-Key still in progress", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/orders/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order",
                "parameters": [{"type": "string", "description": "Order key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Delete an order",
                "parameters": [{"type": "string", "description": "Order key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/orders/{key}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change the status of an order",
                "parameters": [
                    {"type": "string", "description": "Order key", "name": "key", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first. Clients may only read their own subject.",
                "produces": ["application/json"],
                "tags": ["metrics"],
                "summary": "List request metric records",
                "parameters": [
                    {"type": "string", "description": "Subject id (default: caller)", "name": "subject", "in": "query"},
                    {"type": "integer", "description": "Maximum records (default 200, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listMetricsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["metrics"],
                "summary": "Delete every metric record of one subject",
                "parameters": [{"type": "string", "description": "Subject id (default: caller)", "name": "subject", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.clearMetricsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.loginRequest": {"type": "object", "required": ["password", "username"], "properties": {"password": {"type": "string"}, "username": {"type": "string"}}},
        "handler.clientLoginRequest": {"type": "object", "required": ["id_token"], "properties": {"id_token": {"type": "string"}}},
        "handler.identityResponse": {"type": "object", "properties": {"expires_at": {"type": "string"}, "label": {"type": "string"}, "role": {"type": "string"}, "subject_id": {"type": "string"}}},
        "handler.authResponse": {"type": "object", "properties": {"app_config": {"type": "object"}, "identity": {"$ref": "#/definitions/handler.identityResponse"}, "token": {"type": "string"}}},
        "handler.addressRequest": {"type": "object", "required": ["street"], "properties": {"district": {"type": "string"}, "number": {"type": "string"}, "reference": {"type": "string"}, "street": {"type": "string"}}},
        "handler.courierRequest": {"type": "object", "required": ["name"], "properties": {"id": {"type": "string"}, "name": {"type": "string"}}},
        "handler.itemRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "notes": {"type": "string"}, "quantity": {"type": "integer", "minimum": 1}, "unit_price": {"type": "number", "minimum": 0}}},
        "handler.createOrderRequest": {
            "type": "object",
            "required": ["address", "customer"],
            "properties": {
                "address": {"$ref": "#/definitions/handler.addressRequest"},
                "courier": {"$ref": "#/definitions/handler.courierRequest"},
                "customer": {"type": "string"},
                "delivery_fee": {"type": "number", "minimum": 0},
                "estimated_delivery_minutes": {"type": "integer", "minimum": 0},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.itemRequest"}},
                "number": {"type": "integer", "minimum": 0},
                "payment_method": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string", "enum": ["pendente", "preparando", "saiu_para_entrega", "entregue", "cancelado"]},
                "total": {"type": "number", "minimum": 0},
                "type": {"type": "string"}
            }
        },
        "handler.updateStatusRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["pendente", "preparando", "saiu_para_entrega", "entregue", "cancelado"]}}},
        "handler.orderResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "number": {"type": "integer"},
                "day": {"type": "string"},
                "customer": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"$ref": "#/definitions/handler.addressRequest"},
                "type": {"type": "string"},
                "courier": {"$ref": "#/definitions/handler.courierRequest"},
                "payment_method": {"type": "string"},
                "status": {"type": "string"},
                "delivery_fee": {"type": "number"},
                "total": {"type": "number"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.itemRequest"}},
                "estimated_delivery_minutes": {"type": "integer"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.listOrdersResponse": {"type": "object", "properties": {"count": {"type": "integer"}, "data": {"type": "array", "items": {"$ref": "#/definitions/handler.orderResponse"}}, "day": {"type": "string"}}},
        "domain.MetricRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "subject_id": {"type": "string"},
                "method": {"type": "string"},
                "path": {"type": "string"},
                "status": {"type": "integer"},
                "elapsed_ms": {"type": "integer"},
                "captured_at": {"type": "string"},
                "remote_addr": {"type": "string"},
                "user_agent": {"type": "string"},
                "aborted": {"type": "boolean"}
            }
        },
        "handler.listMetricsResponse": {"type": "object", "properties": {"count": {"type": "integer"}, "data": {"type": "array", "items": {"$ref": "#/definitions/domain.MetricRecord"}}, "subject": {"type": "string"}}},
        "handler.clearMetricsResponse": {"type": "object", "properties": {"deleted": {"type": "integer"}, "subject": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pedidos API",
	Description:      "Order intake for delivery with per-request metric records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
