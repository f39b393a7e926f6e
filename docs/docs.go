// Package docs contém o documento OpenAPI servido em /swagger/.
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
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Verifica se o servidor está no ar",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.HealthResponse"
                        }
                    }
                }
            }
        },
        "/inventory": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Lista lotes de estoque",
                "description": "Ordenados por validade decrescente.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Quantidade de registros (padrão 10, máximo 1000)",
                        "name": "amount",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Deslocamento",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.InventoryItem"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/inventory/summary": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Indicadores do dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.InventorySummary"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/inventory/locations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Estoque agregado por localização",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.LocationSummary"
                            }
                        }
                    }
                }
            }
        },
        "/inventory/add": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Entrada de estoque",
                "description": "Cria o lote (upid, location, expiration) ou soma à quantidade existente.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Entrada",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.AddStockRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MessageResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/inventory/remove": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Saída de estoque",
                "description": "Decrementa o lote; se o saldo chegar a zero ou menos, o lote é apagado.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Saída",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.RemoveStockRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MessageResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Lote inexistente",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/activity/recent": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "activity"
                ],
                "summary": "Atividades recentes",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Quantidade (padrão 10)",
                        "name": "amount",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Activity"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Registra um novo usuário",
                "description": "Cria um novo usuário, hasheia a senha e salva no banco de dados.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credenciais de registro",
                        "name": "registration",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UserRegistration"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Usuário criado com sucesso",
                        "schema": {
                            "$ref": "#/definitions/domain.MessageResponse"
                        }
                    },
                    "400": {
                        "description": "Payload inválido",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Usuário já cadastrado",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Erro interno do servidor",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Autentica um usuário e retorna um JWT",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credenciais",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LoginResult"
                        }
                    },
                    "401": {
                        "description": "Credenciais inválidas",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/users/{id}/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Histórico do usuário",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID do usuário",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.HistoryResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Acrescenta uma nota ao histórico do usuário",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID do usuário",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Nota",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.HistoryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.HistoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ai/chat": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ai"
                ],
                "summary": "Conversa com o assistente de estoque",
                "description": "Injeta o snapshot do estoque no contexto e consulta o servidor de modelos.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Mensagem e histórico",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ChatRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.ChatResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    },
                    "504": {
                        "description": "Modelo não respondeu a tempo",
                        "schema": {
                            "$ref": "#/definitions/domain.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.Activity": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "user": {
                    "type": "string"
                },
                "action": {
                    "type": "string",
                    "example": "Added 5 of MED-001"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "add",
                        "delete",
                        "update",
                        "restock"
                    ]
                },
                "timestamp": {
                    "type": "string",
                    "example": "2026-10-14"
                }
            }
        },
        "domain.AddStockRequest": {
            "type": "object",
            "properties": {
                "userid": {
                    "type": "string"
                },
                "upid": {
                    "type": "string",
                    "example": "MED-001"
                },
                "location": {
                    "type": "string",
                    "example": "A1"
                },
                "quantity": {
                    "type": "integer",
                    "example": 5
                },
                "expiration": {
                    "type": "string",
                    "example": "2027-03-01"
                },
                "name": {
                    "type": "string",
                    "example": "Paracetamol"
                }
            }
        },
        "domain.RemoveStockRequest": {
            "type": "object",
            "properties": {
                "userid": {
                    "type": "string"
                },
                "upid": {
                    "type": "string",
                    "example": "MED-001"
                },
                "location": {
                    "type": "string",
                    "example": "A1"
                },
                "quantity": {
                    "type": "integer",
                    "example": 2
                },
                "expiration": {
                    "type": "string",
                    "example": "2027-03-01"
                }
            }
        },
        "domain.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string",
                    "example": "user"
                },
                "content": {
                    "type": "string"
                }
            }
        },
        "domain.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "model": {
                    "type": "string",
                    "example": "medllama2:latest"
                },
                "history": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.ChatMessage"
                    }
                }
            }
        },
        "domain.ChatResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "string"
                }
            }
        },
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer",
                    "example": 400
                },
                "category": {
                    "type": "string",
                    "example": "VALIDATION_ERROR"
                },
                "message": {
                    "type": "string",
                    "example": "A quantidade deve ser maior que zero."
                }
            },
            "description": "Estrutura padronizada para respostas de erro na API."
        },
        "domain.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2026-10-14T09:00:00Z"
                }
            }
        },
        "domain.HistoryEntry": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2026-10-14"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "domain.HistoryRequest": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "example": "2026-10-14"
                }
            }
        },
        "domain.HistoryResponse": {
            "type": "object",
            "properties": {
                "userid": {
                    "type": "string"
                },
                "history": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.HistoryEntry"
                    }
                }
            }
        },
        "domain.InventoryItem": {
            "type": "object",
            "properties": {
                "upid": {
                    "type": "string",
                    "example": "MED-001"
                },
                "location": {
                    "type": "string",
                    "example": "A1"
                },
                "quantity": {
                    "type": "integer",
                    "example": 8
                },
                "expiration": {
                    "type": "string",
                    "example": "2027-03-01"
                },
                "name": {
                    "type": "string",
                    "example": "Paracetamol"
                }
            }
        },
        "domain.InventorySummary": {
            "type": "object",
            "properties": {
                "totalItems": {
                    "type": "integer"
                },
                "lowStock": {
                    "type": "integer"
                },
                "expiringSoon": {
                    "type": "integer"
                },
                "criticalItems": {
                    "type": "integer",
                    "example": 0
                },
                "recentUpdates": {
                    "type": "integer"
                }
            }
        },
        "domain.LocationSummary": {
            "type": "object",
            "properties": {
                "location": {
                    "type": "string",
                    "example": "A1"
                },
                "items": {
                    "type": "integer"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "domain.LoginResult": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "userid": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                }
            }
        },
        "domain.MessageResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "message": {
                    "type": "string",
                    "example": "Added 5 of Paracetamol"
                }
            }
        },
        "domain.UserRegistration": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
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
	Title:            "MedStock API",
	Description:      "Controle de estoque de medicamentos com assistente de IA.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
