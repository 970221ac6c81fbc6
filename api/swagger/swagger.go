package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIDesa API",
        "description": "Village civil administration portal: resident register, letter forms and the official letter numbering ledger",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Numbering", "description": "Official letter number ledger"},
        {"name": "Letters", "description": "Letter register (buku agenda surat)"},
        {"name": "Bundles", "description": "Marriage form packet tracking"},
        {"name": "Residents", "description": "Resident register"},
        {"name": "Dashboard", "description": "Portal headline counts"},
        {"name": "Authentication", "description": "Portal login"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/letter-numbers": {
            "get": {
                "tags": ["Numbering"],
                "summary": "List ledger rows",
                "parameters": [
                    {"name": "prefix", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["reserved", "confirmed"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/letter-numbers/reserve": {
            "post": {
                "tags": ["Numbering"],
                "summary": "Reserve the next official letter number",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReserveNumberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown document type or invalid sequence"},
                    "409": {"description": "Sequence already taken"}
                }
            }
        },
        "/letter-numbers/{id}/confirm": {
            "post": {
                "tags": ["Numbering"],
                "summary": "Confirm a reserved letter number",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Reservation not found or already finalized"}
                }
            }
        },
        "/letter-numbers/{id}": {
            "delete": {
                "tags": ["Numbering"],
                "summary": "Cancel a reserved letter number",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Reservation not found or already finalized"}
                }
            }
        },
        "/letter-entries": {
            "get": {
                "tags": ["Letters"],
                "summary": "List register entries",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "documentTypeId", "in": "query", "type": "string"},
                    {"name": "bundleKey", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Letters"],
                "summary": "Record a submitted letter form",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveLetterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "202": {"description": "Accepted but not reconciled"}
                }
            }
        },
        "/letter-entries/export": {
            "get": {
                "tags": ["Letters"],
                "summary": "Download the letter register as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "documentTypeId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/letter-entries/{id}": {
            "get": {
                "tags": ["Letters"],
                "summary": "Fetch one register entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["Letters"],
                "summary": "Correct a register entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveLetterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["Letters"],
                "summary": "Remove a register entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/bundles": {
            "get": {
                "tags": ["Bundles"],
                "summary": "List marriage form packets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bundles/{key}": {
            "get": {
                "tags": ["Bundles"],
                "summary": "Fetch one marriage form packet",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/residents": {
            "get": {
                "tags": ["Residents"],
                "summary": "List residents",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "rt", "in": "query", "type": "string"},
                    {"name": "rw", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Residents"],
                "summary": "Register a resident",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResidentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/residents/{id}": {
            "get": {
                "tags": ["Residents"],
                "summary": "Fetch one resident",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["Residents"],
                "summary": "Replace a resident record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResidentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["Residents"],
                "summary": "Remove a resident",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Portal headline counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a portal user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        }
    },
    "definitions": {
        "ReserveNumberRequest": {
            "type": "object",
            "properties": {
                "documentTypeId": {"type": "string"},
                "manualSequence": {"type": "integer"}
            },
            "required": ["documentTypeId"]
        },
        "ReservedNumber": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "number": {"type": "string"},
                "prefix": {"type": "string"},
                "sequenceNumber": {"type": "integer"},
                "month": {"type": "string"},
                "year": {"type": "integer"},
                "documentDate": {"type": "string"}
            }
        },
        "SaveLetterRequest": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "documentTypeId": {"type": "string"},
                "data": {"type": "object"}
            },
            "required": ["slug", "title", "data"]
        },
        "LetterEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "documentTypeId": {"type": "string"},
                "category": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "officialNumber": {"type": "string"},
                "documentDate": {"type": "string"},
                "applicantName": {"type": "string"},
                "applicantNik": {"type": "string"},
                "status": {"type": "string"},
                "bundleKey": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "BundleSummary": {
            "type": "object",
            "properties": {
                "bundleKey": {"type": "string"},
                "applicantName": {"type": "string"},
                "applicantNik": {"type": "string"},
                "lastUpdated": {"type": "string"},
                "completed": {"type": "boolean"},
                "missing": {"type": "array", "items": {"type": "string"}},
                "forms": {"type": "array", "items": {"$ref": "#/definitions/LetterEntry"}}
            }
        },
        "ResidentRequest": {
            "type": "object",
            "properties": {
                "nik": {"type": "string"},
                "full_name": {"type": "string"},
                "gender": {"type": "string", "enum": ["L", "P"]},
                "birth_place": {"type": "string"},
                "birth_date": {"type": "string"},
                "religion": {"type": "string"},
                "marital_status": {"type": "string"},
                "occupation": {"type": "string"},
                "address": {"type": "string"},
                "rt": {"type": "string"},
                "rw": {"type": "string"}
            },
            "required": ["nik", "full_name", "gender"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
