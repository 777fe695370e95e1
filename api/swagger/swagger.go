package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Enrollment API",
        "description": "Student enrollment records: profiles, course enrollments and lifecycle statuses.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Enrollment detail search, registration and update"},
        {"name": "Enrollments", "description": "Enrollment lifecycle status"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Search enrollment details",
                "description": "Without query parameters this lists every student with nested enrollments and status history.",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string", "description": "Student name substring"},
                    {"name": "courseName", "in": "query", "type": "string", "description": "Course name substring"},
                    {"name": "startDate", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "endDate", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["PROVISIONAL", "CONFIRMED", "IN_PROGRESS", "COMPLETED"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student with course enrollments",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get one enrollment detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Overwrite a student and their enrollments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments/{id}/status": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Advance the status of an enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "No status history for enrollment", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid status transition", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Export the enrollment roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered roster file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "status": {"type": "integer"}
                    }
                },
                "meta": {"type": "object"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/StudentPayload"},
                "courses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "course_name": {"type": "string"}
                        }
                    }
                }
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/StudentPayload"},
                "is_deleted": {"type": "boolean"},
                "courses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "course_name": {"type": "string"},
                            "course_start_at": {"type": "string", "format": "date-time"},
                            "course_end_at": {"type": "string", "format": "date-time"},
                            "statuses": {
                                "type": "array",
                                "items": {
                                    "type": "object",
                                    "properties": {
                                        "id": {"type": "string"},
                                        "status": {"type": "string"}
                                    }
                                }
                            }
                        }
                    }
                }
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["PROVISIONAL", "CONFIRMED", "IN_PROGRESS", "COMPLETED"]}
            }
        },
        "StudentPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kana_name": {"type": "string"},
                "nickname": {"type": "string"},
                "mail_address": {"type": "string"},
                "address": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female", "other"]},
                "remark": {"type": "string"}
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
