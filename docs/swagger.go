// Package docs Portfolio Articles API
//
// Serves the article section of the portfolio: the articles of the current
// session with their filters, and the history of session loads.
package docs

import "github.com/swaggo/swag"

// @title Portfolio Articles API
// @version 1.0
// @description Articles of the portfolio with category, year and keyword filtering

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Portfolio Articles API",
        "description": "Articles of the portfolio with category, year and keyword filtering",
        "version": "1.0.0",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "status": {"type": "string", "example": "healthy"},
                                "service": {"type": "string", "example": "portfolio"},
                                "load_state": {"type": "string", "enum": ["idle", "loading", "loaded", "failed"]}
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/articles": {
            "get": {
                "tags": ["Articles"],
                "summary": "Articles of the current session",
                "description": "Filters, sorts (newest first) and paginates the session's articles.",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "description": "Category, or all"},
                    {"name": "year", "in": "query", "type": "string", "description": "Four digit year, or all"},
                    {"name": "q", "in": "query", "type": "string", "maxLength": 200, "description": "Case-insensitive keyword"},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1, "description": "Page number, clamped to the available pages"}
                ],
                "responses": {
                    "200": {"description": "Projected page", "schema": {"$ref": "#/definitions/Page"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/Error"}},
                    "503": {"description": "Articles could not be loaded", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/filters": {
            "get": {
                "tags": ["Articles"],
                "summary": "Filter options derived from the session",
                "responses": {
                    "200": {
                        "description": "Category and year options, all first",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "categories": {"type": "array", "items": {"type": "string"}},
                                "years": {"type": "array", "items": {"type": "string"}},
                                "total": {"type": "integer"},
                                "last_updated": {"type": "string"},
                                "loaded_at": {"type": "string", "format": "date-time"},
                                "session_expires_at": {"type": "string", "format": "date-time"}
                            }
                        }
                    },
                    "503": {"description": "Articles could not be loaded", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/loads": {
            "get": {
                "tags": ["Loads"],
                "summary": "Recent session loads, newest first",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 200, "default": 20}
                ],
                "responses": {
                    "200": {
                        "description": "Load history",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "loads": {"type": "array", "items": {"$ref": "#/definitions/LoadRecord"}},
                                "count": {"type": "integer"},
                                "state": {"type": "string"}
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "kind": {"type": "string", "enum": ["transport", "shape", "parse", "empty_feed", "unknown"]},
                "message": {"type": "string"}
            }
        },
        "Card": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "url": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string", "example": "Jan 10, 2024"},
                "datetime": {"type": "string", "example": "2024-01-10"},
                "summary": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "style": {"type": "string", "example": "card--infra"},
                "enclosure": {"type": "string"}
            }
        },
        "Option": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "label": {"type": "string"},
                "link": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "PageLink": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "aria_label": {"type": "string"},
                "link": {"type": "string"},
                "current": {"type": "boolean"},
                "disabled": {"type": "boolean"}
            }
        },
        "Page": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "state": {"type": "string", "enum": ["loaded", "failed"]},
                "outcome": {"type": "string", "enum": ["has_results", "no_articles", "no_matches"]},
                "message": {"type": "string"},
                "cards": {"type": "array", "items": {"$ref": "#/definitions/Card"}},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/Option"}},
                "years": {"type": "array", "items": {"$ref": "#/definitions/Option"}},
                "filters": {
                    "type": "object",
                    "properties": {
                        "category": {"type": "string"},
                        "year": {"type": "string"},
                        "keyword": {"type": "string"}
                    }
                },
                "pagination": {
                    "type": "object",
                    "properties": {
                        "prev": {"$ref": "#/definitions/PageLink"},
                        "pages": {"type": "array", "items": {"$ref": "#/definitions/PageLink"}},
                        "next": {"$ref": "#/definitions/PageLink"}
                    }
                },
                "current_page": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "filtered": {"type": "integer"},
                "total": {"type": "integer"},
                "last_updated": {"type": "string"},
                "year": {"type": "integer"}
            }
        },
        "LoadRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "source": {"type": "string"},
                "state": {"type": "string", "enum": ["loaded", "failed"]},
                "article_count": {"type": "integer"},
                "error_kind": {"type": "string"},
                "started_at": {"type": "string", "format": "date-time"},
                "finished_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "tags": [
        {"name": "Health", "description": "Health check endpoints"},
        {"name": "Articles", "description": "Article listing endpoints"},
        {"name": "Loads", "description": "Session load endpoints"}
    ]
}`
