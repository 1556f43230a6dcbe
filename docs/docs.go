// Package docs содержит OpenAPI-описание API в формате swag.
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
		"/films": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"films"
				],
				"summary": "Список фильмов",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/film.FilmResponse"
							}
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"films"
				],
				"summary": "Создать фильм",
				"parameters": [
					{
						"description": "Фильм",
						"name": "film",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/film.FilmRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/film.FilmResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"films"
				],
				"summary": "Обновить фильм",
				"parameters": [
					{
						"description": "Фильм с id",
						"name": "film",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/film.FilmRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/film.FilmResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/films/popular": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"films"
				],
				"summary": "Самые популярные фильмы",
				"parameters": [
					{
						"type": "integer",
						"default": 10,
						"description": "Размер рейтинга",
						"name": "count",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/film.FilmResponse"
							}
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/films/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"films"
				],
				"summary": "Получить фильм",
				"parameters": [
					{
						"type": "integer",
						"description": "ID фильма",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/film.FilmResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/films/{id}/like/{userId}": {
			"put": {
				"tags": [
					"films"
				],
				"summary": "Поставить лайк",
				"parameters": [
					{
						"type": "integer",
						"description": "ID фильма",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"films"
				],
				"summary": "Снять лайк",
				"parameters": [
					{
						"type": "integer",
						"description": "ID фильма",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Список пользователей",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/user.UserResponse"
							}
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Создать пользователя",
				"parameters": [
					{
						"description": "Пользователь",
						"name": "user",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/user.UserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.UserResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Обновить пользователя",
				"parameters": [
					{
						"description": "Пользователь с id",
						"name": "user",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/user.UserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.UserResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Получить пользователя",
				"parameters": [
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.UserResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/{id}/friends": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Друзья пользователя",
				"parameters": [
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/user.UserResponse"
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/{id}/friends/{friendId}": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Добавить в друзья",
				"parameters": [
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "ID друга",
						"name": "friendId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Удалить из друзей",
				"parameters": [
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "ID друга",
						"name": "friendId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/{id}/friends/common/{otherId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Общие друзья",
				"parameters": [
					{
						"type": "integer",
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "ID другого пользователя",
						"name": "otherId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/user.UserResponse"
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/genres": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "Справочник жанров",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/catalog.Item"
							}
						}
					}
				}
			}
		},
		"/genres/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "Жанр по id",
				"parameters": [
					{
						"type": "integer",
						"description": "ID жанра",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/catalog.Item"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/mpa": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "Справочник рейтингов MPA",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/catalog.Item"
							}
						}
					}
				}
			}
		},
		"/mpa/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "Рейтинг MPA по id",
				"parameters": [
					{
						"type": "integer",
						"description": "ID рейтинга",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/catalog.Item"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"catalog.Item": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"film.RefRequest": {
			"type": "object",
			"required": [
				"id"
			],
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"film.GenreResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"film.MpaResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"film.FilmRequest": {
			"type": "object",
			"required": [
				"mpa",
				"releaseDate"
			],
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"releaseDate": {
					"type": "string",
					"example": "1967-03-25"
				},
				"duration": {
					"type": "integer"
				},
				"mpa": {
					"$ref": "#/definitions/film.RefRequest"
				},
				"genres": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/film.RefRequest"
					}
				}
			}
		},
		"film.FilmResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"releaseDate": {
					"type": "string"
				},
				"duration": {
					"type": "integer"
				},
				"mpa": {
					"$ref": "#/definitions/film.MpaResponse"
				},
				"genres": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/film.GenreResponse"
					}
				},
				"rate": {
					"type": "integer"
				},
				"likes": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			}
		},
		"user.UserRequest": {
			"type": "object",
			"required": [
				"birthday"
			],
			"properties": {
				"id": {
					"type": "integer"
				},
				"email": {
					"type": "string"
				},
				"login": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"birthday": {
					"type": "string",
					"example": "1946-08-20"
				}
			}
		},
		"user.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"email": {
					"type": "string"
				},
				"login": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"birthday": {
					"type": "string"
				},
				"friends": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			}
		},
		"response.ErrorBody": {
			"type": "object",
			"properties": {
				"error": {
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
	Title:            "Filmorate API",
	Description:      "Фильмы, пользователи, лайки и дружба.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
