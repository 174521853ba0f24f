// Package docs registra el documento OpenAPI que sirve /swagger.
// Mantener alineado con las anotaciones godoc de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Inicia sesión contra el backend",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Crea una cuenta y deja la sesión iniciada",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Cierra la sesión",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Usuario de la sesión actual",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/forgot-password": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Pide el mail de recuperación",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"202": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/reset-password": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Cambia la contraseña con el token del mail",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/pets": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Mascotas del usuario logueado",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"pets"
				],
				"summary": "Alta de mascota",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/pets/photo": {
			"post": {
				"tags": [
					"pets"
				],
				"summary": "Valida una foto y la devuelve como data URI",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/pets/{petID}": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Perfil de mascota",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "petID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"pets"
				],
				"summary": "Actualiza la mascota",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"pets"
				],
				"summary": "Borra la mascota",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/pets/{petID}/edit": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Borrador de edición",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "petID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/pets/{petID}/records": {
			"get": {
				"tags": [
					"records"
				],
				"summary": "Historial médico paginado",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "boolean",
						"name": "refresh",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					},
					"409": {
						"description": "Superseded by a request for another pet"
					}
				}
			}
		},
		"/clinics": {
			"get": {
				"tags": [
					"clinics"
				],
				"summary": "Lista de clínicas",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/clinics/{clinicID}/vets": {
			"get": {
				"tags": [
					"clinics"
				],
				"summary": "Veterinarios de una clínica",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "clinicID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/clinics/{clinicID}/location": {
			"get": {
				"tags": [
					"clinics"
				],
				"summary": "Ubicación geocodificada",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "clinicID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Abre un formulario de turno",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}": {
			"get": {
				"tags": [
					"bookings"
				],
				"summary": "Estado del formulario",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"bookings"
				],
				"summary": "Cierra el formulario",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/clinic": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Elige clínica",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/vet": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Elige veterinario",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/date": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Elige fecha",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/slot": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Elige slot",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/pet": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Elige mascota",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/notes": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Actualiza notas",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/submit": {
			"post": {
				"tags": [
					"bookings"
				],
				"summary": "Envía el turno",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{formID}/notices/{noticeID}": {
			"delete": {
				"tags": [
					"bookings"
				],
				"summary": "Descarta un aviso",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "formID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "noticeID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/appointments/{appointmentID}": {
			"get": {
				"tags": [
					"appointments"
				],
				"summary": "Abre el detalle de un turno",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"appointments"
				],
				"summary": "Cierra el detalle",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/appointments/{appointmentID}/notes/edit": {
			"post": {
				"tags": [
					"appointments"
				],
				"summary": "Empieza a editar notas",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"appointments"
				],
				"summary": "Descarta el borrador",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/appointments/{appointmentID}/notes": {
			"put": {
				"tags": [
					"appointments"
				],
				"summary": "Guarda las notas",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/appointments/{appointmentID}/cancel": {
			"post": {
				"tags": [
					"appointments"
				],
				"summary": "Pide confirmación para cancelar",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"appointments"
				],
				"summary": "Vuelve atrás de la confirmación",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/appointments/{appointmentID}/cancel/confirm": {
			"post": {
				"tags": [
					"appointments"
				],
				"summary": "Confirma la cancelación",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "appointmentID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		},
		"/calendar": {
			"get": {
				"tags": [
					"calendar"
				],
				"summary": "Calendario y timeline de turnos",
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated",
						"schema": {
							"$ref": "#/definitions/web.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"web.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"kind": {
					"type": "string"
				},
				"errors": {
					"type": "object",
					"additionalProperties": {
						"type": "array",
						"items": {
							"type": "string"
						}
					}
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
	Title:            "Pet Care Dashboard API",
	Description:      "BFF del dashboard de dueños de mascotas: mascotas, turnos, calendario e historial médico.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
