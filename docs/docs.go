// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate the full document from the handler annotations with `swag init -g cmd/server/main.go`.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/events": {
            "post": {"tags": ["events"], "summary": "Create an event", "responses": {"201": {"description": "Created"}, "409": {"description": "Venue already booked"}}}
        },
        "/events/{eventID}": {
            "get": {"tags": ["events"], "summary": "Get an event by ID", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["events"], "summary": "Update an event", "responses": {"200": {"description": "OK"}, "409": {"description": "Venue already booked"}}},
            "delete": {"tags": ["events"], "summary": "Delete an event", "responses": {"200": {"description": "OK"}}}
        },
        "/organizations/{organizationID}/venues/{venueID}/conflicts": {
            "get": {"tags": ["venues"], "summary": "Check whether a venue is free", "responses": {"200": {"description": "OK"}}}
        },
        "/organizations/{organizationID}/venues/available": {
            "get": {"tags": ["venues"], "summary": "List venues free for a window", "responses": {"200": {"description": "OK"}}}
        },
        "/events/{eventID}/invitations": {
            "post": {"tags": ["attendees"], "summary": "Invite a user to an event", "responses": {"201": {"description": "Created"}}}
        },
        "/events/{eventID}/registrations": {
            "post": {"tags": ["attendees"], "summary": "Register a user for an event", "responses": {"200": {"description": "OK"}, "409": {"description": "Already registered"}}}
        },
        "/events/{eventID}/attendees": {
            "get": {"tags": ["attendees"], "summary": "List an event's attendees", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["attendees"], "summary": "Add a registered attendee", "responses": {"201": {"description": "Created"}}}
        },
        "/events/{eventID}/attendees/{userID}": {
            "delete": {"tags": ["attendees"], "summary": "Remove an attendee", "responses": {"200": {"description": "OK"}}}
        },
        "/events/{eventID}/check-ins": {
            "post": {"tags": ["attendees"], "summary": "Check a user in", "responses": {"201": {"description": "Created"}}}
        },
        "/events/{eventID}/check-outs": {
            "post": {"tags": ["attendees"], "summary": "Check a user out", "responses": {"201": {"description": "Created"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event Venues API",
	Description:      "Venue booking and attendee lifecycle for organization events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
