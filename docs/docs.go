// Package docs holds the swagger document served at /api/v1/swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["ops"], "summary": "Healthcheck", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/coupons": {
            "get": {"tags": ["coupons"], "summary": "List coupons", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["coupons"], "summary": "Create coupon", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/coupons/apply": {
            "post": {"tags": ["coupons"], "summary": "Apply coupon to a cart", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/coupons/redeem": {
            "post": {"tags": ["coupons"], "summary": "Redeem coupon", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/coupons/validate": {
            "get": {"tags": ["coupons"], "summary": "Validate coupon code", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/coupons/{coupon_id}": {
            "get": {"tags": ["coupons"], "summary": "Get coupon", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["coupons"], "summary": "Update coupon", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["coupons"], "summary": "Delete coupon", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/restaurants": {
            "get": {"tags": ["restaurants"], "summary": "List restaurants", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["restaurants"], "summary": "Create restaurant", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/restaurants/nearby": {
            "get": {"tags": ["restaurants"], "summary": "Restaurants near a point", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/restaurants/trending": {
            "get": {"tags": ["restaurants"], "summary": "Trending restaurants", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/restaurants/{restaurant_id}": {
            "get": {"tags": ["restaurants"], "summary": "Get restaurant", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["restaurants"], "summary": "Update restaurant", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["restaurants"], "summary": "Delete restaurant", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/restaurants/{restaurant_id}/status": {
            "get": {"tags": ["availability"], "summary": "Availability status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["availability"], "summary": "Update operational flags", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/restaurants/{restaurant_id}/is-open": {
            "get": {"tags": ["availability"], "summary": "Is the restaurant open", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/restaurants/{restaurant_id}/menu": {
            "get": {"tags": ["menu"], "summary": "Get menu", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["menu"], "summary": "Add menu sections", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/restaurants/{restaurant_id}/menu/import": {
            "post": {"tags": ["menu"], "summary": "Import menu from Google Sheets", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Food Delivery API",
	Description:      "Restaurants, menus, offers and coupons",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
