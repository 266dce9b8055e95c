package main

// @title Storefront API
// @version 1.0
// @description Catalog browsing, cart management and checkout with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Catalog browsing and search
// @tag.name Cart
// @tag.description Cart lines, quantities and checkout
// @tag.name Health
// @tag.description Service health
// @tag.name Swagger
// @tag.description Swagger documentation endpoints
