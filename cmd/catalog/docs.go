package main

// @title Catalog API
// @version 1.0
// @description Read-only JSON API of the product catalog

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Product queries

// @tag.name Health
// @tag.description Health check endpoints
