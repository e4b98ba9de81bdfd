package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("GET /swagger/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("GET /swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Ledger API",
    "version": "1.0.0"
  },
  "paths": {
    "/accounts": {
      "get": {
        "summary": "List accounts",
        "responses": {
          "200": {"description": "Accounts", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Account"}}}}}
        }
      },
      "post": {
        "summary": "Create account",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Account"}}}
        },
        "responses": {
          "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Account"}}}},
          "409": {"description": "Account already exists", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "415": {"description": "Malformed account body", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/accounts/{id}": {
      "parameters": [{"$ref": "#/components/parameters/AccountId"}],
      "get": {
        "summary": "Get account",
        "responses": {
          "200": {"description": "Account", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Account"}}}},
          "400": {"description": "Invalid account number", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Account not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      },
      "delete": {
        "summary": "Delete account",
        "responses": {
          "204": {"description": "Deleted"},
          "400": {"description": "Invalid account number", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Account not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/accounts/{id}/deposit/{amount}": {
      "parameters": [{"$ref": "#/components/parameters/AccountId"}, {"$ref": "#/components/parameters/Amount"}],
      "put": {
        "summary": "Deposit into account",
        "responses": {
          "200": {"description": "Updated account", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Account"}}}},
          "400": {"description": "Invalid account number or amount", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Account not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "409": {"description": "Negative amount", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/accounts/{id}/withdraw/{amount}": {
      "parameters": [{"$ref": "#/components/parameters/AccountId"}, {"$ref": "#/components/parameters/Amount"}],
      "put": {
        "summary": "Withdraw from account",
        "responses": {
          "200": {"description": "Updated account", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Account"}}}},
          "400": {"description": "Invalid account number or amount", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "403": {"description": "Insufficient funds", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Account not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "409": {"description": "Negative amount", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "List transactions",
        "responses": {
          "200": {"description": "Transactions", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Transaction"}}}}}
        }
      },
      "post": {
        "summary": "Transfer funds between accounts",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Transaction"}}}
        },
        "responses": {
          "201": {"description": "Committed transaction", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Transaction"}}}},
          "404": {"description": "Source or destination account missing", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "409": {"description": "Duplicate transaction, invalid amount or insufficient funds", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "415": {"description": "Malformed transaction body", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/transactions/{id}": {
      "get": {
        "summary": "Get transaction",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Transaction", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Transaction"}}}},
          "400": {"description": "Invalid transaction id", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Transaction not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/transactions/account/{id}": {
      "get": {
        "summary": "List transactions touching an account",
        "parameters": [{"$ref": "#/components/parameters/AccountId"}],
        "responses": {
          "200": {"description": "Transactions", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Transaction"}}}}},
          "400": {"description": "Invalid account number", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}},
          "404": {"description": "Account not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness check",
        "responses": {
          "200": {"description": "OK", "content": {"text/plain": {"schema": {"type": "string"}}}}
        }
      }
    }
  },
  "components": {
    "parameters": {
      "AccountId": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
      "Amount": {"name": "amount", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}
    },
    "schemas": {
      "Account": {
        "type": "object",
        "required": ["id", "currency"],
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "name": {"type": "string"},
          "balance": {"type": "number"},
          "currency": {"type": "string", "example": "EUR"}
        }
      },
      "Transaction": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "fromAccount": {"type": "integer", "format": "int64"},
          "toAccount": {"type": "integer", "format": "int64"},
          "amount": {"type": "number"},
          "currency": {"type": "string", "example": "EUR"},
          "description": {"type": "string"},
          "status": {"type": "string", "enum": ["PROCESSING", "SUCCESSFUL", "FAILED"], "readOnly": true}
        }
      },
      "Error": {
        "type": "object",
        "properties": {
          "error": {"type": "string"},
          "code": {"type": "integer"},
          "path": {"type": "string"}
        }
      }
    }
  }
}`
