package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

// decimalScalar carries exact decimals. Inputs are parsed from the literal's
// source text (or a string) so no value passes through float64; outputs are
// written as JSON numbers.
var decimalScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "An exact decimal number, e.g. a price or payment amount.",
	Serialize: func(value any) any {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.InexactFloat64()
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.InexactFloat64()
		}
		return nil
	},
	ParseValue: func(value any) any {
		var (
			d   decimal.Decimal
			err error
		)
		switch v := value.(type) {
		case json.Number:
			d, err = decimal.NewFromString(v.String())
		case string:
			d, err = decimal.NewFromString(v)
		case float64:
			d = decimal.NewFromFloat(v)
		case int:
			d = decimal.NewFromInt(int64(v))
		default:
			return nil
		}
		if err != nil {
			return nil
		}
		return d
	},
	ParseLiteral: func(valueAST ast.Value) any {
		var text string
		switch v := valueAST.(type) {
		case *ast.FloatValue:
			text = v.Value
		case *ast.IntValue:
			text = v.Value
		case *ast.StringValue:
			text = v.Value
		default:
			return nil
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil
		}
		return d
	},
})

// decimalField exposes a decimal.Decimal struct field through decimalScalar.
func decimalField(get func(src any) (decimal.Decimal, bool)) *graphql.Field {
	return &graphql.Field{
		Type: decimalScalar,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			d, ok := get(p.Source)
			if !ok {
				return nil, nil
			}
			return d, nil
		},
	}
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price": decimalField(func(src any) (decimal.Decimal, bool) {
			p, ok := src.(domain.Product)
			return p.Price, ok
		}),
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":  &graphql.Field{Type: graphql.String},
		"email": &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":     &graphql.Field{Type: graphql.String},
		"productIds": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"total": decimalField(func(src any) (decimal.Decimal, bool) {
			o, ok := src.(domain.Order)
			return o.Total, ok
		}),
		"status":    &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var paymentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Payment",
	Fields: graphql.Fields{
		"paymentId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"orderId":   &graphql.Field{Type: graphql.String},
		"amount": decimalField(func(src any) (decimal.Decimal, bool) {
			p, ok := src.(domain.Payment)
			return p.Amount, ok
		}),
		"method": &graphql.Field{Type: graphql.String},
		"status": &graphql.Field{Type: graphql.String},
	},
})

// found turns a (nil, nil) lookup into a GraphQL null. Resolvers hand values,
// not pointers, to child fields.
func found[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// NewSchema builds the GraphQL façade over ops.
func NewSchema(ops *Operations) (graphql.Schema, error) {
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.ListProducts(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					product, err := ops.GetProduct(p.Context, p.Args["id"].(string))
					return found(product, err)
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					order, err := ops.GetOrder(p.Context, p.Args["id"].(string))
					return found(order, err)
				},
			},
			"ordersByUser": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.ListOrdersByUser(p.Context, p.Args["userId"].(string))
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := ops.GetUser(p.Context, p.Args["id"].(string))
					return found(user, err)
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.ListUsers(p.Context)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(decimalScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.CreateProduct(p.Context, CreateProductInput{
						Name:        p.Args["name"].(string),
						Description: stringArg(p.Args, "description"),
						Price:       p.Args["price"].(decimal.Decimal),
					})
				},
			},
			"createOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"userId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					ids, err := stringListArg(p.Args, "productIds")
					if err != nil {
						return nil, err
					}
					return ops.CreateOrder(p.Context, CreateOrderInput{
						UserID:     p.Args["userId"].(string),
						ProductIDs: ids,
					})
				},
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.CreateUser(p.Context, CreateUserInput{
						Name:  p.Args["name"].(string),
						Email: stringArg(p.Args, "email"),
					})
				},
			},
			"processPayment": &graphql.Field{
				Type: paymentType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"amount":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(decimalScalar)},
					"method":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return ops.ProcessPayment(p.Context, ProcessPaymentInput{
						OrderID: p.Args["orderId"].(string),
						Amount:  p.Args["amount"].(decimal.Decimal),
						Method:  stringArg(p.Args, "method"),
					})
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func stringListArg(args map[string]any, name string) ([]string, error) {
	raw, _ := args[name].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %T", name, v)
		}
		out = append(out, s)
	}
	return out, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type GraphQLHandler struct {
	schema graphql.Schema
	logger *slog.Logger
}

func NewGraphQLHandler(schema graphql.Schema, logger *slog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger,
	}
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
	case http.MethodPost:
		dec := json.NewDecoder(r.Body)
		// Numeric variables stay as text until a scalar parses them.
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		h.logger.WarnContext(r.Context(), "graphql operation failed",
			"operation", req.OperationName,
			"errors", len(result.Errors),
			"first_error", result.Errors[0].Message,
		)
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *GraphQLHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
