package loanhistory

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	queryType = "LoanHistory"
)

// Query represents the intent to query the loan history of a user.
type Query struct {
	UserID core.UserIDString
}

// BuildQuery creates a new Query with the provided user ID.
func BuildQuery(userID core.UserIDString) Query {
	return Query{
		UserID: strings.TrimSpace(userID),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
