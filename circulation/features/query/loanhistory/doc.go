// Package loanhistory implements the Loan History query use case.
//
// This feature provides a pure query operation that returns every loan a user has taken,
// with due dates, renewals, returns, and fines, projected from the circulation journal.
// It follows the Query-Project pattern without any command processing or event generation.
package loanhistory
