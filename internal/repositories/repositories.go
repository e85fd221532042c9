package repositories

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
)

var ErrBadQuery = errors.New("failed to build query")

// SqBuilder renders postgres $n placeholders.
var SqBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
