package services

import (
	"net/http"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
)

// rejection accumulates field errors in declaration order, so the flattened
// message always reads top-to-bottom like the form it came from.
type rejection struct {
	fields []apperrors.FieldError
}

func (r *rejection) add(field, message string) {
	r.fields = append(r.fields, apperrors.FieldError{Field: field, Message: message})
}

// err returns nil when no field failed, otherwise the full ordered set.
func (r *rejection) err() error {
	if len(r.fields) == 0 {
		return nil
	}
	return &apperrors.ServerRejection{
		StatusCode: http.StatusUnprocessableEntity,
		Fields:     r.fields,
	}
}
