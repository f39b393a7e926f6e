package respond

import (
	"net/http"
	"strconv"

	apperror "medstock/internal/errors"
)

// QueryInt lê um parâmetro inteiro da query string; ausente retorna def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError("Parâmetro '" + name + "' deve ser um número inteiro.")
	}
	return v, nil
}
