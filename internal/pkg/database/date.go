package database

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout é o formato de data usado nas colunas DATE e na API.
const DateLayout = "2006-01-02"

// FormatDate converte uma data para o valor enviado ao banco.
// Enviar texto evita diferenças de fuso entre os drivers.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NullDate lê colunas DATE de qualquer driver suportado: lib/pq e mysql
// (parseTime=true) entregam time.Time, mysql sem parseTime entrega []byte e o
// SQLite pode entregar string.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// Scan implementa sql.Scanner.
func (d *NullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), true
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("tipo não suportado para coluna DATE: %T", src)
	}
}

func (d *NullDate) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time, d.Valid = time.Time{}, false
		return nil
	}
	// Alguns drivers devolvem "2006-01-02 00:00:00" ou RFC3339.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("data inválida %q: %w", s, err)
	}
	d.Time, d.Valid = t, true
	return nil
}
