package mus

import "fmt"

// CaracterNoValidoError is returned when parsing a hand or card string
// encounters a character outside the Mus alphabet.
type CaracterNoValidoError struct {
	Caracter rune
}

func (e *CaracterNoValidoError) Error() string {
	return fmt.Sprintf("mus: caracter no valido: %q", e.Caracter)
}

// ValorNoValidoError is returned when a raw numeric card value cannot be
// mapped onto a Carta.
type ValorNoValidoError struct {
	Valor uint8
}

func (e *ValorNoValidoError) Error() string {
	return fmt.Sprintf("mus: valor no valido: %d", e.Valor)
}

// AccionNoValidaError is returned when an action is submitted past the end
// of a lance, out of turn, or with a malformed argument.
type AccionNoValidaError struct {
	Reason string
}

func (e *AccionNoValidaError) Error() string {
	return fmt.Sprintf("mus: accion no valida: %s", e.Reason)
}
