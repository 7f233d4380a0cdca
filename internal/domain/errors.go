package domain

import "errors"

// Domänenfehler (ohne externe Abhängigkeiten).
var (
	ErrNotFound                = errors.New("datensatz nicht gefunden")
	ErrInvalidInput            = errors.New("ungültige eingabe")
	ErrDuplicateContractNumber = errors.New("vertragsnummer bereits vergeben")
	ErrInUse                   = errors.New("datensatz wird noch referenziert")
)
