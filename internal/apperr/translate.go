package apperr

import (
	"errors"

	"github.com/tbourn/farmstand/internal/domain"
)

// Translator inspects an error and returns either a rewritten error or the
// input unchanged. Translators never swallow errors.
type Translator func(error) error

// TranslatePersistenceValidation rewrites store schema failures
// (*domain.ValidationError) into a 400 carrying the original message.
func TranslatePersistenceValidation(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return BadRequest(ValidationPrefix + ve.Error())
	}
	return err
}

// Apply runs err through the translators in order.
func Apply(err error, chain ...Translator) error {
	for _, tr := range chain {
		if tr == nil {
			continue
		}
		err = tr(err)
	}
	return err
}
