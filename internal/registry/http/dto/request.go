// Package dto provides the JSON shapes of the registry API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
	customValidation "github.com/allisson/hname/internal/validation"
)

// MaxHashBatch bounds the number of names accepted by one hash request.
const MaxHashBatch = 1000

// HashRequest asks for the hnames of a batch of names. Any string, including
// the empty one, is a valid name.
type HashRequest struct {
	Names []string `json:"names"`
}

// Validate checks the batch size.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Names,
			validation.Required,
			validation.Length(1, MaxHashBatch),
		),
	)
}

// RegisterEntryRequest registers a name under a kind.
type RegisterEntryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Validate checks the name and kind against the registry's constraints.
func (r *RegisterEntryRequest) Validate() error {
	kinds := make([]any, 0, len(registryDomain.Kinds))
	for _, k := range registryDomain.Kinds {
		kinds = append(kinds, string(k))
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, registryDomain.MaxNameLength),
		),
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(kinds...),
		),
	)
}

// HNameParam is a hex hname taken from a path parameter or a CLI flag.
type HNameParam struct {
	HName string `json:"hname"`
}

// Validate checks that the parameter is hex of at most eight digits.
func (p *HNameParam) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.HName,
			validation.Required,
			customValidation.HNameHex,
		),
	)
}

// Value validates the parameter and decodes it. Validation failures wrap
// ErrInvalidInput.
func (p *HNameParam) Value() (hname.HName, error) {
	if err := p.Validate(); err != nil {
		return hname.Nil, customValidation.WrapValidationError(err)
	}
	return hname.Parse(p.HName)
}
