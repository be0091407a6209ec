package helper

import "github.com/go-playground/validator/v10"

// Validate is shared; validator caches struct metadata per instance.
var Validate = validator.New()
