package preference

import "errors"

// ErrInvalidTheme indicates a theme value other than light or dark.
var ErrInvalidTheme = errors.New("invalid theme")
