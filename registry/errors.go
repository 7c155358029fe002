package registry

import "errors"

// ErrNoDocuments is returned by Runner.Run when discovery yielded no
// candidate files.
var ErrNoDocuments = errors.New("registry: no candidate documents found")
