package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type confirmRequiredError struct {
	action string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("refusing to %s without --yes", e.action)
}
