package model

// InputRequest is yielded by the credential run whenever it needs a value
// only the user can supply. Prompt is a human-readable hint.
type InputRequest struct {
	Kind        InputKind
	Prompt      string
	Placeholder string
}
