package model

// FailureKind classifies why a credential run was aborted.
type FailureKind string

const (
	FailureKindInvalidInput FailureKind = "invalid_input"
	FailureKindTimeout      FailureKind = "timeout_error" // Required element never appeared.
	FailureKindUnexpected   FailureKind = "general_error"
)

// Step identifies a state of the credential run.
type Step string

const (
	StepInit            Step = "init"
	StepPhoneEntry      Step = "phone_entry"
	StepCodeEntry       Step = "code_entry"
	StepToolsNavigation Step = "tools_navigation"
	StepBranchPoint     Step = "branch_point"
	StepCreateApp       Step = "create_app"
	StepReadExisting    Step = "read_existing"
	StepSuccess         Step = "success"
	StepTeardown        Step = "teardown"
)

// InputKind identifies which interactive value the run is waiting for.
type InputKind string

const (
	InputPhoneNumber      InputKind = "phone_number"
	InputConfirmationCode InputKind = "confirmation_code"
)
