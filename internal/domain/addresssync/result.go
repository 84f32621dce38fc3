package addresssync

// StepResult is the outcome of one call to the CRM. The caller decides whether
// to proceed after a failed step.
type StepResult struct {
	Address *CRMAddress
	Err     error
}

// NewStepResult wraps a gateway call's return values
func NewStepResult(address *CRMAddress, err error) StepResult {
	return StepResult{Address: address, Err: err}
}

// Succeeded is true when the call returned a record without an error indicator
func (r StepResult) Succeeded() bool {
	return r.Err == nil && r.Address != nil && !r.Address.IsError
}

// Reason describes why the step failed, or "" on success
func (r StepResult) Reason() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Address == nil:
		return "empty response"
	case r.Address.IsError:
		if r.Address.ErrorMessage != "" {
			return r.Address.ErrorMessage
		}
		return ErrCRMAPIError.Error()
	default:
		return ""
	}
}

// OutcomeStatus is the overall result of a sync operation
type OutcomeStatus string

const (
	OutcomeApplied OutcomeStatus = "applied"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Skip reasons
const (
	SkipFlagDisabled         = "sync disabled"
	SkipUnsupportedOperation = "operation is not edit"
	SkipUnsupportedEntity    = "entity is not an address"
	SkipUnmappedLocationType = "location type not mapped"
	SkipMissingContact       = "address has no contact id"
	SkipIdentityNotLinked    = "no linked identity"
	SkipInvalidAddressType   = "invalid address type"
	SkipCustomerUnavailable  = "store customer unavailable"
)

// Outcome reports what a sync operation did. It is informational only.
type Outcome struct {
	Status        OutcomeStatus
	Reason        string
	AddressType   AddressType
	FieldsWritten []string
	FieldsSkipped []string
}

// Skipped builds a skipped outcome
func Skipped(reason string) Outcome {
	return Outcome{Status: OutcomeSkipped, Reason: reason}
}

// Direction names which side an address edit travels from
type Direction string

const (
	DirectionCRMToStore Direction = "crm_to_store"
	DirectionStoreToCRM Direction = "store_to_crm"
)
