package domain

// ResponseKind is the outcome class of a gateway response.
// The web adapter maps each kind to exactly one HTTP status.
type ResponseKind int

const (
	ResponseOK ResponseKind = iota
	ResponseRejected
	ResponseUnavailable
)

// String returns a log-friendly name for the kind.
func (k ResponseKind) String() string {
	switch k {
	case ResponseOK:
		return "ok"
	case ResponseRejected:
		return "rejected"
	case ResponseUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// GatewayResponse is what an endpoint hands to the transport.
// Payload is serialized as JSON unless it is a string, which is sent as plain text.
type GatewayResponse struct {
	Kind    ResponseKind
	Payload any
}

// IsError reports whether the response is anything other than ResponseOK.
func (r GatewayResponse) IsError() bool {
	return r.Kind != ResponseOK
}

// ErrorBody is the {error, message} payload used for gateway-generated rejections.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
