package status

// Class is the series a status code belongs to, carrying the generic
// semantics shared by all the codes of the series (RFC 7231, section 6).
type Class uint8

const (
	Informational Class = iota + 1 // 1xx
	Successful                     // 2xx
	Redirection                    // 3xx
	ClientError                    // 4xx
	ServerError                    // 5xx
)

func (c Class) String() string {
	switch c {
	case Informational:
		return "Informational"
	case Successful:
		return "Successful"
	case Redirection:
		return "Redirection"
	case ClientError:
		return "Client Error"
	case ServerError:
		return "Server Error"
	default:
		return "???"
	}
}

// ClassOf returns the series of the code. Codes outside of the 100-599
// range belong to no series, resulting in zero.
func ClassOf(code Code) Class {
	if code < 100 || code > 599 {
		return 0
	}

	return Class(code / 100)
}

// Status is a single resolved response status: the code exactly as it
// appeared on the wire, the reason phrase and the series the code is
// treated as a member of.
type Status struct {
	Reason string
	Code   Code
	Class  Class
}

// Registry is an ordered table of custom statuses, consulted before the
// built-in one. The zero value is a valid empty registry.
type Registry []Status

// Lookup scans the registry linearly, as custom tables are expected to
// stay small.
func (r Registry) Lookup(code Code) (Status, bool) {
	for _, s := range r {
		if s.Code == code {
			return s, true
		}
	}

	return Status{}, false
}

// Resolve maps a code and the reason phrase it arrived with onto a Status.
// Custom registry entries take precedence over the built-in table; a code
// known to neither is treated as the generic status of its series, as
// RFC 7231, section 6 prescribes, with a synthetic reason. The received
// reason, when present, is preserved in all the cases.
func Resolve(code Code, reason string, custom Registry) Status {
	if s, found := custom.Lookup(code); found {
		if len(reason) > 0 {
			s.Reason = reason
		}

		return s
	}

	if len(reason) == 0 {
		reason = Text(code)
	}

	return Status{Code: code, Reason: reason, Class: ClassOf(code)}
}
