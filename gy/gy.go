// Package gy implements the 3GPP Gy credit-control application (RFC 4006,
// TS 32.299) on top of the base protocol codec in package message: the AVP
// codes it defines, and the recursive parser that decodes a
// Credit-Control-Request payload into a typed, reusable CcRequest.
package gy

import "github.com/dummyocs/diameter-gy/message"

// Gy AVP codes (RFC 4006 / TS 32.299 §7.2), all IETF base (vendor id 0).
const (
	AvpSessionId                     = uint32(263)
	AvpCCRequestType                 = uint32(416)
	AvpCCRequestNumber               = uint32(415)
	AvpCCSessionFailover             = uint32(418)
	AvpMultipleServicesIndicator     = uint32(455)
	AvpMultipleServicesCreditControl = uint32(456)
	AvpRequestedServiceUnit          = uint32(437)
	AvpServiceIdentifier             = uint32(439)
	AvpRatingGroup                   = uint32(432)
	AvpGrantedServiceUnit            = uint32(431)
	AvpValidityTime                  = uint32(448)
	AvpCCInputOctets                 = uint32(412)
	AvpCCOutputOctets                = uint32(414)
	AvpCCTotalOctets                 = uint32(421)
	AvpCCTime                        = uint32(420)
	AvpTimeQuotaThreshold            = uint32(407)
	AvpVolumeQuotaThreshold          = uint32(869)
)

// CommandCodeCreditControl is the Gy command code; it shares its namespace
// with application id ApplicationID, not with the base protocol's 0.
const CommandCodeCreditControl = uint32(272)

// ApplicationID is the Gy application identifier (3GPP TS 29.299).
const ApplicationID = uint32(4)

// CreditControl names the Credit-Control command within the Gy application.
var CreditControl = message.CommandId{Code: CommandCodeCreditControl, ApplicationID: ApplicationID}

// CcService is one requested service line within a Credit-Control-Request,
// decoded from a Multiple-Services-Credit-Control grouped AVP.
type CcService struct {
	ServiceId      *uint32
	RatingGroup    *uint32
	UnitsRequested bool
}

// Reset clears s back to its zero value so it can be reused for the next
// MSCC occurrence without allocating.
func (s *CcService) Reset() {
	s.ServiceId = nil
	s.RatingGroup = nil
	s.UnitsRequested = false
}

// CcRequest is the typed decode of a Credit-Control-Request payload. A
// connection owns exactly one CcRequest for its lifetime; Parse clears it
// before decoding so no CCR's fields leak into the next.
type CcRequest struct {
	SessionId     []byte
	RequestType   *uint32
	RequestNumber *uint32
	Services      []CcService
}

// Reset clears r to its zero value, retaining the Services slice's backing
// array so repeated CCRs on a busy connection don't keep reallocating it.
func (r *CcRequest) Reset() {
	r.SessionId = nil
	r.RequestType = nil
	r.RequestNumber = nil
	r.Services = r.Services[:0]
}

// Parse decodes payload (the AVP bytes following a Credit-Control-Request's
// message header) into r, first resetting it. It returns a
// message.ParseError on any malformed input; on error, r holds the fields
// decoded before the offending AVP.
func Parse(payload []byte, r *CcRequest) error {
	r.Reset()
	return message.WalkAVPs(payload, handleCcrAvp, r)
}

func handleCcrAvp(id message.AvpId, payload []byte, r *CcRequest) error {
	if id.VendorID != 0 {
		return nil
	}
	switch id.Code {
	case AvpSessionId:
		if r.SessionId != nil {
			return message.AvpOccursTooManyTimes
		}
		if len(payload) == 0 {
			return message.InvalidAvpValue
		}
		r.SessionId = append([]byte(nil), payload...)

	case AvpCCRequestNumber:
		if r.RequestNumber != nil {
			return message.AvpOccursTooManyTimes
		}
		v, err := message.ParseUint32Payload(payload)
		if err != nil {
			return err
		}
		r.RequestNumber = &v

	case AvpCCRequestType:
		if r.RequestType != nil {
			return message.AvpOccursTooManyTimes
		}
		v, err := message.ParseUint32Payload(payload)
		if err != nil {
			return err
		}
		r.RequestType = &v

	case AvpMultipleServicesCreditControl:
		var svc CcService
		if err := message.WalkAVPs(payload, handleMscc, &svc); err != nil {
			return err
		}
		r.Services = append(r.Services, svc)
	}
	return nil
}

func handleMscc(id message.AvpId, payload []byte, svc *CcService) error {
	if id.VendorID != 0 {
		return nil
	}
	switch id.Code {
	case AvpServiceIdentifier:
		if svc.ServiceId != nil {
			return message.AvpOccursTooManyTimes
		}
		v, err := message.ParseUint32Payload(payload)
		if err != nil {
			return err
		}
		svc.ServiceId = &v

	case AvpRatingGroup:
		if svc.RatingGroup != nil {
			return message.AvpOccursTooManyTimes
		}
		v, err := message.ParseUint32Payload(payload)
		if err != nil {
			return err
		}
		svc.RatingGroup = &v

	case AvpRequestedServiceUnit:
		svc.UnitsRequested = true
	}
	return nil
}
